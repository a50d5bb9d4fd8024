package gen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

const stagingSuffix = ".tmp"

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Every file is first staged
// next to its destination; destinations are only replaced once all files
// were staged, and staged files are removed on failure.
func WriteFiles(fs afero.Fs, files []GeneratedFile, outputDir string) error {
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if _, dup := seen[file.Filename]; dup {
			return fmt.Errorf("file %s generated twice", file.Filename)
		}

		seen[file.Filename] = struct{}{}
	}

	if err := fs.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	staged := make([]string, 0, len(files))

	cleanup := func() {
		for _, p := range staged {
			_ = fs.Remove(p)
		}
	}

	for _, file := range files {
		p := filepath.Join(outputDir, file.Filename) + stagingSuffix

		if err := afero.WriteFile(fs, p, file.Content, filePerm); err != nil {
			cleanup()
			return fmt.Errorf("staging file %s: %w", file.Filename, err)
		}

		staged = append(staged, p)
	}

	for i, file := range files {
		dst := filepath.Join(outputDir, file.Filename)

		if err := fs.Rename(staged[i], dst); err != nil {
			cleanup()
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// WriteUnits writes every file of units and returns the written paths.
func WriteUnits(fs afero.Fs, units []EmissionUnit, outputDir string) ([]string, error) {
	files := Files(units)
	if err := WriteFiles(fs, files, outputDir); err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(outputDir, f.Filename)
	}

	return paths, nil
}

// Check compares units with the files on disk and returns the names of
// files that are missing or differ.
func Check(fs afero.Fs, units []EmissionUnit, outputDir string) ([]string, error) {
	var stale []string

	for _, f := range Files(units) {
		current, err := afero.ReadFile(fs, filepath.Join(outputDir, f.Filename))
		if errors.Is(err, os.ErrNotExist) {
			stale = append(stale, f.Filename)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Filename, err)
		}

		if !bytes.Equal(current, f.Content) {
			stale = append(stale, f.Filename)
		}
	}

	return stale, nil
}
