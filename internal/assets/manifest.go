// Package assets builds the content-hash manifest of a list of asset files.
package assets

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Asset is one hashed file.
type Asset struct {
	// Path is the entry as written in the list file, with forward slashes.
	Path string `json:"path"`
	// Hash is the XXH3 64-bit digest (seed 0) of the file content.
	Hash uint64 `json:"hash"`
}

// Manifest lists hashed assets in list file order.
type Manifest struct {
	Assets []Asset `json:"assets"`
	// Missing holds the resolved paths of entries that were skipped.
	Missing []string `json:"-"`
}

// Build reads listFile and hashes every listed file. Blank lines and lines
// starting with '#' are ignored. Entries may use either slash and are
// resolved relative to the directory of listFile. Entries that are not
// regular files are recorded in Missing and skipped.
func Build(fs afero.Fs, listFile string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, listFile)
	if err != nil {
		return nil, fmt.Errorf("reading asset list: %w", err)
	}

	base := filepath.Dir(listFile)
	m := &Manifest{Assets: []Asset{}}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rel := strings.ReplaceAll(line, `\`, "/")
		full := filepath.Join(base, filepath.FromSlash(rel))

		info, err := fs.Stat(full)
		if err != nil || !info.Mode().IsRegular() {
			m.Missing = append(m.Missing, full)
			continue
		}

		sum, err := hashFile(fs, full)
		if err != nil {
			return nil, err
		}

		m.Assets = append(m.Assets, Asset{
			Path: rel,
			Hash: sum,
		})
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading asset list: %w", err)
	}

	return m, nil
}

// Write stores the manifest as two-space indented JSON, creating the
// parent directory.
func (m *Manifest) Write(fs afero.Fs, path string) error {
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	if err := afero.WriteFile(fs, path, out, filePerm); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return nil
}

func hashFile(fs afero.Fs, path string) (uint64, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	d := xxh3.New()
	if _, err := io.Copy(d, f); err != nil {
		return 0, fmt.Errorf("hashing %s: %w", path, err)
	}

	return d.Sum64(), nil
}
