package gen

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(fs afero.Fs, outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := fs.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}
	// Keep it a .go file so editors can syntax highlight, but avoid colliding with
	// real output.
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return afero.WriteFile(fs, filepath.Join(outDir, debugName), content, filePerm)
}
