// Package commands contains all CLI command definitions.
package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Environment variables that provide flag defaults.
const (
	EnvLang    = "CONFIG_GENERATOR_LANG"
	EnvPackage = "CONFIG_GENERATOR_PACKAGE"
	EnvScope   = "CONFIG_GENERATOR_SCOPE"
)

// Env carries the OS dependencies of the commands.
type Env struct {
	// Fs is used for every read and write.
	Fs afero.Fs
	// Getenv looks up flag defaults. Nil means no environment.
	Getenv func(string) string
}

func (e Env) lookup(key, fallback string) string {
	if e.Getenv == nil {
		return fallback
	}

	if v := e.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(env Env) *cobra.Command {
	if env.Fs == nil {
		env.Fs = afero.NewOsFs()
	}

	rootCmd := newGenerateCmd(env)

	registerAssetsCmd(rootCmd, env)

	return rootCmd
}

// newLogger returns a text logger on w. Verbose enables per-file output.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
