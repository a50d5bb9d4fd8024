// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/spf13/afero"

	"config-generator/internal/commands"
)

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, arguments, env lookup).
func Run(ctx context.Context, args []string, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd(commands.Env{
		Fs:     afero.NewOsFs(),
		Getenv: getenv,
	})
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}
