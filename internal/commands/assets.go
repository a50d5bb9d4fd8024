package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"config-generator/internal/assets"
)

func registerAssetsCmd(parent *cobra.Command, env Env) {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "assets <output.json> <list.txt>",
		Short: "Write a content-hash manifest for the files named in a list",
		Long: `Write a content-hash manifest for the files named in a list.

Each non-blank line of list.txt that does not start with '#' names a file
relative to the directory of list.txt. Missing files are skipped with a
warning. The manifest maps every path to its XXH3 64-bit digest.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), verbose)

			m, err := assets.Build(env.Fs, args[1])
			if err != nil {
				return err
			}

			for _, p := range m.Missing {
				logger.Warn("asset not found, skipping", "path", p)
			}

			if err := m.Write(env.Fs, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s with %d assets.\n", args[0], len(m.Assets))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	parent.AddCommand(cmd)
}
