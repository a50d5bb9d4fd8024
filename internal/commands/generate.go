package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"config-generator/internal/annotation"
	"config-generator/internal/gen"
	"config-generator/internal/plan"
	"config-generator/internal/schema"
)

// ErrStale is returned by --check when generated files are out of date.
var ErrStale = errors.New("generated files are out of date")

type generateOptions struct {
	lang    string
	pkg     string
	scope   string
	check   bool
	dryRun  bool
	verbose bool
}

func newGenerateCmd(env Env) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "config-generator [input-dir] [output-dir]",
		Short: "Generate typed configuration readers from an annotated YAML schema",
		Long: fmt.Sprintf(`Generate typed configuration readers from an annotated YAML schema.

The schema is read from <input-dir>/%s (default input-dir "."). Every
top-level record produces a declaration file and a reader file in
output-dir (default "config"). Fields are typed by a trailing comment:

  width: 800 # {type: int}
  items:     # {type: vector} {name:Item}

Available targets: %s`, schema.DefaultFileName, strings.Join(gen.Targets(), ", ")),
		Example: `  # Generate Go readers from ./config.yaml into ./config
  config-generator

  # Generate yaml-cpp sources
  config-generator --lang cpp assets/schema src/config

  # Fail when checked-in files are stale
  config-generator --check . internal/config`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, env, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.lang, "lang", env.lookup(EnvLang, "go"),
		fmt.Sprintf("Output language (%s)", strings.Join(gen.Targets(), ", ")))
	cmd.Flags().StringVar(&opts.pkg, "package", env.lookup(EnvPackage, ""),
		"Go package name (default: base name of output-dir)")
	cmd.Flags().StringVar(&opts.scope, "scope", env.lookup(EnvScope, annotation.ScopeField.String()),
		"Annotation lookup scope (field, document)")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Fail if generated files differ from those on disk")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the files that would be written")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every written file")

	return cmd
}

func runGenerate(cmd *cobra.Command, env Env, opts *generateOptions, args []string) error {
	inputDir, outputDir := ".", "config"
	if len(args) > 0 {
		inputDir = args[0]
	}

	if len(args) > 1 {
		outputDir = args[1]
	}

	if opts.check && opts.dryRun {
		return errors.New("--check and --dry-run are mutually exclusive")
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	scope, err := annotation.ParseScope(opts.scope)
	if err != nil {
		return err
	}

	doc, err := schema.LoadDir(env.Fs, inputDir)
	if err != nil {
		return err
	}

	p, err := plan.Build(doc, plan.Config{
		Scope:           scope,
		ReportAmbiguous: true,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	for _, d := range p.Diagnostics.Warnings {
		logger.Warn(d.Message, "code", d.Code, "record", d.Record, "field", d.Field, "line", d.Line)
	}

	for _, d := range p.Diagnostics.Infos {
		logger.Debug(d.Message, "code", d.Code, "record", d.Record, "field", d.Field, "line", d.Line)
	}

	cfg := gen.DefaultGeneratorConfig()
	cfg.Lang = opts.lang
	cfg.OutputDir = outputDir
	cfg.DebugFs = env.Fs

	cfg.PackageName = opts.pkg
	if cfg.PackageName == "" {
		cfg.PackageName = packageName(outputDir)
	}

	units, err := gen.NewGenerator(cfg).Generate(p)
	if err != nil {
		return err
	}

	switch {
	case opts.dryRun:
		for _, f := range gen.Files(units) {
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(outputDir, f.Filename))
		}

		return nil

	case opts.check:
		stale, err := gen.Check(env.Fs, units, outputDir)
		if err != nil {
			return err
		}

		if len(stale) > 0 {
			return fmt.Errorf("%w: %s", ErrStale, strings.Join(stale, ", "))
		}

		logger.Info("generated files are up to date", "dir", outputDir)

		return nil
	}

	paths, err := gen.WriteUnits(env.Fs, units, outputDir)
	if err != nil {
		return err
	}

	for _, path := range paths {
		logger.Info("wrote file", "path", path)
	}

	return nil
}

// packageName derives a Go package name from an output directory.
func packageName(dir string) string {
	base := filepath.Base(filepath.Clean(dir))

	var sb strings.Builder

	for _, r := range strings.ToLower(base) {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}

	name := sb.String()
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		return "config"
	}

	return name
}
