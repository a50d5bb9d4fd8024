package gen

import (
	"fmt"

	"github.com/spf13/afero"

	"config-generator/internal/diagnostic"
	"config-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Lang selects the registered target, e.g. "go" or "cpp".
	Lang string
	// PackageName is the name of the generated Go package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// RuntimeImport is the import path of the confnode package used by
	// generated Go readers.
	RuntimeImport string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// DebugFs receives unformatted sources when formatting fails. Nil
	// disables the sidecar files.
	DebugFs afero.Fs
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Lang:             "go",
		PackageName:      "config",
		OutputDir:        "config",
		RuntimeImport:    "config-generator/confnode",
		GenerateComments: true,
	}
}

// GeneratedFile represents one emitted source file.
type GeneratedFile struct {
	// Filename is the name of the file relative to the output directory
	// (e.g., "window.gen.go").
	Filename string
	// Content is the final file content.
	Content []byte
}

// EmissionUnit is the output for one top-level record: a type declaration
// file and the deserialization file that populates it.
type EmissionUnit struct {
	// Record is the top-level schema key.
	Record string
	// Stem is the snake_case base of both file names.
	Stem           string
	Declaration    GeneratedFile
	Implementation GeneratedFile
}

// Files returns the declaration followed by the implementation.
func (u EmissionUnit) Files() []GeneratedFile {
	return []GeneratedFile{u.Declaration, u.Implementation}
}

// Generator emits source code for a plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// Generate emits one unit per top-level record, in declaration order.
// Nothing is returned unless every record was emitted successfully.
func (g *Generator) Generate(p *plan.Plan) ([]EmissionUnit, error) {
	target, err := Lookup(g.config.Lang, g.config)
	if err != nil {
		return nil, err
	}

	if v, ok := target.(Validator); ok {
		if err := v.Validate(p); err != nil {
			return nil, err
		}
	}

	units := make([]EmissionUnit, 0, len(p.Records))
	owners := make(map[string]string)

	for _, rec := range p.Records {
		unit, err := target.Emit(rec)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", rec.Name, err)
		}

		for _, f := range unit.Files() {
			if prev, ok := owners[f.Filename]; ok {
				return nil, diagnostic.New(diagnostic.ErrNameCollision,
					"records %q and %q both write %s", prev, rec.Name, f.Filename).
					At(rec.Name, rec.Line)
			}

			owners[f.Filename] = rec.Name
		}

		units = append(units, *unit)
	}

	return units, nil
}

// Files flattens units into the list of files to write.
func Files(units []EmissionUnit) []GeneratedFile {
	files := make([]GeneratedFile, 0, 2*len(units))
	for _, u := range units {
		files = append(files, u.Files()...)
	}

	return files
}
