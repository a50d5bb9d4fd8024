package gen

import (
	"slices"

	"config-generator/internal/diagnostic"
	"config-generator/internal/naming"
	"config-generator/internal/plan"
)

// Target renders records in one output language.
type Target interface {
	// Name returns the target identifier used by --lang (e.g. "go", "cpp").
	Name() string

	// Emit renders the declaration and deserialization files for a
	// top-level record and all records nested in it.
	Emit(rec *plan.Record) (*EmissionUnit, error)
}

// Validator is implemented by targets that reject plans whose names cannot
// be expressed in the target language.
type Validator interface {
	Validate(p *plan.Plan) error
}

// Factory builds a target for a configuration.
type Factory func(config GeneratorConfig) Target

var targets = map[string]Factory{
	goTargetName:  newGoTarget,
	cppTargetName: newCppTarget,
}

// Register adds a target factory to the registry, replacing any previous
// factory with the same name.
func Register(name string, f Factory) {
	targets[name] = f
}

// Lookup builds the target registered under name.
func Lookup(name string, config GeneratorConfig) (Target, error) {
	f, ok := targets[name]
	if !ok {
		return nil, diagnostic.New(diagnostic.ErrUnknownTarget, "unknown target %q, available: %v", name, Targets()).
			Suggest(naming.Closest(name, Targets())...)
	}

	return f(config), nil
}

// Targets returns all registered target names, sorted.
func Targets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
