package plan

import (
	"fmt"
	"log/slog"
	"slices"

	"gopkg.in/yaml.v3"

	"config-generator/internal/annotation"
	"config-generator/internal/diagnostic"
	"config-generator/internal/naming"
	"config-generator/internal/schema"
)

// Config holds configuration for type tree construction.
type Config struct {
	// Scope selects how field annotations are looked up.
	Scope annotation.Scope
	// ReportAmbiguous records a diagnostic for every field name annotated
	// with different kinds in different places.
	ReportAmbiguous bool
	// Logger receives debug output; nil discards it.
	Logger *slog.Logger
}

// DefaultConfig returns the default build configuration.
func DefaultConfig() Config {
	return Config{
		Scope:           annotation.ScopeField,
		ReportAmbiguous: true,
	}
}

// Builder turns a schema document into a Plan.
type Builder struct {
	doc      *schema.Document
	config   Config
	resolver *annotation.Resolver
	logger   *slog.Logger

	diags diagnostic.Diagnostics
	// seen holds every qualified record name built so far.
	seen map[string]struct{}
}

// NewBuilder creates a Builder for doc.
func NewBuilder(doc *schema.Document, config Config) *Builder {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Builder{
		doc:      doc,
		config:   config,
		resolver: annotation.NewResolver(doc.Raw, config.Scope),
		logger:   logger,
		seen:     make(map[string]struct{}),
	}
}

// Build is a shorthand for NewBuilder(doc, config).Build().
func Build(doc *schema.Document, config Config) (*Plan, error) {
	return NewBuilder(doc, config).Build()
}

// Build builds one record per top-level entry, in declaration order.
func (b *Builder) Build() (*Plan, error) {
	p := &Plan{Source: b.doc.Path}

	stems := make(map[string]string)

	for _, e := range b.doc.Entries() {
		if !schema.IsMapping(e.Value) {
			return nil, diagnostic.New(diagnostic.ErrShapeMismatch,
				"top-level record must be a mapping, got %s", schema.KindName(e.Value)).
				At(e.Key, e.Line)
		}

		stem := naming.SnakeCase(e.Key)
		if prev, ok := stems[stem]; ok {
			return nil, diagnostic.New(diagnostic.ErrNameCollision,
				"records %q and %q both map to output name %q", prev, e.Key, stem).
				At(e.Key, e.Line)
		}

		stems[stem] = e.Key

		rec, err := b.BuildRecord(e.Key, e.Value, nil)
		if err != nil {
			if de, ok := diagnostic.AsError(err); ok && de.Field == "" && de.Record == "" {
				de.At(e.Key, e.Line)
			}

			return nil, err
		}

		rec.Line = e.Line
		p.Records = append(p.Records, rec)

		b.logger.Debug("built record", "record", rec.QualifiedName(), "fields", len(rec.Fields))
	}

	p.Diagnostics = b.diags

	return p, nil
}

// BuildRecord builds the record called name from a mapping node. ancestors are the
// names of the enclosing records, outermost first.
func (b *Builder) BuildRecord(name string, node *yaml.Node, ancestors []string) (*Record, error) {
	path := append(slices.Clone(ancestors), name)
	rec := &Record{Name: name, Path: path}
	qualified := rec.QualifiedName()

	if err := b.claim(qualified); err != nil {
		return nil, err
	}

	for _, e := range schema.Entries(node) {
		f, err := b.buildField(rec, e)
		if err != nil {
			if de, ok := diagnostic.AsError(err); ok {
				if de.Field == "" {
					de.At(e.Key, e.Line)
				}

				de.In(qualified)
			}

			return nil, err
		}

		rec.Fields = append(rec.Fields, f)
	}

	return rec, nil
}

func (b *Builder) buildField(parent *Record, e schema.Entry) (Field, error) {
	a, err := b.resolver.Resolve(e.Key, e.Line)
	if err != nil {
		return Field{}, err
	}

	b.reportConflicts(parent, e, a)

	field := Field{Name: e.Key, Line: e.Line}

	switch {
	case a.Kind.IsPrimitive():
		if !schema.IsNull(e.Value) && e.Value.Kind != yaml.ScalarNode {
			return Field{}, shapeError(e, a, "a scalar")
		}

		field.Ref = FieldRef{Kind: RefPrimitive, Primitive: a.Kind}

	case a.Kind == annotation.KindStruct:
		if !schema.IsMapping(e.Value) {
			return Field{}, shapeError(e, a, "a mapping")
		}

		child, err := b.BuildRecord(e.Key, e.Value, parent.Path)
		if err != nil {
			return Field{}, err
		}

		child.Line = e.Line
		field.Ref = FieldRef{Kind: RefStruct, Record: child}

	case a.Kind == annotation.KindVector:
		if !schema.IsSequence(e.Value) {
			return Field{}, shapeError(e, a, "a sequence")
		}

		first, ok := schema.FirstElement(e.Value)
		if !ok {
			return Field{}, diagnostic.New(diagnostic.ErrEmptyListSchema,
				"list of %s has no representative element", a.ElementName).At(e.Key, e.Line)
		}

		if !schema.IsMapping(first) {
			return Field{}, diagnostic.New(diagnostic.ErrShapeMismatch,
				"elements of list of %s must be mappings, got %s", a.ElementName, schema.KindName(first)).
				At(e.Key, e.Line)
		}

		child, err := b.BuildRecord(a.ElementName, first, parent.Path)
		if err != nil {
			return Field{}, err
		}

		child.Line = e.Line
		field.Ref = FieldRef{Kind: RefList, Record: child}

	default:
		return Field{}, diagnostic.New(diagnostic.ErrUnsupportedType, "no mapping for %s", a.Kind).
			At(e.Key, e.Line)
	}

	return field, nil
}

// claim reserves a qualified record name.
func (b *Builder) claim(qualified string) error {
	if _, ok := b.seen[qualified]; ok {
		return diagnostic.New(diagnostic.ErrNameCollision,
			"record %s is declared more than once", qualified)
	}

	b.seen[qualified] = struct{}{}

	return nil
}

func (b *Builder) reportConflicts(parent *Record, e schema.Entry, a annotation.Annotation) {
	if !b.config.ReportAmbiguous {
		return
	}

	for _, c := range b.resolver.Conflicts(e.Key, a.Kind) {
		msg := fmt.Sprintf("field name is also annotated as %s on line %d", c.Kind.Keyword(), c.Line)

		if b.resolver.Scope() == annotation.ScopeDocument {
			b.diags.AddWarning("ambiguous_annotation",
				msg+"; document scope resolved it as "+a.Kind.Keyword(),
				parent.QualifiedName(), e.Key, e.Line)

			continue
		}

		b.diags.AddInfo("ambiguous_annotation", msg, parent.QualifiedName(), e.Key, e.Line)
	}
}

func shapeError(e schema.Entry, a annotation.Annotation, want string) error {
	return diagnostic.New(diagnostic.ErrShapeMismatch,
		"declared %s but holds %s, want %s", a.Kind.Keyword(), schema.KindName(e.Value), want).
		At(e.Key, e.Line)
}
