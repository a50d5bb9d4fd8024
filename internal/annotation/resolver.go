package annotation

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"config-generator/internal/diagnostic"
	"config-generator/internal/naming"
)

// patternCacheSize bounds the compiled per-field patterns kept by a Resolver.
const patternCacheSize = 512

// Annotation is the resolved metadata of one schema field.
type Annotation struct {
	// Field is the schema key the annotation belongs to.
	Field string
	// Kind is the declared type.
	Kind Kind
	// ElementName is the capitalized element record name for KindVector.
	ElementName string
	// Line is the 1-based line the {type: ...} marker was found on.
	Line int
}

// Resolver extracts field annotations from the raw schema text.
// It never caches results; only compiled patterns are reused.
type Resolver struct {
	raw      string
	lines    []string
	scope    Scope
	patterns *lru.Cache[string, *fieldPatterns]
}

type fieldPatterns struct {
	typ  *regexp.Regexp
	name *regexp.Regexp
}

// NewResolver creates a Resolver over raw schema text.
func NewResolver(raw []byte, scope Scope) *Resolver {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")

	// Only fails for a non-positive size.
	cache, _ := lru.New[string, *fieldPatterns](patternCacheSize)

	return &Resolver{
		raw:      text,
		lines:    strings.Split(text, "\n"),
		scope:    scope,
		patterns: cache,
	}
}

// Scope returns the lookup scope of the resolver.
func (r *Resolver) Scope() Scope {
	return r.scope
}

// Resolve returns the annotation of field declared on the given 1-based
// line. With ScopeDocument the line is ignored and the first annotated
// occurrence of field anywhere in the document wins.
func (r *Resolver) Resolve(field string, line int) (Annotation, error) {
	p := r.patternsFor(field)

	text, base := r.haystack(line)

	m := p.typ.FindStringSubmatchIndex(text)
	if m == nil {
		return Annotation{}, diagnostic.New(diagnostic.ErrMissingTypeAnnotation,
			`no "{type: ...}" marker`).At(field, line)
	}

	keyword := text[m[2]:m[3]]
	found := base + strings.Count(text[:m[0]], "\n")

	kind, ok := ParseKind(keyword)
	if !ok {
		return Annotation{}, diagnostic.New(diagnostic.ErrUnsupportedType,
			"unknown type keyword %q", keyword).
			At(field, found).
			Suggest(naming.Closest(keyword, Keywords())...)
	}

	a := Annotation{Field: field, Kind: kind, Line: found}

	if kind == KindVector {
		name, err := r.elementName(p, field, line)
		if err != nil {
			return Annotation{}, err
		}

		a.ElementName = name
	}

	return a, nil
}

// Conflicts returns every other annotated occurrence of field whose kind
// differs from kind. These are the declarations a document-wide lookup
// would confuse with each other.
func (r *Resolver) Conflicts(field string, kind Kind) []Annotation {
	p := r.patternsFor(field)

	var out []Annotation

	for i, l := range r.lines {
		m := p.typ.FindStringSubmatch(l)
		if m == nil {
			continue
		}

		other, ok := ParseKind(m[1])
		if !ok || other == kind {
			continue
		}

		out = append(out, Annotation{Field: field, Kind: other, Line: i + 1})
	}

	return out
}

func (r *Resolver) elementName(p *fieldPatterns, field string, line int) (string, error) {
	text, _ := r.haystack(line)

	m := p.name.FindStringSubmatch(text)
	if m == nil {
		return "", diagnostic.New(diagnostic.ErrMissingElementName,
			`vector field has no "{name:...}" marker`).At(field, line)
	}

	return naming.Capitalize(m[1]), nil
}

// haystack returns the text to scan and the line number of its first line.
func (r *Resolver) haystack(line int) (string, int) {
	if r.scope == ScopeDocument || line < 1 || line > len(r.lines) {
		return r.raw, 1
	}

	return r.lines[line-1], line
}

func (r *Resolver) patternsFor(field string) *fieldPatterns {
	if p, ok := r.patterns.Get(field); ok {
		return p
	}

	key := `(?m)^[ \t]*(?:-[ \t]+)?["']?` + regexp.QuoteMeta(field) + `["']?[ \t]*:[^\n]*?#[^\n]*`

	p := &fieldPatterns{
		typ:  regexp.MustCompile(key + `\{type:[ \t]*(\w+)[ \t]*\}`),
		name: regexp.MustCompile(key + `\{name:[ \t]*(\w+)[ \t]*\}`),
	}
	r.patterns.Add(field, p)

	return p
}

// ResolveType returns the declared kind of field using the document-wide,
// first-match lookup.
func ResolveType(field string, raw []byte) (Kind, error) {
	a, err := NewResolver(raw, ScopeDocument).Resolve(field, 0)
	if err != nil {
		return 0, err
	}

	return a.Kind, nil
}

// ResolveElementName returns the element record name of a vector field
// using the document-wide, first-match lookup.
func ResolveElementName(field string, raw []byte) (string, error) {
	r := NewResolver(raw, ScopeDocument)

	return r.elementName(r.patternsFor(field), field, 0)
}

// String renders the annotation as its schema marker.
func (a Annotation) String() string {
	if a.Kind == KindVector {
		return fmt.Sprintf("%s: {type: %s} {name:%s}", a.Field, a.Kind.Keyword(), a.ElementName)
	}

	return fmt.Sprintf("%s: {type: %s}", a.Field, a.Kind.Keyword())
}
