package plan

import (
	"strings"

	"config-generator/internal/annotation"
	"config-generator/internal/diagnostic"
)

//go:generate go tool stringer -type=RefKind -output=refkind_string.go

// RefKind tells what a field refers to.
type RefKind int

const (
	_ RefKind = iota

	RefPrimitive // scalar host type
	RefStruct    // nested record
	RefList      // list of nested records
)

// FieldRef is the closed set of field targets.
type FieldRef struct {
	Kind RefKind
	// Primitive is set for RefPrimitive.
	Primitive annotation.Kind
	// Record is the owned child record for RefStruct and RefList.
	Record *Record
}

// Field is one member of a record, in schema declaration order.
type Field struct {
	// Name is the schema key.
	Name string
	// Line is the 1-based schema line of the key.
	Line int
	Ref  FieldRef
}

// Record is a node of the type tree.
type Record struct {
	// Name is the local name: the schema key, or the element name for list
	// elements.
	Name string
	// Path is the chain of enclosing record names ending with Name.
	Path []string
	// Line is the 1-based schema line of the record's key.
	Line int
	// Fields in declaration order.
	Fields []Field
}

// Plan is the built type tree of one schema document.
type Plan struct {
	// Source is the path of the schema document.
	Source string
	// Records holds the top-level records in declaration order.
	Records []*Record
	// Diagnostics holds non-fatal findings.
	Diagnostics diagnostic.Diagnostics
}

// QualifiedName joins the record path with dots, e.g. "Window.size".
func (r *Record) QualifiedName() string {
	return strings.Join(r.Path, ".")
}

// Ancestors returns the enclosing record names.
func (r *Record) Ancestors() []string {
	if len(r.Path) == 0 {
		return nil
	}

	return r.Path[:len(r.Path)-1]
}

// Children returns the records owned by r's fields, in field order.
func (r *Record) Children() []*Record {
	var out []*Record

	for _, f := range r.Fields {
		if f.Ref.Record != nil {
			out = append(out, f.Ref.Record)
		}
	}

	return out
}

// Walk visits r and all its descendants, children before parents.
func (r *Record) Walk(fn func(*Record) error) error {
	for _, c := range r.Children() {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}

	return fn(r)
}

// All returns every record of the plan, children before parents.
func (p *Plan) All() []*Record {
	var out []*Record

	for _, r := range p.Records {
		_ = r.Walk(func(rec *Record) error {
			out = append(out, rec)
			return nil
		})
	}

	return out
}
