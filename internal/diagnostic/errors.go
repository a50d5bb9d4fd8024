package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Fatal rule violations. Every error returned by the loader, resolver,
// builder or generator matches exactly one of these through errors.Is.
var (
	ErrSchemaLoad            = errors.New("schema load failed")
	ErrMissingTypeAnnotation = errors.New("missing type annotation")
	ErrUnsupportedType       = errors.New("unsupported type")
	ErrMissingElementName    = errors.New("missing element name")
	ErrEmptyListSchema       = errors.New("empty list schema")
	ErrShapeMismatch         = errors.New("shape mismatch")
	ErrNameCollision         = errors.New("name collision")
	ErrUnknownTarget         = errors.New("unknown target")
)

var codes = map[error]string{
	ErrSchemaLoad:            "schema_load",
	ErrMissingTypeAnnotation: "missing_type_annotation",
	ErrUnsupportedType:       "unsupported_type",
	ErrMissingElementName:    "missing_element_name",
	ErrEmptyListSchema:       "empty_list_schema",
	ErrShapeMismatch:         "shape_mismatch",
	ErrNameCollision:         "name_collision",
	ErrUnknownTarget:         "unknown_target",
}

// Error is a fatal diagnostic naming the offending record, field and rule.
type Error struct {
	// Code identifies the violated rule (e.g. "missing_type_annotation").
	Code string
	// Record is the qualified name of the enclosing record, if known.
	Record string
	// Field is the offending field name, if any.
	Field string
	// Line is the 1-based schema line, 0 when unknown.
	Line int
	// Message is the human-readable description.
	Message string
	// Suggestions are potential fixes.
	Suggestions []string

	rule  error
	cause error
}

// New creates an Error for the given rule sentinel.
func New(rule error, format string, args ...any) *Error {
	return &Error{
		Code:    codes[rule],
		Message: fmt.Sprintf(format, args...),
		rule:    rule,
	}
}

// Wrap creates an Error for the given rule sentinel caused by err.
func Wrap(rule error, err error, format string, args ...any) *Error {
	e := New(rule, format, args...)
	e.cause = err

	return e
}

// At sets the field and line of the error and returns it.
func (e *Error) At(field string, line int) *Error {
	e.Field = field
	e.Line = line

	return e
}

// In sets the record of the error unless one is already set.
func (e *Error) In(record string) *Error {
	if e.Record == "" {
		e.Record = record
	}

	return e
}

// Suggest appends suggestions to the error.
func (e *Error) Suggest(s ...string) *Error {
	e.Suggestions = append(e.Suggestions, s...)
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	if loc := location(e.Record, e.Field, e.Line); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}

	if e.rule != nil {
		sb.WriteString(e.rule.Error())
	}

	if e.Message != "" {
		if e.rule != nil {
			sb.WriteString(": ")
		}

		sb.WriteString(e.Message)
	}

	if e.cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.cause.Error())
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString(" (did you mean ")
		sb.WriteString(strings.Join(quoteAll(e.Suggestions), " or "))
		sb.WriteString("?)")
	}

	return sb.String()
}

// Unwrap exposes both the rule sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.rule != nil {
		errs = append(errs, e.rule)
	}

	if e.cause != nil {
		errs = append(errs, e.cause)
	}

	return errs
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}

	return out
}
