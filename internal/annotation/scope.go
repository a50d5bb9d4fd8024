package annotation

import "fmt"

// Scope selects where the resolver looks for a field's markers.
type Scope int

const (
	// ScopeField scans only the line the field is declared on.
	ScopeField Scope = iota
	// ScopeDocument scans the whole document; the first match wins.
	ScopeDocument
)

// String returns the flag spelling of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeField:
		return "field"
	case ScopeDocument:
		return "document"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// ParseScope parses "field" or "document".
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "field":
		return ScopeField, nil
	case "document":
		return ScopeDocument, nil
	default:
		return 0, fmt.Errorf("unknown annotation scope %q (want field or document)", s)
	}
}
