package annotation

import "sort"

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind is the declared type of a schema field.
type Kind int

const (
	_ Kind = iota // zero value is "no annotation"

	KindInt
	KindString
	KindDouble
	KindBool
	KindFloat
	KindStruct
	KindVector
)

var keywords = map[string]Kind{
	"int":    KindInt,
	"string": KindString,
	"double": KindDouble,
	"bool":   KindBool,
	"float":  KindFloat,
	"struct": KindStruct,
	"vector": KindVector,
}

// ParseKind maps a {type: ...} keyword to its Kind.
func ParseKind(keyword string) (Kind, bool) {
	k, ok := keywords[keyword]
	return k, ok
}

// Keywords returns every recognized {type: ...} keyword, sorted.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

// Keyword returns the schema keyword for k, or "" for an invalid kind.
func (k Kind) Keyword() string {
	for kw, v := range keywords {
		if v == k {
			return kw
		}
	}

	return ""
}

// IsPrimitive reports whether k maps to a host scalar type.
func (k Kind) IsPrimitive() bool {
	switch k {
	default:
		return false
	case KindInt, KindString, KindDouble, KindBool, KindFloat:
		return true
	}
}
