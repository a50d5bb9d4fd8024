// Package annotation extracts field type annotations from trailing schema
// comments.
//
// A field is annotated with a marker inside its trailing comment:
//
//	width: 800        # {type: int}
//	size:             # {type: struct}
//	items:            # {type: vector} {name:Item}
//
// Recognized keywords are int, string, double, bool, float, struct and
// vector. A vector field must also name its element record.
//
// By default markers are read from the line that declares the field, so two
// records may reuse a field name with different types. ScopeDocument keeps
// the older behavior where the first marker for a field name anywhere in the
// document wins.
package annotation
