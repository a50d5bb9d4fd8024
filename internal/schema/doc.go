// Package schema loads the YAML schema document a configuration is
// generated from.
//
// The document is kept both as an ordered yaml.Node tree, which defines the
// shape and field order, and as raw text, which carries the type markers in
// trailing comments:
//
//	Window:
//	  title: "main"       # {type: string}
//	  size:               # {type: struct}
//	    width: 800        # {type: int}
//	    height: 600       # {type: int}
//	  items:              # {type: vector} {name:Item}
//	    - id: 1           # {type: int}
//
// Each top-level key names a record. Scalar values are placeholders; only
// the shape matters to the generator.
package schema
