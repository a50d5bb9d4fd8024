package confnode

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Node is a position inside a decoded YAML or JSON document.
// The zero value is a missing root node.
type Node struct {
	value   any
	path    string
	present bool
	err     error
}

// FromValue wraps an already decoded document (maps, slices and scalars as
// produced by yaml.v3 or encoding/json).
func FromValue(v any) Node {
	return Node{value: v, present: true}
}

// FromYAML decodes a YAML document.
func FromYAML(data []byte) (Node, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Node{}, fmt.Errorf("confnode: decoding yaml: %w", err)
	}

	return FromValue(v), nil
}

// FromYAMLNode decodes an already parsed yaml.Node.
func FromYAMLNode(n *yaml.Node) (Node, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return Node{}, fmt.Errorf("confnode: decoding yaml node: %w", err)
	}

	return FromValue(v), nil
}

// FromJSON decodes a JSON document. Numbers keep their textual form so
// large integers are not rounded through float64.
func FromJSON(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Node{}, fmt.Errorf("confnode: decoding json: %w", err)
	}

	return FromValue(v), nil
}

// Path returns the dotted location of the node, e.g. "size.width" or
// "items[2].id". The root has an empty path.
func (n Node) Path() string {
	return n.path
}

// Exists reports whether the node is present in the document.
func (n Node) Exists() bool {
	return n.present && n.err == nil
}

// Value returns the raw decoded value.
func (n Node) Value() any {
	return n.value
}

// Get returns the child at key. Looking up a key of a non-mapping node
// yields a node whose accessors report the type error.
func (n Node) Get(key string) Node {
	child := Node{path: joinKey(n.path, key)}

	switch {
	case n.err != nil:
		child.err = n.err
	case !n.present:
		child.err = n.fail(ErrMissing, "mapping")
	default:
		switch m := n.value.(type) {
		case map[string]any:
			child.value, child.present = m[key]
		case map[any]any:
			child.value, child.present = m[key]
		case nil:
		default:
			child.err = n.fail(ErrType, "mapping")
		}
	}

	return child
}

// Items returns the elements of a sequence node. A null node is an empty
// sequence.
func (n Node) Items() ([]Node, error) {
	if n.err == nil && n.present && n.value == nil {
		return nil, nil
	}

	if err := n.check("sequence"); err != nil {
		return nil, err
	}

	switch s := n.value.(type) {
	case []any:
		out := make([]Node, len(s))
		for i, v := range s {
			out[i] = Node{value: v, path: n.path + "[" + strconv.Itoa(i) + "]", present: true}
		}

		return out, nil
	default:
		return nil, n.fail(ErrType, "sequence")
	}
}

// Int returns the node as an int. Floats are accepted when integral.
func (n Node) Int() (int, error) {
	if err := n.check("int"); err != nil {
		return 0, err
	}

	switch v := n.value.(type) {
	case int:
		return v, nil
	case int64:
		if int64(int(v)) == v {
			return int(v), nil
		}
	case uint64:
		if v <= math.MaxInt {
			return int(v), nil
		}
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt && v < math.MaxInt {
			return int(v), nil
		}
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 0); err == nil {
			return int(i), nil
		}
	}

	return 0, n.fail(ErrType, "int")
}

// Float64 returns the node as a float64. Integers are widened.
func (n Node) Float64() (float64, error) {
	if err := n.check("double"); err != nil {
		return 0, err
	}

	switch v := n.value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
	}

	return 0, n.fail(ErrType, "double")
}

// Float32 returns the node as a float32.
func (n Node) Float32() (float32, error) {
	if err := n.check("float"); err != nil {
		return 0, err
	}

	f, err := n.Float64()
	if err != nil {
		return 0, n.fail(ErrType, "float")
	}

	return float32(f), nil
}

// Bool returns the node as a bool.
func (n Node) Bool() (bool, error) {
	if err := n.check("bool"); err != nil {
		return false, err
	}

	if v, ok := n.value.(bool); ok {
		return v, nil
	}

	return false, n.fail(ErrType, "bool")
}

// Text returns the node as a string. Other scalars are formatted.
func (n Node) Text() (string, error) {
	if err := n.check("string"); err != nil {
		return "", err
	}

	switch v := n.value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case json.Number:
		return v.String(), nil
	}

	return "", n.fail(ErrType, "string")
}

// check returns the pending error of n, or ErrMissing when absent or null.
func (n Node) check(want string) error {
	if n.err != nil {
		return n.err
	}

	if !n.present || n.value == nil {
		return n.fail(ErrMissing, want)
	}

	return nil
}

func (n Node) fail(rule error, want string) error {
	e := &PathError{Path: n.path, Want: want, Err: rule}
	if rule == ErrType {
		e.Got = typeName(n.value)
	}

	return e
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any, map[any]any:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64:
		return "int"
	case float64, float32:
		return "double"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
