package schema

import "gopkg.in/yaml.v3"

// Entry is one key of a mapping node.
type Entry struct {
	// Key is the field or record name.
	Key string
	// Line is the 1-based line of the key.
	Line int
	// Value is the field's node with aliases resolved.
	Value *yaml.Node
}

// Entries returns the keys of a mapping node in declaration order.
// A nil or null node yields no entries. Merge keys ("<<") are expanded in
// place: merged entries keep their own lines, and a later key overrides an
// earlier one at the earlier position.
func Entries(n *yaml.Node) []Entry {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	var (
		out   = make([]Entry, 0, len(n.Content)/2)
		index = make(map[string]int)
	)

	add := func(e Entry) {
		if i, ok := index[e.Key]; ok {
			out[i] = e
			return
		}

		index[e.Key] = len(out)
		out = append(out, e)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Tag != "!!merge" {
			continue
		}

		for _, m := range mergeSources(v) {
			for _, e := range Entries(m) {
				add(e)
			}
		}
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Tag == "!!merge" {
			continue
		}

		add(Entry{Key: k.Value, Line: k.Line, Value: deref(v)})
	}

	return out
}

// mergeSources returns the mappings named by a merge value. In a sequence
// earlier mappings take precedence, so they are returned last.
func mergeSources(v *yaml.Node) []*yaml.Node {
	v = deref(v)
	if v == nil {
		return nil
	}

	switch v.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{v}
	case yaml.SequenceNode:
		out := make([]*yaml.Node, 0, len(v.Content))
		for i := len(v.Content) - 1; i >= 0; i-- {
			out = append(out, v.Content[i])
		}

		return out
	default:
		return nil
	}
}

// FirstElement returns the representative element of a sequence node.
func FirstElement(n *yaml.Node) (*yaml.Node, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.SequenceNode || len(n.Content) == 0 {
		return nil, false
	}

	return deref(n.Content[0]), true
}

// IsMapping reports whether n can hold record fields. A null value counts
// as an empty mapping.
func IsMapping(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && (n.Kind == yaml.MappingNode || IsNull(n))
}

// IsSequence reports whether n can hold list elements. A null value counts
// as an empty sequence.
func IsSequence(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && (n.Kind == yaml.SequenceNode || IsNull(n))
}

// IsNull reports whether n is an explicit or implicit YAML null.
func IsNull(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// KindName returns a readable name of the node's kind.
func KindName(n *yaml.Node) string {
	n = deref(n)
	if n == nil {
		return "nothing"
	}

	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		if IsNull(n) {
			return "null"
		}

		return "scalar"
	default:
		return "unknown"
	}
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}

	return n
}
