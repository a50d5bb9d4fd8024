// Package confnode is the runtime used by generated configuration readers.
//
// A Node wraps a decoded YAML or JSON document and tracks its location so
// read failures name the offending key:
//
//	root, err := confnode.FromYAML(data)
//	if err != nil {
//		return err
//	}
//
//	window, err := config.ReadWindow(root.Get(config.WindowNodeName))
//	// err: confnode: Window.size.width: wrong type: want int, got string
//
// Generated code only calls Get, Items and the scalar accessors. Required
// keys that are absent or null fail with ErrMissing; values of the wrong
// type fail with ErrType. A null list reads as empty.
package confnode
