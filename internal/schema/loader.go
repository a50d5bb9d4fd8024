package schema

import (
	"bytes"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"config-generator/internal/diagnostic"
)

// DefaultFileName is the schema file looked up inside an input directory.
const DefaultFileName = "config.yaml"

// Document is a parsed schema together with its raw text.
type Document struct {
	// Path is where the document was loaded from (may be empty).
	Path string
	// Raw is the unparsed source, kept for annotation lookup.
	Raw []byte
	// Root is the top-level mapping node.
	Root *yaml.Node
}

// LoadDir loads DefaultFileName from dir.
func LoadDir(fs afero.Fs, dir string) (*Document, error) {
	return LoadFile(fs, filepath.Join(dir, DefaultFileName))
}

// LoadFile loads and parses a schema document from the given path.
func LoadFile(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, diagnostic.Wrap(diagnostic.ErrSchemaLoad, err, "reading %s", path)
	}

	return Parse(path, data)
}

// Parse parses schema YAML. path is only used in diagnostics.
func Parse(path string, data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, diagnostic.New(diagnostic.ErrSchemaLoad, "%s: document is empty", displayPath(path))
	}

	var doc yaml.Node

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, diagnostic.Wrap(diagnostic.ErrSchemaLoad, err, "parsing %s", displayPath(path))
	}

	// Decoding rejects merge keys whose value is not a mapping.
	var probe any
	if err := doc.Decode(&probe); err != nil {
		return nil, diagnostic.Wrap(diagnostic.ErrSchemaLoad, err, "parsing %s", displayPath(path))
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	root = deref(root)
	if root.Kind != yaml.MappingNode {
		return nil, diagnostic.New(diagnostic.ErrSchemaLoad,
			"%s: top level must be a mapping of record names, got %s", displayPath(path), KindName(root)).
			At("", root.Line)
	}

	return &Document{Path: path, Raw: data, Root: root}, nil
}

// Entries returns the top-level records in declaration order.
func (d *Document) Entries() []Entry {
	return Entries(d.Root)
}

func displayPath(path string) string {
	if path == "" {
		return "<input>"
	}

	return path
}
