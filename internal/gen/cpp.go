package gen

import (
	"fmt"
	"strings"

	"config-generator/internal/annotation"
	"config-generator/internal/diagnostic"
	"config-generator/internal/naming"
	"config-generator/internal/plan"
)

const cppTargetName = "cpp"

const cppIndent = "    "

var cppTypes = map[annotation.Kind]string{
	annotation.KindInt:    "int",
	annotation.KindString: "std::string",
	annotation.KindDouble: "double",
	annotation.KindFloat:  "float",
	annotation.KindBool:   "bool",
}

// cppTarget emits a yaml-cpp header and source per top-level record. Every
// record lives in a namespace named after it, nested like the schema.
type cppTarget struct {
	config GeneratorConfig
}

func newCppTarget(config GeneratorConfig) Target {
	return &cppTarget{config: config}
}

func (t *cppTarget) Name() string {
	return cppTargetName
}

// Emit renders <stem>.h and <stem>.cpp.
func (t *cppTarget) Emit(rec *plan.Record) (*EmissionUnit, error) {
	stem := naming.SnakeCase(rec.Name)

	var h strings.Builder

	h.WriteString("// This file is auto-generated. Do not edit.\n\n")
	h.WriteString("#pragma once\n\n")
	h.WriteString("#define YAML_CPP_API\n")
	h.WriteString("#include <string>\n#include <vector>\n#include <yaml-cpp/yaml.h>\n\n")
	h.WriteString("namespace config {\n\n")
	writeCppNamespace(&h, rec)
	h.WriteString("} // namespace config\n\n")

	var src strings.Builder

	fmt.Fprintf(&src, "#include \"%s.h\"\n\n", stem)
	src.WriteString("namespace config {\n\n")
	writeCppSource(&src, rec, "")
	src.WriteString("} // namespace config\n")

	return &EmissionUnit{
		Record: rec.Name,
		Stem:   stem,
		Declaration: GeneratedFile{
			Filename: stem + ".h",
			Content:  []byte(h.String()),
		},
		Implementation: GeneratedFile{
			Filename: stem + ".cpp",
			Content:  []byte(src.String()),
		},
	}, nil
}

// Validate rejects sibling records whose namespaces differ only in case.
func (t *cppTarget) Validate(p *plan.Plan) error {
	namespaces := make(map[string]string)

	for _, r := range p.All() {
		ns := cppNamespacePath(r.Path)
		if prev, ok := namespaces[ns]; ok {
			return diagnostic.New(diagnostic.ErrNameCollision,
				"records %s and %s both map to namespace config::%s", prev, r.QualifiedName(), ns).
				At(r.Name, r.Line)
		}

		namespaces[ns] = r.QualifiedName()
	}

	return nil
}

func writeCppNamespace(sb *strings.Builder, r *plan.Record) {
	ns := strings.ToLower(r.Name)
	typ := naming.Capitalize(r.Name)

	fmt.Fprintf(sb, "namespace %s {\n", ns)

	for _, c := range r.Children() {
		writeCppNamespace(sb, c)
	}

	fmt.Fprintf(sb, "struct %s {\n", typ)

	for _, f := range r.Fields {
		switch f.Ref.Kind {
		case plan.RefPrimitive:
			fmt.Fprintf(sb, "%s%s %s;\n", cppIndent, cppTypes[f.Ref.Primitive], f.Name)
		case plan.RefStruct:
			fmt.Fprintf(sb, "%s%s %s;\n", cppIndent, cppQualified(f.Ref.Record), f.Name)
		case plan.RefList:
			fmt.Fprintf(sb, "%sstd::vector<%s> %s;\n", cppIndent, cppQualified(f.Ref.Record), f.Name)
		}
	}

	fmt.Fprintf(sb, "\n%sstatic %s read_config(const YAML::Node& node);\n", cppIndent, typ)
	fmt.Fprintf(sb, "%sstatic const char* node_name() { return %q; }\n", cppIndent, r.Name)
	sb.WriteString("};\n\n")
	fmt.Fprintf(sb, "} // namespace %s\n\n", ns)
}

// writeCppSource writes the read_config definitions of r's nested records
// followed by r's own.
func writeCppSource(sb *strings.Builder, r *plan.Record, parent string) {
	current := strings.ToLower(r.Name)
	if parent != "" {
		current = parent + "::" + current
	}

	for _, c := range r.Children() {
		writeCppSource(sb, c, current)
	}

	typ := naming.Capitalize(r.Name)

	fmt.Fprintf(sb, "%s::%s %s::%s::read_config(const YAML::Node& node) {\n", current, typ, current, typ)
	fmt.Fprintf(sb, "%s%s config;\n", cppIndent, typ)

	for _, f := range r.Fields {
		switch f.Ref.Kind {
		case plan.RefPrimitive:
			fmt.Fprintf(sb, "%sconfig.%s = node[%q].as<%s>();\n", cppIndent, f.Name, f.Name, cppTypes[f.Ref.Primitive])
		case plan.RefStruct:
			fmt.Fprintf(sb, "%sconfig.%s = %s::%s::read_config(node[%q]);\n",
				cppIndent, f.Name, current, cppQualified(f.Ref.Record), f.Name)
		case plan.RefList:
			fmt.Fprintf(sb, "%sfor (const auto& item : node[%q]) {\n", cppIndent, f.Name)
			fmt.Fprintf(sb, "%s%sconfig.%s.push_back(%s::%s::read_config(item));\n",
				cppIndent, cppIndent, f.Name, current, cppQualified(f.Ref.Record))
			fmt.Fprintf(sb, "%s}\n", cppIndent)
		}
	}

	fmt.Fprintf(sb, "%sreturn config;\n", cppIndent)
	sb.WriteString("}\n\n")
}

// cppQualified names a record relative to its parent namespace, e.g.
// "size::Size".
func cppQualified(r *plan.Record) string {
	return strings.ToLower(r.Name) + "::" + naming.Capitalize(r.Name)
}

func cppNamespacePath(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strings.ToLower(p)
	}

	return strings.Join(parts, "::")
}
