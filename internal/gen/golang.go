package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"strconv"
	"strings"
	"text/template"

	"config-generator/internal/annotation"
	"config-generator/internal/common"
	"config-generator/internal/diagnostic"
	"config-generator/internal/naming"
	"config-generator/internal/plan"
)

const goTargetName = "go"

// goTypes maps primitive kinds to Go types and confnode accessors.
var goTypes = map[annotation.Kind]struct {
	typ      string
	accessor string
}{
	annotation.KindInt:    {"int", "Int"},
	annotation.KindString: {"string", "Text"},
	annotation.KindDouble: {"float64", "Float64"},
	annotation.KindFloat:  {"float32", "Float32"},
	annotation.KindBool:   {"bool", "Bool"},
}

// goTarget emits a Go struct per record and a Read function that fills it
// from a confnode.Node.
type goTarget struct {
	config GeneratorConfig
}

func newGoTarget(config GeneratorConfig) Target {
	return &goTarget{config: config}
}

func (t *goTarget) Name() string {
	return goTargetName
}

// goFileData holds everything the Go templates need for one unit.
// AliasImport is set when Runtime differs from the last import path element
// and the import needs an explicit name.
type goFileData struct {
	PackageName   string
	RuntimeImport string
	Runtime       string
	AliasImport   bool
	Root          string
	Comments      bool
	Records       []goRecord
}

type goRecord struct {
	Type      string
	Name      string
	Qualified string
	Fields    []goField
}

// goField is one struct member. Key is the quoted schema key. Reader is the
// expression that yields the value and an error; for lists it is the element
// Read function.
type goField struct {
	Name    string
	Key     string
	Type    string
	Tag     string
	List    bool
	Reader  string
	ListVar string
}

// Emit renders <stem>.gen.go and <stem>_read.gen.go.
func (t *goTarget) Emit(rec *plan.Record) (*EmissionUnit, error) {
	records := declarationOrder(rec)

	data := &goFileData{
		PackageName:   t.config.PackageName,
		RuntimeImport: t.config.RuntimeImport,
		Runtime:       common.PkgAlias(t.config.RuntimeImport),
		AliasImport:   common.PkgAlias(t.config.RuntimeImport) != path.Base(t.config.RuntimeImport),
		Root:          rec.Name,
		Comments:      t.config.GenerateComments,
	}

	for _, r := range records {
		data.Records = append(data.Records, t.buildRecord(r))
	}

	stem := naming.SnakeCase(rec.Name)

	decl, err := t.render(goDeclTemplate, stem+".gen.go", data)
	if err != nil {
		return nil, err
	}

	impl, err := t.render(goReadTemplate, stem+"_read.gen.go", data)
	if err != nil {
		return nil, err
	}

	return &EmissionUnit{
		Record:         rec.Name,
		Stem:           stem,
		Declaration:    *decl,
		Implementation: *impl,
	}, nil
}

// Validate rejects plans whose records or fields map to the same Go
// identifier.
func (t *goTarget) Validate(p *plan.Plan) error {
	idents := make(map[string]string)

	for _, r := range p.All() {
		typ := goTypeName(r)

		for _, ident := range []string{typ, typ + "NodeName", "Read" + typ} {
			if prev, ok := idents[ident]; ok {
				return diagnostic.New(diagnostic.ErrNameCollision,
					"records %s and %s both declare Go identifier %s", prev, r.QualifiedName(), ident).
					At(r.Name, r.Line)
			}

			idents[ident] = r.QualifiedName()
		}

		members := make(map[string]string)

		for _, f := range r.Fields {
			name := naming.Pascal(f.Name)
			if prev, ok := members[name]; ok {
				return diagnostic.New(diagnostic.ErrNameCollision,
					"fields %q and %q both map to Go field %s", prev, f.Name, name).
					At(f.Name, f.Line).In(r.QualifiedName())
			}

			members[name] = f.Name
		}
	}

	return nil
}

func (t *goTarget) buildRecord(r *plan.Record) goRecord {
	out := goRecord{
		Type:      goTypeName(r),
		Name:      r.Name,
		Qualified: r.QualifiedName(),
	}

	locals := newStem("list", map[string]struct{}{"n": {}, "out": {}, "err": {}, "i": {}, "item": {}})

	for _, f := range r.Fields {
		key := strconv.Quote(f.Name)
		field := goField{
			Name: naming.Pascal(f.Name),
			Key:  key,
			Tag:  goTag(f.Name),
		}

		switch f.Ref.Kind {
		case plan.RefPrimitive:
			prim := goTypes[f.Ref.Primitive]
			field.Type = prim.typ
			field.Reader = fmt.Sprintf("n.Get(%s).%s()", key, prim.accessor)
		case plan.RefStruct:
			field.Type = goTypeName(f.Ref.Record)
			field.Reader = fmt.Sprintf("Read%s(n.Get(%s))", field.Type, key)
		case plan.RefList:
			elem := goTypeName(f.Ref.Record)
			field.Type = "[]" + elem
			field.List = true
			field.Reader = "Read" + elem
			field.ListVar = locals.Next()
		}

		out.Fields = append(out.Fields, field)
	}

	return out
}

func (t *goTarget) render(tmpl *template.Template, filename string, data *goFileData) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if t.config.DebugFs != nil {
			_ = writeDebugUnformatted(t.config.DebugFs, t.config.OutputDir, filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}

	return &GeneratedFile{Filename: filename, Content: formatted}, nil
}

// declarationOrder lists rec and its nested records so that every record
// follows the records its fields refer to.
func declarationOrder(rec *plan.Record) []*plan.Record {
	var records []*plan.Record

	_ = rec.Walk(func(r *plan.Record) error {
		records = append(records, r)
		return nil
	})

	return records
}

// goTypeName joins the PascalCase record path, e.g. Window.size -> WindowSize.
func goTypeName(r *plan.Record) string {
	var sb strings.Builder
	for _, seg := range r.Path {
		sb.WriteString(naming.Pascal(seg))
	}

	return sb.String()
}

// goTag renders the struct tag literal for a schema key.
func goTag(key string) string {
	tag := fmt.Sprintf("yaml:%s json:%s", strconv.Quote(key), strconv.Quote(key))
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}

	return "`" + tag + "`"
}

var goDeclTemplate = template.Must(template.New("decl").Parse(`// Code generated by config-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Comments}}// Schema keys of the {{.Root}} records.
{{end}}const (
{{range .Records}}	{{.Type}}NodeName = {{printf "%q" .Name}}
{{end}})
{{range .Records}}
{{if $.Comments}}// {{.Type}} holds the values of {{.Qualified}}.
{{end}}type {{.Type}} struct {
{{range .Fields}}	{{.Name}} {{.Type}} {{.Tag}}
{{end}}}
{{end}}`))

var goReadTemplate = template.Must(template.New("read").Parse(`// Code generated by config-generator. DO NOT EDIT.

package {{.PackageName}}

import {{if .AliasImport}}{{.Runtime}} {{end}}"{{.RuntimeImport}}"
{{range .Records}}
{{if $.Comments}}// Read{{.Type}} reads {{.Type}} from n.
{{end}}func Read{{.Type}}(n {{$.Runtime}}.Node) ({{.Type}}, error) {
{{- if .Fields}}
	var (
		out {{.Type}}
		err error
	)
{{range .Fields}}
{{if .List}}	{{.ListVar}}, err := n.Get({{.Key}}).Items()
	if err != nil {
		return out, err
	}

	out.{{.Name}} = make({{.Type}}, len({{.ListVar}}))
	for i, item := range {{.ListVar}} {
		if out.{{.Name}}[i], err = {{.Reader}}(item); err != nil {
			return out, err
		}
	}
{{else}}	if out.{{.Name}}, err = {{.Reader}}; err != nil {
		return out, err
	}
{{end}}{{end}}
	return out, nil
{{- else}}
	return {{.Type}}{}, nil
{{- end}}
}
{{end}}`))
