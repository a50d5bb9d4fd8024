package gen

import (
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"config-generator/internal/diagnostic"
	"config-generator/internal/plan"
	"config-generator/internal/schema"
)

const windowSchema = `Window:
  title: "main" # {type: string}
  size: # {type: struct}
    width: 800 # {type: int}
    height: 600 # {type: int}
  items: # {type: vector} {name:item}
    - id: 1 # {type: int}
      pos: # {type: struct}
        x: 0.5 # {type: float}
  scale: 1.5 # {type: double}
  vsync: true # {type: bool}
RenderConfig:
  max_fps: 60 # {type: int}
`

func buildPlan(t *testing.T, src string) *plan.Plan {
	t.Helper()

	doc, err := schema.Parse("config.yaml", []byte(src))
	require.NoError(t, err)

	p, err := plan.Build(doc, plan.DefaultConfig())
	require.NoError(t, err)

	return p
}

func generate(t *testing.T, src string, config GeneratorConfig) []EmissionUnit {
	t.Helper()

	units, err := NewGenerator(config).Generate(buildPlan(t, src))
	require.NoError(t, err)

	return units
}

// parseGo parses generated source and returns the declared type and func
// names in order.
func parseGo(t *testing.T, f GeneratedFile) (*ast.File, []string) {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), f.Filename, f.Content, parser.ParseComments)
	require.NoError(t, err, string(f.Content))

	var decls []string

	for _, d := range file.Decls {
		switch d := d.(type) {
		case *ast.FuncDecl:
			decls = append(decls, d.Name.Name)
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}

			for _, s := range d.Specs {
				decls = append(decls, s.(*ast.TypeSpec).Name.Name)
			}
		}
	}

	return file, decls
}

func structFields(t *testing.T, file *ast.File, name string) map[string]string {
	t.Helper()

	out := make(map[string]string)

	ast.Inspect(file, func(n ast.Node) bool {
		ts, ok := n.(*ast.TypeSpec)
		if !ok || ts.Name.Name != name {
			return true
		}

		for _, f := range ts.Type.(*ast.StructType).Fields.List {
			out[f.Names[0].Name] = types(f.Type) + " " + f.Tag.Value
		}

		return false
	})

	return out
}

func types(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.ArrayType:
		return "[]" + types(e.Elt)
	default:
		return "?"
	}
}

func TestGenerate_GoUnits(t *testing.T) {
	units := generate(t, windowSchema, DefaultGeneratorConfig())
	require.Len(t, units, 2)

	assert.Equal(t, "Window", units[0].Record)
	assert.Equal(t, "window", units[0].Stem)
	assert.Equal(t, "window.gen.go", units[0].Declaration.Filename)
	assert.Equal(t, "window_read.gen.go", units[0].Implementation.Filename)

	assert.Equal(t, "render_config", units[1].Stem)
	assert.Equal(t, "render_config.gen.go", units[1].Declaration.Filename)

	for _, f := range Files(units) {
		assert.True(t, strings.HasPrefix(string(f.Content), "// Code generated by config-generator. DO NOT EDIT."), f.Filename)
	}
}

func TestGenerate_GoDeclarationBeforeUse(t *testing.T) {
	units := generate(t, windowSchema, DefaultGeneratorConfig())

	_, decls := parseGo(t, units[0].Declaration)
	assert.Equal(t, []string{"WindowSize", "WindowItemPos", "WindowItem", "Window"}, decls)

	_, funcs := parseGo(t, units[0].Implementation)
	assert.Equal(t, []string{"ReadWindowSize", "ReadWindowItemPos", "ReadWindowItem", "ReadWindow"}, funcs)
}

func TestGenerate_GoFields(t *testing.T) {
	units := generate(t, windowSchema, DefaultGeneratorConfig())

	file, _ := parseGo(t, units[0].Declaration)

	assert.Equal(t, map[string]string{
		"Title": "string `yaml:\"title\" json:\"title\"`",
		"Size":  "WindowSize `yaml:\"size\" json:\"size\"`",
		"Items": "[]WindowItem `yaml:\"items\" json:\"items\"`",
		"Scale": "float64 `yaml:\"scale\" json:\"scale\"`",
		"Vsync": "bool `yaml:\"vsync\" json:\"vsync\"`",
	}, structFields(t, file, "Window"))

	assert.Equal(t, map[string]string{
		"X": "float32 `yaml:\"x\" json:\"x\"`",
	}, structFields(t, file, "WindowItemPos"))

	// Field order follows the schema.
	src := string(units[0].Declaration.Content)
	assert.Less(t, strings.Index(src, "\tTitle "), strings.Index(src, "\tSize "))
	assert.Less(t, strings.Index(src, "\tSize "), strings.Index(src, "\tItems "))
	assert.Less(t, strings.Index(src, "\tScale "), strings.Index(src, "\tVsync "))

	cfg, _ := parseGo(t, units[1].Declaration)
	assert.Equal(t, map[string]string{
		"MaxFps": "int `yaml:\"max_fps\" json:\"max_fps\"`",
	}, structFields(t, cfg, "RenderConfig"))
}

func TestGenerate_GoReaders(t *testing.T) {
	units := generate(t, windowSchema, DefaultGeneratorConfig())
	src := string(units[0].Implementation.Content)

	assert.Contains(t, src, "import \"config-generator/confnode\"")
	assert.Contains(t, src, "func ReadWindow(n confnode.Node) (Window, error) {")
	assert.Contains(t, src, "if out.Title, err = n.Get(\"title\").Text(); err != nil {")
	assert.Contains(t, src, "if out.Size, err = ReadWindowSize(n.Get(\"size\")); err != nil {")
	assert.Contains(t, src, "list1, err := n.Get(\"items\").Items()")
	assert.Contains(t, src, "out.Items = make([]WindowItem, len(list1))")
	assert.Contains(t, src, "if out.Items[i], err = ReadWindowItem(item); err != nil {")
	assert.Contains(t, src, "if out.X, err = n.Get(\"x\").Float32(); err != nil {")

	decl := string(units[0].Declaration.Content)
	assert.Contains(t, decl, "WindowItemNodeName")
	assert.Contains(t, decl, "= \"Item\"")
	assert.Contains(t, decl, "= \"Window\"")
}

func TestGenerate_Idempotent(t *testing.T) {
	for _, lang := range Targets() {
		t.Run(lang, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			cfg.Lang = lang

			a := generate(t, windowSchema, cfg)
			b := generate(t, windowSchema, cfg)
			assert.Equal(t, a, b)
		})
	}
}

func TestGenerate_EmptyRecord(t *testing.T) {
	units := generate(t, "Empty: {}\n", DefaultGeneratorConfig())
	require.Len(t, units, 1)

	_, decls := parseGo(t, units[0].Implementation)
	assert.Equal(t, []string{"ReadEmpty"}, decls)
	assert.Contains(t, string(units[0].Implementation.Content), "return Empty{}, nil")
}

func TestGenerate_CustomPackageAndRuntime(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.PackageName = "settings"
	cfg.RuntimeImport = "example.com/app/pkg/node"
	cfg.GenerateComments = false

	units := generate(t, "A:\n  n: 1 # {type: int}\n", cfg)

	file, _ := parseGo(t, units[0].Implementation)
	assert.Equal(t, "settings", file.Name.Name)
	assert.Contains(t, string(units[0].Implementation.Content), "func ReadA(n node.Node) (A, error)")
	assert.NotContains(t, string(units[0].Declaration.Content), "// A holds")

	cfg.RuntimeImport = "example.com/app/node/v2"
	units = generate(t, "A:\n  n: 1 # {type: int}\n", cfg)

	file, _ = parseGo(t, units[0].Implementation)
	require.Len(t, file.Imports, 1)
	assert.Equal(t, "node", file.Imports[0].Name.Name)
	assert.Contains(t, string(units[0].Implementation.Content), "func ReadA(n node.Node) (A, error)")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		lang string
		rule error
	}{
		{
			name: "go type name collision",
			src:  "Window:\n  size: # {type: struct}\n    w: 1 # {type: int}\nWindowSize:\n  h: 1 # {type: int}\n",
			lang: "go",
			rule: diagnostic.ErrNameCollision,
		},
		{
			name: "go field name collision",
			src:  "A:\n  max_fps: 1 # {type: int}\n  maxFps: 2 # {type: int}\n",
			lang: "go",
			rule: diagnostic.ErrNameCollision,
		},
		{
			name: "go file name collision",
			src:  "X:\n  a: 1 # {type: int}\nXRead:\n  b: 1 # {type: int}\n",
			lang: "go",
			rule: diagnostic.ErrNameCollision,
		},
		{
			name: "cpp namespace collision",
			src:  "A:\n  Size: # {type: struct}\n    w: 1 # {type: int}\n  size: # {type: struct}\n    h: 1 # {type: int}\n",
			lang: "cpp",
			rule: diagnostic.ErrNameCollision,
		},
		{
			name: "unknown target",
			src:  "A:\n  n: 1 # {type: int}\n",
			lang: "rust",
			rule: diagnostic.ErrUnknownTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			cfg.Lang = tt.lang

			units, err := NewGenerator(cfg).Generate(buildPlan(t, tt.src))
			require.Error(t, err, spew.Sdump(units))
			assert.ErrorIs(t, err, tt.rule)
			assert.Nil(t, units)
		})
	}
}

func TestGoTag(t *testing.T) {
	assert.Equal(t, "`yaml:\"a\" json:\"a\"`", goTag("a"))
	assert.Equal(t, "\"yaml:\\\"a`b\\\" json:\\\"a`b\\\"\"", goTag("a`b"))
}

func TestGoTargetSourceIsFormatted(t *testing.T) {
	src, err := os.ReadFile("golang.go")
	require.NoError(t, err)

	formatted, err := format.Source(src)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(src))
}
