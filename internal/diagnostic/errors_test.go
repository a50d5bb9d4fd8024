package diagnostic

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsRule(t *testing.T) {
	err := New(ErrMissingTypeAnnotation, "no {type: ...} marker").At("width", 4).In("Window.size")

	assert.ErrorIs(t, err, ErrMissingTypeAnnotation)
	assert.NotErrorIs(t, err, ErrUnsupportedType)
	assert.Equal(t, "missing_type_annotation", err.Code)
	assert.Equal(t,
		"Window.size.width (line 4): missing type annotation: no {type: ...} marker",
		err.Error())
}

func TestError_WrapKeepsCause(t *testing.T) {
	err := Wrap(ErrSchemaLoad, fs.ErrNotExist, "reading %s", "config.yaml")

	assert.ErrorIs(t, err, ErrSchemaLoad)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "reading config.yaml")
}

func TestError_Suggestions(t *testing.T) {
	err := New(ErrUnsupportedType, "unknown type keyword %q", "strng").Suggest("string")

	assert.Equal(t, `unsupported type: unknown type keyword "strng" (did you mean "string"?)`, err.Error())
}

func TestError_InKeepsInnermostRecord(t *testing.T) {
	err := New(ErrEmptyListSchema, "empty").In("Window.Item").In("Window")
	assert.Equal(t, "Window.Item", err.Record)
}

func TestAsError(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), New(ErrNameCollision, "dup"))

	e, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "name_collision", e.Code)

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	d.AddWarning("ambiguous_annotation", "also annotated as string", "Window", "title", 7)
	d.AddInfo("ambiguous_annotation", "shared name", "", "size", 0)

	require.Len(t, d.Warnings, 1)
	assert.Equal(t,
		"Window.title (line 7): [ambiguous_annotation] also annotated as string",
		d.Warnings[0].String())
	assert.Equal(t, "size: [ambiguous_annotation] shared name", d.Infos[0].String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "info", d.Infos[0].Severity.String())
}
