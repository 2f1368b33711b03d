package abstraction

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Placeholder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		want     string
	}{
		{Type, "TYPE_1"},
		{Method, "METHOD_1"},
		{Variable, "VAR_1"},
		{Annotation, "ANNOTATION_1"},
		{Char, "CHAR_1"},
		{Float, "FLOAT_1"},
		{Int, "INT_1"},
		{String, "STRING_1"},
	}
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Placeholder(1))
		})
	}
	assert.Equal(t, "unknown", Category(42).String())
}

func TestCategoryMap_FirstSeenWins(t *testing.T) {
	t.Parallel()

	m := newCategoryMap(Variable)
	assert.Equal(t, "VAR_1", m.id("a"))
	assert.Equal(t, "VAR_2", m.id("b"))
	assert.Equal(t, "VAR_1", m.id("a"))
	assert.Len(t, m.entries(), 2)
}

func TestExport_Order(t *testing.T) {
	t.Parallel()

	m := Export([][]Entry{
		{{Original: "T", Placeholder: "TYPE_1", Category: Type}},
		{{Original: "run", Placeholder: "METHOD_1", Category: Method}},
		{
			{Original: "x", Placeholder: "VAR_1", Category: Variable},
			{Original: "T", Placeholder: "VAR_2", Category: Variable},
		},
	})

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"T", "run", "x"}, m.Keys())
	assert.Equal(t, []string{"VAR_2", "METHOD_1", "VAR_1"}, m.Values())

	placeholder, ok := m.Lookup("T")
	require.True(t, ok)
	assert.Equal(t, "VAR_2", placeholder)
}

func TestMapping_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var m *Mapping
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())
	_, ok := m.Lookup("x")
	assert.False(t, ok)
}

func TestMapping_WriteSidecar(t *testing.T) {
	t.Parallel()

	res := New(helloDecls(), nil).Run(tokenize(t, helloMethod))

	var buf bytes.Buffer
	require.NoError(t, res.Mapping.WriteSidecar(&buf))
	assert.Equal(t,
		"String,main,println,args,System,out,\"Hello World!\"\n"+
			"TYPE_1,METHOD_1,METHOD_2,VAR_1,VAR_2,VAR_3,STRING_1\n",
		buf.String())
}

func TestSet(t *testing.T) {
	t.Parallel()

	var empty Set
	assert.False(t, empty.Has("x"))

	s := NewSet("b", "a")
	s.Add("c")
	assert.True(t, s.Has("c"))
	assert.Equal(t, []string{"a", "b", "c"}, s.Sorted())
}
