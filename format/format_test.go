package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/src2abs/abstraction"
	"github.com/dhamidi/src2abs/java/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult(t *testing.T) *abstraction.Result {
	t.Helper()
	tokens, err := lexer.Tokenize([]byte("int count = size(items);"), "Sample.java")
	require.NoError(t, err)
	decls := abstraction.Declarations{Methods: abstraction.NewSet("size")}
	return abstraction.New(decls, nil).Run(tokens)
}

func TestTextEncoder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewTextEncoder(&buf).Encode(sampleResult(t)))

	assert.Equal(t,
		"int VAR_1 = METHOD_1 ( VAR_2 ) ;\n\n"+
			"METHOD_1 = size\n"+
			"VAR_1 = count\n"+
			"VAR_2 = items\n",
		buf.String())
}

func TestTextEncoder_EmptyMapping(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Tokenize([]byte("return ;"), "Empty.java")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTextEncoder(&buf).Encode(abstraction.New(abstraction.Declarations{}, nil).Run(tokens)))
	assert.Equal(t, "return ;\n", buf.String())
}

func TestLineEncoder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(sampleResult(t)))

	assert.Equal(t,
		"1:5\tcount\tVAR_1\n"+
			"1:13\tsize\tMETHOD_1\n"+
			"1:18\titems\tVAR_2\n",
		buf.String())
}

func TestJSONEncoder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).WithUnits().Encode(sampleResult(t)))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "int VAR_1 = METHOD_1 ( VAR_2 ) ;", doc.Text)
	require.Len(t, doc.Mapping, 3)
	assert.Equal(t, documentEntry{Original: "size", Placeholder: "METHOD_1", Category: "method"}, doc.Mapping[0])
	require.Len(t, doc.Units, 3)
	assert.Equal(t, 13, doc.Units[1].Column)
}

func TestYAMLEncoder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder(&buf).Encode(sampleResult(t)))

	var doc document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "int VAR_1 = METHOD_1 ( VAR_2 ) ;", doc.Text)
	assert.Len(t, doc.Mapping, 3)
	assert.Empty(t, doc.Units)
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			enc, err := New(name, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, enc)
		})
	}

	_, err := New("xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Equal(t, []string{"json", "line", "text", "yaml"}, Names())
}
