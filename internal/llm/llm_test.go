package llm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

func mustSchema(t *testing.T, pairs ...string) *schema.Schema {
	t.Helper()
	var fields []schema.Field
	for i := 0; i+1 < len(pairs); i += 2 {
		fields = append(fields, schema.Field{Name: pairs[i], Description: pairs[i+1]})
	}
	s, err := schema.New(fields)
	require.NoError(t, err)
	return s
}

func TestBuildUserPrompt(t *testing.T) {
	s := mustSchema(t, "nome", "Nome do profissional", "cpf", "CPF number")
	p := BuildUserPrompt(ResolveRequest{
		Label:  "carteira_oab",
		Text:   "Nome: JOANA D'ARC",
		Fields: s,
	})

	assert.Contains(t, p, "SCHEMA (field_name: description):")
	assert.Contains(t, p, `"nome": "Nome do profissional"`)
	assert.Contains(t, p, "DOCUMENT TEXT:\n---\nNome: JOANA D'ARC\n---")
	assert.Contains(t, p, "use null as the value")

	// Schema keys appear in declaration order.
	assert.Less(t, strings.Index(p, `"nome"`), strings.Index(p, `"cpf"`))
}

func TestBuildFieldsJSONSchema(t *testing.T) {
	s := mustSchema(t, "nome", "the name", "cpf", "the CPF")
	m := BuildFieldsJSONSchema(s)

	assert.Equal(t, "object", m["type"])
	assert.Equal(t, false, m["additionalProperties"])
	assert.ElementsMatch(t, []string{"nome", "cpf"}, m["required"])

	props := m["properties"].(map[string]any)
	nome := props["nome"].(map[string]any)
	assert.Equal(t, []string{"string", "null"}, nome["type"])
	assert.Equal(t, "the name", nome["description"])
}

func TestValidateAnswer(t *testing.T) {
	s := mustSchema(t, "nome", "the name", "cpf", "the CPF")
	responseSchema := BuildFieldsJSONSchema(s)

	t.Run("accepts strings and nulls", func(t *testing.T) {
		err := ValidateAnswer(responseSchema, []byte(`{"nome":"JOANA","cpf":null}`))
		assert.NoError(t, err)
	})

	t.Run("rejects missing required field", func(t *testing.T) {
		err := ValidateAnswer(responseSchema, []byte(`{"nome":"JOANA"}`))
		assert.Error(t, err)
	})

	t.Run("rejects extra field", func(t *testing.T) {
		err := ValidateAnswer(responseSchema, []byte(`{"nome":"J","cpf":null,"extra":"x"}`))
		assert.Error(t, err)
	})

	t.Run("rejects non-string scalar", func(t *testing.T) {
		err := ValidateAnswer(responseSchema, []byte(`{"nome":"J","cpf":42}`))
		assert.Error(t, err)
	})

	t.Run("rejects non-json content", func(t *testing.T) {
		err := ValidateAnswer(responseSchema, []byte(`I could not find anything.`))
		assert.Error(t, err)
	})
}

func TestSanitizeFields(t *testing.T) {
	s := mustSchema(t, "nome", "the name", "valor", "a number", "ativo", "a flag")

	t.Run("repairs a sloppy answer", func(t *testing.T) {
		in := []byte(`{"nome":"JOANA","valor":12.5,"ativo":true,"extra":"drop me"}`)
		out, touched, err := SanitizeFields(s, in)
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(out, &m))
		assert.Equal(t, "JOANA", m["nome"])
		assert.Equal(t, "12.5", m["valor"])
		assert.Equal(t, "true", m["ativo"])
		_, hasExtra := m["extra"]
		assert.False(t, hasExtra)
		assert.ElementsMatch(t, []string{"extra", "valor", "ativo"}, touched)
	})

	t.Run("missing fields become explicit nulls", func(t *testing.T) {
		out, touched, err := SanitizeFields(s, []byte(`{"nome":"JOANA"}`))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(out, &m))
		require.Contains(t, m, "valor")
		assert.Nil(t, m["valor"])
		assert.Nil(t, m["ativo"])
		assert.ElementsMatch(t, []string{"valor", "ativo"}, touched)
	})

	t.Run("arrays and objects become nulls", func(t *testing.T) {
		out, _, err := SanitizeFields(s, []byte(`{"nome":["a","b"],"valor":null,"ativo":{"x":1}}`))
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(out, &m))
		assert.Nil(t, m["nome"])
		assert.Nil(t, m["ativo"])
	})

	t.Run("sanitized answer passes validation", func(t *testing.T) {
		in := []byte(`{"nome":"JOANA","valor":7,"extra":1}`)
		out, _, err := SanitizeFields(s, in)
		require.NoError(t, err)
		assert.NoError(t, ValidateAnswer(BuildFieldsJSONSchema(s), out))
	})

	t.Run("unparseable answer fails", func(t *testing.T) {
		_, _, err := SanitizeFields(s, []byte(`not json at all`))
		assert.Error(t, err)
	})
}
