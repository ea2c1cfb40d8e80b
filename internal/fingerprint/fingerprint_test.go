package fingerprint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

func mustSchema(t *testing.T, fields ...schema.Field) *schema.Schema {
	t.Helper()
	s, err := schema.New(fields)
	require.NoError(t, err)
	return s
}

func TestDocument(t *testing.T) {
	a := Document([]byte("hello"))
	b := Document([]byte("hello"))
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	// A single flipped byte must change the digest.
	assert.NotEqual(t, a, Document([]byte("hellp")))
}

func TestSchemaDigest(t *testing.T) {
	s1 := mustSchema(t,
		schema.Field{Name: "b", Description: "bee"},
		schema.Field{Name: "a", Description: "ay"},
	)
	s2 := mustSchema(t,
		schema.Field{Name: "a", Description: "ay"},
		schema.Field{Name: "b", Description: "bee"},
	)
	// Field order is not identity.
	assert.Equal(t, Schema(s1), Schema(s2))

	s3 := mustSchema(t,
		schema.Field{Name: "a", Description: "ay"},
		schema.Field{Name: "b", Description: "tweaked"},
	)
	// A description edit is.
	assert.NotEqual(t, Schema(s1), Schema(s3))
}

func TestKey(t *testing.T) {
	s := mustSchema(t, schema.Field{Name: "nome", Description: "name"})
	doc := []byte("%PDF-1.4 fake")

	key := Key(doc, s)
	parts := strings.Split(key, ":")
	require.Len(t, parts, 2)
	assert.Equal(t, Document(doc), parts[0])
	assert.Equal(t, Schema(s), parts[1])

	// Same inputs, same key.
	assert.Equal(t, key, Key(doc, s))

	assert.NotEqual(t, key, Key([]byte("other bytes"), s))
	s2 := mustSchema(t, schema.Field{Name: "nome", Description: "the full name"})
	assert.NotEqual(t, key, Key(doc, s2))
}
