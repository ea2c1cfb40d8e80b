// Package schema models the caller-defined extraction schema: an ordered
// mapping from field name to a human-readable description. The description is
// advisory text for the fallback tier only; the rule engine never reads it
// beyond keyword checks.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/joseph-ayodele/pdf-extract/internal/common"
)

// Field is one (name, description) pair.
type Field struct {
	Name        string
	Description string
}

// Schema is an immutable, ordered set of fields with unique names.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a schema from ordered fields. It rejects empty schemas,
// duplicate names, and blank field names.
func New(fields []Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, common.WrapError(common.ErrSchemaInvalid, "schema has no fields")
	}
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, common.WrapError(common.ErrSchemaInvalid, "schema field name is empty")
		}
		if _, dup := idx[f.Name]; dup {
			return nil, fmt.Errorf("duplicate schema field %q: %w", f.Name, common.ErrSchemaInvalid)
		}
		idx[f.Name] = i
	}
	return &Schema{fields: append([]Field(nil), fields...), index: idx}, nil
}

// ParseJSON decodes a JSON object of field→description, preserving the
// declaration order of the object keys. Non-string descriptions are invalid.
func ParseJSON(data []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse schema json: %v: %w", err, common.ErrSchemaInvalid)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, common.WrapError(common.ErrSchemaInvalid, "schema must be a JSON object")
	}

	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse schema json: %v: %w", err, common.ErrSchemaInvalid)
		}
		name := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse schema json: %v: %w", err, common.ErrSchemaInvalid)
		}
		desc, ok := valTok.(string)
		if !ok {
			return nil, fmt.Errorf("description of field %q is not a string: %w", name, common.ErrSchemaInvalid)
		}
		fields = append(fields, Field{Name: name, Description: desc})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse schema json: %v: %w", err, common.ErrSchemaInvalid)
	}
	return New(fields)
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field { return s.fields }

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Description returns the description of a field, and whether it exists.
func (s *Schema) Description(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.fields[i].Description, true
}

// Has reports whether the schema defines a field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Subset returns a new schema covering only the given names, in this schema's
// declaration order. Unknown names are ignored.
func (s *Schema) Subset(names []string) (*Schema, error) {
	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	var fields []Field
	for _, f := range s.fields {
		if _, ok := keep[f.Name]; ok {
			fields = append(fields, f)
		}
	}
	return New(fields)
}

// Canonical returns a serialization independent of declaration order:
// a JSON object with keys sorted. Two schemas with identical field and
// description pairs always canonicalize identically.
func (s *Schema) Canonical() []byte {
	m := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		m[f.Name] = f.Description
	}
	// encoding/json sorts map keys.
	b, _ := json.Marshal(m)
	return b
}

// MarshalJSON preserves declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
