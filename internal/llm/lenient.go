package llm

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

// SanitizeFields repairs a model answer that does not meet the strict schema,
// without inventing values: unknown keys are dropped, missing requested
// fields become explicit nulls, and non-string scalars are stringified.
// Returns the cleaned document plus the names that were dropped or changed.
func SanitizeFields(s *schema.Schema, doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	var touched []string

	for k := range m {
		if !s.Has(k) {
			delete(m, k)
			touched = append(touched, k)
		}
	}

	for _, name := range s.Names() {
		v, ok := m[name]
		if !ok {
			m[name] = nil
			touched = append(touched, name)
			continue
		}
		switch t := v.(type) {
		case nil, string:
			// already conformant
		case float64:
			m[name] = strconv.FormatFloat(t, 'f', -1, 64)
			touched = append(touched, name)
		case bool:
			m[name] = fmt.Sprintf("%t", t)
			touched = append(touched, name)
		default:
			// arrays/objects carry no single value; treat as absent
			m[name] = nil
			touched = append(touched, name)
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	return b, touched, nil
}
