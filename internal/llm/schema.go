package llm

import "github.com/joseph-ayodele/pdf-extract/internal/schema"

// BuildFieldsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map constraining the model's answer: every requested field must be
// present, as a string value or an explicit null, and nothing else.
func BuildFieldsJSONSchema(s *schema.Schema) map[string]any {
	props := make(map[string]any, s.Len())
	required := make([]string, 0, s.Len())
	for _, f := range s.Fields() {
		props[f.Name] = map[string]any{
			"type":        []string{"string", "null"},
			"description": f.Description,
		}
		required = append(required, f.Name)
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}
