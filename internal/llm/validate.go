package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateAnswer checks a model answer against the response schema built by
// BuildFieldsJSONSchema: every requested field present, values string or
// null, nothing extra.
func ValidateAnswer(responseSchema map[string]any, answer []byte) error {
	raw, err := json.Marshal(responseSchema)
	if err != nil {
		return fmt.Errorf("encode response schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("response.json", bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("register response schema: %w", err)
	}
	compiled, err := compiler.Compile("response.json")
	if err != nil {
		return fmt.Errorf("compile response schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(answer, &doc); err != nil {
		return fmt.Errorf("model answer is not json: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("model answer violates response schema: %w", err)
	}
	return nil
}
