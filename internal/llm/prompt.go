package llm

import (
	"encoding/json"
	"strings"
)

// BuildSystemPrompt composes the system message: strict JSON output, extract
// only what is clearly present.
func BuildSystemPrompt() string {
	return "You are a professional data extraction assistant. " +
		"Your task is to extract structured information from documents and return it in JSON format. " +
		"Always respond with valid JSON. " +
		"Be precise and only extract information that is clearly present in the text."
}

// BuildUserPrompt packages the schema subset and the document text with clear
// delimiters. Descriptions are advisory context for the model only.
func BuildUserPrompt(req ResolveRequest) string {
	schemaJSON, _ := json.MarshalIndent(req.Fields, "", "  ")

	var b strings.Builder
	b.WriteString("Extract the following fields from the document text below.\n\n")
	b.WriteString("SCHEMA (field_name: description):\n")
	b.Write(schemaJSON)
	b.WriteString("\n\nDOCUMENT TEXT:\n---\n")
	b.WriteString(req.Text)
	b.WriteString("\n---\n\n")
	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("- Extract each field according to its description in the schema\n")
	b.WriteString("- Return a JSON object with the field names as keys\n")
	b.WriteString("- If a field cannot be found in the text, use null as the value\n")
	b.WriteString("- Only include fields that are specified in the schema\n")
	b.WriteString("- Preserve the exact field names from the schema\n\n")
	b.WriteString("Return your response as a valid JSON object.")
	return b.String()
}
