package heuristics

import (
	"regexp"
	"strings"
)

// Label-agnostic rules. These run for fields the label-specific bank left
// unresolved and must be safe against arbitrary text, so they key off the
// field name or description rather than document vocabulary.
var (
	reCPFFormatted   = regexp.MustCompile(`\b(\d{3}\.\d{3}\.\d{3}-\d{2})\b`)
	reCPFUnformatted = regexp.MustCompile(`\b(\d{11})\b`)

	reDateSlash4 = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`)
	reDateSlash2 = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{2})\b`)
)

func cpfApplies(name, desc string) bool {
	return strings.Contains(strings.ToUpper(name), "CPF") ||
		strings.Contains(strings.ToUpper(desc), "CPF") ||
		strings.Contains(desc, "XXX.XXX.XXX-X")
}

func telefoneApplies(name, desc string) bool {
	return strings.Contains(strings.ToUpper(name), "TELEFONE") ||
		strings.Contains(strings.ToUpper(desc), "TELEFONE")
}

func dataApplies(name, desc string) bool {
	up := strings.ToUpper(desc)
	return strings.Contains(strings.ToUpper(name), "DATA") ||
		strings.Contains(up, "DD/MM/YYYY") ||
		strings.Contains(up, "DATE")
}

// NewGenericRuleSet returns the adaptive rules shared by every label:
// CPF, Brazilian phone numbers, and slash-formatted dates.
func NewGenericRuleSet() RuleSet {
	return &ruleBank{
		name: "generic",
		rules: []FieldRule{
			{
				Name:    "cpf",
				Applies: cpfApplies,
				Patterns: []Pattern{
					{Expr: reCPFFormatted, Group: 1},
					{Expr: reCPFUnformatted, Group: 1},
				},
			},
			{
				Name:     "telefone",
				Applies:  telefoneApplies,
				Patterns: phonePatterns(),
			},
			{
				Name:    "data",
				Applies: dataApplies,
				Patterns: []Pattern{
					{Expr: reDateSlash4, Group: 1},
					{Expr: reDateSlash2, Group: 1},
				},
			},
		},
	}
}
