package heuristics

import "regexp"

// Patterns for Brazilian lawyer ID cards (Carteira da OAB). Selected for any
// label containing "oab".
var (
	// Go's \b is ASCII-only, so the uppercase-name run emulates a unicode
	// word boundary with explicit letter classes around the capture.
	reOABNome = regexp.MustCompile(`(?:^|[^\p{L}\d_])([A-ZÀ-Ú]+(?:[\s'][A-ZÀ-Ú]+)*)(?:[^\p{L}\d_]|$)`)

	reOABInscricao = regexp.MustCompile(`\b(\d{6})\b`)

	reOABSeccionalHeader = regexp.MustCompile(`(?i)CONSELHO SECCIONAL[\s\-]+([A-Z]{2})\b`)
	reOABSeccionalGate   = regexp.MustCompile(`(?i)Seccional`)
	reOABStateCode       = regexp.MustCompile(`\b(AC|AL|AP|AM|BA|CE|DF|ES|GO|MA|MT|MS|MG|PA|PB|PR|PE|PI|RJ|RN|RS|RO|RR|SC|SP|SE|TO)\b`)

	reOABSubsecaoDash   = regexp.MustCompile(`(?i)CONSELHO\s+SECCIONAL\s*[-–]\s*([A-ZÀ-Ú\s]+?)\n`)
	reOABSubsecaoNoDash = regexp.MustCompile(`(?i)CONSELHO\s+SECCIONAL\s+([A-ZÀ-Ú\s]+?)\n`)

	reOABCategoria = regexp.MustCompile(`(?i)\b(ADVOGADO|ADVOGADA|SUPLEMENTAR|ESTAGIARIO|ESTAGIARIA)\b`)

	reOABEndereco = regexp.MustCompile(`(?i)ENDERE[CÇ]O\s+Profissional\s*\n([A-ZÀ-Ú0-9][^\n]+)\n([A-ZÀ-Ú][^\n]+)\n(\d+)`)

	reTelefoneGate   = regexp.MustCompile(`(?i)TELEFONE`)
	rePhoneParens    = regexp.MustCompile(`\(\d{2}\)\s*\d{4,5}-\d{4}`)
	rePhoneSpaced    = regexp.MustCompile(`\b\d{2}\s+\d{4,5}-\d{4}\b`)
	rePhoneBareDigit = regexp.MustCompile(`\b\d{10,11}\b`)

	reOABSituacao = regexp.MustCompile(`(?i)SITUA[CÇ](?:A[OÃ]|Ã[OÃ])\s+([A-ZÀ-Ú]+)`)
)

// phonePatterns is shared between the OAB bank and the generic bank: the same
// Brazilian phone formats, gated on the TELEFONE keyword appearing at all.
func phonePatterns() []Pattern {
	return []Pattern{
		{Expr: rePhoneParens, Gate: reTelefoneGate},
		{Expr: rePhoneSpaced, Gate: reTelefoneGate},
		{Expr: rePhoneBareDigit, Gate: reTelefoneGate},
	}
}

// NewOABRuleSet returns the 8 rules for OAB ID card fields.
func NewOABRuleSet() RuleSet {
	return &ruleBank{
		name: "oab",
		rules: []FieldRule{
			{
				Name:     "nome",
				Applies:  nameContains("nome"),
				Patterns: []Pattern{{Expr: reOABNome, Group: 1}},
			},
			{
				Name:     "inscricao",
				Applies:  nameContains("inscricao", "inscriçao", "inscriçâo", "oab"),
				Patterns: []Pattern{{Expr: reOABInscricao, Group: 1}},
			},
			{
				Name:    "seccional",
				Applies: nameContains("seccional"),
				Patterns: []Pattern{
					{Expr: reOABSeccionalHeader, Group: 1},
					{Expr: reOABStateCode, Group: 1, Gate: reOABSeccionalGate},
				},
			},
			{
				Name:    "subsecao",
				Applies: nameContains("subsec", "subseç"),
				Patterns: []Pattern{
					{Expr: reOABSubsecaoDash, Group: 1},
					{Expr: reOABSubsecaoNoDash, Group: 1},
				},
			},
			{
				Name:     "categoria",
				Applies:  nameContains("categoria"),
				Patterns: []Pattern{{Expr: reOABCategoria, Group: 1}},
			},
			{
				Name:     "endereco",
				Applies:  nameContains("endereco", "endereço"),
				Patterns: []Pattern{{Expr: reOABEndereco, Groups: []int{1, 2, 3}}},
			},
			{
				Name:     "telefone",
				Applies:  nameContains("telefone"),
				Patterns: phonePatterns(),
			},
			{
				Name:     "situacao",
				Applies:  nameContains("situacao", "situação"),
				Patterns: []Pattern{{Expr: reOABSituacao, Group: 1}},
			},
		},
	}
}
