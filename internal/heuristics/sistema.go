package heuristics

import "regexp"

// Patterns for system form/report screens (tela_sistema). Selected for any
// label containing "sistema". Several fields carry more than one pattern
// because the same nominal layout ships in form and table variants.
var (
	reSisCidade = regexp.MustCompile(`(?i)Cidade:\s+([A-Za-zÀ-úç\s]+?)\s+U\.F`)

	reSisPesquisaPor  = regexp.MustCompile(`(?is)Pesquisar por:.*?Buscar\s+(CLIENTE|parente|prestador|outro)`)
	reSisPesquisaTipo = regexp.MustCompile(`(?is)Tipo:.*?Buscar\s+\w+\s+(CPF|CNPJ|Nome|email)`)

	reSisProdutoLabel = regexp.MustCompile(`Produto\s+([A-Z]+(?:\s+[A-Z]+)*?)(?:\s+[A-Z][a-z]|\s*$|\s+\d)`)
	reSisUppercaseRun = regexp.MustCompile(`\b([A-Z]{2,}(?:\s+[A-Z]{2,})*)\b`)

	reSisQtdParcelas     = regexp.MustCompile(`(?i)Qtd\.?\s*Parcelas?\s+(\d+)`)
	reSisParcelasNumber  = regexp.MustCompile(`(?i)(?:parcelas?|parcel\w*)[:\s]+(\d+)`)
	reSisSelecaoParcelas = regexp.MustCompile(`(?i)Seleção de parcelas:\s+([A-Za-zÀ-úç]+)`)
	reSisParcelasStatus  = regexp.MustCompile(`(?is)parcelas[:\s]+.*?(Vencidas|pago|pendente)`)

	reSisSistemaVlr  = regexp.MustCompile(`Sistema\s+([A-Z]+)\s+VIr\.\s*Parc\.`)
	reSisSistemaBare = regexp.MustCompile(`Sistema\s+([A-Z]+)`)

	reSisTipoOperacao  = regexp.MustCompile(`(?i)Tipo\s+Operação:\s+([A-Za-zÀ-úç]+)`)
	reSisOperacaoWords = regexp.MustCompile(`(?i)\b(Renegociação|Renegociacao|Empréstimo|Emprestimo|Refinanciamento|Consignação|Consignacao)\b`)

	reSisTipoSistema  = regexp.MustCompile(`(?i)Tipo\s+Sistema:\s+([A-Za-zÀ-úç]+)`)
	reSisSistemaKinds = regexp.MustCompile(`(?is)Sistema[:\s]+.*?(Consignado|Consignacao|Crédito|Credito|Débito|Debito)`)

	reSisTotal      = regexp.MustCompile(`(?i)Total:\s+(\d+(?:\.\d+)?,\d+)`)
	reSisTotalGeral = regexp.MustCompile(`(?i)Total\s+Geral\s+(\d+(?:\.\d+)?,\d+)`)
	reSisValorParc  = regexp.MustCompile(`(?i)VIr\.?\s*Parc\.\s+(\d+(?:\.\d+)?,\d+)`)
)

// produtoTableScan handles the table layout: take the first long uppercase run
// that is not part of the screen chrome.
func produtoTableScan(text string) (string, bool) {
	exclude := map[string]struct{}{
		"CONSIGNADO": {}, "VENCIDAS": {}, "SISTEMA": {},
		"CLIENTE": {}, "BUSCAR": {}, "TODOS": {},
	}
	for _, m := range reSisUppercaseRun.FindAllStringSubmatch(text, -1) {
		word := m[1]
		if _, skip := exclude[word]; skip {
			continue
		}
		if len(word) >= 4 {
			return word, true
		}
	}
	return "", false
}

// NewSistemaRuleSet returns the 11 multi-pattern rules for system screens.
func NewSistemaRuleSet() RuleSet {
	return &ruleBank{
		name: "sistema",
		rules: []FieldRule{
			{
				Name:     "cidade",
				Applies:  nameContains("cidade"),
				Patterns: []Pattern{{Expr: reSisCidade, Group: 1}},
			},
			{
				Name:     "pesquisa_por",
				Applies:  nameContains("pesquisa_por"),
				Patterns: []Pattern{{Expr: reSisPesquisaPor, Group: 1}},
			},
			{
				Name:     "pesquisa_tipo",
				Applies:  nameContains("pesquisa_tipo"),
				Patterns: []Pattern{{Expr: reSisPesquisaTipo, Group: 1}},
			},
			{
				Name:    "produto",
				Applies: nameContains("produto"),
				Patterns: []Pattern{
					{Expr: reSisProdutoLabel, Group: 1},
					{Scan: produtoTableScan},
				},
			},
			{
				Name:    "quantidade_parcelas",
				Applies: nameContainsAll("quantidade", "parcela"),
				Patterns: []Pattern{
					{Expr: reSisQtdParcelas, Group: 1},
					{Expr: reSisParcelasNumber, Group: 1},
				},
			},
			{
				Name:    "selecao_de_parcelas",
				Applies: and(nameContains("selecao", "seleção"), nameContains("parcela")),
				Patterns: []Pattern{
					{Expr: reSisSelecaoParcelas, Group: 1},
					{Expr: reSisParcelasStatus, Group: 1},
				},
			},
			{
				Name:    "sistema",
				Applies: and(nameContains("sistema"), not(nameContains("tipo"))),
				Patterns: []Pattern{
					{Expr: reSisSistemaVlr, Group: 1},
					{Expr: reSisSistemaBare, Group: 1},
				},
			},
			{
				Name:    "tipo_de_operacao",
				Applies: nameContainsAll("tipo", "operacao"),
				Patterns: []Pattern{
					{Expr: reSisTipoOperacao, Group: 1},
					{Expr: reSisOperacaoWords, Group: 1},
				},
			},
			{
				Name:    "tipo_de_sistema",
				Applies: and(nameContainsAll("tipo", "sistema"), not(nameContains("operacao"))),
				Patterns: []Pattern{
					{Expr: reSisTipoSistema, Group: 1},
					{Expr: reSisSistemaKinds, Group: 1},
				},
			},
			{
				Name:    "total_de_parcelas",
				Applies: nameContainsAll("total", "parcela"),
				Patterns: []Pattern{
					{Expr: reSisTotal, Group: 1},
					{Expr: reSisTotalGeral, Group: 1},
				},
			},
			{
				Name:     "valor_parcela",
				Applies:  nameContainsAll("valor", "parcela"),
				Patterns: []Pattern{{Expr: reSisValorParc, Group: 1}},
			},
		},
	}
}
