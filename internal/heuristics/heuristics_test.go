package heuristics

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/pdf-extract/internal/schema"
)

const oabCardText = `CONSELHO SECCIONAL - SP
Inscricao 123456
ADVOGADA
TELEFONE
(11) 98765-4321
CPF 123.456.789-01
Emitida em 12/03/2024
`

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

func TestOABRules(t *testing.T) {
	set := NewOABRuleSet()

	t.Run("nome takes the first uppercase run", func(t *testing.T) {
		for text, want := range map[string]string{
			"Nome: JOANA D'ARC":                  "JOANA D'ARC",
			"Name: SON GOKU":                     "SON GOKU",
			"Professional: LUIS FILIPE ARAUJO":   "LUIS FILIPE ARAUJO",
			"Nome do profissional: JOSÉ MARIA\n": "JOSÉ MARIA",
		} {
			v, ok := set.Resolve(schema.Field{Name: "nome"}, text)
			require.True(t, ok, "text %q", text)
			assert.Equal(t, want, v)
		}
	})

	t.Run("inscricao is six digits", func(t *testing.T) {
		v, ok := set.Resolve(schema.Field{Name: "numero_inscricao"}, oabCardText)
		require.True(t, ok)
		assert.Equal(t, "123456", v)
	})

	t.Run("seccional from the header", func(t *testing.T) {
		v, ok := set.Resolve(schema.Field{Name: "seccional"}, oabCardText)
		require.True(t, ok)
		assert.Equal(t, "SP", v)
	})

	t.Run("seccional falls back to gated state code", func(t *testing.T) {
		text := "Seccional\nsomething RJ something\n"
		v, ok := set.Resolve(schema.Field{Name: "seccional"}, text)
		require.True(t, ok)
		assert.Equal(t, "RJ", v)
	})

	t.Run("categoria keyword", func(t *testing.T) {
		v, ok := set.Resolve(schema.Field{Name: "categoria"}, oabCardText)
		require.True(t, ok)
		assert.Equal(t, "ADVOGADA", v)
	})

	t.Run("telefone requires the keyword gate", func(t *testing.T) {
		v, ok := set.Resolve(schema.Field{Name: "telefone"}, oabCardText)
		require.True(t, ok)
		assert.Equal(t, "(11) 98765-4321", v)

		_, ok = set.Resolve(schema.Field{Name: "telefone"}, "fone (11) 98765-4321")
		assert.False(t, ok)
	})

	t.Run("unmatched field reports not found", func(t *testing.T) {
		_, ok := set.Resolve(schema.Field{Name: "subsecao"}, "no such content here")
		assert.False(t, ok)
	})
}

func TestSistemaRules(t *testing.T) {
	set := NewSistemaRuleSet()

	t.Run("cidade stops before the UF column", func(t *testing.T) {
		v, ok := set.Resolve(schema.Field{Name: "cidade"}, "Cidade:  São Paulo  U.F  SP")
		require.True(t, ok)
		assert.Equal(t, "São Paulo", v)
	})

	t.Run("quantidade de parcelas", func(t *testing.T) {
		v, ok := set.Resolve(schema.Field{Name: "quantidade_parcelas"}, "Qtd. Parcelas 12")
		require.True(t, ok)
		assert.Equal(t, "12", v)
	})

	t.Run("sistema prefers the VIr Parc layout", func(t *testing.T) {
		v, ok := set.Resolve(schema.Field{Name: "sistema"}, "Sistema CONSIG VIr. Parc. 1.234,56")
		require.True(t, ok)
		assert.Equal(t, "CONSIG", v)
	})

	t.Run("tipo_de_sistema is not owned by the sistema rule", func(t *testing.T) {
		v, ok := set.Resolve(schema.Field{Name: "tipo_de_sistema"}, "Tipo Sistema: Consignado")
		require.True(t, ok)
		assert.Equal(t, "Consignado", v)
	})

	t.Run("produto table scan skips chrome words", func(t *testing.T) {
		text := "Sistema CONSIGNADO x Produto info CARTAO y"
		v, ok := set.Resolve(schema.Field{Name: "produto"}, text)
		require.True(t, ok)
		assert.Equal(t, "CARTAO", v)
	})

	t.Run("valor da parcela", func(t *testing.T) {
		v, ok := set.Resolve(schema.Field{Name: "valor_parcela"}, "VIr. Parc. 1.234,56")
		require.True(t, ok)
		assert.Equal(t, "1.234,56", v)
	})
}

func TestGenericRules(t *testing.T) {
	set := NewGenericRuleSet()

	t.Run("cpf by description hint", func(t *testing.T) {
		f := schema.Field{Name: "documento", Description: "number like XXX.XXX.XXX-X"}
		v, ok := set.Resolve(f, "CPF 123.456.789-01")
		require.True(t, ok)
		assert.Equal(t, "123.456.789-01", v)
	})

	t.Run("date by description hint", func(t *testing.T) {
		f := schema.Field{Name: "emissao", Description: "date in DD/MM/YYYY"}
		v, ok := set.Resolve(f, "Emitida em 12/03/2024")
		require.True(t, ok)
		assert.Equal(t, "12/03/2024", v)
	})

	t.Run("unrelated field does not apply", func(t *testing.T) {
		_, ok := set.Resolve(schema.Field{Name: "observacao"}, "12/03/2024")
		assert.False(t, ok)
	})
}

func TestRuleBankSemantics(t *testing.T) {
	t.Run("patterns run in order and take the leftmost occurrence", func(t *testing.T) {
		set := NewOABRuleSet()
		v, ok := set.Resolve(schema.Field{Name: "inscricao"}, "111111 and later 222222")
		require.True(t, ok)
		assert.Equal(t, "111111", v)
	})

	t.Run("owning rule failing means no backtracking", func(t *testing.T) {
		bank := &ruleBank{
			name: "test",
			rules: []FieldRule{
				{
					Name:     "first",
					Applies:  nameContains("valor"),
					Patterns: []Pattern{{Expr: regexp.MustCompile(`never-present-token`)}},
				},
				{
					Name:     "second",
					Applies:  nameContains("valor"),
					Patterns: []Pattern{{Expr: regexp.MustCompile(`(\d+)`), Group: 1}},
				},
			},
		}
		_, ok := bank.Resolve(schema.Field{Name: "valor"}, "the text has 42 in it")
		assert.False(t, ok)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		r := NewRegistry()
		s := mustSchema(t,
			"nome", "name",
			"inscricao", "OAB number",
			"telefone", "phone",
		)
		first, firstResolved := r.Resolve("carteira_oab", oabCardText, s)
		for i := 0; i < 5; i++ {
			again, resolved := r.Resolve("carteira_oab", oabCardText, s)
			assert.Equal(t, firstResolved, resolved)
			for name, v := range first {
				if v == nil {
					assert.Nil(t, again[name])
					continue
				}
				require.NotNil(t, again[name])
				assert.Equal(t, *v, *again[name])
			}
		}
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	t.Run("label routing by keyword containment", func(t *testing.T) {
		set, ok := r.SetFor("Carteira_OAB_2024")
		require.True(t, ok)
		assert.Equal(t, "oab", set.Name())

		set, ok = r.SetFor("tela_sistema")
		require.True(t, ok)
		assert.Equal(t, "sistema", set.Name())

		_, ok = r.SetFor("random_label")
		assert.False(t, ok)
	})

	t.Run("label with both keywords routes to oab", func(t *testing.T) {
		set, ok := r.SetFor("oab_sistema")
		require.True(t, ok)
		assert.Equal(t, "oab", set.Name())
	})

	t.Run("result covers every schema field", func(t *testing.T) {
		s := mustSchema(t,
			"nome", "name",
			"inexistente", "something the card does not have",
			"cpf", "CPF number",
		)
		text := "Nome: JOANA D'ARC\nCPF 123.456.789-01\n"
		result, resolved := r.Resolve("carteira_oab", text, s)

		require.Len(t, result, 3)
		require.NotNil(t, result["nome"])
		assert.Equal(t, "JOANA D'ARC", *result["nome"])
		assert.Nil(t, result["inexistente"])

		// cpf is not in the OAB bank; the generic prong fills it.
		require.NotNil(t, result["cpf"])
		assert.Equal(t, "123.456.789-01", *result["cpf"])

		assert.Equal(t, []string{"nome", "cpf"}, resolved)
	})

	t.Run("unknown label still gets generic rules", func(t *testing.T) {
		s := mustSchema(t, "cpf", "CPF number", "nome", "name")
		result, resolved := r.Resolve("outro_documento", oabCardText, s)

		require.NotNil(t, result["cpf"])
		assert.Equal(t, "123.456.789-01", *result["cpf"])
		assert.Nil(t, result["nome"])
		assert.Equal(t, []string{"cpf"}, resolved)
	})
}
