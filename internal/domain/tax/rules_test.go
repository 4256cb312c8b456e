package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/tax"
)

// assertDec compara um decimal com o valor esperado em string, com mensagem
// legível quando diverge.
func assertDec(t *testing.T, expected string, got decimal.Decimal, field string) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(got), "%s: esperado %s, recebido %s", field, want, got)
}

func TestResolveRules_Padrao(t *testing.T) {
	rules := tax.ResolveRules(nil)

	assertDec(t, "0.0165", rules.Contributions.PISRate, "PISRate")
	assertDec(t, "0.076", rules.Contributions.COFINSRate, "COFINSRate")
	assertDec(t, "0.15", rules.Profit.IRPJRate, "IRPJRate")
	assertDec(t, "0.09", rules.Profit.CSLLRate, "CSLLRate")
	assertDec(t, "0.10", rules.Profit.SurtaxRate, "SurtaxRate")
	assertDec(t, "20000", rules.Profit.SurtaxMonthlyThreshold, "SurtaxMonthlyThreshold")
	assertDec(t, "0.30", rules.Profit.LossOffsetCap, "LossOffsetCap")

	assert.Len(t, rules.Contributions.CreditCSTs, 14, "devem existir 14 CSTs de crédito")
	for _, cst := range []string{"50", "56", "60", "66"} {
		assert.True(t, rules.Contributions.CreditCSTs[cst], "CST %s deve gerar crédito", cst)
	}
	assert.False(t, rules.Contributions.CreditCSTs["99"], "CST 99 nunca gera crédito")
}

func TestResolveRules_Monofasico(t *testing.T) {
	rules := tax.ResolveRules(&entity.TaxProfile{IsMonofasico: true})

	assert.True(t, rules.Contributions.PISRate.IsZero(), "monofásico zera a alíquota de saída do PIS")
	assert.True(t, rules.Contributions.COFINSRate.IsZero(), "monofásico zera a alíquota de saída da COFINS")
	// A lista de créditos permanece intacta: desoneração de saída não altera
	// o direito a crédito das entradas.
	assert.Len(t, rules.Contributions.CreditCSTs, 14)
}

func TestResolveRules_SempreDevolveCopiaNova(t *testing.T) {
	a := tax.ResolveRules(nil)
	a.Contributions.CreditCSTs["99"] = true // mutação local no valor devolvido

	b := tax.ResolveRules(nil)
	require.False(t, b.Contributions.CreditCSTs["99"],
		"mutação de um RuleSet não pode vazar para resoluções seguintes")
	assert.Len(t, b.Contributions.CreditCSTs, 14)
}
