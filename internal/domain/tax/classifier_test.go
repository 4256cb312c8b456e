package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/tax"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClassifyItem_SaidaRecalculaDebito(t *testing.T) {
	rules := tax.ResolveRules(nil)
	item := entity.FiscalLineItem{
		Amount: dec("1000"),
		VPIS:   dec("999"), // valor destacado deliberadamente errado
		VICMS:  dec("180"),
	}

	c := tax.ClassifyItem(item, entity.OperationExit, rules)

	// Débito = alíquota vigente x valor, nunca o destaque da nota.
	assertDec(t, "16.50", c.PISDebit, "PISDebit")
	assertDec(t, "76", c.COFINSDebit, "COFINSDebit")
	assertDec(t, "180", c.ICMSDebit, "ICMSDebit")
	assert.True(t, c.PISCredit.IsZero(), "saída não gera crédito")
	assert.True(t, c.ICMSCredit.IsZero())
}

func TestClassifyItem_EntradaComCSTDeCredito(t *testing.T) {
	rules := tax.ResolveRules(nil)
	item := entity.FiscalLineItem{
		Amount:  dec("500"),
		CSTPIS:  "50",
		VPIS:    dec("8.25"),
		VCOFINS: dec("38"),
		VICMS:   dec("90"),
	}

	c := tax.ClassifyItem(item, entity.OperationEntry, rules)

	// Crédito = valor destacado na nota (o que foi cobrado na etapa anterior).
	assertDec(t, "8.25", c.PISCredit, "PISCredit")
	assertDec(t, "38", c.COFINSCredit, "COFINSCredit")
	assertDec(t, "90", c.ICMSCredit, "ICMSCredit")
	assert.True(t, c.PISDebit.IsZero(), "entrada não gera débito")
}

func TestClassifyItem_EntradaSemDireitoACredito(t *testing.T) {
	rules := tax.ResolveRules(nil)
	item := entity.FiscalLineItem{
		Amount:  dec("500"),
		CSTPIS:  "70", // aquisição sem direito a crédito
		VPIS:    dec("8.25"),
		VCOFINS: dec("38"),
		VICMS:   dec("90"),
	}

	c := tax.ClassifyItem(item, entity.OperationEntry, rules)

	assert.True(t, c.PISCredit.IsZero())
	assert.True(t, c.COFINSCredit.IsZero())
	// ICMS credita incondicionalmente (sem exclusão de uso e consumo).
	assertDec(t, "90", c.ICMSCredit, "ICMSCredit")
}

func TestClassifyItem_FallbackCSTCofins(t *testing.T) {
	rules := tax.ResolveRules(nil)
	item := entity.FiscalLineItem{
		Amount:    dec("100"),
		CSTCOFINS: "51", // sem CST de PIS, vale o de COFINS
		VPIS:      dec("1.65"),
		VCOFINS:   dec("7.60"),
	}

	c := tax.ClassifyItem(item, entity.OperationEntry, rules)
	assertDec(t, "1.65", c.PISCredit, "PISCredit")
}

func TestClassifyItem_SemCSTCaiNoSentinela(t *testing.T) {
	rules := tax.ResolveRules(nil)
	item := entity.FiscalLineItem{
		Amount:  dec("100"),
		VPIS:    dec("1.65"),
		VCOFINS: dec("7.60"),
	}

	// Sem CST informado o item assume "99" e fica fora do crédito.
	c := tax.ClassifyItem(item, entity.OperationEntry, rules)
	assert.True(t, c.PISCredit.IsZero())
	assert.True(t, c.COFINSCredit.IsZero())
}
