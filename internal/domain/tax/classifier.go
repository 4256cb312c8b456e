package tax

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
)

// Contribution é a contribuição de um único item para os acumuladores da
// apuração: débito, crédito ou nada, por tributo.
type Contribution struct {
	PISDebit     decimal.Decimal
	COFINSDebit  decimal.Decimal
	PISCredit    decimal.Decimal
	COFINSCredit decimal.Decimal
	ICMSDebit    decimal.Decimal
	ICMSCredit   decimal.Decimal
}

// ClassifyItem decide a contribuição de um item segundo o sentido do
// documento e o RuleSet vigente.
//
// Saídas: débito de PIS/COFINS RECALCULADO como alíquota vigente x valor do
// item, nunca o valor destacado na nota. É isso que faz o override
// monofásico (alíquota zero) surtir efeito mesmo com vPIS preenchido.
// O débito de ICMS usa o valor destacado do item.
//
// Entradas: crédito de PIS/COFINS somente se o CST der direito (valores
// destacados, pois o crédito reflete o que foi cobrado na etapa anterior);
// crédito de ICMS incondicional pelo valor destacado (simplificação: sem
// exclusão de uso e consumo).
func ClassifyItem(item entity.FiscalLineItem, operationType string, rules RuleSet) Contribution {
	var c Contribution

	if operationType == entity.OperationExit {
		c.PISDebit = item.Amount.Mul(rules.Contributions.PISRate)
		c.COFINSDebit = item.Amount.Mul(rules.Contributions.COFINSRate)
		c.ICMSDebit = item.VICMS
		return c
	}

	cst := creditCST(item)
	if rules.Contributions.CreditCSTs[cst] {
		c.PISCredit = item.VPIS
		c.COFINSCredit = item.VCOFINS
	}
	c.ICMSCredit = item.VICMS
	return c
}

// creditCST devolve o CST usado na checagem de crédito: CST de PIS, com
// fallback para o de COFINS e, na ausência de ambos, o sentinela "99"
// (Outras Operações), que nunca é elegível.
func creditCST(item entity.FiscalLineItem) string {
	if item.CSTPIS != "" {
		return item.CSTPIS
	}
	if item.CSTCOFINS != "" {
		return item.CSTCOFINS
	}
	return fiscal.CSTOutrasOperacoes
}
