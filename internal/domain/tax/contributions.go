package tax

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
)

// ContributionResult é a apuração de PIS/COFINS não-cumulativo do período.
// Invariante: Payable = max(0, Debits - Credits), por tributo; o saldo
// credor não transita entre períodos aqui.
type ContributionResult struct {
	PISDebits     decimal.Decimal `json:"pis_debits"`
	PISCredits    decimal.Decimal `json:"pis_credits"`
	PISPayable    decimal.Decimal `json:"pis_payable"`
	COFINSDebits  decimal.Decimal `json:"cofins_debits"`
	COFINSCredits decimal.Decimal `json:"cofins_credits"`
	COFINSPayable decimal.Decimal `json:"cofins_payable"`
}

// ComputeContributions percorre os itens dos documentos classificados,
// acumula débitos e créditos via classificador e apura o valor devido.
// Documentos em "processing" ou "error" são pulados em silêncio: é o estado
// esperado de documentos ainda não prontos, não uma condição de erro.
func ComputeContributions(documents []entity.FiscalDocument, rules RuleSet) ContributionResult {
	var r ContributionResult

	for i := range documents {
		doc := &documents[i]
		if !doc.IsClassified() {
			continue
		}
		for _, item := range doc.Items {
			c := ClassifyItem(item, doc.OperationType, rules)
			r.PISDebits = r.PISDebits.Add(c.PISDebit)
			r.COFINSDebits = r.COFINSDebits.Add(c.COFINSDebit)
			r.PISCredits = r.PISCredits.Add(c.PISCredit)
			r.COFINSCredits = r.COFINSCredits.Add(c.COFINSCredit)
		}
	}

	r.PISPayable = floorZero(r.PISDebits.Sub(r.PISCredits))
	r.COFINSPayable = floorZero(r.COFINSDebits.Sub(r.COFINSCredits))
	return r
}

// floorZero devolve max(0, d).
func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
