package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/tax"
)

// CalculateTaxRequest entrada da apuração de uma competência.
// Os documentos fiscais vêm do repositório (empresa + competência); os campos
// financeiros são input manual do contador.
type CalculateTaxRequest struct {
	CompanyID  string `json:"company_id" validate:"required"`
	Competence string `json:"competence" validate:"required"` // "MM/YYYY"
	ClosedBy   string `json:"closed_by"`
	// Close persiste o resultado como fechamento mensal da competência.
	Close bool `json:"close"`

	GrossRevenue         decimal.Decimal `json:"gross_revenue"`
	OperatingExpenses    decimal.Decimal `json:"operating_expenses"`
	Additions            decimal.Decimal `json:"additions"`
	Exclusions           decimal.Decimal `json:"exclusions"`
	AccumulatedTaxLosses decimal.Decimal `json:"accumulated_tax_losses"`
}

// Inputs converte a requisição nos inputs financeiros da engine.
func (r *CalculateTaxRequest) Inputs() tax.FinancialInputs {
	return tax.FinancialInputs{
		GrossRevenue:      r.GrossRevenue,
		OperatingExpenses: r.OperatingExpenses,
		Additions:         r.Additions,
		Exclusions:        r.Exclusions,
		PriorLosses:       r.AccumulatedTaxLosses,
	}
}

// CalculateTaxResponse resultado da apuração, com contagem dos documentos
// considerados.
type CalculateTaxResponse struct {
	Competence    string                    `json:"competence"`
	DocumentCount int                       `json:"document_count"`
	Result        *tax.TaxCalculationResult `json:"result"`
	ClosingID     string                    `json:"closing_id,omitempty"`
}
