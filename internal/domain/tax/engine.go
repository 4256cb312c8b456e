package tax

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// RegimeTotals totais de um regime para o comparativo.
type RegimeTotals struct {
	TotalTax      decimal.Decimal `json:"total_tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// RegimeComparison comparação Lucro Real x Lucro Presumido para planejamento
// tributário. BestRegime é o de menor carga (empate favorece o Presumido).
type RegimeComparison struct {
	Presumido              PresumidoResult `json:"presumido"`
	PresumidoEffectiveRate decimal.Decimal `json:"presumido_effective_rate"`
	Real                   RegimeTotals    `json:"real"`
	BestRegime             string          `json:"best_regime"`
	Savings                decimal.Decimal `json:"savings"`
}

// TaxCalculationResult é o resultado completo de uma apuração. Objeto plano,
// serializável como JSON, internamente consistente:
// PISPayable = max(0, PISDebits-PISCredits) (idem COFINS); ICMS.Balance pode
// ser negativo.
type TaxCalculationResult struct {
	Profit        ProfitResult       `json:"profit"`
	Contributions ContributionResult `json:"contributions"`
	ICMS          ICMSResult         `json:"icms"`

	TotalTax      decimal.Decimal   `json:"total_tax"`
	EffectiveRate decimal.Decimal   `json:"effective_rate"` // % sobre a receita bruta
	Comparison    *RegimeComparison `json:"comparison,omitempty"`
}

// Engine é o orquestrador da apuração: composição pura dos calculadores.
type Engine struct{}

// NewEngine cria o orquestrador.
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate compõe resolução de regras, PIS/COFINS, ICMS, IRPJ/CSLL e o
// comparativo de regimes num único resultado. Determinístico: duas chamadas
// com entradas idênticas produzem resultados bit a bit idênticos.
func (e *Engine) Calculate(
	inputs FinancialInputs,
	documents []entity.FiscalDocument,
	profile *entity.TaxProfile,
) TaxCalculationResult {
	rules := ResolveRules(profile)

	var r TaxCalculationResult
	r.Contributions = ComputeContributions(documents, rules)
	r.ICMS = ComputeICMSLedger(documents)
	r.Profit = ComputeLucroReal(inputs, rules)

	r.TotalTax = r.Profit.IRPJBase.
		Add(r.Profit.IRPJSurtax).
		Add(r.Profit.CSLL).
		Add(r.Contributions.PISPayable).
		Add(r.Contributions.COFINSPayable)

	r.EffectiveRate = effectiveRate(r.TotalTax, inputs.GrossRevenue)

	presumido := ComputePresumido(inputs.GrossRevenue, documents)
	r.Comparison = &RegimeComparison{
		Presumido:              presumido,
		PresumidoEffectiveRate: effectiveRate(presumido.TotalTax, inputs.GrossRevenue),
		Real: RegimeTotals{
			TotalTax:      r.TotalTax,
			EffectiveRate: r.EffectiveRate,
		},
		BestRegime: entity.RegimeLucroPresumido,
		Savings:    r.TotalTax.Sub(presumido.TotalTax).Abs(),
	}
	if r.TotalTax.LessThan(presumido.TotalTax) {
		r.Comparison.BestRegime = entity.RegimeLucroReal
	}

	return r
}

// effectiveRate = total / receita * 100, guardado contra divisão por zero.
func effectiveRate(totalTax, grossRevenue decimal.Decimal) decimal.Decimal {
	if !grossRevenue.IsPositive() {
		return decimal.Zero
	}
	return totalTax.Div(grossRevenue).Mul(hundred)
}
