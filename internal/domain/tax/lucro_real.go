package tax

import "github.com/shopspring/decimal"

// quarterMonths: a apuração implementada é trimestral: o limite mensal do
// adicional de IRPJ é multiplicado por três meses acumulados.
var quarterMonths = decimal.NewFromInt(3)

// FinancialInputs agregados financeiros informados manualmente para o LALUR.
type FinancialInputs struct {
	GrossRevenue      decimal.Decimal `json:"gross_revenue"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	Additions         decimal.Decimal `json:"additions"`    // adições LALUR
	Exclusions        decimal.Decimal `json:"exclusions"`   // exclusões LALUR
	PriorLosses       decimal.Decimal `json:"prior_losses"` // prejuízo fiscal acumulado
}

// ProfitResult é a apuração de IRPJ/CSLL pelo Lucro Real.
// NetProfit e RealProfit podem ser negativos (período de prejuízo é estado
// válido: base tributável zero, IRPJ/CSLL zero, sem erro).
type ProfitResult struct {
	NetProfit   decimal.Decimal `json:"net_profit"`
	RealProfit  decimal.Decimal `json:"real_profit"`
	Offset      decimal.Decimal `json:"offset"` // compensação de prejuízo aplicada
	TaxableBase decimal.Decimal `json:"taxable_base"`
	IRPJBase    decimal.Decimal `json:"irpj_base"`
	IRPJSurtax  decimal.Decimal `json:"irpj_surtax"`
	CSLL        decimal.Decimal `json:"csll"`
}

// ComputeLucroReal apura IRPJ e CSLL sobre o lucro contábil ajustado:
//
//  1. Lucro líquido = receita bruta - despesas operacionais.
//  2. Lucro real = lucro líquido + adições - exclusões (LALUR).
//  3. Compensação de prejuízo fiscal com trava de 30% do lucro real.
//  4. Base tributável = max(0, lucro real - compensação).
//  5. IRPJ 15% + adicional de 10% sobre o excedente do limite trimestral.
//  6. CSLL 9% sobre a mesma base.
func ComputeLucroReal(in FinancialInputs, rules RuleSet) ProfitResult {
	var r ProfitResult

	r.NetProfit = in.GrossRevenue.Sub(in.OperatingExpenses)
	r.RealProfit = r.NetProfit.Add(in.Additions).Sub(in.Exclusions)

	if r.RealProfit.IsPositive() && in.PriorLosses.IsPositive() {
		cap := r.RealProfit.Mul(rules.Profit.LossOffsetCap)
		r.Offset = decimal.Min(in.PriorLosses, cap)
	}

	r.TaxableBase = floorZero(r.RealProfit.Sub(r.Offset))

	r.IRPJBase = r.TaxableBase.Mul(rules.Profit.IRPJRate)

	quarterThreshold := rules.Profit.SurtaxMonthlyThreshold.Mul(quarterMonths)
	surtaxBase := r.TaxableBase.Sub(quarterThreshold)
	r.IRPJSurtax = floorZero(surtaxBase.Mul(rules.Profit.SurtaxRate))

	r.CSLL = r.TaxableBase.Mul(rules.Profit.CSLLRate)
	return r
}
