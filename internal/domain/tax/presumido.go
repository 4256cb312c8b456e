package tax

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
)

// Parâmetros do Lucro Presumido (regime cumulativo, sem créditos).
var (
	presumidoPISRate    = decimal.RequireFromString("0.0065")
	presumidoCOFINSRate = decimal.RequireFromString("0.03")

	presumptionIRPJGoods    = decimal.RequireFromString("0.08") // comércio/indústria
	presumptionIRPJServices = decimal.RequireFromString("0.32")
	presumptionCSLLGoods    = decimal.RequireFromString("0.12")
	presumptionCSLLServices = decimal.RequireFromString("0.32")

	presumidoSurtaxThreshold = decimal.NewFromInt(60000) // trimestral
)

// PresumidoResult é a estimativa de carga tributária no Lucro Presumido,
// usada apenas para comparação de regimes; nunca compõe a apuração primária.
type PresumidoResult struct {
	TotalTax decimal.Decimal `json:"total_tax"`
	PIS      decimal.Decimal `json:"pis"`
	COFINS   decimal.Decimal `json:"cofins"`
	IRPJ     decimal.Decimal `json:"irpj"`
	CSLL     decimal.Decimal `json:"csll"`
}

// ComputePresumido estima o total de tributos sob o Lucro Presumido.
//
// A receita é separada em Comércio x Serviços pelos CFOPs dos itens das
// saídas (5933/6933 = serviço). Quando a receita informada manualmente
// excede o total derivado dos documentos, os dois buckets são escalonados
// proporcionalmente (os documentos são tratados como amostra representativa).
// Sem documentos de saída, toda a receita é tratada como comércio.
func ComputePresumido(grossRevenue decimal.Decimal, documents []entity.FiscalDocument) PresumidoResult {
	revenueServices := decimal.Zero
	revenueCommerce := decimal.Zero

	exitDocs := make([]*entity.FiscalDocument, 0, len(documents))
	for i := range documents {
		if documents[i].IsExit() {
			exitDocs = append(exitDocs, &documents[i])
		}
	}

	if len(exitDocs) == 0 {
		revenueCommerce = grossRevenue
	} else {
		for _, doc := range exitDocs {
			isService := false
			for _, item := range doc.Items {
				if fiscal.IsServiceCFOP(item.CFOP) {
					isService = true
				}
			}
			if isService {
				revenueServices = revenueServices.Add(doc.Amount)
			} else {
				revenueCommerce = revenueCommerce.Add(doc.Amount)
			}
		}

		// Reconciliação com o input manual: escala para cima quando o usuário
		// informou receita além da soma dos documentos. O caso inverso
		// (documentos > input manual) fica sem escala, comportamento herdado
		// da regra de negócio vigente.
		totalDocs := revenueCommerce.Add(revenueServices)
		switch {
		case grossRevenue.GreaterThan(totalDocs) && totalDocs.IsPositive():
			ratio := grossRevenue.Div(totalDocs)
			revenueCommerce = revenueCommerce.Mul(ratio)
			revenueServices = revenueServices.Mul(ratio)
		case totalDocs.IsZero():
			revenueCommerce = grossRevenue
		}
	}

	var r PresumidoResult

	// PIS/COFINS cumulativo sobre a receita bruta, sem créditos.
	r.PIS = grossRevenue.Mul(presumidoPISRate)
	r.COFINS = grossRevenue.Mul(presumidoCOFINSRate)

	// IRPJ: presunção de 8% comércio / 32% serviços, 15% + adicional trimestral.
	baseIRPJ := revenueCommerce.Mul(presumptionIRPJGoods).Add(revenueServices.Mul(presumptionIRPJServices))
	irpjBase := baseIRPJ.Mul(defaultIRPJRate)
	irpjSurtax := floorZero(baseIRPJ.Sub(presumidoSurtaxThreshold).Mul(defaultSurtaxRate))
	r.IRPJ = irpjBase.Add(irpjSurtax)

	// CSLL: presunção de 12% comércio / 32% serviços, alíquota de 9%.
	baseCSLL := revenueCommerce.Mul(presumptionCSLLGoods).Add(revenueServices.Mul(presumptionCSLLServices))
	r.CSLL = baseCSLL.Mul(defaultCSLLRate)

	r.TotalTax = r.PIS.Add(r.COFINS).Add(r.IRPJ).Add(r.CSLL)
	return r
}
