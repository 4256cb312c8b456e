package tax

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
)

// ICMSResult é o livro de apuração de ICMS do período.
// Balance = Debits - Credits, sem piso: saldo negativo é posição credora
// transportável para o período seguinte (a persistência do transporte está
// fora do núcleo).
type ICMSResult struct {
	Debits  decimal.Decimal `json:"icms_debits"`
	Credits decimal.Decimal `json:"icms_credits"`
	Balance decimal.Decimal `json:"icms_balance"`
}

// ComputeICMSLedger soma os valores de ICMS destacados nos itens, por sentido:
// saídas acumulam débito, entradas acumulam crédito (sem exclusão de uso e
// consumo). Considera apenas documentos classificados.
func ComputeICMSLedger(documents []entity.FiscalDocument) ICMSResult {
	var r ICMSResult

	for i := range documents {
		doc := &documents[i]
		if !doc.IsClassified() {
			continue
		}
		for _, item := range doc.Items {
			if doc.IsExit() {
				r.Debits = r.Debits.Add(item.VICMS)
			} else {
				r.Credits = r.Credits.Add(item.VICMS)
			}
		}
	}

	r.Balance = r.Debits.Sub(r.Credits)
	return r
}
