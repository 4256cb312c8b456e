package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
)

// NormalizeDocumentRequest carga bruta de ERP com o tipo de origem.
// Payload é decodificado conforme Source (invoice | nfe_xml | service_invoice).
type NormalizeDocumentRequest struct {
	CompanyID string          `json:"company_id" validate:"required"`
	Source    string          `json:"source" validate:"required"`
	Payload   json.RawMessage `json:"payload" validate:"required"`
}

// DocumentResponse visão resumida do documento normalizado.
type DocumentResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	OperationType string          `json:"operation_type"`
	Date          string          `json:"date"` // "2006-01-02"
	Status        string          `json:"status"`
	Confidence    float64         `json:"confidence"`
	AccessKey     string          `json:"access_key,omitempty"`
	IssuerCNPJ    string          `json:"issuer_cnpj,omitempty"`
	IssuerName    string          `json:"issuer_name,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	ItemCount     int             `json:"item_count"`
}

// DocumentFromEntity monta a resposta a partir da entidade.
func DocumentFromEntity(doc *entity.FiscalDocument) *DocumentResponse {
	return &DocumentResponse{
		ID:            doc.ID,
		CompanyID:     doc.CompanyID,
		Name:          doc.Name,
		Type:          doc.Type,
		OperationType: doc.OperationType,
		Date:          doc.Date.Format("2006-01-02"),
		Status:        doc.Status,
		Confidence:    doc.Confidence,
		AccessKey:     doc.AccessKey,
		IssuerCNPJ:    doc.IssuerCNPJ,
		IssuerName:    doc.IssuerName,
		Amount:        doc.Amount,
		ItemCount:     len(doc.Items),
	}
}
