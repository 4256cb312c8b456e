package erp

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
)

// NormalizeInvoice converte uma nota genérica do ERP (sem XML) no documento
// fiscal interno. Sem destaque de impostos na origem, os valores ficam
// zerados e os códigos recebem defaults genéricos (NCM 00000000, CST 99),
// que a auditoria SPED aponta como warning.
func NormalizeInvoice(raw *RawInvoice, companyID string) (*entity.FiscalDocument, error) {
	date, err := time.Parse("2006-01-02", raw.DataEmissao)
	if err != nil {
		return nil, fmt.Errorf("data de emissão %q: %w", raw.DataEmissao, err)
	}

	operation := entity.OperationEntry
	cfop := "1102"
	if raw.Tipo == "SAIDA" {
		operation = entity.OperationExit
		cfop = "5102"
	}

	items := make([]entity.FiscalLineItem, 0, len(raw.Itens))
	for _, it := range raw.Itens {
		items = append(items, entity.FiscalLineItem{
			Name:      it.Descricao,
			NCM:       "00000000",
			CFOP:      cfop,
			CSTICMS:   "90",
			CSTPIS:    "99",
			CSTCOFINS: "99",
			Amount:    it.ValorUnitario.Mul(it.Quantidade),
		})
	}

	return &entity.FiscalDocument{
		CompanyID:     companyID,
		Name:          fmt.Sprintf("INV_%s.json", raw.Numero),
		Type:          entity.DocTypePDF,
		OperationType: operation,
		Date:          date,
		Status:        entity.DocStatusProcessing,
		Confidence:    confidenceInvoice,
		Amount:        raw.ValorTotal,
		IssuerCNPJ:    raw.ClienteFornecedor.CNPJCPF,
		IssuerName:    raw.ClienteFornecedor.Nome,
		Items:         items,
	}, nil
}

// NormalizeServiceInvoice converte uma NFS-e no documento fiscal interno.
// Serviço é sempre saída; o item único recebe o CFOP de serviço 5933 e os
// totais de PIS/COFINS são estimados pelas alíquotas básicas.
func NormalizeServiceInvoice(raw *RawServiceInvoice, companyID string) (*entity.FiscalDocument, error) {
	date, err := time.Parse("2006-01-02", raw.DataCompetencia)
	if err != nil {
		return nil, fmt.Errorf("data de competência %q: %w", raw.DataCompetencia, err)
	}

	return &entity.FiscalDocument{
		CompanyID:     companyID,
		Name:          fmt.Sprintf("NFSe_%s.json", raw.Numero),
		Type:          entity.DocTypePDF,
		OperationType: entity.OperationExit,
		Date:          date,
		Status:        entity.DocStatusProcessing,
		Confidence:    confidenceService,
		Amount:        raw.Valor,
		IssuerCNPJ:    raw.Prestador.CNPJ,
		IssuerName:    raw.Prestador.RazaoSocial,
		TotalPIS:      raw.Valor.Mul(decimal.RequireFromString("0.0165")),
		TotalCOFINS:   raw.Valor.Mul(decimal.RequireFromString("0.076")),
		Items: []entity.FiscalLineItem{{
			Name:      raw.DescricaoServico,
			NCM:       "00000000",
			CFOP:      "5933",
			CSTICMS:   "00",
			CSTPIS:    "01",
			CSTCOFINS: "01",
			Amount:    raw.Valor,
		}},
	}, nil
}
