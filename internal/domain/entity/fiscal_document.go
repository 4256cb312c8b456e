package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sentido da operação do documento fiscal.
const (
	OperationEntry = "entry" // entrada (compra/insumo)
	OperationExit  = "exit"  // saída (venda/receita)
)

// Estados de processamento do documento. Apenas documentos "classified"
// participam da apuração; "processing" e "error" são ignorados em silêncio.
const (
	DocStatusProcessing = "processing"
	DocStatusClassified = "classified"
	DocStatusError      = "error"
)

// Tipos de documento fiscal normalizado.
const (
	DocTypeNFe  = "NFe"
	DocTypeNFCe = "NFCe"
	DocTypeCTe  = "CTe"
	DocTypePDF  = "PDF" // documentos genéricos (ERP, NFS-e)
)

// FiscalLineItem é uma linha de produto/serviço tributável de um documento.
// Imutável após a normalização: correções geram um novo item e trilha de
// auditoria no documento pai, nunca mutação in-place.
type FiscalLineItem struct {
	ID         string
	DocumentID string
	Name       string
	NCM        string // código de mercadoria (8 dígitos)
	CFOP       string
	CSTICMS    string
	CSTPIS     string
	CSTCOFINS  string
	Amount     decimal.Decimal // valor do produto (>= 0)

	VICMS   decimal.Decimal
	PICMS   decimal.Decimal
	VPIS    decimal.Decimal
	PPIS    decimal.Decimal
	VCOFINS decimal.Decimal
	PCOFINS decimal.Decimal
	VIPI    decimal.Decimal
	PIPI    decimal.Decimal
}

// FiscalDocument é um documento fiscal normalizado (NF-e, NFS-e, nota de ERP).
// A engine recebe listas já filtradas por empresa e competência.
type FiscalDocument struct {
	ID            string
	CompanyID     string
	AccessKey     string // chave de acesso NF-e (44 dígitos)
	IssuerCNPJ    string
	IssuerName    string
	Name          string
	Type          string // NFe | NFCe | CTe | PDF
	OperationType string // entry | exit
	Date          time.Time
	Status        string // processing | classified | error
	Confidence    float64
	Amount        decimal.Decimal
	Items         []FiscalLineItem

	// Totalizadores do documento (destaques da nota).
	TotalICMS   decimal.Decimal
	TotalPIS    decimal.Decimal
	TotalCOFINS decimal.Decimal
	TotalIPI    decimal.Decimal

	CreatedAt time.Time
}

// IsClassified informa se o documento participa da apuração.
func (d *FiscalDocument) IsClassified() bool {
	return d.Status == DocStatusClassified
}

// IsExit informa se o documento é de saída (gera débitos).
func (d *FiscalDocument) IsExit() bool {
	return d.OperationType == OperationExit
}

// YearMonth devolve a competência do documento no formato "YYYY-MM".
func (d *FiscalDocument) YearMonth() string {
	return d.Date.Format("2006-01")
}
