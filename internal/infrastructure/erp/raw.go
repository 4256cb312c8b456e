// Package erp normaliza cargas brutas de ERPs (NF-e XML, notas genéricas,
// NFS-e) para o formato interno entity.FiscalDocument. Os mapeadores são
// puros; a persistência do documento normalizado fica com o usecase.
package erp

import "github.com/shopspring/decimal"

// Tipos de origem aceitos pela normalização.
const (
	SourceInvoice        = "invoice"
	SourceNFeXML         = "nfe_xml"
	SourceServiceInvoice = "service_invoice"
)

// RawParty identifica cliente/fornecedor na carga do ERP.
type RawParty struct {
	Nome    string `json:"nome"`
	CNPJCPF string `json:"cnpj_cpf"`
}

// RawInvoiceItem item de nota genérica do ERP.
type RawInvoiceItem struct {
	Codigo        string          `json:"codigo"`
	Descricao     string          `json:"descricao"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
}

// RawInvoice nota fiscal genérica exportada pelo ERP (sem XML).
type RawInvoice struct {
	ID                string           `json:"id"`
	Numero            string           `json:"numero"`
	DataEmissao       string           `json:"data_emissao"` // "2006-01-02"
	ValorTotal        decimal.Decimal  `json:"valor_total"`
	Tipo              string           `json:"tipo"` // ENTRADA | SAIDA
	ClienteFornecedor RawParty         `json:"cliente_fornecedor"`
	Itens             []RawInvoiceItem `json:"itens"`
}

// RawXML NF-e com o XML autorizado embutido.
type RawXML struct {
	ID          string `json:"id"`
	ChaveAcesso string `json:"chave_acesso"`
	ConteudoXML string `json:"conteudo_xml"`
}

// RawServiceParty prestador/tomador de NFS-e.
type RawServiceParty struct {
	RazaoSocial string `json:"razao_social"`
	CNPJ        string `json:"cnpj"`
}

// RawServiceInvoice NFS-e municipal exportada pelo ERP.
type RawServiceInvoice struct {
	ID               string          `json:"id"`
	Numero           string          `json:"numero"`
	DataCompetencia  string          `json:"data_competencia"`
	Valor            decimal.Decimal `json:"valor"`
	DescricaoServico string          `json:"descricao_servico"`
	Tomador          RawServiceParty `json:"tomador"`
	Prestador        RawServiceParty `json:"prestador"`
}
