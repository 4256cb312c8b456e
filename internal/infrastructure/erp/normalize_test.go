package erp_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/infrastructure/erp"
)

const nfeKey = "35240511222333000181550010000001231000001234"

const nfeXML = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc versao="4.00">
  <NFe>
    <infNFe Id="NFe` + nfeKey + `" versao="4.00">
      <ide>
        <nNF>123</nNF>
        <dhEmi>2024-05-10T14:30:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>11222333000181</CNPJ>
        <xNome>INDUSTRIA ALFA LTDA</xNome>
      </emit>
      <det nItem="1">
        <prod>
          <xProd>PARAFUSO SEXTAVADO</xProd>
          <NCM>73181500</NCM>
          <CFOP>5102</CFOP>
          <vProd>1000.00</vProd>
        </prod>
        <imposto>
          <ICMS>
            <ICMS00>
              <CST>00</CST>
              <pICMS>12.00</pICMS>
              <vICMS>120.00</vICMS>
            </ICMS00>
          </ICMS>
          <PIS>
            <PISAliq>
              <CST>01</CST>
              <pPIS>1.65</pPIS>
              <vPIS>16.50</vPIS>
            </PISAliq>
          </PIS>
          <COFINS>
            <COFINSAliq>
              <CST>01</CST>
              <pCOFINS>7.60</pCOFINS>
              <vCOFINS>76.00</vCOFINS>
            </COFINSAliq>
          </COFINS>
        </imposto>
      </det>
      <total>
        <ICMSTot>
          <vNF>1000.00</vNF>
          <vICMS>120.00</vICMS>
          <vPIS>16.50</vPIS>
          <vCOFINS>76.00</vCOFINS>
          <vIPI>0.00</vIPI>
        </ICMSTot>
      </total>
    </infNFe>
  </NFe>
</nfeProc>`

func TestNormalizeNFeXML(t *testing.T) {
	raw := &erp.RawXML{ID: "erp-1", ChaveAcesso: nfeKey, ConteudoXML: nfeXML}

	doc, err := erp.NormalizeNFeXML(raw, "company-1")
	require.NoError(t, err)

	assert.Equal(t, "company-1", doc.CompanyID)
	assert.Equal(t, entity.DocTypeNFe, doc.Type)
	assert.Equal(t, entity.DocStatusProcessing, doc.Status)
	assert.Equal(t, nfeKey, doc.AccessKey)
	assert.Equal(t, "NFe_001000000.xml", doc.Name, "nome deriva do fragmento da chave nas posições 22 a 30")
	assert.Equal(t, entity.OperationExit, doc.OperationType, "CFOP 5xxx no primeiro item marca saída")
	assert.Equal(t, "2024-05-10", doc.Date.Format("2006-01-02"))
	assert.Equal(t, "11222333000181", doc.IssuerCNPJ)
	assert.Equal(t, "INDUSTRIA ALFA LTDA", doc.IssuerName)
	assert.True(t, doc.Amount.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, doc.TotalPIS.Equal(decimal.RequireFromString("16.50")))

	require.Len(t, doc.Items, 1)
	item := doc.Items[0]
	assert.Equal(t, "PARAFUSO SEXTAVADO", item.Name)
	assert.Equal(t, "73181500", item.NCM)
	assert.Equal(t, "5102", item.CFOP)
	assert.Equal(t, "00", item.CSTICMS)
	assert.Equal(t, "01", item.CSTPIS)
	assert.Equal(t, "01", item.CSTCOFINS)
	assert.True(t, item.VICMS.Equal(decimal.RequireFromString("120.00")))
	assert.True(t, item.PPIS.Equal(decimal.RequireFromString("1.65")))
	assert.True(t, item.VCOFINS.Equal(decimal.RequireFromString("76.00")))
}

func TestNormalizeNFeXML_SemInfNFe(t *testing.T) {
	raw := &erp.RawXML{ChaveAcesso: nfeKey, ConteudoXML: "<?xml version=\"1.0\"?><outro/>"}

	_, err := erp.NormalizeNFeXML(raw, "company-1")

	assert.Error(t, err)
}

func TestNormalizeInvoice(t *testing.T) {
	raw := &erp.RawInvoice{
		ID:          "erp-2",
		Numero:      "456",
		DataEmissao: "2024-05-15",
		ValorTotal:  decimal.NewFromInt(500),
		Tipo:        "SAIDA",
		ClienteFornecedor: erp.RawParty{
			Nome:    "CLIENTE BETA",
			CNPJCPF: "99888777000166",
		},
		Itens: []erp.RawInvoiceItem{{
			Descricao:     "SERVICO AVULSO",
			Quantidade:    decimal.NewFromInt(2),
			ValorUnitario: decimal.NewFromInt(250),
		}},
	}

	doc, err := erp.NormalizeInvoice(raw, "company-1")
	require.NoError(t, err)

	assert.Equal(t, "INV_456.json", doc.Name)
	assert.Equal(t, entity.DocTypePDF, doc.Type)
	assert.Equal(t, entity.OperationExit, doc.OperationType)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "5102", doc.Items[0].CFOP, "saída recebe CFOP genérico de venda")
	assert.Equal(t, "00000000", doc.Items[0].NCM, "NCM genérico: a auditoria aponta warning")
	assert.Equal(t, "99", doc.Items[0].CSTPIS)
	assert.True(t, doc.Items[0].Amount.Equal(decimal.NewFromInt(500)), "quantidade x unitário")
}

func TestNormalizeInvoice_EntradaEDataInvalida(t *testing.T) {
	raw := &erp.RawInvoice{Numero: "1", DataEmissao: "2024-05-15", Tipo: "ENTRADA"}
	doc, err := erp.NormalizeInvoice(raw, "company-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OperationEntry, doc.OperationType)

	raw.DataEmissao = "15/05/2024"
	_, err = erp.NormalizeInvoice(raw, "company-1")
	assert.Error(t, err)
}

func TestNormalizeServiceInvoice(t *testing.T) {
	raw := &erp.RawServiceInvoice{
		ID:               "erp-3",
		Numero:           "789",
		DataCompetencia:  "2024-05-20",
		Valor:            decimal.NewFromInt(10000),
		DescricaoServico: "CONSULTORIA FISCAL",
		Prestador:        erp.RawServiceParty{RazaoSocial: "PRESTADOR GAMA", CNPJ: "11222333000181"},
		Tomador:          erp.RawServiceParty{RazaoSocial: "TOMADOR DELTA", CNPJ: "99888777000166"},
	}

	doc, err := erp.NormalizeServiceInvoice(raw, "company-1")
	require.NoError(t, err)

	assert.Equal(t, "NFSe_789.json", doc.Name)
	assert.Equal(t, entity.OperationExit, doc.OperationType, "serviço é sempre saída")
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "5933", doc.Items[0].CFOP, "CFOP de serviço para o comparativo de regimes")
	assert.True(t, doc.TotalPIS.Equal(decimal.NewFromInt(165)), "estimativa de PIS pela alíquota básica")
	assert.True(t, doc.TotalCOFINS.Equal(decimal.NewFromInt(760)), "estimativa de COFINS pela alíquota básica")
}
