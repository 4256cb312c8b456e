package erp

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
)

// errMissingNode marca XML estruturalmente incompleto para a normalização.
var errMissingNode = fmt.Errorf("nó obrigatório ausente")

// Confiança atribuída a cada origem. XML autorizado vale mais que nota
// genérica; tudo abaixo de 1.0 porque veio do ERP, não da SEFAZ.
const (
	confidenceNFe     = 0.9
	confidenceInvoice = 0.7
	confidenceService = 0.8
)

// NormalizeNFeXML converte uma NF-e (XML autorizado) no documento fiscal
// interno. O sentido da operação é decidido pelo CFOP do primeiro item:
// primeiro dígito 5/6/7 indica saída.
func NormalizeNFeXML(raw *RawXML, companyID string) (*entity.FiscalDocument, error) {
	xmlDoc := etree.NewDocument()
	if err := xmlDoc.ReadFromString(raw.ConteudoXML); err != nil {
		return nil, fmt.Errorf("parse do XML da NF-e: %w", err)
	}

	infNFe := xmlDoc.FindElement("//NFe/infNFe")
	if infNFe == nil {
		return nil, fmt.Errorf("XML sem nó NFe/infNFe: %w", errMissingNode)
	}
	total := xmlDoc.FindElement("//total/ICMSTot")
	if total == nil {
		return nil, fmt.Errorf("XML sem totalizador ICMSTot: %w", errMissingNode)
	}

	ide := infNFe.SelectElement("ide")
	emit := infNFe.SelectElement("emit")

	doc := &entity.FiscalDocument{
		CompanyID:     companyID,
		Name:          fmt.Sprintf("NFe_%s.xml", keyDigits(raw.ChaveAcesso)),
		Type:          entity.DocTypeNFe,
		OperationType: entity.OperationEntry,
		Date:          parseEmissionDate(childText(ide, "dhEmi")),
		Status:        entity.DocStatusProcessing,
		Confidence:    confidenceNFe,
		AccessKey:     raw.ChaveAcesso,
		IssuerCNPJ:    childText(emit, "CNPJ"),
		IssuerName:    childText(emit, "xNome"),
		Amount:        childDec(total, "vNF"),
		TotalICMS:     childDec(total, "vICMS"),
		TotalPIS:      childDec(total, "vPIS"),
		TotalCOFINS:   childDec(total, "vCOFINS"),
		TotalIPI:      childDec(total, "vIPI"),
	}

	for i, det := range infNFe.SelectElements("det") {
		prod := det.SelectElement("prod")
		if prod == nil {
			continue
		}
		imposto := det.SelectElement("imposto")
		cfop := childText(prod, "CFOP")

		if i == 0 && fiscal.IsOutboundCFOP(cfop) {
			doc.OperationType = entity.OperationExit
		}

		item := entity.FiscalLineItem{
			Name:   childText(prod, "xProd"),
			NCM:    childText(prod, "NCM"),
			CFOP:   cfop,
			Amount: childDec(prod, "vProd"),
		}
		if icms := taxGroup(imposto, "ICMS"); icms != nil {
			item.CSTICMS = childText(icms, "CST")
			item.VICMS = childDec(icms, "vICMS")
			item.PICMS = childDec(icms, "pICMS")
		}
		if pis := taxGroup(imposto, "PIS"); pis != nil {
			item.CSTPIS = childText(pis, "CST")
			item.VPIS = childDec(pis, "vPIS")
			item.PPIS = childDec(pis, "pPIS")
		}
		if cofins := taxGroup(imposto, "COFINS"); cofins != nil {
			item.CSTCOFINS = childText(cofins, "CST")
			item.VCOFINS = childDec(cofins, "vCOFINS")
			item.PCOFINS = childDec(cofins, "pCOFINS")
		}
		if ipi := taxGroup(imposto, "IPI"); ipi != nil {
			item.VIPI = childDec(ipi, "vIPI")
			item.PIPI = childDec(ipi, "pIPI")
		}
		doc.Items = append(doc.Items, item)
	}

	return doc, nil
}

// taxGroup devolve o primeiro filho do grupo de imposto (ex: ICMS -> ICMS00),
// que é onde ficam CST e valores no layout da NF-e.
func taxGroup(imposto *etree.Element, name string) *etree.Element {
	if imposto == nil {
		return nil
	}
	group := imposto.SelectElement(name)
	if group == nil {
		return nil
	}
	children := group.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func childText(parent *etree.Element, tag string) string {
	if parent == nil {
		return ""
	}
	if el := parent.SelectElement(tag); el != nil {
		return el.Text()
	}
	return ""
}

func childDec(parent *etree.Element, tag string) decimal.Decimal {
	v, err := decimal.NewFromString(childText(parent, tag))
	if err != nil {
		return decimal.Zero
	}
	return v
}

// parseEmissionDate extrai a data de dhEmi ("2024-05-10T14:30:00-03:00").
// Data ilegível vira zero; o documento segue em processing até correção.
func parseEmissionDate(dhEmi string) time.Time {
	if len(dhEmi) < 10 {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", dhEmi[:10])
	if err != nil {
		return time.Time{}
	}
	return t
}

// keyDigits extrai o número do documento da chave (posições 22-30).
func keyDigits(key string) string {
	if len(key) < 31 {
		return key
	}
	return key[22:31]
}
