// Package fiscal contém catálogos e validações alinhados à legislação fiscal
// brasileira usada na apuração do Lucro Real e na escrituração SPED
// (EFD ICMS/IPI e EFD-Contribuições).
package fiscal

// =============================================================================
// CFOP - Código Fiscal de Operações e Prestações
// Primeiro dígito: 1/2/3 = entradas, 5/6/7 = saídas.
// =============================================================================

// CFOPDescriptions descreve os CFOPs de uso corrente na base de documentos.
var CFOPDescriptions = map[string]string{
	// Vendas (saídas)
	"5101": "Venda de produção do estabelecimento",
	"5102": "Venda de mercadoria adquirida ou recebida de terceiros",
	"5405": "Venda de mercadoria adquirida com ST, na condição de contribuinte substituído",
	"5933": "Prestação de serviço tributado pelo ISSQN",
	"6102": "Venda de mercadoria adquirida de terceiros - fora do Estado",

	// Compras (entradas)
	"1101": "Compra para industrialização",
	"1102": "Compra para comercialização",
	"1556": "Compra de material para uso ou consumo",
	"1933": "Aquisição de serviço tributado pelo ISSQN",
	"1949": "Outra entrada de mercadoria ou prestação de serviço não especificada",
	"2102": "Compra para comercialização - fora do Estado",
}

// ServiceCFOPPrefixes prefixos de CFOP que caracterizam receita de serviço
// (prestação tributada pelo ISSQN) na separação Comércio x Serviços do
// Lucro Presumido.
var ServiceCFOPPrefixes = []string{"5933", "6933"}

// IsServiceCFOP informa se o CFOP caracteriza prestação de serviço.
func IsServiceCFOP(cfop string) bool {
	for _, p := range ServiceCFOPPrefixes {
		if len(cfop) >= len(p) && cfop[:len(p)] == p {
			return true
		}
	}
	return false
}

// IsOutboundCFOP informa se o CFOP é de saída (primeiro dígito 5, 6 ou 7).
func IsOutboundCFOP(cfop string) bool {
	if cfop == "" {
		return false
	}
	return cfop[0] == '5' || cfop[0] == '6' || cfop[0] == '7'
}

// =============================================================================
// CST ICMS - Código de Situação Tributária do ICMS (Tabela B do Convênio s/nº)
// =============================================================================

// CSTICMSDescriptions descrições dos CSTs de ICMS mais comuns.
var CSTICMSDescriptions = map[string]string{
	"00": "Tributada integralmente",
	"10": "Tributada e com cobrança do ICMS por substituição tributária",
	"20": "Com redução de base de cálculo",
	"40": "Isenta",
	"41": "Não tributada",
	"51": "Diferimento",
	"60": "ICMS cobrado anteriormente por substituição tributária",
	"90": "Outras",
}

// =============================================================================
// CST PIS/COFINS (Tabelas 4.3.3 e 4.3.4 do SPED EFD-Contribuições)
// =============================================================================

// CST de saída tributada com alíquota básica/diferenciada.
const (
	CSTSaidaAliquotaBasica       = "01"
	CSTSaidaAliquotaDiferenciada = "02"
)

// CSTOutrasOperacoes é o CST sentinela para itens sem código informado:
// nunca dá direito a crédito.
const CSTOutrasOperacoes = "99"

// CSTPISCOFINSDescriptions descrições dos CSTs de PIS/COFINS usados.
var CSTPISCOFINSDescriptions = map[string]string{
	// Saídas
	"01": "Operação Tributável com Alíquota Básica",
	"02": "Operação Tributável com Alíquota Diferenciada",
	"04": "Operação Tributável Monofásica - Revenda a Alíquota Zero",
	"06": "Operação Tributável a Alíquota Zero",
	"08": "Operação sem Incidência da Contribuição",

	// Entradas com crédito
	"50": "Operação com Direito a Crédito - Vinculada Exclusivamente a Receita Tributada no Mercado Interno",
	"51": "Operação com Direito a Crédito - Vinculada Exclusivamente a Receita Não Tributada no Mercado Interno",
	"53": "Operação com Direito a Crédito - Vinculada a Receitas de Exportação",
	"60": "Crédito Presumido - Operação de Aquisição Vinculada Exclusivamente a Receita Tributada no Mercado Interno",

	// Entradas sem crédito
	"70": "Operação de Aquisição sem Direito a Crédito",
	"73": "Operação de Aquisição com Isenção",

	// Outras
	"99": "Outras Operações",
}

// CFOPDescription devolve a descrição do CFOP, ou um marcador quando desconhecido.
func CFOPDescription(code string) string {
	if d, ok := CFOPDescriptions[code]; ok {
		return d
	}
	return "CFOP desconhecido"
}

// CSTDescription devolve a descrição do CST para o imposto indicado ("ICMS" ou "PIS_COFINS").
func CSTDescription(code, tax string) string {
	if tax == "ICMS" {
		if d, ok := CSTICMSDescriptions[code]; ok {
			return d
		}
		return "CST ICMS desconhecido"
	}
	if d, ok := CSTPISCOFINSDescriptions[code]; ok {
		return d
	}
	return "CST PIS/COFINS desconhecido"
}
