// Package tax implementa a apuração determinística de tributos do regime
// Lucro Real (IRPJ, CSLL, PIS, COFINS, ICMS) sobre documentos fiscais
// normalizados, incluindo o comparativo com o Lucro Presumido.
//
// Todo o pacote é puro: sem I/O, sem relógio, sem aleatoriedade. A mesma
// entrada produz sempre o mesmo resultado.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
)

// Alíquotas e parâmetros padrão do Lucro Real.
// PIS/COFINS não-cumulativo: Leis 10.637/02 e 10.833/03.
// IRPJ/CSLL: base 15%/9%, adicional de 10% sobre excedente de R$ 20.000/mês.
var (
	defaultPISRate    = decimal.RequireFromString("0.0165")
	defaultCOFINSRate = decimal.RequireFromString("0.076")

	defaultIRPJRate        = decimal.RequireFromString("0.15")
	defaultCSLLRate        = decimal.RequireFromString("0.09")
	defaultSurtaxRate      = decimal.RequireFromString("0.10")
	defaultSurtaxThreshold = decimal.NewFromInt(20000) // mensal
	defaultLossOffsetCap   = decimal.RequireFromString("0.30")
)

// defaultCreditCSTs são os CSTs de entrada que geram direito a crédito de
// PIS/COFINS (50-56 e 60-66, Tabela 4.3.3 do EFD-Contribuições).
var defaultCreditCSTs = []string{
	"50", "51", "52", "53", "54", "55", "56",
	"60", "61", "62", "63", "64", "65", "66",
}

// IsCreditCST informa se o CST de entrada dá direito a crédito de PIS/COFINS
// segundo a tabela padrão. Usado fora da apuração (ex: auditoria SPED), que
// não carrega um RuleSet resolvido.
func IsCreditCST(cst string) bool {
	for _, c := range defaultCreditCSTs {
		if c == cst {
			return true
		}
	}
	return false
}

// ContributionRules parâmetros de PIS/COFINS não-cumulativo.
type ContributionRules struct {
	PISRate    decimal.Decimal
	COFINSRate decimal.Decimal
	CreditCSTs map[string]bool
}

// ProfitRules parâmetros de IRPJ/CSLL do Lucro Real.
type ProfitRules struct {
	IRPJRate               decimal.Decimal
	CSLLRate               decimal.Decimal
	SurtaxRate             decimal.Decimal
	SurtaxMonthlyThreshold decimal.Decimal
	LossOffsetCap          decimal.Decimal
}

// RuleSet é o conjunto de regras concreto de uma apuração. É um valor:
// ResolveRules devolve sempre uma cópia nova, nunca um template compartilhado,
// para que o override de um cálculo não vaze para outro executando em paralelo.
type RuleSet struct {
	Contributions ContributionRules
	Profit        ProfitRules
}

// ResolveRules resolve o RuleSet aplicável ao perfil tributário da empresa.
// profile pode ser nil (empresa sem perfil cadastrado: regras padrão).
//
// Regime monofásico: zera as alíquotas de SAÍDA de PIS/COFINS. A lista de
// CSTs de crédito permanece intacta; o crédito das entradas é uma questão
// legal separada da desoneração das saídas.
func ResolveRules(profile *entity.TaxProfile) RuleSet {
	creditCSTs := make(map[string]bool, len(defaultCreditCSTs))
	for _, cst := range defaultCreditCSTs {
		creditCSTs[cst] = true
	}

	rules := RuleSet{
		Contributions: ContributionRules{
			PISRate:    defaultPISRate,
			COFINSRate: defaultCOFINSRate,
			CreditCSTs: creditCSTs,
		},
		Profit: ProfitRules{
			IRPJRate:               defaultIRPJRate,
			CSLLRate:               defaultCSLLRate,
			SurtaxRate:             defaultSurtaxRate,
			SurtaxMonthlyThreshold: defaultSurtaxThreshold,
			LossOffsetCap:          defaultLossOffsetCap,
		},
	}

	if profile != nil && profile.IsMonofasico {
		rules.Contributions.PISRate = decimal.Zero
		rules.Contributions.COFINSRate = decimal.Zero
	}

	// Outras regras podem entrar aqui com base no CNAE ou IndustryType
	// (ex: presunção de 8% para serviços hospitalares).

	return rules
}
