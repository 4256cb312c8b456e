package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/tax"
)

// Sem documentos de saída toda a receita é comércio: presunções de 8% (IRPJ)
// e 12% (CSLL) sobre 100.000, PIS 0,65% e COFINS 3% cumulativos.
func TestComputePresumido_SemDocumentos(t *testing.T) {
	r := tax.ComputePresumido(dec("100000"), nil)

	assertDec(t, "650", r.PIS, "PIS")
	assertDec(t, "3000", r.COFINS, "COFINS")
	assertDec(t, "1200", r.IRPJ, "IRPJ") // 8.000 x 15%, sem adicional
	assertDec(t, "1080", r.CSLL, "CSLL") // 12.000 x 9%
	assertDec(t, "5930", r.TotalTax, "TotalTax")
}

// Documento com CFOP 5933 em qualquer item marca a nota inteira como serviço
// (presunções de 32%).
func TestComputePresumido_ReceitaDeServico(t *testing.T) {
	service := classifiedDoc(entity.OperationExit, "100000", entity.FiscalLineItem{
		Name: "SERVICO DE TRANSPORTE", CFOP: "5933", Amount: dec("100000"),
	})

	r := tax.ComputePresumido(dec("100000"), []entity.FiscalDocument{service})

	assertDec(t, "4800", r.IRPJ, "IRPJ") // 32.000 x 15%, sem adicional
	assertDec(t, "2880", r.CSLL, "CSLL") // 32.000 x 9%
}

// Receita informada acima do total dos documentos: os buckets escalam na
// mesma proporção. Aqui 50/50 entre comércio e serviço, dobrados.
func TestComputePresumido_EscalaProporcional(t *testing.T) {
	docs := []entity.FiscalDocument{
		classifiedDoc(entity.OperationExit, "50000", saleItem("50000")),
		classifiedDoc(entity.OperationExit, "50000", entity.FiscalLineItem{
			Name: "FRETE", CFOP: "6933", Amount: dec("50000"),
		}),
	}

	r := tax.ComputePresumido(dec("200000"), docs)

	// comércio 100.000 x 8% + serviço 100.000 x 32% = 40.000 de base IRPJ
	assertDec(t, "6000", r.IRPJ, "IRPJ")
	// CSLL: 100.000 x 12% + 100.000 x 32% = 44.000 x 9%
	assertDec(t, "3960", r.CSLL, "CSLL")
}

// Receita informada abaixo do total dos documentos fica sem escala (só sobe).
func TestComputePresumido_NaoEscalaParaBaixo(t *testing.T) {
	docs := []entity.FiscalDocument{
		classifiedDoc(entity.OperationExit, "120000", saleItem("120000")),
	}

	r := tax.ComputePresumido(dec("100000"), docs)

	// Base IRPJ permanece sobre os 120.000 dos documentos: 9.600 x 15%.
	assertDec(t, "1440", r.IRPJ, "IRPJ")
	// PIS/COFINS sempre sobre a receita informada.
	assertDec(t, "650", r.PIS, "PIS")
}

// Adicional de IRPJ incide sobre o excedente do limite trimestral de 60.000.
func TestComputePresumido_AdicionalTrimestral(t *testing.T) {
	service := classifiedDoc(entity.OperationExit, "250000", entity.FiscalLineItem{
		Name: "CONSULTORIA", CFOP: "5933", Amount: dec("250000"),
	})

	r := tax.ComputePresumido(dec("250000"), []entity.FiscalDocument{service})

	// base 80.000: 12.000 de IRPJ base + 10% sobre 20.000 de excedente.
	assertDec(t, "14000", r.IRPJ, "IRPJ")
}

// Entradas não contam como receita na separação dos buckets.
func TestComputePresumido_IgnoraEntradas(t *testing.T) {
	entry := classifiedDoc(entity.OperationEntry, "500000", saleItem("500000"))
	exit := classifiedDoc(entity.OperationExit, "100000", saleItem("100000"))

	r := tax.ComputePresumido(dec("100000"), []entity.FiscalDocument{entry, exit})

	assertDec(t, "1200", r.IRPJ, "IRPJ")
}

// Receita zero: tudo zero, sem pânico na reconciliação.
func TestComputePresumido_ReceitaZero(t *testing.T) {
	r := tax.ComputePresumido(dec("0"), nil)

	assert.True(t, r.TotalTax.IsZero())
}
