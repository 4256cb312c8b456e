package sped_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/sped"
)

const validKey = "35240511222333000181550010000001231000001234"

func validDoc() entity.FiscalDocument {
	return entity.FiscalDocument{
		ID:            "doc-1",
		Name:          "NF-e 123",
		AccessKey:     validKey,
		IssuerCNPJ:    "11222333000181",
		IssuerName:    "FORNECEDOR LTDA",
		OperationType: entity.OperationExit,
		Date:          time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Status:        entity.DocStatusClassified,
		Amount:        decimal.NewFromInt(1000),
		Items: []entity.FiscalLineItem{{
			Name:    "MERCADORIA",
			NCM:     "12345678",
			CFOP:    "5102",
			CSTPIS:  "01",
			Amount:  decimal.NewFromInt(1000),
			PPIS:    decimal.RequireFromString("1.65"),
			PCOFINS: decimal.RequireFromString("7.6"),
		}},
	}
}

func codes(issues []entity.ValidationIssue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Code
	}
	return out
}

// Competência vazia: exatamente um DOC_EMPTY e nada mais.
func TestValidate_CompetenciaVazia(t *testing.T) {
	issues := sped.Validate(nil)

	require.Len(t, issues, 1)
	assert.Equal(t, sped.CodeDocEmpty, issues[0].Code)
	assert.Equal(t, entity.SeverityError, issues[0].Severity)
	assert.True(t, entity.HasBlockingIssues(issues))
}

// Documento íntegro não gera nenhum apontamento.
func TestValidate_DocumentoIntegro(t *testing.T) {
	issues := sped.Validate([]entity.FiscalDocument{validDoc()})

	assert.Empty(t, issues)
}

// Chave de acesso fora de 44 caracteres é erro bloqueante.
func TestValidate_ChaveInvalida(t *testing.T) {
	doc := validDoc()
	doc.AccessKey = "12345"

	issues := sped.Validate([]entity.FiscalDocument{doc})

	require.Len(t, issues, 1)
	assert.Equal(t, sped.CodeInvalidKey, issues[0].Code)
	assert.Equal(t, entity.SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Details, doc.Name)
}

// CNPJ do emitente com menos de 14 dígitos é erro bloqueante.
func TestValidate_CNPJCurto(t *testing.T) {
	doc := validDoc()
	doc.IssuerCNPJ = "123"

	issues := sped.Validate([]entity.FiscalDocument{doc})

	require.Len(t, issues, 1)
	assert.Equal(t, sped.CodeInvalidCNPJ, issues[0].Code)
	assert.Contains(t, issues[0].Details, "FORNECEDOR LTDA")
}

// Documento sem itens é warning e pula as validações de item.
func TestValidate_SemItens(t *testing.T) {
	doc := validDoc()
	doc.Items = nil

	issues := sped.Validate([]entity.FiscalDocument{doc})

	require.Len(t, issues, 1)
	assert.Equal(t, sped.CodeNoItems, issues[0].Code)
	assert.Equal(t, entity.SeverityWarning, issues[0].Severity)
	assert.False(t, entity.HasBlockingIssues(issues))
}

// NCM curto ou genérico "00000000" é warning.
func TestValidate_NCMInvalido(t *testing.T) {
	short := validDoc()
	short.Items[0].NCM = "1234"

	generic := validDoc()
	generic.Items[0].NCM = "00000000"

	for name, doc := range map[string]entity.FiscalDocument{"curto": short, "generico": generic} {
		issues := sped.Validate([]entity.FiscalDocument{doc})
		require.Len(t, issues, 1, "caso %s", name)
		assert.Equal(t, sped.CodeInvalidNCM, issues[0].Code, "caso %s", name)
		assert.Equal(t, entity.SeverityWarning, issues[0].Severity, "caso %s", name)
	}
}

// Entrada com CST de crédito e alíquotas zeradas é erro bloqueante.
func TestValidate_CSTDeCreditoSemAliquota(t *testing.T) {
	doc := validDoc()
	doc.OperationType = entity.OperationEntry
	doc.Items[0].CSTPIS = "50"
	doc.Items[0].PPIS = decimal.Zero
	doc.Items[0].PCOFINS = decimal.Zero

	issues := sped.Validate([]entity.FiscalDocument{doc})

	require.Len(t, issues, 1)
	assert.Equal(t, sped.CodeCSTRateMismatch, issues[0].Code)
	assert.Contains(t, issues[0].Message, "CST 50")
}

// Saída tributada (CST 01/02) sem destaque de alíquota é erro bloqueante.
// A mesma configuração numa ENTRADA não dispara a regra.
func TestValidate_SaidaTributadaSemDestaque(t *testing.T) {
	doc := validDoc()
	doc.Items[0].PPIS = decimal.Zero
	doc.Items[0].PCOFINS = decimal.Zero

	issues := sped.Validate([]entity.FiscalDocument{doc})
	require.Len(t, issues, 1)
	assert.Equal(t, sped.CodeExitTaxError, issues[0].Code)

	doc.OperationType = entity.OperationEntry
	issues = sped.Validate([]entity.FiscalDocument{doc})
	assert.Empty(t, issues, "CST 01 em entrada não é saída tributada")
}

// Fallback do CST: CSTPIS vazio usa CSTCOFINS na checagem de coerência.
func TestValidate_FallbackCSTCOFINS(t *testing.T) {
	doc := validDoc()
	doc.OperationType = entity.OperationEntry
	doc.Items[0].CSTPIS = ""
	doc.Items[0].CSTCOFINS = "60"
	doc.Items[0].PPIS = decimal.Zero
	doc.Items[0].PCOFINS = decimal.Zero

	issues := sped.Validate([]entity.FiscalDocument{doc})

	require.Len(t, issues, 1)
	assert.Equal(t, sped.CodeCSTRateMismatch, issues[0].Code)
	assert.Contains(t, issues[0].Message, "CST 60")
}

// Documentos de meses distintos na mesma carga: warning MULTIPLE_PERIODS ao
// final, listando as competências na ordem da primeira ocorrência.
func TestValidate_PeriodosMultiplos(t *testing.T) {
	a := validDoc()
	b := validDoc()
	b.Date = time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	issues := sped.Validate([]entity.FiscalDocument{a, b})

	require.Len(t, issues, 1)
	assert.Equal(t, sped.CodeMultiplePeriods, issues[0].Code)
	assert.Contains(t, issues[0].Message, "2024-05, 2024-06")
}

// Ordem determinística: apontamentos por documento na ordem de entrada,
// períodos múltiplos por último.
func TestValidate_OrdemDeterministica(t *testing.T) {
	bad := validDoc()
	bad.AccessKey = ""
	bad.IssuerCNPJ = ""
	bad.Date = time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	issues := sped.Validate([]entity.FiscalDocument{validDoc(), bad})

	assert.Equal(t, []string{
		sped.CodeInvalidKey,
		sped.CodeInvalidCNPJ,
		sped.CodeMultiplePeriods,
	}, codes(issues))
}
