// Package sped implementa a auditoria pré-entrega de documentos fiscais
// segundo as regras de consistência do EFD ICMS/IPI e EFD-Contribuições.
// A validação é pura: recebe os documentos da competência e devolve a lista
// de apontamentos, sem I/O.
package sped

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/tax"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
)

// Códigos dos apontamentos produzidos pela auditoria.
const (
	CodeDocEmpty        = "DOC_EMPTY"
	CodeInvalidKey      = "INVALID_KEY"
	CodeInvalidCNPJ     = "INVALID_CNPJ"
	CodeNoItems         = "NO_ITEMS"
	CodeInvalidNCM      = "INVALID_NCM"
	CodeCSTRateMismatch = "CST_RATE_MISMATCH"
	CodeExitTaxError    = "EXIT_TAX_ERROR"
	CodeMultiplePeriods = "MULTIPLE_PERIODS"
)

const accessKeyLen = 44

// Validate executa a bateria de validações sobre os documentos de uma
// competência. A ordem dos apontamentos é determinística: documentos na ordem
// de entrada, regras na ordem fixa abaixo, e a checagem de períodos por último.
//
// Competência sem documentos produz um único DOC_EMPTY e encerra a bateria.
func Validate(documents []entity.FiscalDocument) []entity.ValidationIssue {
	issues := []entity.ValidationIssue{}

	if len(documents) == 0 {
		return append(issues, entity.ValidationIssue{
			Code:     CodeDocEmpty,
			Severity: entity.SeverityError,
			Message:  "Nenhum documento fiscal importado para a competência.",
		})
	}

	for i := range documents {
		issues = append(issues, validateDocument(&documents[i])...)
	}

	if months := distinctMonths(documents); len(months) > 1 {
		issues = append(issues, entity.ValidationIssue{
			Code:     CodeMultiplePeriods,
			Severity: entity.SeverityWarning,
			Message: fmt.Sprintf("Existem documentos de competências diferentes (%s). O SPED deve ser mensal.",
				strings.Join(months, ", ")),
		})
	}

	return issues
}

func validateDocument(doc *entity.FiscalDocument) []entity.ValidationIssue {
	var issues []entity.ValidationIssue

	// Chave de acesso NF-e: 44 dígitos, sempre.
	if len(doc.AccessKey) != accessKeyLen {
		issues = append(issues, entity.ValidationIssue{
			Code:     CodeInvalidKey,
			Severity: entity.SeverityError,
			Message:  "Chave de acesso inválida ou ausente.",
			Details:  "Doc: " + doc.Name,
		})
	}

	// Participante: CNPJ do emitente com os 14 dígitos.
	if len(doc.IssuerCNPJ) < 14 {
		issues = append(issues, entity.ValidationIssue{
			Code:     CodeInvalidCNPJ,
			Severity: entity.SeverityError,
			Message:  "CNPJ do emitente inválido.",
			Details:  fmt.Sprintf("Doc: %s - %s", doc.Name, doc.IssuerName),
		})
	}

	if len(doc.Items) == 0 {
		issues = append(issues, entity.ValidationIssue{
			Code:     CodeNoItems,
			Severity: entity.SeverityWarning,
			Message:  "Documento sem itens (produtos/serviços) vinculados.",
			Details:  "Doc: " + doc.Name,
		})
		return issues
	}

	for i := range doc.Items {
		issues = append(issues, validateItem(doc, &doc.Items[i])...)
	}
	return issues
}

func validateItem(doc *entity.FiscalDocument, item *entity.FiscalLineItem) []entity.ValidationIssue {
	var issues []entity.ValidationIssue

	// NCM obrigatório no registro 0200; o código genérico e o curto são
	// rejeição quase certa no C170.
	if len(item.NCM) < 8 || item.NCM == "00000000" {
		issues = append(issues, entity.ValidationIssue{
			Code:     CodeInvalidNCM,
			Severity: entity.SeverityWarning,
			Message:  "Produto com NCM inválido ou genérico. Risco de rejeição no C170.",
			Details:  fmt.Sprintf("Item: %s (Doc: %s...)", item.Name, keyPrefix(doc.AccessKey)),
		})
	}

	cst := item.CSTPIS
	if cst == "" {
		cst = item.CSTCOFINS
	}
	hasRate := item.PPIS.IsPositive() || item.PCOFINS.IsPositive()

	// Entrada com CST de crédito (50-66) e alíquota zerada: o crédito vai
	// ser glosado na escrituração.
	if !doc.IsExit() && tax.IsCreditCST(cst) && !hasRate {
		issues = append(issues, entity.ValidationIssue{
			Code:     CodeCSTRateMismatch,
			Severity: entity.SeverityError,
			Message:  fmt.Sprintf("Inconsistência: CST %s (Direito a Crédito) informado com Alíquota Zero.", cst),
			Details:  fmt.Sprintf("Item: %s - Valor: %s", item.Name, item.Amount),
		})
	}

	// Saída tributada (CST 01/02) sem destaque de alíquota.
	if doc.IsExit() && isTaxedExitCST(cst) && !hasRate {
		issues = append(issues, entity.ValidationIssue{
			Code:     CodeExitTaxError,
			Severity: entity.SeverityError,
			Message:  fmt.Sprintf("Inconsistência: Saída Tributada (CST %s) sem destaque de alíquota.", cst),
			Details:  "Item: " + item.Name,
		})
	}

	return issues
}

func isTaxedExitCST(cst string) bool {
	return cst == fiscal.CSTSaidaAliquotaBasica || cst == fiscal.CSTSaidaAliquotaDiferenciada
}

// distinctMonths devolve as competências ("YYYY-MM") presentes nos documentos,
// na ordem da primeira ocorrência.
func distinctMonths(documents []entity.FiscalDocument) []string {
	seen := make(map[string]bool, 2)
	var months []string
	for i := range documents {
		ym := documents[i].YearMonth()
		if !seen[ym] {
			seen[ym] = true
			months = append(months, ym)
		}
	}
	return months
}

func keyPrefix(key string) string {
	if len(key) > 10 {
		return key[:10]
	}
	return key
}
