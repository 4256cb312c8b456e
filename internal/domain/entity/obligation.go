package entity

import (
	"fmt"
	"time"
)

// ObligationStatus é o estado de uma obrigação acessória na esteira de entrega.
type ObligationStatus string

// Estados da obrigação. "transmitted" é terminal; "error" é recuperável
// reexecutando a validação após corrigir os documentos de origem.
const (
	ObligationPending     ObligationStatus = "pending"
	ObligationGenerated   ObligationStatus = "generated"
	ObligationValidated   ObligationStatus = "validated"
	ObligationTransmitted ObligationStatus = "transmitted"
	ObligationError       ObligationStatus = "error"
)

// Severidades de apontamento de validação. "error" bloqueia a geração do
// arquivo; "warning" não.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationIssue é um apontamento da bateria de validações SPED.
type ValidationIssue struct {
	Code     string `json:"code"`
	Severity string `json:"severity"` // error | warning
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
}

// HasBlockingIssues informa se a lista contém ao menos um apontamento de
// severidade "error".
func HasBlockingIssues(issues []ValidationIssue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Obligation é uma obrigação acessória de uma competência (ex: EFD mensal).
type Obligation struct {
	ID               string
	CompanyID        string
	Name             string
	Competence       string // "MM/YYYY"
	Deadline         time.Time
	Status           ObligationStatus
	ValidationIssues []ValidationIssue // resultado da última auditoria
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// allowedTransitions é o conjunto fechado de transições legais da obrigação.
// Transições fora dessa tabela (ex: transmitted -> pending) são violação de
// contrato, não mutação silenciosa.
var allowedTransitions = map[ObligationStatus][]ObligationStatus{
	ObligationPending:   {ObligationGenerated, ObligationValidated, ObligationError},
	ObligationGenerated: {ObligationValidated, ObligationError},
	ObligationValidated: {ObligationTransmitted, ObligationError},
	ObligationError:     {ObligationValidated, ObligationError},
	// transmitted: terminal, sem saídas.
}

// CanTransition informa se a transição status atual -> next é legal.
func (o *Obligation) CanTransition(next ObligationStatus) bool {
	for _, s := range allowedTransitions[o.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// TransitionTo muda o estado da obrigação, rejeitando transições ilegais.
func (o *Obligation) TransitionTo(next ObligationStatus) error {
	if !o.CanTransition(next) {
		return fmt.Errorf("transição de obrigação ilegal: %s -> %s", o.Status, next)
	}
	o.Status = next
	return nil
}
