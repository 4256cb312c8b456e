package dto

import (
	"time"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
)

// CreateObligationRequest cadastro de uma obrigação acessória.
type CreateObligationRequest struct {
	CompanyID  string    `json:"company_id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Competence string    `json:"competence" validate:"required"` // "MM/YYYY"
	Deadline   time.Time `json:"deadline"`
}

// ObligationResponse visão da obrigação com o resultado da última auditoria.
type ObligationResponse struct {
	ID               string                   `json:"id"`
	CompanyID        string                   `json:"company_id"`
	Name             string                   `json:"name"`
	Competence       string                   `json:"competence"`
	Deadline         time.Time                `json:"deadline"`
	Status           entity.ObligationStatus  `json:"status"`
	ValidationIssues []entity.ValidationIssue `json:"validation_issues,omitempty"`
	Errors           int                      `json:"errors"`
	Warnings         int                      `json:"warnings"`
}

// ObligationFromEntity monta a resposta a partir da entidade.
func ObligationFromEntity(ob *entity.Obligation) *ObligationResponse {
	resp := &ObligationResponse{
		ID:               ob.ID,
		CompanyID:        ob.CompanyID,
		Name:             ob.Name,
		Competence:       ob.Competence,
		Deadline:         ob.Deadline,
		Status:           ob.Status,
		ValidationIssues: ob.ValidationIssues,
	}
	for _, issue := range ob.ValidationIssues {
		if issue.Severity == entity.SeverityError {
			resp.Errors++
		} else {
			resp.Warnings++
		}
	}
	return resp
}

// TransmitResponse comprovante da transmissão de uma obrigação.
type TransmitResponse struct {
	ObligationID string                  `json:"obligation_id"`
	Status       entity.ObligationStatus `json:"status"`
	Protocol     string                  `json:"protocol"`
	Message      string                  `json:"message,omitempty"`
}
