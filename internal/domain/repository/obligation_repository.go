package repository

import "github.com/tu-usuario/fiscal-pro/internal/domain/entity"

// ObligationRepository porto de persistência de obrigações acessórias.
type ObligationRepository interface {
	Create(ob *entity.Obligation) error
	GetByID(id string) (*entity.Obligation, error)
	// Update persiste status e o resultado da última auditoria.
	Update(ob *entity.Obligation) error
	ListByCompany(companyID string) ([]*entity.Obligation, error)
}
