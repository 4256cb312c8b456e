package repository

import "github.com/tu-usuario/fiscal-pro/internal/domain/entity"

// ClosingRepository porto de persistência dos fechamentos mensais.
type ClosingRepository interface {
	Create(closing *entity.MonthlyClosing) error
	GetByCompetence(companyID, competence string) (*entity.MonthlyClosing, error)
	ListByCompany(companyID string) ([]*entity.MonthlyClosing, error)
}
