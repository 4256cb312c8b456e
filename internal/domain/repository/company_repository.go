package repository

import "github.com/tu-usuario/fiscal-pro/internal/domain/entity"

// CompanyRepository define o porto de persistência de Company (DIP).
// A implementação vive em infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByCNPJ(cnpj string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
}
