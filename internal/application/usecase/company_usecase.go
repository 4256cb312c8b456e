package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/fiscal-pro/internal/application/dto"
	"github.com/tu-usuario/fiscal-pro/internal/domain"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/repository"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
)

// CompanyUseCase cadastro e consulta de empresas contribuintes.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase constrói o caso de uso com o porto de persistência.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create cadastra uma empresa. O CNPJ é validado pelos dígitos verificadores;
// CNPJ já cadastrado é ErrDuplicate.
func (uc *CompanyUseCase) Create(req dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := fiscal.ValidateCNPJ(req.CNPJ); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	existing, err := uc.repo.GetByCNPJ(req.CNPJ)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("CNPJ %s: %w", req.CNPJ, domain.ErrDuplicate)
	}

	regime := req.Regime
	if regime == "" {
		regime = entity.RegimeLucroReal
	}

	now := time.Now()
	company := &entity.Company{
		ID:            uuid.New().String(),
		Name:          req.Name,
		CNPJ:          req.CNPJ,
		Regime:        regime,
		Status:        "active",
		CNAEPrincipal: req.CNAEPrincipal,
		UF:            req.UF,
		IE:            req.IE,
		TaxProfile:    req.TaxProfile,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return dto.CompanyFromEntity(company), nil
}

// GetByID busca uma empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return dto.CompanyFromEntity(company), nil
}

// List lista empresas com paginação.
func (uc *CompanyUseCase) List(limit, offset int) (*dto.CompanyListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.CompanyFromEntity(c))
	}
	return &dto.CompanyListResponse{Items: items, Limit: limit, Offset: offset}, nil
}
