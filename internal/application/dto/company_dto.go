package dto

import (
	"time"

	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
)

// CreateCompanyRequest cadastro de empresa contribuinte.
type CreateCompanyRequest struct {
	Name          string             `json:"name" validate:"required"`
	CNPJ          string             `json:"cnpj" validate:"required"`
	Regime        string             `json:"regime"`
	CNAEPrincipal string             `json:"cnae_principal"`
	UF            string             `json:"uf"`
	IE            string             `json:"ie"`
	TaxProfile    *entity.TaxProfile `json:"tax_profile"`
}

// CompanyResponse visão da empresa.
type CompanyResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	CNPJ          string             `json:"cnpj"`
	Regime        string             `json:"regime"`
	Status        string             `json:"status"`
	CNAEPrincipal string             `json:"cnae_principal,omitempty"`
	UF            string             `json:"uf,omitempty"`
	IE            string             `json:"ie,omitempty"`
	TaxProfile    *entity.TaxProfile `json:"tax_profile,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// CompanyListResponse página de empresas.
type CompanyListResponse struct {
	Items  []CompanyResponse `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// CompanyFromEntity monta a resposta a partir da entidade.
func CompanyFromEntity(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		CNPJ:          c.CNPJ,
		Regime:        c.Regime,
		Status:        c.Status,
		CNAEPrincipal: c.CNAEPrincipal,
		UF:            c.UF,
		IE:            c.IE,
		TaxProfile:    c.TaxProfile,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
