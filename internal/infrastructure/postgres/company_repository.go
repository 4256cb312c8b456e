package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/fiscal-pro/internal/domain"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/repository"
)

// Garante que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementação do porto CompanyRepository sobre PostgreSQL.
// O perfil tributário é persistido como JSONB.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository constrói o adaptador de persistência de empresas.
func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// Create persiste uma nova empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	profile, err := marshalProfile(company.TaxProfile)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO companies (id, name, cnpj, regime, status, cnae_principal, uf, ie, tax_profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.CNPJ, company.Regime, company.Status,
		company.CNAEPrincipal, company.UF, company.IE, profile,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("empresa com CNPJ %s: %w", company.CNPJ, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID busca uma empresa por ID. Devolve nil sem erro quando não existe.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.getBy("id", id)
}

// GetByCNPJ busca uma empresa pelo CNPJ.
func (r *CompanyRepo) GetByCNPJ(cnpj string) (*entity.Company, error) {
	return r.getBy("cnpj", cnpj)
}

func (r *CompanyRepo) getBy(column, value string) (*entity.Company, error) {
	query := fmt.Sprintf(`
		SELECT id, name, cnpj, regime, status, cnae_principal, uf, ie, tax_profile, created_at, updated_at
		FROM companies WHERE %s = $1`, column)

	var c entity.Company
	var profile []byte
	err := r.pool.QueryRow(context.Background(), query, value).Scan(
		&c.ID, &c.Name, &c.CNPJ, &c.Regime, &c.Status, &c.CNAEPrincipal,
		&c.UF, &c.IE, &profile, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	if len(profile) > 0 {
		c.TaxProfile = &entity.TaxProfile{}
		if err := json.Unmarshal(profile, c.TaxProfile); err != nil {
			return nil, fmt.Errorf("perfil tributário corrompido: %w", err)
		}
	}
	return &c, nil
}

// Update atualiza uma empresa existente.
func (r *CompanyRepo) Update(company *entity.Company) error {
	profile, err := marshalProfile(company.TaxProfile)
	if err != nil {
		return err
	}
	query := `
		UPDATE companies
		SET name = $2, cnpj = $3, regime = $4, status = $5, cnae_principal = $6,
		    uf = $7, ie = $8, tax_profile = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query,
		company.ID, company.Name, company.CNPJ, company.Regime, company.Status,
		company.CNAEPrincipal, company.UF, company.IE, profile, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List pagina as empresas cadastradas.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT id, name, cnpj, regime, status, cnae_principal, uf, ie, tax_profile, created_at, updated_at
		FROM companies ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []*entity.Company
	for rows.Next() {
		var c entity.Company
		var profile []byte
		if err := rows.Scan(
			&c.ID, &c.Name, &c.CNPJ, &c.Regime, &c.Status, &c.CNAEPrincipal,
			&c.UF, &c.IE, &profile, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		if len(profile) > 0 {
			c.TaxProfile = &entity.TaxProfile{}
			if err := json.Unmarshal(profile, c.TaxProfile); err != nil {
				return nil, fmt.Errorf("perfil tributário corrompido: %w", err)
			}
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func marshalProfile(p *entity.TaxProfile) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serializar perfil tributário: %w", err)
	}
	return b, nil
}
