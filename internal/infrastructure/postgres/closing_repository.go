package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/fiscal-pro/internal/domain"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/repository"
)

// Garante que ClosingRepo implementa repository.ClosingRepository.
var _ repository.ClosingRepository = (*ClosingRepo)(nil)

// ClosingRepo persistência dos fechamentos mensais. O resultado completo da
// apuração fica em JSONB; receita e tributo totais são colunas próprias para
// listagem sem desserializar.
type ClosingRepo struct {
	pool *pgxpool.Pool
}

// NewClosingRepository constrói o adaptador de persistência de fechamentos.
func NewClosingRepository(pool *pgxpool.Pool) *ClosingRepo {
	return &ClosingRepo{pool: pool}
}

// Create persiste um fechamento. Competência já fechada é ErrDuplicate.
func (r *ClosingRepo) Create(c *entity.MonthlyClosing) error {
	query := `
		INSERT INTO monthly_closings (id, company_id, competence, status, closed_at, closed_by, total_revenue, total_tax, calculation_result)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.Competence, c.Status, c.ClosedAt, c.ClosedBy,
		c.TotalRevenue, c.TotalTax, []byte(c.Result),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("fechamento da competência %s: %w", c.Competence, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert closing: %w", err)
	}
	return nil
}

// GetByCompetence busca o fechamento de uma competência da empresa.
func (r *ClosingRepo) GetByCompetence(companyID, competence string) (*entity.MonthlyClosing, error) {
	query := `
		SELECT id, company_id, competence, status, closed_at, closed_by, total_revenue, total_tax, calculation_result
		FROM monthly_closings WHERE company_id = $1 AND competence = $2`

	var c entity.MonthlyClosing
	var result []byte
	err := r.pool.QueryRow(context.Background(), query, companyID, competence).Scan(
		&c.ID, &c.CompanyID, &c.Competence, &c.Status, &c.ClosedAt, &c.ClosedBy,
		&c.TotalRevenue, &c.TotalTax, &result,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get closing: %w", err)
	}
	c.Result = result
	return &c, nil
}

// ListByCompany devolve os fechamentos da empresa, mais recentes primeiro.
func (r *ClosingRepo) ListByCompany(companyID string) ([]*entity.MonthlyClosing, error) {
	query := `
		SELECT id, company_id, competence, status, closed_at, closed_by, total_revenue, total_tax, calculation_result
		FROM monthly_closings WHERE company_id = $1 ORDER BY closed_at DESC`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list closings: %w", err)
	}
	defer rows.Close()

	var out []*entity.MonthlyClosing
	for rows.Next() {
		var c entity.MonthlyClosing
		var result []byte
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Competence, &c.Status, &c.ClosedAt, &c.ClosedBy,
			&c.TotalRevenue, &c.TotalTax, &result,
		); err != nil {
			return nil, fmt.Errorf("scan closing: %w", err)
		}
		c.Result = result
		out = append(out, &c)
	}
	return out, rows.Err()
}
