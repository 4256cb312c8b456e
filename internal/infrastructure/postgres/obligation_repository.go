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

// Garante que ObligationRepo implementa repository.ObligationRepository.
var _ repository.ObligationRepository = (*ObligationRepo)(nil)

// ObligationRepo persistência de obrigações acessórias. Os apontamentos da
// última auditoria ficam em JSONB junto da obrigação.
type ObligationRepo struct {
	pool *pgxpool.Pool
}

// NewObligationRepository constrói o adaptador de persistência de obrigações.
func NewObligationRepository(pool *pgxpool.Pool) *ObligationRepo {
	return &ObligationRepo{pool: pool}
}

// Create persiste uma nova obrigação.
func (r *ObligationRepo) Create(ob *entity.Obligation) error {
	issues, err := marshalIssues(ob.ValidationIssues)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO obligations (id, company_id, name, competence, deadline, status, validation_issues, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.pool.Exec(context.Background(), query,
		ob.ID, ob.CompanyID, ob.Name, ob.Competence, ob.Deadline, ob.Status,
		issues, ob.CreatedAt, ob.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("obrigação %s/%s: %w", ob.Name, ob.Competence, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert obligation: %w", err)
	}
	return nil
}

// GetByID busca uma obrigação. Devolve nil sem erro quando não existe.
func (r *ObligationRepo) GetByID(id string) (*entity.Obligation, error) {
	query := `
		SELECT id, company_id, name, competence, deadline, status, validation_issues, created_at, updated_at
		FROM obligations WHERE id = $1`

	var ob entity.Obligation
	var issues []byte
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&ob.ID, &ob.CompanyID, &ob.Name, &ob.Competence, &ob.Deadline,
		&ob.Status, &issues, &ob.CreatedAt, &ob.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get obligation: %w", err)
	}
	if err := unmarshalIssues(issues, &ob); err != nil {
		return nil, err
	}
	return &ob, nil
}

// Update persiste status e resultado da última auditoria.
func (r *ObligationRepo) Update(ob *entity.Obligation) error {
	issues, err := marshalIssues(ob.ValidationIssues)
	if err != nil {
		return err
	}
	query := `
		UPDATE obligations
		SET status = $2, validation_issues = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.pool.Exec(context.Background(), query,
		ob.ID, ob.Status, issues, ob.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update obligation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany devolve as obrigações da empresa, mais recentes primeiro.
func (r *ObligationRepo) ListByCompany(companyID string) ([]*entity.Obligation, error) {
	query := `
		SELECT id, company_id, name, competence, deadline, status, validation_issues, created_at, updated_at
		FROM obligations WHERE company_id = $1 ORDER BY deadline DESC`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list obligations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Obligation
	for rows.Next() {
		var ob entity.Obligation
		var issues []byte
		if err := rows.Scan(
			&ob.ID, &ob.CompanyID, &ob.Name, &ob.Competence, &ob.Deadline,
			&ob.Status, &issues, &ob.CreatedAt, &ob.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan obligation: %w", err)
		}
		if err := unmarshalIssues(issues, &ob); err != nil {
			return nil, err
		}
		out = append(out, &ob)
	}
	return out, rows.Err()
}

func marshalIssues(issues []entity.ValidationIssue) ([]byte, error) {
	if issues == nil {
		return nil, nil
	}
	b, err := json.Marshal(issues)
	if err != nil {
		return nil, fmt.Errorf("serializar apontamentos: %w", err)
	}
	return b, nil
}

func unmarshalIssues(raw []byte, ob *entity.Obligation) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &ob.ValidationIssues); err != nil {
		return fmt.Errorf("apontamentos corrompidos: %w", err)
	}
	return nil
}
