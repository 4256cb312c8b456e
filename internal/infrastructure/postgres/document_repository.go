package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/fiscal-pro/internal/domain"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/repository"
)

// Garante que DocumentRepo implementa repository.DocumentRepository.
var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo persistência de documentos fiscais e seus itens.
// Documento e itens são gravados na mesma transação: nunca um documento
// meio-importado.
type DocumentRepo struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository constrói o adaptador de persistência de documentos.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

const documentColumns = `
	id, company_id, access_key, issuer_cnpj, issuer_name, name, type,
	operation_type, date, status, confidence, amount,
	total_icms, total_pis, total_cofins, total_ipi, created_at`

// Create persiste o documento com todos os itens, atomicamente.
func (r *DocumentRepo) Create(doc *entity.FiscalDocument) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO fiscal_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = tx.Exec(ctx, query,
		doc.ID, doc.CompanyID, doc.AccessKey, doc.IssuerCNPJ, doc.IssuerName,
		doc.Name, doc.Type, doc.OperationType, doc.Date, doc.Status,
		doc.Confidence, doc.Amount,
		doc.TotalICMS, doc.TotalPIS, doc.TotalCOFINS, doc.TotalIPI, doc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("documento com chave %s: %w", doc.AccessKey, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert document: %w", err)
	}

	itemQuery := `
		INSERT INTO fiscal_line_items (
			id, document_id, name, ncm, cfop, cst_icms, cst_pis, cst_cofins, amount,
			v_icms, p_icms, v_pis, p_pis, v_cofins, p_cofins, v_ipi, p_ipi)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	for i := range doc.Items {
		item := &doc.Items[i]
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, doc.ID, item.Name, item.NCM, item.CFOP,
			item.CSTICMS, item.CSTPIS, item.CSTCOFINS, item.Amount,
			item.VICMS, item.PICMS, item.VPIS, item.PPIS,
			item.VCOFINS, item.PCOFINS, item.VIPI, item.PIPI,
		); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByID busca um documento com itens. Devolve nil sem erro quando não existe.
func (r *DocumentRepo) GetByID(id string) (*entity.FiscalDocument, error) {
	return r.getBy("id", id)
}

// GetByAccessKey busca um documento pela chave de acesso.
func (r *DocumentRepo) GetByAccessKey(key string) (*entity.FiscalDocument, error) {
	return r.getBy("access_key", key)
}

func (r *DocumentRepo) getBy(column, value string) (*entity.FiscalDocument, error) {
	query := fmt.Sprintf(`SELECT %s FROM fiscal_documents WHERE %s = $1`, documentColumns, column)

	row := r.pool.QueryRow(context.Background(), query, value)
	doc, err := scanDocument(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	if err := r.loadItems(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListByCompetence devolve os documentos da empresa no mês de competência
// ("YYYY-MM"), com itens, ordenados por data e chave.
func (r *DocumentRepo) ListByCompetence(companyID, yearMonth string) ([]entity.FiscalDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM fiscal_documents
		WHERE company_id = $1 AND to_char(date, 'YYYY-MM') = $2
		ORDER BY date, access_key`
	rows, err := r.pool.Query(context.Background(), query, companyID, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []entity.FiscalDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range docs {
		if err := r.loadItems(&docs[i]); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// UpdateStatus muda o estado de processamento do documento.
func (r *DocumentRepo) UpdateStatus(id, status string) error {
	cmd, err := r.pool.Exec(context.Background(),
		`UPDATE fiscal_documents SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) loadItems(doc *entity.FiscalDocument) error {
	query := `
		SELECT id, document_id, name, ncm, cfop, cst_icms, cst_pis, cst_cofins, amount,
		       v_icms, p_icms, v_pis, p_pis, v_cofins, p_cofins, v_ipi, p_ipi
		FROM fiscal_line_items WHERE document_id = $1 ORDER BY id`
	rows, err := r.pool.Query(context.Background(), query, doc.ID)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.FiscalLineItem
		if err := rows.Scan(
			&item.ID, &item.DocumentID, &item.Name, &item.NCM, &item.CFOP,
			&item.CSTICMS, &item.CSTPIS, &item.CSTCOFINS, &item.Amount,
			&item.VICMS, &item.PICMS, &item.VPIS, &item.PPIS,
			&item.VCOFINS, &item.PCOFINS, &item.VIPI, &item.PIPI,
		); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		doc.Items = append(doc.Items, item)
	}
	return rows.Err()
}

func scanDocument(row pgx.Row) (*entity.FiscalDocument, error) {
	var d entity.FiscalDocument
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.AccessKey, &d.IssuerCNPJ, &d.IssuerName,
		&d.Name, &d.Type, &d.OperationType, &d.Date, &d.Status,
		&d.Confidence, &d.Amount,
		&d.TotalICMS, &d.TotalPIS, &d.TotalCOFINS, &d.TotalIPI, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
