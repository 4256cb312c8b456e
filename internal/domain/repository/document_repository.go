package repository

import "github.com/tu-usuario/fiscal-pro/internal/domain/entity"

// DocumentRepository porto de persistência de documentos fiscais e seus itens.
type DocumentRepository interface {
	Create(doc *entity.FiscalDocument) error
	GetByID(id string) (*entity.FiscalDocument, error)
	GetByAccessKey(key string) (*entity.FiscalDocument, error)
	// ListByCompetence devolve os documentos da empresa cuja data cai na
	// competência dada ("YYYY-MM"), com itens carregados.
	ListByCompetence(companyID, yearMonth string) ([]entity.FiscalDocument, error)
	UpdateStatus(id, status string) error
}
