package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/fiscal-pro/internal/application/dto"
	"github.com/tu-usuario/fiscal-pro/internal/domain"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/repository"
	"github.com/tu-usuario/fiscal-pro/internal/infrastructure/erp"
	"github.com/tu-usuario/fiscal-pro/pkg/logger"
)

// DocumentUseCase normaliza cargas brutas de ERP e persiste o documento
// fiscal resultante.
type DocumentUseCase struct {
	documents repository.DocumentRepository
	companies repository.CompanyRepository
	log       *logger.Logger
}

// NewDocumentUseCase constrói o caso de uso de normalização.
func NewDocumentUseCase(
	documents repository.DocumentRepository,
	companies repository.CompanyRepository,
	log *logger.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		documents: documents,
		companies: companies,
		log:       log.WithComponent("document"),
	}
}

// Normalize converte a carga bruta no documento interno e persiste.
// Documento com itens e data de emissão legível sai classificado e já
// participa da apuração; sem itens ou sem data fica em processing aguardando
// correção. Chave de acesso repetida é ErrDuplicate.
func (uc *DocumentUseCase) Normalize(req dto.NormalizeDocumentRequest) (*dto.DocumentResponse, error) {
	company, err := uc.companies.GetByID(req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	doc, err := uc.normalize(req)
	if err != nil {
		return nil, err
	}

	if doc.AccessKey != "" {
		existing, err := uc.documents.GetByAccessKey(doc.AccessKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("chave %s: %w", doc.AccessKey, domain.ErrDuplicate)
		}
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now()
	for i := range doc.Items {
		doc.Items[i].ID = uuid.New().String()
		doc.Items[i].DocumentID = doc.ID
	}
	if len(doc.Items) > 0 && !doc.Date.IsZero() {
		doc.Status = entity.DocStatusClassified
	}

	if err := uc.documents.Create(doc); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("document_id", doc.ID).
		Str("source", req.Source).
		Str("status", doc.Status).
		Msg("documento normalizado")
	return dto.DocumentFromEntity(doc), nil
}

func (uc *DocumentUseCase) normalize(req dto.NormalizeDocumentRequest) (*entity.FiscalDocument, error) {
	switch req.Source {
	case erp.SourceNFeXML:
		var raw erp.RawXML
		if err := json.Unmarshal(req.Payload, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return erp.NormalizeNFeXML(&raw, req.CompanyID)
	case erp.SourceInvoice:
		var raw erp.RawInvoice
		if err := json.Unmarshal(req.Payload, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return erp.NormalizeInvoice(&raw, req.CompanyID)
	case erp.SourceServiceInvoice:
		var raw erp.RawServiceInvoice
		if err := json.Unmarshal(req.Payload, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return erp.NormalizeServiceInvoice(&raw, req.CompanyID)
	default:
		return nil, fmt.Errorf("origem %q desconhecida: %w", req.Source, domain.ErrInvalidInput)
	}
}
