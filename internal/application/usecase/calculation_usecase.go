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
	"github.com/tu-usuario/fiscal-pro/internal/domain/sped"
	"github.com/tu-usuario/fiscal-pro/internal/domain/tax"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
	"github.com/tu-usuario/fiscal-pro/pkg/logger"
)

// CalculationUseCase orquestra a apuração de uma competência: carrega empresa
// e documentos, roda a engine e opcionalmente persiste o fechamento mensal.
type CalculationUseCase struct {
	engine    *tax.Engine
	companies repository.CompanyRepository
	documents repository.DocumentRepository
	closings  repository.ClosingRepository
	log       *logger.Logger
}

// NewCalculationUseCase constrói o caso de uso da apuração.
func NewCalculationUseCase(
	engine *tax.Engine,
	companies repository.CompanyRepository,
	documents repository.DocumentRepository,
	closings repository.ClosingRepository,
	log *logger.Logger,
) *CalculationUseCase {
	return &CalculationUseCase{
		engine:    engine,
		companies: companies,
		documents: documents,
		closings:  closings,
		log:       log.WithComponent("calculation"),
	}
}

// Calculate roda a apuração da competência pedida. Com Close=true o resultado
// vira um fechamento mensal persistido; competência já fechada é ErrDuplicate.
func (uc *CalculationUseCase) Calculate(req dto.CalculateTaxRequest) (*dto.CalculateTaxResponse, error) {
	competence, err := fiscal.ParseCompetence(req.Competence)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	company, err := uc.companies.GetByID(req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	docs, err := uc.documents.ListByCompetence(company.ID, competence.YearMonth())
	if err != nil {
		return nil, err
	}

	result := uc.engine.Calculate(req.Inputs(), docs, company.TaxProfile)

	uc.log.Info().
		Str("company_id", company.ID).
		Str("competence", req.Competence).
		Int("documents", len(docs)).
		Str("total_tax", result.TotalTax.String()).
		Msg("apuração concluída")

	resp := &dto.CalculateTaxResponse{
		Competence:    req.Competence,
		DocumentCount: len(docs),
		Result:        &result,
	}

	if req.Close {
		closingID, err := uc.close(company, req, &result, docs)
		if err != nil {
			return nil, err
		}
		resp.ClosingID = closingID
	}
	return resp, nil
}

// close persiste o fechamento mensal. O status reflete a auditoria SPED dos
// documentos da competência: erros bloqueantes marcam o fechamento
// "with_errors" sem impedir a gravação.
func (uc *CalculationUseCase) close(
	company *entity.Company,
	req dto.CalculateTaxRequest,
	result *tax.TaxCalculationResult,
	docs []entity.FiscalDocument,
) (string, error) {
	existing, err := uc.closings.GetByCompetence(company.ID, req.Competence)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", fmt.Errorf("competência %s: %w", req.Competence, domain.ErrDuplicate)
	}

	status := entity.ClosingCompleted
	if entity.HasBlockingIssues(sped.Validate(docs)) {
		status = entity.ClosingWithErrors
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("serializar resultado: %w", err)
	}

	closing := &entity.MonthlyClosing{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Competence:   req.Competence,
		Status:       status,
		ClosedAt:     time.Now(),
		ClosedBy:     req.ClosedBy,
		TotalRevenue: req.GrossRevenue,
		TotalTax:     result.TotalTax,
		Result:       payload,
	}
	if err := uc.closings.Create(closing); err != nil {
		return "", err
	}

	uc.log.Info().
		Str("closing_id", closing.ID).
		Str("status", status).
		Msg("fechamento mensal gravado")
	return closing.ID, nil
}
