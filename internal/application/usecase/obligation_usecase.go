package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/fiscal-pro/internal/application/dto"
	"github.com/tu-usuario/fiscal-pro/internal/domain"
	"github.com/tu-usuario/fiscal-pro/internal/domain/entity"
	"github.com/tu-usuario/fiscal-pro/internal/domain/repository"
	"github.com/tu-usuario/fiscal-pro/internal/domain/sped"
	"github.com/tu-usuario/fiscal-pro/internal/infrastructure/receita"
	"github.com/tu-usuario/fiscal-pro/pkg/fiscal"
	"github.com/tu-usuario/fiscal-pro/pkg/logger"
)

// ObligationUseCase conduz a esteira de entrega de uma obrigação acessória:
// auditoria SPED, geração do arquivo (condicionada a zero erros) e
// transmissão. O estado avança pela máquina da entidade; transições ilegais
// sobem como erro.
type ObligationUseCase struct {
	obligations repository.ObligationRepository
	documents   repository.DocumentRepository
	companies   repository.CompanyRepository
	encoder     FileEncoder
	transmitter receita.Transmitter
	log         *logger.Logger
}

// NewObligationUseCase constrói o caso de uso da esteira de obrigações.
func NewObligationUseCase(
	obligations repository.ObligationRepository,
	documents repository.DocumentRepository,
	companies repository.CompanyRepository,
	encoder FileEncoder,
	transmitter receita.Transmitter,
	log *logger.Logger,
) *ObligationUseCase {
	return &ObligationUseCase{
		obligations: obligations,
		documents:   documents,
		companies:   companies,
		encoder:     encoder,
		transmitter: transmitter,
		log:         log.WithComponent("obligation"),
	}
}

// Create cadastra uma obrigação em estado pending. Valida competência e os
// dígitos verificadores do CNPJ da empresa.
func (uc *ObligationUseCase) Create(req dto.CreateObligationRequest) (*dto.ObligationResponse, error) {
	if _, err := fiscal.ParseCompetence(req.Competence); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	company, err := uc.companies.GetByID(req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if err := fiscal.ValidateCNPJ(company.CNPJ); err != nil {
		return nil, fmt.Errorf("CNPJ da empresa: %w", err)
	}

	now := time.Now()
	ob := &entity.Obligation{
		ID:         uuid.New().String(),
		CompanyID:  company.ID,
		Name:       req.Name,
		Competence: req.Competence,
		Deadline:   req.Deadline,
		Status:     entity.ObligationPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.obligations.Create(ob); err != nil {
		return nil, err
	}
	return dto.ObligationFromEntity(ob), nil
}

// GetByID devolve a obrigação com o resultado da última auditoria.
func (uc *ObligationUseCase) GetByID(id string) (*dto.ObligationResponse, error) {
	ob, err := uc.obligations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ob == nil {
		return nil, nil
	}
	return dto.ObligationFromEntity(ob), nil
}

// Validate roda a auditoria SPED sobre os documentos da competência e
// persiste o resultado. Sem erros bloqueantes a obrigação avança para
// validated; com erros vai para error (recuperável: basta revalidar após a
// correção dos documentos).
func (uc *ObligationUseCase) Validate(id string) (*dto.ObligationResponse, error) {
	ob, docs, _, err := uc.load(id)
	if err != nil {
		return nil, err
	}

	issues := sped.Validate(docs)
	ob.ValidationIssues = issues

	target := entity.ObligationValidated
	if entity.HasBlockingIssues(issues) {
		target = entity.ObligationError
	}
	if err := uc.advance(ob, target); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("obligation_id", ob.ID).
		Int("issues", len(issues)).
		Str("status", string(ob.Status)).
		Msg("auditoria SPED concluída")
	return dto.ObligationFromEntity(ob), nil
}

// GeneratedFile é o arquivo SPED pronto para download/entrega.
type GeneratedFile struct {
	Name    string
	Content string
}

// GenerateFile monta o arquivo SPED da obrigação. A geração é condicionada à
// auditoria: qualquer erro bloqueante interrompe antes de encodar e derruba a
// obrigação para error. Warnings não impedem o arquivo.
func (uc *ObligationUseCase) GenerateFile(id string) (*GeneratedFile, error) {
	ob, docs, company, err := uc.load(id)
	if err != nil {
		return nil, err
	}

	issues := sped.Validate(docs)
	ob.ValidationIssues = issues
	if entity.HasBlockingIssues(issues) {
		if err := uc.advance(ob, entity.ObligationError); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("auditoria com erros bloqueantes: %w", domain.ErrValidationPending)
	}

	content, err := uc.encoder.Encode(ob, docs, company)
	if err != nil {
		return nil, err
	}

	if ob.Status == entity.ObligationPending {
		if err := uc.advance(ob, entity.ObligationGenerated); err != nil {
			return nil, err
		}
	}

	competence, err := fiscal.ParseCompetence(ob.Competence)
	if err != nil {
		return nil, err
	}
	return &GeneratedFile{
		Name:    uc.encoder.FileName(company, competence),
		Content: content,
	}, nil
}

// Transmit entrega o arquivo da obrigação. Exige estado validated; aceitação
// leva a transmitted (terminal), recusa leva a error.
func (uc *ObligationUseCase) Transmit(ctx context.Context, id string) (*dto.TransmitResponse, error) {
	ob, err := uc.obligations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ob == nil {
		return nil, domain.ErrNotFound
	}
	if !ob.CanTransition(entity.ObligationTransmitted) {
		return nil, fmt.Errorf("obrigação em %s não pode ser transmitida: %w",
			ob.Status, domain.ErrConflict)
	}

	file, err := uc.GenerateFile(id)
	if err != nil {
		return nil, err
	}

	receipt, err := uc.transmitter.Transmit(ctx, file.Name, []byte(file.Content))
	if err != nil {
		if advErr := uc.advance(ob, entity.ObligationError); advErr != nil {
			return nil, advErr
		}
		return nil, fmt.Errorf("transmissão: %w", err)
	}

	target := entity.ObligationTransmitted
	if !receipt.Accepted {
		target = entity.ObligationError
	}
	if err := uc.advance(ob, target); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("obligation_id", ob.ID).
		Str("protocol", receipt.Protocol).
		Bool("accepted", receipt.Accepted).
		Msg("transmissão processada")
	return &dto.TransmitResponse{
		ObligationID: ob.ID,
		Status:       ob.Status,
		Protocol:     receipt.Protocol,
		Message:      receipt.Message,
	}, nil
}

// load carrega obrigação, documentos da competência e empresa.
func (uc *ObligationUseCase) load(id string) (*entity.Obligation, []entity.FiscalDocument, *entity.Company, error) {
	ob, err := uc.obligations.GetByID(id)
	if err != nil {
		return nil, nil, nil, err
	}
	if ob == nil {
		return nil, nil, nil, domain.ErrNotFound
	}

	company, err := uc.companies.GetByID(ob.CompanyID)
	if err != nil {
		return nil, nil, nil, err
	}
	if company == nil {
		return nil, nil, nil, fmt.Errorf("empresa da obrigação: %w", domain.ErrNotFound)
	}

	competence, err := fiscal.ParseCompetence(ob.Competence)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	docs, err := uc.documents.ListByCompetence(ob.CompanyID, competence.YearMonth())
	if err != nil {
		return nil, nil, nil, err
	}
	return ob, docs, company, nil
}

// advance move a obrigação para target e persiste. Estado já em target só
// atualiza os apontamentos.
func (uc *ObligationUseCase) advance(ob *entity.Obligation, target entity.ObligationStatus) error {
	if ob.Status != target {
		if err := ob.TransitionTo(target); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
	}
	ob.UpdatedAt = time.Now()
	return uc.obligations.Update(ob)
}
