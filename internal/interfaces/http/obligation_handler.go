package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/fiscal-pro/internal/application/dto"
	"github.com/tu-usuario/fiscal-pro/internal/application/usecase"
)

// ObligationHandler atende o ciclo de vida das obrigações acessórias.
type ObligationHandler struct {
	uc *usecase.ObligationUseCase
}

// NewObligationHandler constrói o handler.
func NewObligationHandler(uc *usecase.ObligationUseCase) *ObligationHandler {
	return &ObligationHandler{uc: uc}
}

// Create cadastra a obrigação de uma competência.
// POST /api/obligations
func (h *ObligationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateObligationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.CompanyID == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company_id e name são obrigatórios"})
	}
	resp, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID detalha a obrigação e a última auditoria.
// GET /api/obligations/:id
func (h *ObligationHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Validate roda a auditoria SPED sobre os documentos da competência e
// avança (ou recua) o estado da obrigação.
// POST /api/obligations/:id/validate
func (h *ObligationHandler) Validate(c *fiber.Ctx) error {
	resp, err := h.uc.Validate(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// File gera e devolve o arquivo SPED da obrigação. Erros bloqueantes na
// auditoria resultam em 409, sem arquivo.
// GET /api/obligations/:id/file
func (h *ObligationHandler) File(c *fiber.Ctx) error {
	file, err := h.uc.GenerateFile(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=iso-8859-1")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	return c.SendString(file.Content)
}

// Transmit transmite a obrigação validada e devolve o protocolo.
// POST /api/obligations/:id/transmit
func (h *ObligationHandler) Transmit(c *fiber.Ctx) error {
	resp, err := h.uc.Transmit(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
