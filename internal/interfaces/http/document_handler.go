package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/fiscal-pro/internal/application/dto"
	"github.com/tu-usuario/fiscal-pro/internal/application/usecase"
)

// DocumentHandler atende a ingestão de documentos fiscais.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler constrói o handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Normalize converte uma carga bruta de ERP no documento fiscal interno.
// POST /api/documents/normalize
func (h *DocumentHandler) Normalize(c *fiber.Ctx) error {
	var in dto.NormalizeDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.CompanyID == "" || in.Source == "" || len(in.Payload) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company_id, source e payload são obrigatórios"})
	}
	resp, err := h.uc.Normalize(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
