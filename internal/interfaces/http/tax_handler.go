package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/fiscal-pro/internal/application/dto"
	"github.com/tu-usuario/fiscal-pro/internal/application/usecase"
)

// TaxHandler atende as requisições da apuração de impostos.
type TaxHandler struct {
	uc *usecase.CalculationUseCase
}

// NewTaxHandler constrói o handler.
func NewTaxHandler(uc *usecase.CalculationUseCase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

// Calculate roda a apuração da competência; com close=true grava o
// fechamento mensal.
// POST /api/tax/calculate
func (h *TaxHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateTaxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.CompanyID == "" || in.Competence == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company_id e competence são obrigatórios"})
	}
	resp, err := h.uc.Calculate(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
