package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/fiscal-pro/internal/application/usecase"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	CalculationUC *usecase.CalculationUseCase
	ObligationUC  *usecase.ObligationUseCase
	DocumentUC    *usecase.DocumentUseCase
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)

	tax := api.Group("/tax")
	taxHandler := NewTaxHandler(deps.CalculationUC)
	tax.Post("/calculate", taxHandler.Calculate)

	obligations := api.Group("/obligations")
	obligationHandler := NewObligationHandler(deps.ObligationUC)
	obligations.Post("/", obligationHandler.Create)
	obligations.Get("/:id", obligationHandler.GetByID)
	obligations.Post("/:id/validate", obligationHandler.Validate)
	obligations.Get("/:id/file", obligationHandler.File)
	obligations.Post("/:id/transmit", obligationHandler.Transmit)

	documents := api.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents.Post("/normalize", documentHandler.Normalize)
}
