package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/fiscal-pro/internal/application/usecase"
	"github.com/tu-usuario/fiscal-pro/internal/domain/tax"
	"github.com/tu-usuario/fiscal-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/fiscal-pro/internal/infrastructure/receita"
	infrasped "github.com/tu-usuario/fiscal-pro/internal/infrastructure/sped"
	httpRouter "github.com/tu-usuario/fiscal-pro/internal/interfaces/http"
	"github.com/tu-usuario/fiscal-pro/pkg/config"
	"github.com/tu-usuario/fiscal-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	obligationRepo := postgres.NewObligationRepository(pool)
	closingRepo := postgres.NewClosingRepository(pool)

	transmitter, err := receita.NewSimulatedTransmitter(cfg.Receita.Env, cfg.Receita.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("transmissor RFB")
	}
	encoder := infrasped.NewEFDWriter()

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	calculationUC := usecase.NewCalculationUseCase(
		tax.NewEngine(), companyRepo, documentRepo, closingRepo, log)
	obligationUC := usecase.NewObligationUseCase(
		obligationRepo, documentRepo, companyRepo, encoder, transmitter, log)
	documentUC := usecase.NewDocumentUseCase(documentRepo, companyRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		CalculationUC: calculationUC,
		ObligationUC:  obligationUC,
		DocumentUC:    documentUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
