package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/migration"
	infrapdf "github.com/jhoicas/Invoicing-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/Invoicing-api/internal/interfaces/http"
	"github.com/jhoicas/Invoicing-api/pkg/config"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.MigrateOnStart {
		if err := migrateUp(pool, log.Named("migrate")); err != nil {
			log.Fatal().Err(err).Msg("apply migrations")
		}
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	termsRepo := postgres.NewPaymentTermsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	customerUC := billing.NewCustomerUseCase(customerRepo, txRunner,
		billing.WithGracePeriod(cfg.Customer.UndoGrace),
		billing.WithLogger(log.Named("customers")),
	)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, termsRepo, customerRepo)
	documentUC := billing.NewDocumentUseCase(
		invoiceRepo, customerRepo,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		xmlexport.NewInvoiceExporter(""),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	httpLog := log.Named("http")
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI at http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Invoicing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		DocumentUC: documentUC,
		UndoTickets: httpRouter.UndoTicketConfig{
			Secret: cfg.Undo.Secret,
			Issuer: cfg.Undo.Issuer,
		},
		DefaultGroup: cfg.Customer.DefaultGroup,
		Logger:       httpLog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

func migrateUp(pool *pgxpool.Pool, log *logger.Logger) error {
	m, err := migration.New(pool, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("close migrator")
		}
	}()
	return m.Up()
}
