package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/leadgen/api/internal/config"
	"github.com/octobees/leadgen/api/internal/enrich"
	"github.com/octobees/leadgen/api/internal/handler"
	"github.com/octobees/leadgen/api/internal/llm"
	"github.com/octobees/leadgen/api/internal/mailer"
	middlewarepkg "github.com/octobees/leadgen/api/internal/middleware"
	"github.com/octobees/leadgen/api/internal/router"
	"github.com/octobees/leadgen/api/internal/scraper"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var generator *llm.Generator
	if cfg.GeminiAPIKey != "" {
		generator, err = llm.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("failed to init gemini client", zap.Error(err))
		}
		defer generator.Close()
	} else {
		logger.Warn("GEMINI_API_KEY not set, lead generation disabled")
	}

	extractor := scraper.New(
		scraper.WithTimeout(cfg.ScrapeTimeout),
		scraper.WithHostDelay(cfg.ScrapeHostDelay),
	)

	store := enrich.NewStore()
	var source enrich.CompanySource
	if generator != nil {
		source = generator
	}
	orchestrator := enrich.NewOrchestrator(store, source, extractor, cfg.MaxCompanies, cfg.ScrapeWorkers)

	dispatcher, err := mailer.NewDispatcher(cfg)
	if err != nil {
		if !errors.Is(err, mailer.ErrNoProvider) {
			logger.Fatal("failed to init mailer", zap.Error(err))
		}
		logger.Warn("no email provider configured, email sending disabled")
		dispatcher = nil
	} else {
		logger.Info("email provider selected", zap.String("provider", dispatcher.ProviderName()))
	}

	var composer handler.OutreachComposer
	if generator != nil {
		composer = generator
	}

	var emailDispatcher handler.EmailDispatcher
	if dispatcher != nil {
		emailDispatcher = dispatcher
	}

	leadsHandler := handler.NewLeadsHandler(orchestrator)
	emailHandler := handler.NewEmailHandler(emailDispatcher, composer, cfg.MaxAttachmentMB)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, router.Handlers{
		Leads: leadsHandler,
		Email: emailHandler,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	logger.Info("server started", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
