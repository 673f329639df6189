package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leadgen/api/internal/config"
	"github.com/octobees/leadgen/api/internal/handler"
	middlewarepkg "github.com/octobees/leadgen/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Leads *handler.LeadsHandler
	Email *handler.EmailHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{
			"status":            "ok",
			"gemini_configured": cfg.GeminiAPIKey != "",
		})
	})

	api := e.Group("/api/v1")

	leads := api.Group("/leads")
	leads.POST("/generate", handlers.Leads.Generate, middlewarepkg.RateLimiter(cfg.RateLimitLeads))
	leads.POST("/generate-async", handlers.Leads.GenerateAsync, middlewarepkg.RateLimiter(cfg.RateLimitLeads))
	leads.GET("/status/:job_id", handlers.Leads.Status)
	leads.GET("/export/:job_id", handlers.Leads.Export)

	email := api.Group("/email")
	email.POST("/send", handlers.Email.Send)
	email.POST("/generate-content", handlers.Email.GenerateContent)
}
