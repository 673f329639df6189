package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/leadgen/api/internal/dto"
	"github.com/octobees/leadgen/api/internal/enrich"
	"github.com/octobees/leadgen/api/internal/entity"
)

// LeadService is the slice of the orchestrator the handler consumes.
type LeadService interface {
	GenerateSync(ctx context.Context, params entity.JobParams) ([]entity.EnrichedRecord, error)
	Submit(params entity.JobParams) (string, error)
	Job(id string) (entity.Job, error)
}

// LeadsHandler serves the lead generation endpoints.
type LeadsHandler struct {
	service LeadService
}

// NewLeadsHandler wires a new LeadsHandler instance.
func NewLeadsHandler(service LeadService) *LeadsHandler {
	return &LeadsHandler{service: service}
}

// Generate runs lead generation synchronously and returns the enriched
// records with run metadata.
func (h *LeadsHandler) Generate(c echo.Context) error {
	params, err := h.bindParams(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	records, err := h.service.GenerateSync(c.Request().Context(), params)
	if err != nil {
		return h.serviceError(c, err)
	}

	response := dto.LeadResponse{
		Companies: records,
		Metadata: dto.LeadMetadata{
			Industry:       params.Industry,
			Country:        params.Country,
			RequestedCount: params.Count,
			ActualCount:    len(records),
			Enriched:       params.Enrich,
			GeneratedAt:    time.Now().UTC(),
		},
	}
	return Success(c, http.StatusOK, "leads generated", response)
}

// GenerateAsync queues a generation job and returns its id immediately.
func (h *LeadsHandler) GenerateAsync(c echo.Context) error {
	params, err := h.bindParams(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	jobID, err := h.service.Submit(params)
	if err != nil {
		return h.serviceError(c, err)
	}

	response := dto.JobQueuedResponse{
		JobID:          jobID,
		Status:         string(entity.JobQueued),
		StatusEndpoint: "/api/v1/leads/status/" + jobID,
	}
	return Success(c, http.StatusAccepted, "job queued", response)
}

// Status reports the lifecycle of an async job.
func (h *LeadsHandler) Status(c echo.Context) error {
	jobID := c.Param("job_id")
	if jobID == "" {
		return Error(c, http.StatusBadRequest, "job_id is required")
	}

	job, err := h.service.Job(jobID)
	if err != nil {
		if errors.Is(err, enrich.ErrJobNotFound) {
			return Error(c, http.StatusNotFound, "job not found")
		}
		zap.L().Error("job lookup failed", zap.String("job_id", jobID), zap.Error(err))
		return Error(c, http.StatusInternalServerError, "failed to fetch job")
	}

	return Success(c, http.StatusOK, "ok", statusResponse(job))
}

// Export returns the completed result of a job as a downloadable JSON
// document.
func (h *LeadsHandler) Export(c echo.Context) error {
	jobID := c.Param("job_id")
	if jobID == "" {
		return Error(c, http.StatusBadRequest, "job_id is required")
	}

	job, err := h.service.Job(jobID)
	if err != nil {
		if errors.Is(err, enrich.ErrJobNotFound) {
			return Error(c, http.StatusNotFound, "job not found")
		}
		zap.L().Error("job lookup failed", zap.String("job_id", jobID), zap.Error(err))
		return Error(c, http.StatusInternalServerError, "failed to fetch job")
	}

	if job.Status != entity.JobCompleted {
		return Error(c, http.StatusBadRequest, fmt.Sprintf("job is %s, export requires a completed job", job.Status))
	}

	filename := fmt.Sprintf("leads-%s.json", job.ID)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(http.StatusOK, dto.LeadResponse{
		Companies: job.Result,
		Metadata: dto.LeadMetadata{
			Industry:       job.Params.Industry,
			Country:        job.Params.Country,
			RequestedCount: job.Params.Count,
			ActualCount:    len(job.Result),
			Enriched:       job.Params.Enrich,
			GeneratedAt:    completedAt(job),
		},
	})
}

func (h *LeadsHandler) bindParams(c echo.Context) (entity.JobParams, error) {
	var payload dto.LeadRequest
	if err := c.Bind(&payload); err != nil {
		return entity.JobParams{}, errors.New("invalid JSON payload")
	}
	if err := c.Validate(&payload); err != nil {
		return entity.JobParams{}, errors.New("industry, count (1-50) and country are required")
	}
	return entity.JobParams{
		Industry: payload.Industry,
		Count:    payload.Count,
		Country:  payload.Country,
		Enrich:   payload.Enrich,
	}, nil
}

func (h *LeadsHandler) serviceError(c echo.Context, err error) error {
	var vErr enrich.ValidationError
	switch {
	case errors.As(err, &vErr):
		return Error(c, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, enrich.ErrSourceNotConfigured):
		return Error(c, http.StatusInternalServerError, "lead generation is not configured")
	default:
		zap.L().Error("lead generation failed", zap.Error(err))
		return Error(c, http.StatusInternalServerError, "lead generation failed")
	}
}

func statusResponse(job entity.Job) dto.JobStatusResponse {
	response := dto.JobStatusResponse{
		JobID:     job.ID,
		Status:    job.Status,
		CreatedAt: job.CreatedAt,
		StartedAt: job.StartedAt,
	}
	switch job.Status {
	case entity.JobCompleted:
		response.CompletedAt = job.CompletedAt
		response.Result = job.Result
	case entity.JobFailed:
		response.CompletedAt = job.CompletedAt
		response.Error = job.Error
	}
	return response
}

func completedAt(job entity.Job) time.Time {
	if job.CompletedAt != nil {
		return *job.CompletedAt
	}
	return job.CreatedAt
}
