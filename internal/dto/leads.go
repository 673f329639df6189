package dto

import (
	"time"

	"github.com/octobees/leadgen/api/internal/entity"
)

// LeadRequest is the payload shared by the sync and async generation
// endpoints.
type LeadRequest struct {
	Industry string `json:"industry" validate:"required,min=2,max=100"`
	Count    int    `json:"count" validate:"required,min=1,max=50"`
	Country  string `json:"country" validate:"required,min=2,max=100"`
	Enrich   bool   `json:"enrich"`
}

// LeadMetadata summarizes a synchronous generation run.
type LeadMetadata struct {
	Industry       string    `json:"industry"`
	Country        string    `json:"country"`
	RequestedCount int       `json:"requested_count"`
	ActualCount    int       `json:"actual_count"`
	Enriched       bool      `json:"web_scraping_enabled"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// LeadResponse is the synchronous generation result.
type LeadResponse struct {
	Companies []entity.EnrichedRecord `json:"companies"`
	Metadata  LeadMetadata            `json:"metadata"`
}

// JobQueuedResponse is returned by the async endpoint.
type JobQueuedResponse struct {
	JobID          string `json:"job_id"`
	Status         string `json:"status"`
	StatusEndpoint string `json:"status_endpoint"`
}

// JobStatusResponse reports the lifecycle of an async job. Result and Error
// are populated only in terminal states.
type JobStatusResponse struct {
	JobID       string                  `json:"job_id"`
	Status      entity.JobStatus        `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
	StartedAt   *time.Time              `json:"started_at,omitempty"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	Result      []entity.EnrichedRecord `json:"result,omitempty"`
	Error       string                  `json:"error,omitempty"`
}
