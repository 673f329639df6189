package entity

import "time"

// JobStatus enumerates the lifecycle states of an enrichment job.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether a status allows no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// JobParams captures the request that created a job.
type JobParams struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
	Country  string `json:"country"`
	Enrich   bool   `json:"enrich"`
}

// Job is a tracked unit of asynchronous lead generation work. It is mutated
// only by the orchestrator's execution routine; everyone else reads snapshots.
type Job struct {
	ID          string           `json:"job_id"`
	Status      JobStatus        `json:"status"`
	Params      JobParams        `json:"params"`
	CreatedAt   time.Time        `json:"created_at"`
	StartedAt   *time.Time       `json:"started_at,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Result      []EnrichedRecord `json:"result,omitempty"`
	Error       string           `json:"error,omitempty"`
}
