package enrich

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/leadgen/api/internal/entity"
)

var (
	// ErrJobNotFound indicates the requested job id does not exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidTransition indicates a lifecycle transition that the state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid job transition")
)

// Store is a concurrency-safe registry of enrichment jobs keyed by job id.
// Transitions are serialized per key and atomic: a reader never observes a
// half-applied status/result pair.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*entity.Job
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{jobs: make(map[string]*entity.Job)}
}

// Create inserts a fresh queued job and returns a snapshot of it.
func (s *Store) Create(params entity.JobParams) entity.Job {
	job := &entity.Job{
		ID:        uuid.NewString(),
		Status:    entity.JobQueued,
		Params:    params,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	return snapshot(job)
}

// Get returns a read-only snapshot of the job.
func (s *Store) Get(id string) (entity.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return entity.Job{}, ErrJobNotFound
	}
	return snapshot(job), nil
}

// List returns snapshots of all known jobs, for operational visibility.
func (s *Store) List() []entity.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, snapshot(job))
	}
	return out
}

// Transition moves a job along queued → processing → {completed|failed}.
// Any other transition is rejected. Result and errMsg apply only to terminal
// transitions.
func (s *Store) Transition(id string, status entity.JobStatus, result []entity.EnrichedRecord, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrJobNotFound
	}

	now := time.Now().UTC()
	switch {
	case job.Status == entity.JobQueued && status == entity.JobProcessing:
		job.Status = status
		job.StartedAt = &now
	case job.Status == entity.JobProcessing && status == entity.JobCompleted:
		job.Status = status
		job.CompletedAt = &now
		job.Result = result
	case job.Status == entity.JobProcessing && status == entity.JobFailed:
		job.Status = status
		job.CompletedAt = &now
		job.Error = errMsg
	default:
		return ErrInvalidTransition
	}
	return nil
}

func snapshot(job *entity.Job) entity.Job {
	out := *job
	if job.Result != nil {
		out.Result = make([]entity.EnrichedRecord, len(job.Result))
		copy(out.Result, job.Result)
	}
	return out
}
