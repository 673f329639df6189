package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/leadgen/api/internal/entity"
)

// ErrSourceNotConfigured indicates no company source is available; the caller
// should fix configuration rather than retry.
var ErrSourceNotConfigured = errors.New("company source is not configured")

// ValidationError indicates the request parameters are invalid.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// CompanySource produces AI-authored company records.
type CompanySource interface {
	Generate(ctx context.Context, industry string, count int, country string) ([]entity.CompanyRecord, error)
}

// ContactExtractor scrapes a company website for contact data.
type ContactExtractor interface {
	Extract(ctx context.Context, website string) entity.ScrapeResult
}

// Orchestrator drives enrichment jobs from submission through background
// execution to a terminal state. A failed job is final; callers resubmit.
type Orchestrator struct {
	store     *Store
	source    CompanySource
	extractor ContactExtractor
	maxCount  int
	workers   int
}

// NewOrchestrator wires an orchestrator. Source may be nil when the upstream
// AI provider is not configured; submissions then fail fast.
func NewOrchestrator(store *Store, source CompanySource, extractor ContactExtractor, maxCount, workers int) *Orchestrator {
	if maxCount <= 0 {
		maxCount = 50
	}
	if workers <= 0 {
		workers = 1
	}
	return &Orchestrator{
		store:     store,
		source:    source,
		extractor: extractor,
		maxCount:  maxCount,
		workers:   workers,
	}
}

// Submit validates the request, registers a queued job and schedules its
// background execution. It returns the job id without blocking on the work.
func (o *Orchestrator) Submit(params entity.JobParams) (string, error) {
	if err := o.validate(params); err != nil {
		return "", err
	}

	job := o.store.Create(params)
	go o.run(context.Background(), job.ID, params)

	zap.L().Info("enrich: job submitted",
		zap.String("job_id", job.ID),
		zap.String("industry", params.Industry),
		zap.Int("count", params.Count),
		zap.Bool("enrich", params.Enrich),
	)
	return job.ID, nil
}

// GenerateSync runs the whole pipeline inline and blocks until completion.
// Acceptable only for small counts.
func (o *Orchestrator) GenerateSync(ctx context.Context, params entity.JobParams) ([]entity.EnrichedRecord, error) {
	if err := o.validate(params); err != nil {
		return nil, err
	}

	companies, err := o.source.Generate(ctx, params.Industry, params.Count, params.Country)
	if err != nil {
		return nil, err
	}
	return o.enrichAll(ctx, companies, params.Enrich), nil
}

// Job returns a read-only snapshot of the job's current state.
func (o *Orchestrator) Job(id string) (entity.Job, error) {
	return o.store.Get(id)
}

func (o *Orchestrator) validate(params entity.JobParams) error {
	if o.source == nil {
		return ErrSourceNotConfigured
	}
	if strings.TrimSpace(params.Industry) == "" {
		return ValidationError{Message: "industry must not be empty"}
	}
	if strings.TrimSpace(params.Country) == "" {
		return ValidationError{Message: "country must not be empty"}
	}
	if params.Count < 1 || params.Count > o.maxCount {
		return ValidationError{Message: fmt.Sprintf("count must be between 1 and %d", o.maxCount)}
	}
	return nil
}

func (o *Orchestrator) run(ctx context.Context, jobID string, params entity.JobParams) {
	if err := o.store.Transition(jobID, entity.JobProcessing, nil, ""); err != nil {
		zap.L().Error("enrich: transition to processing failed",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return
	}

	companies, err := o.source.Generate(ctx, params.Industry, params.Count, params.Country)
	if err != nil {
		// Internal detail stays in the log; the job records a generic message.
		zap.L().Error("enrich: company source failed",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		if terr := o.store.Transition(jobID, entity.JobFailed, nil, "lead generation failed: company source unavailable"); terr != nil {
			zap.L().Error("enrich: transition to failed rejected", zap.String("job_id", jobID), zap.Error(terr))
		}
		return
	}

	records := o.enrichAll(ctx, companies, params.Enrich)
	if err := o.store.Transition(jobID, entity.JobCompleted, records, ""); err != nil {
		zap.L().Error("enrich: transition to completed rejected", zap.String("job_id", jobID), zap.Error(err))
		return
	}

	zap.L().Info("enrich: job completed",
		zap.String("job_id", jobID),
		zap.Int("companies", len(records)),
	)
}

// enrichAll produces one record per company, in input order. Companies are
// scraped in parallel up to the worker limit; per-host pacing is enforced by
// the extractor.
func (o *Orchestrator) enrichAll(ctx context.Context, companies []entity.CompanyRecord, doEnrich bool) []entity.EnrichedRecord {
	records := make([]entity.EnrichedRecord, len(companies))

	if !doEnrich || o.extractor == nil {
		for i, company := range companies {
			records[i] = FromRecord(company)
			records[i].LeadScore, records[i].LeadScoreBreakdown = Score(records[i])
		}
		return records
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, company := range companies {
		i, company := i, company
		g.Go(func() error {
			record := o.enrichOne(ctx, company)
			record.LeadScore, record.LeadScoreBreakdown = Score(record)
			records[i] = record
			return nil
		})
	}
	_ = g.Wait()

	return records
}

// enrichOne scrapes a single company and merges the result. A scrape failure
// is recovered locally: the record falls back to the AI-claimed contact data.
func (o *Orchestrator) enrichOne(ctx context.Context, company entity.CompanyRecord) entity.EnrichedRecord {
	if company.WebsiteURL == nil || strings.TrimSpace(*company.WebsiteURL) == "" {
		return Merge(company, entity.ScrapeResult{
			Socials: map[string]string{},
			Success: false,
			Reason:  "no website url",
		})
	}

	scrape := o.extractor.Extract(ctx, *company.WebsiteURL)
	if !scrape.Success {
		zap.L().Debug("enrich: scrape failed",
			zap.String("company", company.CompanyName),
			zap.String("reason", scrape.Reason),
		)
	}
	return Merge(company, scrape)
}
