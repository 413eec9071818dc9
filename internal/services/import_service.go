package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/crazythursday/copywriting/internal/entities"
	"github.com/crazythursday/copywriting/internal/importers"
)

// Import sources recorded on runs and audit events.
const (
	SourceCLI = "cli"
	SourceAPI = "api"
	SourceJob = "job"
)

// ImportRequest describes one import run.
type ImportRequest struct {
	Source   string // SourceCLI, SourceAPI, SourceJob
	Origin   string // file path or archived payload name
	Records  []importers.ImportRecord
	Reporter importers.Reporter // per-run progress, e.g. the console
}

// ImportOutcome is the result of a finished run.
type ImportOutcome struct {
	RunID   string            `json:"run_id"`
	Summary importers.Summary `json:"summary"`
}

// ImportService runs the batch importer and keeps the bookkeeping around it:
// run history, audit events and shared reporters such as metrics.
type ImportService struct {
	store      importers.ContentStore
	runs       RunRecorder
	auditor    ImportAuditor
	reporters  []importers.Reporter
	collection string
	batchSize  int
}

// ImportOption configures an ImportService.
type ImportOption func(*ImportService)

func WithRunRecorder(runs RunRecorder) ImportOption {
	return func(s *ImportService) { s.runs = runs }
}

func WithImportAuditor(auditor ImportAuditor) ImportOption {
	return func(s *ImportService) { s.auditor = auditor }
}

// WithReporter adds a reporter notified on every run.
func WithReporter(reporter importers.Reporter) ImportOption {
	return func(s *ImportService) {
		if reporter != nil {
			s.reporters = append(s.reporters, reporter)
		}
	}
}

func WithImportBatchSize(size int) ImportOption {
	return func(s *ImportService) { s.batchSize = size }
}

func WithImportCollection(collection string) ImportOption {
	return func(s *ImportService) { s.collection = collection }
}

// NewImportService creates a new ImportService.
func NewImportService(store importers.ContentStore, opts ...ImportOption) *ImportService {
	s := &ImportService{
		store:      store,
		collection: entities.CopywritingTable,
		batchSize:  importers.DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BatchSize returns the batch size used for every run.
func (s *ImportService) BatchSize() int {
	return s.batchSize
}

// Import runs the pipeline over req.Records. Per-batch failures are part of the
// summary; the only errors come from the context. A context cancelled during the
// run marks it failed, since the tally then includes batches that were never
// really attempted.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (ImportOutcome, error) {
	if err := ctx.Err(); err != nil {
		return ImportOutcome{}, err
	}

	run := s.startRun(req.Source, req.Origin)

	reporters := importers.MultiReporter{}
	if req.Reporter != nil {
		reporters = append(reporters, req.Reporter)
	}
	reporters = append(reporters, s.reporters...)

	pipeline := importers.NewPipeline(s.store,
		importers.WithBatchSize(s.batchSize),
		importers.WithCollection(s.collection),
		importers.WithReporter(reporters),
	)
	summary := pipeline.Import(ctx, req.Records)

	run.Status = entities.ImportRunCompleted
	run.Total = summary.Total
	run.Succeeded = summary.Succeeded
	run.Failed = summary.Failed
	run.Batches = summary.Batches
	interrupted := ctx.Err()
	if interrupted != nil {
		run.Status = entities.ImportRunFailed
		run.Error = "interrupted: " + interrupted.Error()
	}
	s.finishRun(run)

	outcome := ImportOutcome{RunID: run.ID, Summary: summary}
	if interrupted != nil {
		return outcome, fmt.Errorf("import interrupted: %w", interrupted)
	}
	return outcome, nil
}

// RecordFailure stores a run that failed before any batch was attempted,
// e.g. on unreadable input. It returns the run ID.
func (s *ImportService) RecordFailure(source, origin string, cause error) string {
	run := s.startRun(source, origin)
	run.Status = entities.ImportRunFailed
	if cause != nil {
		run.Error = cause.Error()
	}
	s.finishRun(run)
	return run.ID
}

func (s *ImportService) startRun(source, origin string) *entities.ImportRun {
	run := &entities.ImportRun{
		ID:        uuid.New().String(),
		Source:    source,
		Origin:    origin,
		StartedAt: time.Now(),
	}
	if s.runs != nil {
		if err := s.runs.Start(run); err != nil {
			log.Printf("[IMPORT] Failed to record run start: %v", err)
		}
	}
	return run
}

func (s *ImportService) finishRun(run *entities.ImportRun) {
	if s.runs != nil {
		if err := s.runs.Finish(run); err != nil {
			log.Printf("[IMPORT] Failed to record run %s: %v", run.ID, err)
		}
	}
	if s.auditor != nil {
		s.auditor.LogImport(run)
	}
}
