package importers

import (
	"context"
	"fmt"

	"github.com/crazythursday/copywriting/internal/entities"
)

// ContentStore persists normalized records into a named collection.
// A single call either inserts every record or none of them.
//
// Implementations:
//   - supabase.Client (hosted store, PostgREST)
//   - database.Database (local SQLite)
type ContentStore interface {
	Insert(ctx context.Context, collection string, records []entities.CopywritingInput) ([]entities.Copywriting, error)
}

// Summary is the tally of a finished run. Succeeded + Failed == Total.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Batches   int `json:"batches"`
}

// BatchResult is the outcome of one batch. Err is nil on success.
type BatchResult struct {
	Batch    Batch
	Inserted int
	Err      error
}

func (r BatchResult) OK() bool {
	return r.Err == nil
}

// Reporter receives progress notifications. Calls arrive in batch order from
// the goroutine running the pipeline.
type Reporter interface {
	Start(total, batches int)
	BatchDone(result BatchResult)
	Finish(summary Summary)
}

// Pipeline handles the batch import workflow:
// partition → normalize → insert → tally.
//
// Batches are submitted one at a time. A failing batch is counted and
// reported, never retried, and never stops the run.
type Pipeline struct {
	store      ContentStore
	collection string
	batchSize  int
	reporter   Reporter
}

// Option configures a Pipeline.
type Option func(*Pipeline)

func WithBatchSize(size int) Option {
	return func(p *Pipeline) {
		if size > 0 {
			p.batchSize = size
		}
	}
}

func WithCollection(collection string) Option {
	return func(p *Pipeline) {
		if collection != "" {
			p.collection = collection
		}
	}
}

func WithReporter(reporter Reporter) Option {
	return func(p *Pipeline) {
		if reporter != nil {
			p.reporter = reporter
		}
	}
}

// NewPipeline creates an import pipeline writing to store.
func NewPipeline(store ContentStore, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:      store,
		collection: entities.CopywritingTable,
		batchSize:  DefaultBatchSize,
		reporter:   nopReporter{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BatchSize returns the configured batch size.
func (p *Pipeline) BatchSize() int {
	return p.batchSize
}

// Import submits records batch by batch and returns the tally.
func (p *Pipeline) Import(ctx context.Context, records []ImportRecord) Summary {
	batches := Partition(records, p.batchSize)
	p.reporter.Start(len(records), len(batches))

	summary := Summary{Total: len(records), Batches: len(batches)}
	for _, batch := range batches {
		result := p.importBatch(ctx, batch)
		if result.OK() {
			summary.Succeeded += batch.Size()
		} else {
			summary.Failed += batch.Size()
		}
		p.reporter.BatchDone(result)
	}

	p.reporter.Finish(summary)
	return summary
}

// importBatch never panics past its own boundary: every failure becomes a
// BatchResult value.
func (p *Pipeline) importBatch(ctx context.Context, batch Batch) (result BatchResult) {
	result.Batch = batch

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("insert panicked: %v", r)
		}
	}()

	payload := make([]entities.CopywritingInput, 0, batch.Size())
	for i, record := range batch.Records {
		input, err := record.Normalize()
		if err != nil {
			result.Err = fmt.Errorf("record %d: %w", batch.Offset+i+1, err)
			return result
		}
		payload = append(payload, input)
	}

	inserted, err := p.store.Insert(ctx, p.collection, payload)
	if err != nil {
		result.Err = err
		return result
	}

	result.Inserted = len(inserted)
	return result
}

type nopReporter struct{}

func (nopReporter) Start(int, int)        {}
func (nopReporter) BatchDone(BatchResult) {}
func (nopReporter) Finish(Summary)        {}
