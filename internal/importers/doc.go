// Package importers provides the batch import pipeline for copywriting records.
//
// # Architecture
//
// The import pipeline follows a simple flow:
//
//	JSON array → DecodeRecords → []ImportRecord → Partition → Batch → Normalize → ContentStore.Insert
//
// Input elements are either bare strings or objects with a "content" field and
// an optional "status" field. Both decode into ImportRecord; anything else is
// kept as a malformed record so indices stay aligned with the source file.
//
// # Failure Accounting
//
// Each batch is one insert request and resolves as a whole: every record of a
// successful batch counts as succeeded, every record of a failed batch counts as
// failed. A malformed record fails its own batch without a store call. Batches
// are never retried and a failure never stops the run, so
//
//	summary.Succeeded + summary.Failed == summary.Total
//
// holds after every run. Only problems with the input document itself
// (unreadable, not JSON, not an array) are fatal, and those surface as
// ErrInvalidInput before any batch is attempted.
//
// # Example Usage
//
//	records, err := importers.LoadFile("data.json")
//	if err != nil {
//		return err // ErrInvalidInput
//	}
//
//	pipeline := importers.NewPipeline(store,
//		importers.WithReporter(importers.NewConsoleReporter(os.Stdout, false)),
//	)
//	summary := pipeline.Import(ctx, records)
package importers
