package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/crazythursday/copywriting/internal/importers"
	"github.com/crazythursday/copywriting/internal/services"
)

// ImportQueueName is the queue of ImportCopywritingTask.
const ImportQueueName = "import_copywriting"

// CopywritingImporter runs import pipelines. services.ImportService implements it.
type CopywritingImporter interface {
	Import(ctx context.Context, req services.ImportRequest) (services.ImportOutcome, error)
	RecordFailure(source, origin string, cause error) string
}

// ImportCopywritingTask imports a JSON array of records in the background.
type ImportCopywritingTask struct {
	Source  string          `json:"source"` // defaults to services.SourceJob
	Origin  string          `json:"origin"`
	Payload json.RawMessage `json:"payload"`
}

// Config returns the queue configuration for import tasks. A task is never
// retried: a second attempt would insert the batches that already succeeded
// a second time.
func (t ImportCopywritingTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ImportQueueName,
		MaxAttempts: 1,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ImportCopywritingProcessor creates a processor function for ImportCopywritingTask.
// Batch failures are part of a successful run; only undecodable payloads fail the task.
func ImportCopywritingProcessor(importer CopywritingImporter) backlite.QueueProcessor[ImportCopywritingTask] {
	return func(ctx context.Context, task ImportCopywritingTask) error {
		if importer == nil {
			return fmt.Errorf("importer not configured")
		}

		source := task.Source
		if source == "" {
			source = services.SourceJob
		}

		records, err := importers.DecodeRecords(task.Payload)
		if err != nil {
			importer.RecordFailure(source, task.Origin, err)
			return fmt.Errorf("import %s: %w", task.Origin, err)
		}

		outcome, err := importer.Import(ctx, services.ImportRequest{
			Source:   source,
			Origin:   task.Origin,
			Records:  records,
			Reporter: importers.NewLogReporter("[TASK] import " + task.Origin),
		})
		if err != nil {
			return fmt.Errorf("import %s: %w", task.Origin, err)
		}

		log.Printf("[TASK] Import run %s finished: %d succeeded, %d failed of %d",
			outcome.RunID, outcome.Summary.Succeeded, outcome.Summary.Failed, outcome.Summary.Total)
		return nil
	}
}

// NewImportCopywritingQueue creates a backlite queue for import tasks.
func NewImportCopywritingQueue(importer CopywritingImporter) backlite.Queue {
	return backlite.NewQueue(ImportCopywritingProcessor(importer))
}
