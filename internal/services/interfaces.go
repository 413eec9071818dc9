package services

import (
	"context"

	"github.com/crazythursday/copywriting/internal/entities"
	"github.com/crazythursday/copywriting/internal/importers"
)

// ContentStore is the full record store used by the moderation surface.
// Both supabase.Client and database.Database implement it.
type ContentStore interface {
	importers.ContentStore
	List(ctx context.Context, collection string, filter entities.ListFilter) ([]entities.Copywriting, error)
	Count(ctx context.Context, collection string, status entities.CopywritingStatus) (int64, error)
	UpdateStatus(ctx context.Context, collection string, id uint, status entities.CopywritingStatus) (*entities.Copywriting, error)
	Delete(ctx context.Context, collection string, id uint) error
}

// RunRecorder persists import run history.
type RunRecorder interface {
	Start(run *entities.ImportRun) error
	Finish(run *entities.ImportRun) error
}

// ImportAuditor records the outcome of import runs.
type ImportAuditor interface {
	LogImport(run *entities.ImportRun)
}

// ModerationAuditor records submissions and moderator actions.
type ModerationAuditor interface {
	LogSubmission(id uint, ipAddr string, err error)
	LogModeration(id uint, status entities.CopywritingStatus, ipAddr string, err error)
	LogDelete(id uint, ipAddr string, err error)
}

// ModerationObserver is notified of every successful status change.
type ModerationObserver interface {
	ObserveModeration(status entities.CopywritingStatus)
}
