// Package runs stores the history of batch import runs.
//
// A run is created in the running state before the first batch and finished
// with its final counts once the pipeline returns. Runs left running by a
// crashed process are swept by FailStale.
package runs

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/crazythursday/copywriting/internal/entities"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("import run not found")

// Repository handles import run persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new import run repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Start records a new run in the running state.
func (r *Repository) Start(run *entities.ImportRun) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = entities.ImportRunRunning
	run.FinishedAt = nil
	return r.db.Create(run).Error
}

// Finish stores the final counts and status of a run.
func (r *Repository) Finish(run *entities.ImportRun) error {
	now := time.Now()
	run.FinishedAt = &now
	return r.db.Model(&entities.ImportRun{}).
		Where("id = ?", run.ID).
		Updates(map[string]any{
			"status":      run.Status,
			"total":       run.Total,
			"succeeded":   run.Succeeded,
			"failed":      run.Failed,
			"batches":     run.Batches,
			"error":       run.Error,
			"finished_at": now,
		}).Error
}

// GetRun retrieves a run by ID.
func (r *Repository) GetRun(id string) (*entities.ImportRun, error) {
	var run entities.ImportRun
	err := r.db.Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns runs newest first along with the total count.
func (r *Repository) ListRuns(limit, offset int) ([]entities.ImportRun, int64, error) {
	var runs []entities.ImportRun
	var total int64

	query := r.db.Model(&entities.ImportRun{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("started_at DESC").Limit(limit).Offset(offset).Find(&runs).Error
	return runs, total, err
}

// FailStale marks runs still running since before the given time as failed.
func (r *Repository) FailStale(startedBefore time.Time) (int64, error) {
	result := r.db.Model(&entities.ImportRun{}).
		Where("status = ? AND started_at < ?", entities.ImportRunRunning, startedBefore).
		Updates(map[string]any{
			"status":      entities.ImportRunFailed,
			"error":       "import was interrupted",
			"finished_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// DeleteOlderThan removes finished runs that started before the given time.
func (r *Repository) DeleteOlderThan(olderThan time.Time) (int64, error) {
	result := r.db.Where("started_at < ? AND status <> ?", olderThan, entities.ImportRunRunning).
		Delete(&entities.ImportRun{})
	return result.RowsAffected, result.Error
}
