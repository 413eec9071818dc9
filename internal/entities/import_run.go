package entities

import (
	"time"
)

type ImportRunStatus string

const (
	ImportRunRunning   ImportRunStatus = "running"
	ImportRunCompleted ImportRunStatus = "completed"
	ImportRunFailed    ImportRunStatus = "failed"
)

// ImportRun is the local history entry of one batch import, kept even when the
// records themselves went to the hosted store.
type ImportRun struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`
	Source     string          `gorm:"size:100" json:"source"` // "cli", "api", ...
	Origin     string          `gorm:"size:512" json:"origin,omitempty"`
	Status     ImportRunStatus `gorm:"size:20;index" json:"status"`
	Total      int             `json:"total"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Batches    int             `json:"batches"`
	Error      string          `gorm:"type:text" json:"error,omitempty"`
	StartedAt  time.Time       `gorm:"index" json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}
