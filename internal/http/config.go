package http

import (
	"github.com/crazythursday/copywriting/internal/database"
	"github.com/crazythursday/copywriting/internal/metrics"
	"github.com/crazythursday/copywriting/internal/tasks"
)

// TaskQueue enqueues background imports and reports task state.
type TaskQueue interface {
	tasks.Enqueuer
	TaskStatusReader
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. Optional dependencies are left nil.
type RouterConfig struct {
	// Core dependencies
	Moderation CopywritingService
	Importer   tasks.CopywritingImporter

	// Local database and content store for health checks (optional)
	Database     *database.Database
	StoreBackend string
	StoreCheck   StoreCheck

	// Import bookkeeping (optional)
	Archive PayloadArchive
	Runs    RunLister
	Auditor AuditReader

	// Task queue client (optional). Without it imports run inline.
	TaskQueue TaskQueue

	Metrics *metrics.Metrics

	// Authorization token for /api/admin. Empty disables the check.
	AdminToken string

	// Built SPA directory (optional)
	StaticPath string

	// Application info
	Version string
}
