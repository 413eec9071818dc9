package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/crazythursday/copywriting/internal/audit"
	"github.com/crazythursday/copywriting/internal/database"
	"github.com/crazythursday/copywriting/internal/database/runs"
	"github.com/crazythursday/copywriting/internal/http"
	"github.com/crazythursday/copywriting/internal/importers"
	"github.com/crazythursday/copywriting/internal/metrics"
	"github.com/crazythursday/copywriting/internal/policies"
	"github.com/crazythursday/copywriting/internal/services"
	"github.com/crazythursday/copywriting/internal/supabase"
	"github.com/crazythursday/copywriting/internal/tasks"
)

// =============================================================================
// Content Stores
// =============================================================================

var _ services.ContentStore = (*supabase.Client)(nil)
var _ services.ContentStore = (*database.Database)(nil)

// =============================================================================
// Import Bookkeeping
// =============================================================================

var _ services.RunRecorder = (*runs.Repository)(nil)
var _ http.RunLister = (*runs.Repository)(nil)
var _ tasks.ImportRunCleaner = (*runs.Repository)(nil)

var _ services.ImportAuditor = (*audit.Service)(nil)
var _ services.ModerationAuditor = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.CleanupAuditor = (*audit.Service)(nil)

var _ http.PayloadArchive = (*audit.Archive)(nil)

// Progress reporters
var _ importers.Reporter = (*importers.ConsoleReporter)(nil)
var _ importers.Reporter = (*importers.LogReporter)(nil)
var _ importers.Reporter = (importers.MultiReporter)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.CopywritingService = (*services.ModerationService)(nil)
var _ tasks.CopywritingImporter = (*services.ImportService)(nil)
var _ services.ModerationObserver = (*metrics.Metrics)(nil)

// =============================================================================
// Task Queue
// =============================================================================

var _ tasks.Enqueuer = (*tasks.Client)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

// =============================================================================
// Policy Sources
// =============================================================================

var _ policies.RPCCaller = (*supabase.Client)(nil)
var _ policies.Source = (*policies.RPCSource)(nil)
var _ policies.Source = (*policies.PostgresSource)(nil)
