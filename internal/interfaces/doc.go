// Package interfaces documents the core abstractions used throughout the application.
//
// This package holds no runtime code. checks.go pins every concrete type to the
// interfaces it is wired through, so a signature drift fails the build here
// rather than at the call site in entrypoint.
//
// # Interface Categories
//
// ## Content Stores
//
//   - importers.ContentStore: batch insert used by the import pipeline (internal/importers/pipeline.go)
//   - services.ContentStore: full read/write surface for moderation (internal/services/interfaces.go)
//
// Both are implemented by supabase.Client (hosted) and database.Database (local
// SQLite). stores.Open picks one from STORE_BACKEND.
//
// ## Bookkeeping
//
//   - services.RunRecorder: import run history (internal/database/runs)
//   - services.ImportAuditor, services.ModerationAuditor: audit trail (internal/audit)
//   - services.ModerationObserver: metrics hook (internal/metrics)
//   - importers.Reporter: per-batch progress (console, log, metrics)
//
// ## HTTP Dependencies
//
//   - http.CopywritingService: public and admin record endpoints
//   - http.RunLister, http.AuditReader, http.PayloadArchive: admin bookkeeping
//   - http.TaskQueue: asynchronous imports and task status
//
// ## Background Work
//
//   - tasks.Enqueuer: adds a task to the backlite queue (tasks.Client)
//   - tasks.CopywritingImporter: what the import task runs (services.ImportService)
//   - tasks.AuditEventCleaner, tasks.ImportRunCleaner: retention sweeps
//
// ## Policy Inspection
//
//   - policies.Source: reads pg_policies (RPC or direct Postgres)
//   - policies.RPCCaller: calls a database function (supabase.Client)
//
// # Adding a New Content Store
//
//  1. Implement services.ContentStore:
//
//     type D1Store struct { ... }
//
//     func (s *D1Store) Insert(ctx context.Context, collection string, records []entities.CopywritingInput) ([]entities.Copywriting, error)
//     func (s *D1Store) List(ctx context.Context, collection string, filter entities.ListFilter) ([]entities.Copywriting, error)
//     ...
//
//  2. Add a backend constant in internal/config and a case in stores.Open.
//
//  3. Add a compile-time check to checks.go:
//
//     var _ services.ContentStore = (*D1Store)(nil)
//
// An Insert call must be all-or-nothing for the batch it receives: the importer
// counts a batch as either fully inserted or fully failed.
//
// # Adding a New Background Task
//
//  1. Define the task with a Config() returning a backlite.QueueConfig, a
//     processor and a NewXQueue constructor in internal/tasks.
//
//  2. Register the queue in entrypoint.NewApp.
//
//  3. Enqueue it through tasks.Enqueuer (HTTP handler or scheduler).
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go.
package interfaces
