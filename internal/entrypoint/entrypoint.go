package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crazythursday/copywriting/internal/audit"
	"github.com/crazythursday/copywriting/internal/config"
	"github.com/crazythursday/copywriting/internal/database"
	auditrepo "github.com/crazythursday/copywriting/internal/database/audit"
	"github.com/crazythursday/copywriting/internal/database/runs"
	"github.com/crazythursday/copywriting/internal/entities"
	http_controllers "github.com/crazythursday/copywriting/internal/http"
	"github.com/crazythursday/copywriting/internal/metrics"
	"github.com/crazythursday/copywriting/internal/scheduler"
	"github.com/crazythursday/copywriting/internal/services"
	"github.com/crazythursday/copywriting/internal/stores"
	"github.com/crazythursday/copywriting/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// staleRunAge is how long a run may stay "running" before startup marks it failed.
const staleRunAge = time.Hour

// App is the fully wired server.
type App struct {
	Router *gin.Engine

	db         *database.Database
	taskClient *tasks.Client
	cleanup    *scheduler.CleanupScheduler
	cancel     context.CancelFunc
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if onShutdown != nil {
			onShutdown(context.Background())
		}
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work after the listener so no new imports get enqueued.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
	return nil
}

// NewApp opens the stores and builds the router with every optional surface
// the configuration enables.
func NewApp(cfg *config.Config, version string) (*App, error) {
	if stores.NeedsCredentials(cfg) {
		if err := cfg.Supabase.Validate(); err != nil {
			return nil, err
		}
	}
	backend := cfg.Store.Backend
	if backend == "" {
		backend = config.StoreBackendSupabase
	}
	log.Printf("Store backend: %s (collection %s)", backend, cfg.Supabase.Table)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app := &App{db: db}

	store, err := stores.Open(cfg, db)
	if err != nil {
		app.Close()
		return nil, err
	}

	runRepo := runs.NewRepository(db.DB)
	if n, err := runRepo.FailStale(time.Now().Add(-staleRunAge)); err != nil {
		log.Printf("WARNING: Failed to close stale import runs: %v", err)
	} else if n > 0 {
		log.Printf("Marked %d interrupted import runs as failed", n)
	}

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	m := metrics.New(nil)

	importService := services.NewImportService(store,
		services.WithRunRecorder(runRepo),
		services.WithImportAuditor(auditService),
		services.WithReporter(m.ImportReporter()),
		services.WithImportBatchSize(cfg.Import.BatchSize),
		services.WithImportCollection(cfg.Supabase.Table),
	)
	moderation := services.NewModerationService(store,
		services.WithModerationAuditor(auditService),
		services.WithModerationObserver(m),
		services.WithModerationCollection(cfg.Supabase.Table),
	)

	storeCheck := func(ctx context.Context) error {
		_, err := store.Count(ctx, cfg.Supabase.Table, entities.StatusApproved)
		return err
	}

	routerCfg := http_controllers.RouterConfig{
		Moderation:   moderation,
		Importer:     importService,
		Database:     db,
		StoreBackend: string(backend),
		StoreCheck:   storeCheck,
		Archive:      audit.NewArchive(cfg.Audit.Dir),
		Runs:         runRepo,
		Auditor:      auditService,
		Metrics:      m,
		AdminToken:   cfg.Admin.Token,
		StaticPath:   cfg.UI.StaticPath,
		Version:      version,
	}
	if cfg.Admin.Token == "" {
		log.Printf("WARNING: ADMIN_TOKEN is not set. Admin endpoints are unauthenticated.")
	}

	if cfg.Tasks.Enabled {
		taskClient, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
			DatabasePath:    cfg.Tasks.DatabasePath,
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
		app.taskClient = taskClient

		taskClient.Register(
			tasks.NewImportCopywritingQueue(importService),
			tasks.NewCleanupAuditEventsQueue(auditService, auditService),
			tasks.NewCleanupImportRunsQueue(runRepo, auditService),
		)

		var ctx context.Context
		ctx, app.cancel = context.WithCancel(context.Background())
		taskClient.Start(ctx)
		routerCfg.TaskQueue = taskClient

		if cfg.Cleanup.Enabled {
			app.cleanup = scheduler.NewCleanupScheduler(taskClient, scheduler.CleanupConfig{
				Schedule:           cfg.Cleanup.Schedule,
				AuditRetentionDays: cfg.Audit.RetentionDays,
				RunRetentionDays:   cfg.Import.RunRetentionDays,
			})
			if err := app.cleanup.Start(ctx); err != nil {
				log.Printf("WARNING: Cleanup scheduler disabled: %v", err)
				app.cleanup = nil
			}
		}
	} else {
		log.Printf("Task queue disabled: API imports run inline and cleanup is not scheduled")
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Shutdown stops the scheduler and drains the task queue.
func (a *App) Shutdown(ctx context.Context) {
	if a.cleanup != nil {
		a.cleanup.Stop()
	}
	if a.taskClient != nil {
		a.taskClient.Stop(ctx)
	}
	if a.cancel != nil {
		a.cancel()
	}
}

// Close releases the databases. Call after Shutdown.
func (a *App) Close() {
	if a.taskClient != nil {
		if err := a.taskClient.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}
	if err := a.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

func Run(cfg *config.Config, version string) error {
	log.Printf("Starting copywriting service v%s", version)

	app, err := NewApp(cfg, version)
	if err != nil {
		return err
	}
	defer app.Close()

	return Serve(app.Router, cfg, app.Shutdown)
}
