package http

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/crazythursday/copywriting/internal/tasks"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version, cfg.StoreBackend, cfg.StoreCheck)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Public endpoints
	copywriting := NewCopywritingController(cfg.Moderation)
	router.GET("/api/copywriting", copywriting.ListApproved)
	router.GET("/api/copywriting/random", copywriting.Random)
	router.POST("/api/copywriting", copywriting.Submit)

	// Admin endpoints
	if cfg.AdminToken == "" {
		log.Println("WARNING: ADMIN_TOKEN is not set, admin endpoints are unauthenticated")
	}
	admin := router.Group("/api/admin", AdminTokenMiddleware(cfg.AdminToken))
	admin.GET("/copywriting", copywriting.List)
	admin.PATCH("/copywriting/:id", copywriting.Review)
	admin.DELETE("/copywriting/:id", copywriting.Delete)

	if cfg.Importer != nil {
		var queue tasks.Enqueuer
		if cfg.TaskQueue != nil {
			queue = cfg.TaskQueue
		}
		importController := NewImportController(cfg.Importer, cfg.Archive, queue, cfg.Runs)
		admin.POST("/import", importController.Import)
		if cfg.Runs != nil {
			admin.GET("/import/runs", importController.ListRuns)
			admin.GET("/import/runs/:id", importController.GetRun)
		}
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		admin.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	if cfg.Auditor != nil {
		auditController := NewAuditController(cfg.Auditor)
		admin.GET("/audit", auditController.GetAuditEvents)
		admin.GET("/copywriting/:id/history", auditController.GetHistory)
	}

	// UI routes
	if cfg.StaticPath != "" {
		router.NoRoute(NewSPAController(cfg.StaticPath).Serve)
	}

	return router
}
