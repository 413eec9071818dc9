package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crazythursday/copywriting/internal/database"
)

const healthCheckTimeout = 5 * time.Second

// StoreCheck reports whether the content store answers a trivial query.
type StoreCheck func(ctx context.Context) error

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Store   string            `json:"store,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports the local database and the content store backend.
// Either failing makes the service unhealthy.
type HealthController struct {
	db         *database.Database
	version    string
	store      string
	storeCheck StoreCheck
}

// NewHealthController creates a health controller. store names the backend in
// the response; a nil check reports the store as "not checked".
func NewHealthController(db *database.Database, version, store string, check StoreCheck) *HealthController {
	return &HealthController{
		db:         db,
		version:    version,
		store:      store,
		storeCheck: check,
	}
}

// Status handles GET /health
func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]string{
		"database": h.checkDatabase(ctx),
		"store":    h.checkStore(ctx),
	}

	status, code := "healthy", http.StatusOK
	for _, result := range checks {
		if isFailure(result) {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	c.IndentedJSON(code, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Store:   h.store,
		Checks:  checks,
	})
}

func (h *HealthController) checkDatabase(ctx context.Context) string {
	if h.db == nil {
		return "not configured"
	}
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func (h *HealthController) checkStore(ctx context.Context) string {
	if h.storeCheck == nil {
		return "not checked"
	}
	if err := h.storeCheck(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func isFailure(result string) bool {
	return strings.HasPrefix(result, "error:")
}
