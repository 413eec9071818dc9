package entrypoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crazythursday/copywriting/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Supabase: config.Supabase{Table: config.DefaultTable},
		Store:    config.Store{Backend: config.StoreBackendSQLite},
		Database: config.Database{Path: filepath.Join(dir, "copywriting.db")},
		Import:   config.Import{BatchSize: 2, RunRetentionDays: 90},
		Audit:    config.Audit{Dir: filepath.Join(dir, "audit"), RetentionDays: 30},
		Admin:    config.Admin{Token: "secret"},
		Cleanup:  config.Cleanup{Enabled: true, Schedule: "0 3 * * *"},
		Global:   config.Global{ShutdownTimeoutInSeconds: 1},
		Tasks: config.Tasks{
			Enabled:         true,
			Workers:         1,
			ReleaseAfter:    time.Minute,
			CleanupInterval: time.Hour,
		},
	}
}

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := NewApp(cfg, "test")
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		app.Shutdown(ctx)
		app.Close()
	})
	return app
}

func serve(app *App, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if strings.HasPrefix(target, "/api/admin") {
		req.Header.Set("Authorization", "Token secret")
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func TestNewApp_MissingCredentials(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Store.Backend = config.StoreBackendSupabase

	_, err := NewApp(cfg, "test")
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
}

func TestNewApp_QueuedImport(t *testing.T) {
	app := newApp(t, sqliteConfig(t))
	require.NotNil(t, app.cleanup)
	assert.True(t, app.cleanup.IsRunning())

	w := serve(app, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"store": "sqlite"`)
	assert.Contains(t, w.Body.String(), `"store": "ok"`)

	w = serve(app, http.MethodPost, "/api/admin/import", `["一", "二", {"content": "三", "status": "approved"}]`)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var accepted struct {
		Data struct {
			TaskID string `json:"task_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))
	require.NotEmpty(t, accepted.Data.TaskID)

	require.Eventually(t, func() bool {
		w := serve(app, http.MethodGet, "/api/admin/tasks/"+accepted.Data.TaskID, "")
		return w.Code == http.StatusOK && strings.Contains(w.Body.String(), `"success"`)
	}, 10*time.Second, 50*time.Millisecond)

	w = serve(app, http.MethodGet, "/api/copywriting", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "三")

	w = serve(app, http.MethodGet, "/api/admin/import/runs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"succeeded":3`)
}

func TestNewApp_WithoutTaskQueue(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Tasks.Enabled = false

	app := newApp(t, cfg)
	assert.Nil(t, app.taskClient)
	assert.Nil(t, app.cleanup)

	w := serve(app, http.MethodPost, "/api/admin/import", `["一"]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(app, http.MethodGet, "/api/admin/tasks/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewApp_InvalidCleanupScheduleIsNotFatal(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Cleanup.Schedule = "every day"

	app := newApp(t, cfg)
	assert.Nil(t, app.cleanup)
	assert.NotNil(t, app.taskClient)
}
