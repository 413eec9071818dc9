package http

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSPA(t *testing.T) *gin.Engine {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<div id=app></div>"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "app.js"), []byte("console.log(1)"), 0644))

	router := gin.New()
	router.NoRoute(NewSPAController(root).Serve)
	return router
}

func TestSPAController_Serve(t *testing.T) {
	router := setupSPA(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"index", "GET", "/", http.StatusOK, "<div id=app>"},
		{"client route falls back to index", "GET", "/admin", http.StatusOK, "<div id=app>"},
		{"static asset", "GET", "/assets/app.js", http.StatusOK, "console.log"},
		{"path traversal stays inside root", "GET", "/../../etc/passwd", http.StatusOK, "<div id=app>"},
		{"unknown api route", "GET", "/api/nope", http.StatusNotFound, "route not found"},
		{"non-GET", "POST", "/admin", http.StatusNotFound, "route not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.path, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestSPAController_MissingIndex(t *testing.T) {
	router := gin.New()
	router.NoRoute(NewSPAController(t.TempDir()).Serve)

	w := doRequest(router, "GET", "/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
