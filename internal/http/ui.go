package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// SPAController serves a built single-page app. Paths that do not match a
// file fall back to index.html so client-side routes like /admin resolve.
type SPAController struct {
	root string
}

func NewSPAController(root string) *SPAController {
	return &SPAController{root: root}
}

// Serve is registered as the router's NoRoute handler.
func (sc *SPAController) Serve(c *gin.Context) {
	method := c.Request.Method
	if (method != http.MethodGet && method != http.MethodHead) || isAPIPath(c.Request.URL.Path) {
		respondNotFound(c, "route")
		return
	}

	clean := path.Clean("/" + c.Request.URL.Path)
	file := filepath.Join(sc.root, filepath.FromSlash(clean))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}

	index := filepath.Join(sc.root, "index.html")
	if _, err := os.Stat(index); err != nil {
		respondNotFound(c, "page")
		return
	}
	c.File(index)
}

func isAPIPath(p string) bool {
	return strings.HasPrefix(p, "/api/") || p == "/api" || p == "/metrics"
}
