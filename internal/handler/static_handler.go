package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ServeFrontend serves bundled frontend assets from staticDir and
// falls back to an API info document for everything else. Registered
// as the NoRoute handler so API routes always win.
func ServeFrontend(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqPath := strings.TrimPrefix(c.Request.URL.Path, "/")
		if reqPath != "" && staticDir != "" {
			// Clean against the root so ".." cannot escape staticDir
			full := filepath.Join(staticDir, filepath.Clean("/"+reqPath))
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				c.File(full)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"name":   "Lumos Trade API",
			"status": "running",
			"endpoints": []string{
				"GET /health",
				"GET /current-price",
				"GET /exchange/balance",
				"GET /exchange/orders",
				"GET /exchange/trades",
				"POST /exchange/create-order",
				"DELETE /exchange/cancel-order",
			},
			"timestamp": time.Now(),
		})
	}
}
