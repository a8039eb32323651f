package observability

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PrometheusHandler exposes handler on a gin route. A nil handler answers 503.
func PrometheusHandler(handler http.Handler) gin.HandlerFunc {
	if handler == nil {
		return func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "metrics handler not initialized",
			})
		}
	}
	return gin.WrapH(handler)
}
