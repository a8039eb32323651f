package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether every backing store answers a ping
type HealthChecker struct {
	deps map[string]pinger
}

func NewHealthChecker(deps map[string]pinger) *HealthChecker {
	return &HealthChecker{deps: deps}
}

func (h *HealthChecker) check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	type result struct {
		name string
		err  error
	}
	results := make(chan result, len(h.deps))
	for name, dep := range h.deps {
		go func() {
			results <- result{name: name, err: dep.Ping(ctx)}
		}()
	}

	failures := make(map[string]string)
	for range h.deps {
		r := <-results
		if r.err != nil {
			failures[r.name] = r.err.Error()
		}
	}
	return failures
}

// Handler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthChecker) Handler(c *gin.Context) {
	if failures := h.check(c.Request.Context()); len(failures) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "fail",
			"checks": failures,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "pass",
	})
}
