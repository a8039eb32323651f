package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/service"
	"go.uber.org/zap"
)

// Limiter decides whether one more request for key is allowed
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (service.RateDecision, error)
}

// RateLimitMiddleware rejects requests over limit per window with 429.
// Limiter failures let the request through.
func RateLimitMiddleware(limiter Limiter, limit int, window time.Duration, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + ":" + keyFunc(c)

		decision, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			zap.L().Warn("Rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:   "Too Many Requests",
				Message: "rate limit exceeded, try again in " + decision.RetryAfter.Round(time.Second).String(),
			})
			return
		}

		c.Next()
	}
}

// IPBasedKey extracts rate limit key from client IP
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}
