package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/checkitsa/app-checkit/internal/observability"
	"github.com/checkitsa/app-checkit/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit rejects clients that exceed the limiter's budget with 429
func RateLimit(limiter services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Allow(c.Request.Context(), c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			observability.RateLimited.WithLabelValues(c.FullPath()).Inc()
			observability.Logger().Warn("rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			return
		}

		c.Next()
	}
}
