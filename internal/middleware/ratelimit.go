package middleware

import (
	"math"
	"strconv"
	"time"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/logger"
	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit rejects callers over the limiter's budget with 429. Counter
// errors let the request through.
func RateLimit(limiter *ratelimit.Limiter, message string, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ClientIP only honours forwarding headers from trusted proxies.
		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.FromContext(c).Error("rate limit counter failed",
				zap.String("limiter", limiter.Name()),
				zap.Error(err),
			)
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("RateLimit-Limit", strconv.Itoa(res.Limit))
		h.Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		h.Set("RateLimit-Reset", strconv.Itoa(secondsUntil(res.ResetAt)))

		if !res.Allowed {
			if m != nil {
				m.RateLimited.WithLabelValues(limiter.Name()).Inc()
			}
			h.Set("Retry-After", strconv.Itoa(secondsUntil(res.ResetAt)))
			abortWith(c, apperrors.New(apperrors.KindRateLimited, message))
			return
		}
		c.Next()
	}
}

func secondsUntil(t time.Time) int {
	s := int(math.Ceil(time.Until(t).Seconds()))
	if s < 0 {
		return 0
	}
	return s
}
