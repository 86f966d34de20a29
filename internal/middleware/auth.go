package middleware

import (
	"errors"
	"strings"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/services"

	"github.com/gin-gonic/gin"
)

const claimsKey = "user"

// Auth admits requests carrying a valid bearer token and stores its claims
// on the context.
func Auth(auth services.AuthService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := auth.VerifyToken(bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			var appErr *apperrors.Error
			if !errors.As(err, &appErr) {
				appErr = apperrors.Internal(err)
			}
			if m != nil {
				m.AuthFailures.WithLabelValues(strings.ToLower(string(appErr.Kind))).Inc()
			}
			abortWith(c, appErr)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// bearerToken returns the second space separated field of the header.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Claims returns the verified token claims, if any.
func Claims(c *gin.Context) (*services.TokenClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.TokenClaims)
	return claims, ok
}
