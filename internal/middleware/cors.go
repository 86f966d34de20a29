package middleware

import (
	"net/url"
	"strings"
	"time"

	"shramsiddhi/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return OriginAllowed(cfg, origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// OriginAllowed matches the exact allow-list first, then https origins whose
// host ends with one of the allowed suffixes.
func OriginAllowed(cfg config.CORSConfig, origin string) bool {
	for _, o := range cfg.AllowedOrigins {
		if o == origin {
			return true
		}
	}

	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return false
	}
	for _, suffix := range cfg.AllowedSuffixes {
		if strings.HasSuffix(u.Hostname(), suffix) && u.Hostname() != strings.TrimPrefix(suffix, ".") {
			return true
		}
	}
	return false
}
