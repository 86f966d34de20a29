package handlers

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"shramsiddhi/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

// landingTemplate is installed on the engine by NewRouter.
var landingTemplate = template.Must(template.New("landing").Parse(`<div style="font-family: sans-serif; text-align: center; padding: 50px;">
	<h1>Shram Siddhi API is Running</h1>
	<p>This is the backend server. It provides data to the frontend application.</p>
	<p>To view the application, visit: <a href="{{.FrontendURL}}">{{.FrontendURL}}</a></p>
	<p>Health Check: <a href="/api/health">/api/health</a></p>
</div>
`))

// HealthCheck is one dependency probed by the readiness endpoint.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	frontendURL string
	checks      []HealthCheck
}

func NewHealthHandler(frontendURL string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{frontendURL: frontendURL, checks: checks}
}

// Health reports liveness only; it stays 200 while dependencies are down.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Shram Siddhi API is running"})
}

// Ready probes every dependency and answers 503 if any of them fails.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			logger.FromContext(c).Warn("readiness check failed", zap.String("check", check.Name), zap.Error(err))
			results[check.Name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[check.Name] = "ok"
	}

	body := gin.H{"status": "ready", "checks": results}
	if status != http.StatusOK {
		body["status"] = "not ready"
	}
	c.JSON(status, body)
}

func (h *HealthHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, "landing", gin.H{"FrontendURL": h.frontendURL})
}
