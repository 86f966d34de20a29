package handlers

import (
	"crypto/subtle"
	"strings"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/config"
	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/middleware"
	"shramsiddhi/internal/ratelimit"
	"shramsiddhi/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	apiLimitMessage   = "Too many requests from this IP, please try again later"
	loginLimitMessage = "Too many login attempts, please try again later"
)

// Services groups the application services the router dispatches to.
type Services struct {
	Auth           services.AuthService
	Workers        services.WorkerService
	ClientRequests services.ClientRequestService
	Inquiries      services.InquiryService
	Admin          services.AdminService
	// Checks back the readiness probe.
	Checks []HealthCheck
}

// NewRouter builds the HTTP surface. counter backs both rate limiters.
func NewRouter(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, counter ratelimit.Counter, svc Services) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	// Forwarding headers count only when a trusted proxy sent them.
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Error("invalid TRUSTED_PROXIES, trusting no proxy", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	if len(cfg.Server.RemoteIPHeaders) > 0 {
		router.RemoteIPHeaders = cfg.Server.RemoteIPHeaders
	}
	router.SetHTMLTemplate(landingTemplate)

	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(),
		middleware.Metrics(m),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORS),
		middleware.BodyLimit(cfg.Server.BodyLimitBytes),
	)

	fallback := responder{metrics: m}
	router.NoRoute(func(c *gin.Context) {
		fallback.fail(c, apperrors.NotFound("Not found"))
	})
	router.NoMethod(func(c *gin.Context) {
		fallback.fail(c, apperrors.New(apperrors.KindMethodNotAllowed, "Method not allowed"))
	})

	healthHandler := NewHealthHandler(cfg.App.FrontendURL, svc.Checks...)
	authHandler := NewAuthHandler(svc.Auth, m)
	workerHandler := NewWorkerHandler(svc.Workers, m)
	requestHandler := NewClientRequestHandler(svc.ClientRequests, m)
	inquiryHandler := NewInquiryHandler(svc.Inquiries, m)
	adminHandler := NewAdminHandler(svc.Admin, m)

	router.GET("/", healthHandler.Landing)
	if cfg.Metrics.Enabled {
		router.GET("/metrics", metricsAuth(cfg.Metrics.Token, fallback), gin.WrapH(m.Handler()))
	}

	api := router.Group("/api")
	var loginLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		apiLimiter := ratelimit.NewLimiter("api", cfg.RateLimit.APIMax, cfg.RateLimit.APIWindow, counter)
		loginLimiter := ratelimit.NewLimiter("login", cfg.RateLimit.LoginMax, cfg.RateLimit.LoginWindow, counter)
		api.Use(middleware.RateLimit(apiLimiter, apiLimitMessage, m))
		loginLimit = middleware.RateLimit(loginLimiter, loginLimitMessage, m)
	}
	requireAuth := middleware.Auth(svc.Auth, m)

	{
		api.GET("/health", healthHandler.Health)
		api.GET("/health/ready", healthHandler.Ready)
		api.POST("/auth/login", loginLimit, authHandler.Login)

		// Public submissions
		api.POST("/workers", workerHandler.Create)
		api.POST("/client-requests", requestHandler.Create)
		api.POST("/contact", inquiryHandler.CreateContact)
		api.POST("/franchise", inquiryHandler.CreateFranchise)

		api.GET("/workers", requireAuth, workerHandler.List)
		api.GET("/workers/:id", requireAuth, workerHandler.Get)
		api.PUT("/workers/:id/status", requireAuth, workerHandler.UpdateStatus)
		api.PUT("/workers/:id/verification", requireAuth, workerHandler.UpdateVerification)

		api.GET("/statistics", requireAuth, workerHandler.Statistics)
		api.GET("/analytics/:period", requireAuth, workerHandler.Analytics)

		api.GET("/client-requests", requireAuth, requestHandler.List)
		api.PUT("/client-requests/:id/status", requireAuth, requestHandler.UpdateStatus)

		api.GET("/contact", requireAuth, inquiryHandler.ListContacts)
		api.GET("/franchise", requireAuth, inquiryHandler.ListFranchise)

		admin := api.Group("/admin", requireAuth)
		admin.GET("/tables", adminHandler.Tables)
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/table/:tableName", adminHandler.TableData)
	}

	return router
}

// metricsAuth requires token as a bearer credential. An empty token leaves
// the endpoint open.
func metricsAuth(token string, r responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			r.fail(c, apperrors.New(apperrors.KindUnauthorized, "Access token required"))
			return
		}
		c.Next()
	}
}
