package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"shramsiddhi/internal/config"
	"shramsiddhi/internal/metrics"
	"shramsiddhi/internal/models"
	"shramsiddhi/internal/ratelimit"
	"shramsiddhi/internal/repository"
	"shramsiddhi/internal/services"
	"shramsiddhi/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	adminEmail    = "admin@shramsiddhi.com"
	adminPassword = "Admin@123"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "shram-siddhi-api", Environment: "test", FrontendURL: "https://shramsiddhi.com"},
		Server: config.ServerConfig{Port: "0", BodyLimitBytes: 1 << 20},
		Auth:   config.AuthConfig{JWTSecret: "router-test-secret", TokenTTL: 24 * time.Hour},
		CORS: config.CORSConfig{
			AllowedOrigins:  []string{"https://shramsiddhi.com"},
			AllowedSuffixes: []string{".vercel.app"},
		},
		RateLimit: config.RateLimitConfig{
			Enabled:     true,
			APIMax:      1000,
			APIWindow:   15 * time.Minute,
			LoginMax:    10,
			LoginWindow: time.Hour,
		},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Worker{},
		&models.ClientRequest{},
		&models.ContactMessage{},
		&models.FranchiseApplication{},
	))
	return db
}

// newTestRouter wires the real stack. A nil db starts the store unavailable.
func newTestRouter(t *testing.T, cfg *config.Config, db *gorm.DB) *gin.Engine {
	t.Helper()
	sanitizer, err := validation.NewSanitizer()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	if db != nil {
		_, err := services.NewUserService(userRepo).EnsureDefaultAdmin(context.Background(), adminEmail, adminPassword)
		require.NoError(t, err)
	}

	svc := Services{
		Auth:           services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Workers:        services.NewWorkerService(repository.NewWorkerRepository(db), sanitizer),
		ClientRequests: services.NewClientRequestService(repository.NewClientRequestRepository(db), sanitizer),
		Inquiries:      services.NewInquiryService(repository.NewContactRepository(db), repository.NewFranchiseRepository(db), sanitizer),
		Admin:          services.NewAdminService(repository.NewAdminRepository(db)),
	}
	return NewRouter(cfg, zap.NewNop(), metrics.New(), ratelimit.NewMemoryCounter(), svc)
}

func perform(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": adminPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestLogin_DefaultAdmin(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))

	w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": adminPassword})

	require.Equal(t, http.StatusOK, w.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, adminEmail, resp.User.Email)
	assert.Equal(t, "admin", resp.User.Role)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestLogin_Failures(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))

	unknown := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ghost@shramsiddhi.com", "password": adminPassword})
	wrong := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, wrong.Body.String())

	missing := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail})
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.JSONEq(t, `{"error":"Email and password are required"}`, missing.Body.String())

	garbage := perform(r, http.MethodPost, "/api/auth/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, garbage.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.LoginMax = 2
	r := newTestRouter(t, cfg, openTestDB(t))

	for i := 0; i < 2; i++ {
		w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": "bad"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": adminPassword})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many login attempts, please try again later"}`, w.Body.String())
}

func loginFrom(r http.Handler, peer, forwardedFor string) int {
	raw, _ := json.Marshal(gin.H{"email": adminEmail, "password": "bad"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = peer
	req.Header.Set("X-Forwarded-For", forwardedFor)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestLoginRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.LoginMax = 3
	r := newTestRouter(t, cfg, openTestDB(t))

	codes := map[int]int{}
	for i := 0; i < 10; i++ {
		codes[loginFrom(r, "198.51.100.20:4000", "203.0.113."+strconv.Itoa(i))]++
	}

	assert.Equal(t, map[int]int{http.StatusUnauthorized: 3, http.StatusTooManyRequests: 7}, codes)
}

func TestLoginRateLimit_UsesForwardedForFromTrustedProxy(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.LoginMax = 1
	cfg.Server.TrustedProxies = []string{"10.0.0.0/8"}
	r := newTestRouter(t, cfg, openTestDB(t))

	assert.Equal(t, http.StatusUnauthorized, loginFrom(r, "10.1.2.3:4000", "203.0.113.1"))
	assert.Equal(t, http.StatusUnauthorized, loginFrom(r, "10.1.2.3:4000", "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(r, "10.1.2.3:4000", "203.0.113.1"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))

	for _, path := range []string{"/api/workers", "/api/workers/1", "/api/statistics", "/api/client-requests", "/api/contact", "/api/franchise", "/api/admin/tables"} {
		w := perform(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"error":"Access token required"}`, w.Body.String(), path)
	}

	w := perform(r, http.MethodGet, "/api/workers", "forged.token.value", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWorkerCreateThenGet(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))
	token := login(t, r)

	w := perform(r, http.MethodPost, "/api/workers", "", gin.H{
		"fullName":      "Ramesh Patil",
		"mobileNumber":  "9876543210",
		"skillType":     "Plumber",
		"age":           "abc",
		"dailyWage":     "650",
		"aadhaarNumber": "123412341234",
		"location":      gin.H{"latitude": 18.52, "longitude": "east"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Worker
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	w = perform(r, http.MethodGet, "/api/workers/"+itoa(created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Worker
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ramesh Patil", got.FullName)
	assert.Equal(t, "Plumber", got.PrimarySkill)
	assert.Equal(t, 0, got.Age)
	assert.Equal(t, 650.0, got.DailyWage)
	require.NotNil(t, got.Latitude)
	assert.Nil(t, got.Longitude)
	assert.Equal(t, "pending", got.Status)

	dup := perform(r, http.MethodPost, "/api/workers", "", gin.H{
		"fullName": "Other", "mobileNumber": "1", "skillType": "Mason", "aadhaarNumber": "123412341234",
	})
	assert.Equal(t, http.StatusBadRequest, dup.Code)
	assert.JSONEq(t, `{"error":"Aadhaar number already exists"}`, dup.Body.String())
}

func TestWorkerCreate_MissingFieldsPersistsNothing(t *testing.T) {
	db := openTestDB(t)
	r := newTestRouter(t, testConfig(), db)

	w := perform(r, http.MethodPost, "/api/workers", "", gin.H{"fullName": "Only Name"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields","details":["mobileNumber is required","skillType is required"]}`, w.Body.String())
	var count int64
	require.NoError(t, db.Model(&models.Worker{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWorkerStatusAndVerification(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))
	token := login(t, r)

	w := perform(r, http.MethodPost, "/api/workers", "", gin.H{"fullName": "A", "mobileNumber": "1", "skillType": "Cook"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Worker
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := itoa(created.ID)

	w = perform(r, http.MethodPut, "/api/workers/"+id+"/status", token, gin.H{"status": "active"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Worker status updated successfully"}`, w.Body.String())

	w = perform(r, http.MethodPut, "/api/workers/"+id+"/status", token, gin.H{"status": "fired"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPut, "/api/workers/"+id+"/verification", token, gin.H{"verified": true})
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodPut, "/api/workers/999/status", token, gin.H{"status": "active"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Worker not found"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/api/workers/abc", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodGet, "/api/statistics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.WorkerStatistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, models.WorkerStatistics{Total: 1, Active: 1, Verified: 1}, stats)
}

func TestAnalytics(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))
	token := login(t, r)

	w := perform(r, http.MethodGet, "/api/analytics/monthly", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"period":"monthly","data":[],"implemented":false}`, w.Body.String())

	w = perform(r, http.MethodGet, "/api/analytics/decade", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid period","details":["period must be one of daily, weekly, monthly, yearly"]}`, w.Body.String())
}

func TestClientRequestFlow(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))
	token := login(t, r)

	w := perform(r, http.MethodPost, "/api/client-requests", "", gin.H{
		"clientName": "Mehta Builders", "clientPhone": "9000000000", "serviceType": "Electrician", "budget": "15000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, created["id"], created["lastInsertRowid"])
	assert.Equal(t, "Pending", created["status"])

	w = perform(r, http.MethodPut, "/api/client-requests/1/status", token, gin.H{"status": "Assigned"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodPut, "/api/client-requests/77/status", token, gin.H{"status": "Assigned"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Request not found"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/api/client-requests", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.ClientRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Assigned", list[0].Status)
}

func TestContactAndFranchise(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))
	token := login(t, r)

	w := perform(r, http.MethodPost, "/api/contact", "", gin.H{"name": "Asha", "email": "asha@example.com", "message": "Need masons"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(r, http.MethodPost, "/api/contact", "", gin.H{"name": "Asha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/api/franchise", "", gin.H{
		"fullName": "Vikram", "mobileNumber": "911", "internetAvailable": "yes", "referralSource": "radio",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"referralSource":"radio"`)

	w = perform(r, http.MethodGet, "/api/contact", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Need masons")

	w = perform(r, http.MethodGet, "/api/franchise", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"internet_available":true`)
}

func TestAdminIntrospection(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))
	token := login(t, r)

	w := perform(r, http.MethodGet, "/api/admin/table/secrets", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid table name"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/api/admin/table/users", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "password_hash")

	w = perform(r, http.MethodGet, "/api/admin/tables", token, nil)
	assert.JSONEq(t, `["workers","client_requests","contact_messages","franchise_applications"]`, w.Body.String())

	perform(r, http.MethodPost, "/api/contact", "", gin.H{"name": "A", "email": "a@b.c", "message": "hi"})

	w = perform(r, http.MethodGet, "/api/admin/stats", token, nil)
	assert.JSONEq(t, `{"workers":0,"client_requests":0,"contact_messages":1,"franchise_applications":0}`, w.Body.String())

	w = perform(r, http.MethodGet, "/api/admin/table/contact_messages?limit=9999&offset=-4", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page repository.TablePage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "contact_messages", page.Table)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 500, page.Limit)
	assert.Equal(t, 0, page.Offset)
	assert.Len(t, page.Rows, 1)
}

func TestPublicEndpoints(t *testing.T) {
	r := newTestRouter(t, testConfig(), openTestDB(t))

	w := perform(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Shram Siddhi API is running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("RateLimit-Limit"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = perform(r, http.MethodDelete, "/api/health", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())

	w = perform(r, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="https://shramsiddhi.com"`)

	w = perform(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestMetricsEndpointGating(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true, Token: "scrape-secret"}
	r := newTestRouter(t, cfg, openTestDB(t))

	w := perform(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/metrics", "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/metrics", "scrape-secret", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")

	cfg = testConfig()
	cfg.Metrics.Enabled = false
	r = newTestRouter(t, cfg, openTestDB(t))
	w = perform(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadiness(t *testing.T) {
	sanitizer, err := validation.NewSanitizer()
	require.NoError(t, err)
	db := openTestDB(t)

	build := func(redisErr error) http.Handler {
		return NewRouter(testConfig(), zap.NewNop(), metrics.New(), ratelimit.NewMemoryCounter(), Services{
			Auth:           services.NewAuthService(repository.NewUserRepository(db), "router-test-secret", time.Hour),
			Workers:        services.NewWorkerService(repository.NewWorkerRepository(db), sanitizer),
			ClientRequests: services.NewClientRequestService(repository.NewClientRequestRepository(db), sanitizer),
			Inquiries:      services.NewInquiryService(repository.NewContactRepository(db), repository.NewFranchiseRepository(db), sanitizer),
			Admin:          services.NewAdminService(repository.NewAdminRepository(db)),
			Checks: []HealthCheck{
				{Name: "database", Check: func(context.Context) error { return nil }},
				{Name: "redis", Check: func(context.Context) error { return redisErr }},
			},
		})
	}

	w := perform(build(nil), http.MethodGet, "/api/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"database":"ok","redis":"ok"}}`, w.Body.String())

	w = perform(build(errors.New("connection refused")), http.MethodGet, "/api/health/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not ready","checks":{"database":"ok","redis":"unavailable"}}`, w.Body.String())

	w = perform(build(errors.New("connection refused")), http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Server.BodyLimitBytes = 64
	r := newTestRouter(t, cfg, openTestDB(t))

	body := `{"name":"A","email":"a@b.c","message":"` + strings.Repeat("x", 256) + `"}`
	w := perform(r, http.MethodPost, "/api/contact", "", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Request body too large"}`, w.Body.String())
}

func TestStoreUnavailable(t *testing.T) {
	r := newTestRouter(t, testConfig(), nil)

	w := perform(r, http.MethodPost, "/api/contact", "", gin.H{"name": "A", "email": "a@b.c", "message": "hi"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())

	w = perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": adminPassword})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = perform(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
