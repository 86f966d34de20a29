package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InsecureDevSecret signs tokens only when ALLOW_INSECURE_SECRET=true outside production.
const InsecureDevSecret = "fallback_secret_for_development_only"

const minProductionSecretLength = 32

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Log       LogConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	FrontendURL string
}

type ServerConfig struct {
	Port              string
	BodyLimitBytes    int64
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	// TrustedProxies are the peers whose RemoteIPHeaders are believed.
	// Empty means the client address is always the TCP peer.
	TrustedProxies  []string
	RemoteIPHeaders []string
	// DatabaseRetryMax caps the wait between background migration attempts.
	DatabaseRetryMax time.Duration
}

type DatabaseConfig struct {
	URL          string
	Key          string
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
	LogLevel     string
}

// Configured reports whether database credentials were supplied.
func (d DatabaseConfig) Configured() bool {
	return d.URL != ""
}

type AuthConfig struct {
	JWTSecret            string
	AllowInsecureSecret  bool
	TokenTTL             time.Duration
	DefaultAdminEmail    string
	DefaultAdminPassword string
}

type CORSConfig struct {
	AllowedOrigins []string
	// AllowedSuffixes admit any https origin whose host ends with one of them.
	AllowedSuffixes []string
}

type RateLimitConfig struct {
	Enabled     bool
	APIMax      int
	APIWindow   time.Duration
	LoginMax    int
	LoginWindow time.Duration
}

type RedisConfig struct {
	URL string
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Enabled bool
	// Token, when set, must be sent as a bearer token to read /metrics.
	Token string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	// Aliases kept for deployments configured for the Supabase client.
	_ = v.BindEnv("DATABASE_URL", "DATABASE_URL", "SUPABASE_DB_URL")
	_ = v.BindEnv("DATABASE_KEY", "DATABASE_KEY", "SUPABASE_KEY")
	_ = v.BindEnv("PORT", "PORT", "SERVER_PORT")

	cfg := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Environment: strings.ToLower(v.GetString("APP_ENV")),
			FrontendURL: v.GetString("FRONTEND_URL"),
		},
		Server: ServerConfig{
			Port:              v.GetString("PORT"),
			BodyLimitBytes:    v.GetInt64("BODY_LIMIT_BYTES"),
			ReadHeaderTimeout: v.GetDuration("SERVER_READ_HEADER_TIMEOUT"),
			ReadTimeout:       v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:      v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:       v.GetDuration("SERVER_IDLE_TIMEOUT"),
			ShutdownTimeout:   v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			TrustedProxies:    splitList(v.GetString("TRUSTED_PROXIES")),
			RemoteIPHeaders:   splitList(v.GetString("REMOTE_IP_HEADERS")),
			DatabaseRetryMax:  v.GetDuration("DB_RETRY_MAX_INTERVAL"),
		},
		Database: DatabaseConfig{
			URL:          v.GetString("DATABASE_URL"),
			Key:          v.GetString("DATABASE_KEY"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			LogLevel:     v.GetString("DB_LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret:            v.GetString("JWT_SECRET"),
			AllowInsecureSecret:  v.GetBool("ALLOW_INSECURE_SECRET"),
			TokenTTL:             v.GetDuration("JWT_TTL"),
			DefaultAdminEmail:    v.GetString("DEFAULT_ADMIN_EMAIL"),
			DefaultAdminPassword: v.GetString("DEFAULT_ADMIN_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			Enabled:     v.GetBool("RATE_LIMIT_ENABLED"),
			APIMax:      v.GetInt("RATE_LIMIT_API_MAX"),
			APIWindow:   v.GetDuration("RATE_LIMIT_API_WINDOW"),
			LoginMax:    v.GetInt("RATE_LIMIT_LOGIN_MAX"),
			LoginWindow: v.GetDuration("RATE_LIMIT_LOGIN_WINDOW"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Token:   v.GetString("METRICS_TOKEN"),
		},
	}

	cfg.CORS = CORSConfig{
		AllowedOrigins:  allowedOrigins(cfg.App.FrontendURL, v.GetString("CORS_EXTRA_ORIGINS")),
		AllowedSuffixes: splitList(v.GetString("CORS_ALLOWED_SUFFIXES")),
	}

	if err := cfg.resolveSecret(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "shram-siddhi-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("FRONTEND_URL", "http://localhost:5174")

	v.SetDefault("PORT", "3001")
	v.SetDefault("BODY_LIMIT_BYTES", 50<<20)
	v.SetDefault("SERVER_READ_HEADER_TIMEOUT", 10*time.Second)
	v.SetDefault("SERVER_READ_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 60*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("REMOTE_IP_HEADERS", "X-Forwarded-For,X-Real-IP")

	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_RETRY_MAX_INTERVAL", time.Minute)

	v.SetDefault("ALLOW_INSECURE_SECRET", false)
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("DEFAULT_ADMIN_EMAIL", "admin@shramsiddhi.com")
	v.SetDefault("DEFAULT_ADMIN_PASSWORD", "Admin@123")

	v.SetDefault("CORS_ALLOWED_SUFFIXES", ".vercel.app")

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_API_MAX", 100)
	v.SetDefault("RATE_LIMIT_API_WINDOW", 15*time.Minute)
	v.SetDefault("RATE_LIMIT_LOGIN_MAX", 10)
	v.SetDefault("RATE_LIMIT_LOGIN_WINDOW", time.Hour)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_TOKEN", "")
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// UsingInsecureSecret reports whether tokens are signed with InsecureDevSecret.
func (c *Config) UsingInsecureSecret() bool {
	return c.Auth.JWTSecret == InsecureDevSecret
}

func (c *Config) resolveSecret() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Auth.JWTSecret == "" && c.Auth.AllowInsecureSecret {
		c.Auth.JWTSecret = InsecureDevSecret
	}
	return nil
}

// Validate checks the settings that must hold before the server starts.
func (c *Config) Validate() error {
	var errs []error

	if c.IsProduction() && c.Auth.AllowInsecureSecret {
		errs = append(errs, errors.New("ALLOW_INSECURE_SECRET cannot be used when APP_ENV=production"))
	}
	switch {
	case c.Auth.JWTSecret == "" && !c.Auth.AllowInsecureSecret:
		errs = append(errs, errors.New("JWT_SECRET is required (set ALLOW_INSECURE_SECRET=true for local development)"))
	case c.IsProduction() && c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < minProductionSecretLength:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes in production", minProductionSecretLength))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func allowedOrigins(frontendURL, extra string) []string {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"https://shram-siddhi-frontend.vercel.app",
		"https://www.shramsiddhi.com",
		"https://shramsiddhi.com",
	}
	candidates := append([]string{frontendURL}, splitList(extra)...)
	for _, origin := range candidates {
		origin = strings.TrimRight(origin, "/")
		if origin == "" || contains(origins, origin) {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
