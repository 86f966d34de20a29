package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"shramsiddhi/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotConfigured is reported by Ping when no database was opened.
var ErrNotConfigured = errors.New("database is not configured")

// Initialize prepares the Postgres pool described by cfg. Connections are
// made lazily, so an unreachable server is not an error here.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn, err := BuildDSN(cfg.URL, cfg.Key)
	if err != nil {
		return nil, err
	}

	gormCfg := GormConfig(cfg.LogLevel)
	gormCfg.DisableAutomaticPing = true
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: dsn,
		// Supabase's pooler runs in transaction mode, which breaks implicit prepared statements.
		PreferSimpleProtocol: true,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnLifetime)
	}

	return db, nil
}

// Ping checks that the pool can reach the server.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return ErrNotConfigured
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// GormConfig is shared by the server and tests so unique violations are
// translated into gorm.ErrDuplicatedKey for every dialect.
func GormConfig(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(logLevel)),
		TranslateError: true,
	}
}

// BuildDSN applies key as the password of a URL-style DSN. Key-value DSNs
// get a password=... pair appended instead.
func BuildDSN(rawURL, key string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("database url is empty")
	}
	if key == "" {
		return rawURL, nil
	}

	if strings.HasPrefix(rawURL, "postgres://") || strings.HasPrefix(rawURL, "postgresql://") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		if _, hasPassword := u.User.Password(); hasPassword {
			return rawURL, nil
		}
		username := "postgres"
		if u.User != nil && u.User.Username() != "" {
			username = u.User.Username()
		}
		u.User = url.UserPassword(username, key)
		return u.String(), nil
	}

	if strings.Contains(rawURL, "password=") {
		return rawURL, nil
	}
	return rawURL + " password=" + quoteDSNValue(key), nil
}

func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
