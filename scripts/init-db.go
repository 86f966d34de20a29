// Command init-db prepares the database: it migrates the schema, seeds the
// default admin, optionally creates an extra admin account and imports
// workers from a JSON file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shramsiddhi/internal/config"
	"shramsiddhi/internal/database"
	"shramsiddhi/internal/logger"
	"shramsiddhi/internal/migrations"
	"shramsiddhi/internal/models"
	"shramsiddhi/internal/repository"
	"shramsiddhi/internal/services"
	"shramsiddhi/internal/validation"

	"go.uber.org/zap"
)

func main() {
	reset := flag.Bool("reset", false, "drop all tables before migrating")
	email := flag.String("email", "", "email of an additional admin to create")
	password := flag.String("password", "", "password of the additional admin")
	workersFile := flag.String("workers", "", "JSON array of worker registrations to import")
	flag.Parse()

	fmt.Println("Initializing database...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	zlog, err := logger.New(cfg.Log.Level, cfg.App.Environment, "init-db")
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zlog.Sync()

	if !cfg.Database.Configured() {
		zlog.Fatal("DATABASE_URL is required")
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	ctx := context.Background()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = database.Ping(pingCtx, db)
	cancel()
	if err != nil {
		zlog.Fatal("Database is unreachable", zap.Error(err))
	}

	if *reset {
		if cfg.IsProduction() {
			zlog.Fatal("-reset is refused when APP_ENV=production")
		}
		if err := migrations.DropAll(ctx, db, zlog); err != nil {
			zlog.Warn("Error dropping tables", zap.Error(err))
		}
	}

	seed := migrations.AdminSeed{Email: cfg.Auth.DefaultAdminEmail, Password: cfg.Auth.DefaultAdminPassword}
	if err := migrations.RunMigrations(ctx, db, seed, zlog); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}

	if *email != "" {
		userService := services.NewUserService(repository.NewUserRepository(db))
		user, err := userService.CreateUser(ctx, *email, *password, string(models.RoleAdmin))
		if err != nil {
			zlog.Fatal("Failed to create admin", zap.String("email", *email), zap.Error(err))
		}
		fmt.Printf("Created admin %s (id %d)\n", user.Email, user.ID)
	}

	if *workersFile != "" {
		if err := importWorkers(ctx, *workersFile, repository.NewWorkerRepository(db), zlog); err != nil {
			zlog.Fatal("Failed to import workers", zap.String("file", *workersFile), zap.Error(err))
		}
	}

	fmt.Println("Database initialized successfully!")
}

// importWorkers runs every entry of path through the same sanitizer as the
// public registration form. Rejected entries are logged and skipped.
func importWorkers(ctx context.Context, path string, repo repository.WorkerRepository, zlog *zap.Logger) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	entries, err := validation.DecodeList(body)
	if err != nil {
		return err
	}
	sanitizer, err := validation.NewSanitizer()
	if err != nil {
		return err
	}
	workers := services.NewWorkerService(repo, sanitizer)

	imported := 0
	for i, entry := range entries {
		worker, err := workers.Import(ctx, entry)
		if err != nil {
			zlog.Warn("Skipping worker", zap.Int("index", i), zap.Error(err))
			continue
		}
		imported++
		zlog.Debug("Imported worker", zap.Uint("id", worker.ID), zap.String("name", worker.FullName))
	}
	fmt.Printf("Imported %d of %d workers\n", imported, len(entries))
	return nil
}
