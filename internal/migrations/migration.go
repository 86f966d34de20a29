package migrations

import (
	"context"
	"fmt"
	"time"

	"shramsiddhi/internal/models"
	"shramsiddhi/internal/repository"
	"shramsiddhi/internal/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table the API owns, in creation order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Worker{},
		&models.ClientRequest{},
		&models.ContactMessage{},
		&models.FranchiseApplication{},
	}
}

// AdminSeed is the account created on first start.
type AdminSeed struct {
	Email    string
	Password string
}

// RunMigrations brings the schema up to date and creates the default admin.
func RunMigrations(ctx context.Context, db *gorm.DB, seed AdminSeed, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := createDefaultData(ctx, db, seed, log); err != nil {
		return fmt.Errorf("failed to create default data: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// RunWithRetry calls RunMigrations until it succeeds or ctx ends. The wait
// between attempts starts at initial and doubles up to maxWait.
func RunWithRetry(ctx context.Context, db *gorm.DB, seed AdminSeed, log *zap.Logger, initial, maxWait time.Duration) error {
	return retry(ctx, log, initial, maxWait, func(ctx context.Context) error {
		return RunMigrations(ctx, db, seed, log)
	})
}

func retry(ctx context.Context, log *zap.Logger, initial, maxWait time.Duration, attempt func(context.Context) error) error {
	if maxWait < initial {
		maxWait = initial
	}
	wait := initial
	for n := 1; ; n++ {
		err := attempt(ctx)
		if err == nil {
			return nil
		}
		log.Warn("database not ready, retrying migrations",
			zap.Int("attempt", n),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if wait *= 2; wait > maxWait {
			wait = maxWait
		}
	}
}

// DropAll removes every table the API owns.
func DropAll(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	log.Warn("dropping all tables")
	return db.WithContext(ctx).Migrator().DropTable(Models()...)
}

func createDefaultData(ctx context.Context, db *gorm.DB, seed AdminSeed, log *zap.Logger) error {
	if seed.Email == "" || seed.Password == "" {
		log.Info("default admin seeding disabled")
		return nil
	}

	userService := services.NewUserService(repository.NewUserRepository(db))
	created, err := userService.EnsureDefaultAdmin(ctx, seed.Email, seed.Password)
	if err != nil {
		return err
	}
	if created {
		log.Info("default admin user created", zap.String("email", seed.Email))
	} else {
		log.Info("default admin user already exists", zap.String("email", seed.Email))
	}
	return nil
}
