package repository

import (
	"context"

	"shramsiddhi/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

type userRepository struct {
	store
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{store{db: db}}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return translate(db.Create(user).Error)
}

// FindByEmail matches the address exactly, case included.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	err = db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, translate(err)
}
