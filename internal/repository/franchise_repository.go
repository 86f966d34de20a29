package repository

import (
	"context"

	"shramsiddhi/internal/models"

	"gorm.io/gorm"
)

// FranchiseRepository is append-only.
type FranchiseRepository interface {
	Create(ctx context.Context, application *models.FranchiseApplication) error
	GetAll(ctx context.Context) ([]models.FranchiseApplication, error)
	GetByID(ctx context.Context, id uint) (*models.FranchiseApplication, error)
}

type franchiseRepository struct {
	store
}

func NewFranchiseRepository(db *gorm.DB) FranchiseRepository {
	return &franchiseRepository{store{db: db}}
}

func (r *franchiseRepository) Create(ctx context.Context, application *models.FranchiseApplication) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return translate(db.Create(application).Error)
}

func (r *franchiseRepository) GetAll(ctx context.Context) ([]models.FranchiseApplication, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	applications := []models.FranchiseApplication{}
	err = db.Order("created_at DESC").Order("id DESC").Find(&applications).Error
	return applications, translate(err)
}

func (r *franchiseRepository) GetByID(ctx context.Context, id uint) (*models.FranchiseApplication, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var application models.FranchiseApplication
	if err := db.First(&application, id).Error; err != nil {
		return nil, translate(err)
	}
	return &application, nil
}
