package repository

import (
	"context"
	"time"

	"shramsiddhi/internal/models"

	"gorm.io/gorm"
)

type ClientRequestRepository interface {
	Create(ctx context.Context, request *models.ClientRequest) error
	GetAll(ctx context.Context) ([]models.ClientRequest, error)
	GetByID(ctx context.Context, id uint) (*models.ClientRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type clientRequestRepository struct {
	store
}

func NewClientRequestRepository(db *gorm.DB) ClientRequestRepository {
	return &clientRequestRepository{store{db: db}}
}

func (r *clientRequestRepository) Create(ctx context.Context, request *models.ClientRequest) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return translate(db.Create(request).Error)
}

func (r *clientRequestRepository) GetAll(ctx context.Context) ([]models.ClientRequest, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	requests := []models.ClientRequest{}
	err = db.Order("created_at DESC").Order("id DESC").Find(&requests).Error
	return requests, translate(err)
}

func (r *clientRequestRepository) GetByID(ctx context.Context, id uint) (*models.ClientRequest, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var request models.ClientRequest
	if err := db.First(&request, id).Error; err != nil {
		return nil, translate(err)
	}
	return &request, nil
}

func (r *clientRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return affectedOne(db.Model(&models.ClientRequest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}))
}
