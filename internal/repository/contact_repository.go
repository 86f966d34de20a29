package repository

import (
	"context"

	"shramsiddhi/internal/models"

	"gorm.io/gorm"
)

// ContactRepository is append-only: messages are never updated.
type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	GetAll(ctx context.Context) ([]models.ContactMessage, error)
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
}

type contactRepository struct {
	store
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{store{db: db}}
}

func (r *contactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return translate(db.Create(message).Error)
}

func (r *contactRepository) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	messages := []models.ContactMessage{}
	err = db.Order("created_at DESC").Order("id DESC").Find(&messages).Error
	return messages, translate(err)
}

func (r *contactRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var message models.ContactMessage
	if err := db.First(&message, id).Error; err != nil {
		return nil, translate(err)
	}
	return &message, nil
}
