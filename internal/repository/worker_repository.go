package repository

import (
	"context"
	"time"

	"shramsiddhi/internal/models"

	"gorm.io/gorm"
)

type WorkerRepository interface {
	Create(ctx context.Context, worker *models.Worker) error
	GetAll(ctx context.Context) ([]models.Worker, error)
	GetByID(ctx context.Context, id uint) (*models.Worker, error)
	UpdateStatus(ctx context.Context, id uint, status models.WorkerStatus) error
	UpdateVerification(ctx context.Context, id uint, verified bool) error
	Statistics(ctx context.Context) (*models.WorkerStatistics, error)
}

type workerRepository struct {
	store
}

func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &workerRepository{store{db: db}}
}

func (r *workerRepository) Create(ctx context.Context, worker *models.Worker) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return translate(db.Create(worker).Error)
}

func (r *workerRepository) GetAll(ctx context.Context) ([]models.Worker, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	workers := []models.Worker{}
	err = db.Order("created_at DESC").Order("id DESC").Find(&workers).Error
	return workers, translate(err)
}

func (r *workerRepository) GetByID(ctx context.Context, id uint) (*models.Worker, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var worker models.Worker
	if err := db.First(&worker, id).Error; err != nil {
		return nil, translate(err)
	}
	return &worker, nil
}

func (r *workerRepository) UpdateStatus(ctx context.Context, id uint, status models.WorkerStatus) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return affectedOne(db.Model(&models.Worker{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}))
}

func (r *workerRepository) UpdateVerification(ctx context.Context, id uint, verified bool) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return affectedOne(db.Model(&models.Worker{}).Where("id = ?", id).Updates(map[string]interface{}{
		"verified":   verified,
		"updated_at": time.Now(),
	}))
}

func (r *workerRepository) Statistics(ctx context.Context) (*models.WorkerStatistics, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.WorkerStatistics{}
	counts := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&stats.Total, "", nil},
		{&stats.Active, "status = ?", []interface{}{string(models.WorkerActive)}},
		{&stats.Pending, "status = ?", []interface{}{string(models.WorkerPending)}},
		{&stats.Inactive, "status = ?", []interface{}{string(models.WorkerInactive)}},
		{&stats.Verified, "verified = ?", []interface{}{true}},
		{&stats.Unverified, "verified = ?", []interface{}{false}},
	}
	for _, c := range counts {
		q := db.Model(&models.Worker{})
		if c.query != "" {
			q = q.Where(c.query, c.args...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, translate(err)
		}
	}
	return stats, nil
}
