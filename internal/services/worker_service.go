package services

import (
	"context"
	"errors"
	"strings"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/models"
	"shramsiddhi/internal/repository"
	"shramsiddhi/internal/validation"
)

var analyticsPeriods = map[string]bool{
	"daily":   true,
	"weekly":  true,
	"monthly": true,
	"yearly":  true,
}

// AnalyticsReport is returned for every valid period. Aggregation is not
// implemented, so Data is always empty.
type AnalyticsReport struct {
	Period      string        `json:"period"`
	Data        []interface{} `json:"data"`
	Implemented bool          `json:"implemented"`
}

type WorkerService interface {
	Register(ctx context.Context, body []byte) (*models.Worker, error)
	Import(ctx context.Context, input map[string]interface{}) (*models.Worker, error)
	List(ctx context.Context) ([]models.Worker, error)
	Get(ctx context.Context, id uint) (*models.Worker, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	UpdateVerification(ctx context.Context, id uint, verified bool) error
	Statistics(ctx context.Context) (*models.WorkerStatistics, error)
	Analytics(ctx context.Context, period string) (*AnalyticsReport, error)
}

type workerService struct {
	workerRepo repository.WorkerRepository
	sanitizer  *validation.Sanitizer
}

func NewWorkerService(workerRepo repository.WorkerRepository, sanitizer *validation.Sanitizer) WorkerService {
	return &workerService{workerRepo: workerRepo, sanitizer: sanitizer}
}

func (s *workerService) Register(ctx context.Context, body []byte) (*models.Worker, error) {
	worker, err := s.sanitizer.Worker(body)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, worker)
}

// Import stores one already decoded worker record, such as a row of a bulk file.
func (s *workerService) Import(ctx context.Context, input map[string]interface{}) (*models.Worker, error) {
	worker, err := s.sanitizer.WorkerFromMap(input)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, worker)
}

func (s *workerService) create(ctx context.Context, worker *models.Worker) (*models.Worker, error) {
	if err := s.workerRepo.Create(ctx, worker); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Wrap(apperrors.KindDuplicateKey, "Aadhaar number already exists", err)
		}
		return nil, err
	}
	return worker, nil
}

func (s *workerService) List(ctx context.Context) ([]models.Worker, error) {
	return s.workerRepo.GetAll(ctx)
}

func (s *workerService) Get(ctx context.Context, id uint) (*models.Worker, error) {
	worker, err := s.workerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Worker not found")
	}
	return worker, err
}

func (s *workerService) UpdateStatus(ctx context.Context, id uint, status string) error {
	ws := models.WorkerStatus(strings.ToLower(strings.TrimSpace(status)))
	if !ws.Valid() {
		return apperrors.Validation("Invalid status", "status must be one of pending, active, inactive")
	}
	return workerNotFound(s.workerRepo.UpdateStatus(ctx, id, ws))
}

func (s *workerService) UpdateVerification(ctx context.Context, id uint, verified bool) error {
	return workerNotFound(s.workerRepo.UpdateVerification(ctx, id, verified))
}

func (s *workerService) Statistics(ctx context.Context) (*models.WorkerStatistics, error) {
	return s.workerRepo.Statistics(ctx)
}

func (s *workerService) Analytics(_ context.Context, period string) (*AnalyticsReport, error) {
	if !analyticsPeriods[period] {
		return nil, apperrors.Validation("Invalid period", "period must be one of daily, weekly, monthly, yearly")
	}
	return &AnalyticsReport{Period: period, Data: []interface{}{}, Implemented: false}, nil
}

func workerNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Worker not found")
	}
	return err
}
