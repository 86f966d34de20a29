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

type ClientRequestService interface {
	Submit(ctx context.Context, body []byte) (*models.ClientRequest, error)
	List(ctx context.Context) ([]models.ClientRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

type clientRequestService struct {
	requestRepo repository.ClientRequestRepository
	sanitizer   *validation.Sanitizer
}

func NewClientRequestService(requestRepo repository.ClientRequestRepository, sanitizer *validation.Sanitizer) ClientRequestService {
	return &clientRequestService{requestRepo: requestRepo, sanitizer: sanitizer}
}

func (s *clientRequestService) Submit(ctx context.Context, body []byte) (*models.ClientRequest, error) {
	request, err := s.sanitizer.ClientRequest(body)
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *clientRequestService) List(ctx context.Context) ([]models.ClientRequest, error) {
	return s.requestRepo.GetAll(ctx)
}

// UpdateStatus accepts any non-blank status; the admin UI owns the vocabulary.
func (s *clientRequestService) UpdateStatus(ctx context.Context, id uint, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return apperrors.Validation("Status is required")
	}
	err := s.requestRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("Request not found")
	}
	return err
}
