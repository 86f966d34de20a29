package services

import (
	"context"

	"shramsiddhi/internal/models"
	"shramsiddhi/internal/repository"
	"shramsiddhi/internal/validation"
)

// InquiryService handles the public contact form and franchise applications.
// Both are append-only.
type InquiryService interface {
	SubmitContact(ctx context.Context, body []byte) (*models.ContactMessage, error)
	ListContacts(ctx context.Context) ([]models.ContactMessage, error)
	SubmitFranchise(ctx context.Context, body []byte) (*models.FranchiseApplication, error)
	ListFranchise(ctx context.Context) ([]models.FranchiseApplication, error)
}

type inquiryService struct {
	contactRepo   repository.ContactRepository
	franchiseRepo repository.FranchiseRepository
	sanitizer     *validation.Sanitizer
}

func NewInquiryService(contactRepo repository.ContactRepository, franchiseRepo repository.FranchiseRepository, sanitizer *validation.Sanitizer) InquiryService {
	return &inquiryService{contactRepo: contactRepo, franchiseRepo: franchiseRepo, sanitizer: sanitizer}
}

func (s *inquiryService) SubmitContact(ctx context.Context, body []byte) (*models.ContactMessage, error) {
	msg, err := s.sanitizer.Contact(body)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *inquiryService) ListContacts(ctx context.Context) ([]models.ContactMessage, error) {
	return s.contactRepo.GetAll(ctx)
}

func (s *inquiryService) SubmitFranchise(ctx context.Context, body []byte) (*models.FranchiseApplication, error) {
	app, err := s.sanitizer.Franchise(body)
	if err != nil {
		return nil, err
	}
	if err := s.franchiseRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *inquiryService) ListFranchise(ctx context.Context) ([]models.FranchiseApplication, error) {
	return s.franchiseRepo.GetAll(ctx)
}
