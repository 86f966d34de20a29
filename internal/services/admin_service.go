package services

import (
	"context"
	"errors"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/repository"
)

type AdminService interface {
	Tables() []string
	Stats(ctx context.Context) (map[string]int64, error)
	TableData(ctx context.Context, table string, limit, offset int) (*repository.TablePage, error)
}

type adminService struct {
	adminRepo repository.AdminRepository
}

func NewAdminService(adminRepo repository.AdminRepository) AdminService {
	return &adminService{adminRepo: adminRepo}
}

func (s *adminService) Tables() []string {
	return s.adminRepo.ListTables()
}

func (s *adminService) Stats(ctx context.Context) (map[string]int64, error) {
	return s.adminRepo.Stats(ctx)
}

func (s *adminService) TableData(ctx context.Context, table string, limit, offset int) (*repository.TablePage, error) {
	page, err := s.adminRepo.TableData(ctx, table, limit, offset)
	if errors.Is(err, repository.ErrInvalidTarget) {
		return nil, apperrors.Wrap(apperrors.KindInvalidTarget, "Invalid table name", err)
	}
	return page, err
}
