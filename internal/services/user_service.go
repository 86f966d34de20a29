package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shramsiddhi/internal/apperrors"
	"shramsiddhi/internal/models"
	"shramsiddhi/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateUser(ctx context.Context, email, password, role string) (*models.User, error)
	EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, email, password, role string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.Validation("Email and password are required")
	}
	if role == "" {
		role = string(models.RoleAdmin)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Wrap(apperrors.KindDuplicateKey, "User already exists", err)
		}
		return nil, err
	}
	return user, nil
}

// EnsureDefaultAdmin creates the admin account unless the email is taken.
// It reports whether a user was created.
func (s *userService) EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, repository.ErrNotFound):
		return false, err
	}

	if _, err := s.CreateUser(ctx, email, password, string(models.RoleAdmin)); err != nil {
		if apperrors.Is(err, apperrors.KindDuplicateKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
