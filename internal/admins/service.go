package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"djazair-backend/internal/auth"
	"djazair-backend/internal/models"
)

var (
	ErrNotFound = errors.New("admin not found")
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("email and password are required")
)

type Service struct {
	repo    Repository
	compare func(hash, password string) error
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, compare: auth.ComparePassword}
}

// BootstrapIfEmpty creates the first admin when the table has no rows and
// both values are set. It reports whether a row was inserted.
func (s *Service) BootstrapIfEmpty(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := s.create(ctx, email, password); err != nil {
		return false, err
	}
	return true, nil
}

// Empty reports whether no admin exists yet.
func (s *Service) Empty(ctx context.Context) (bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n == 0, nil
}

func (s *Service) VerifyLogin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("find admin: %w", err)
		}
		// same bcrypt work as a wrong password, so timing does not reveal emails
		_ = s.compare(auth.DummyHash(), password)
		return ErrInvalidCredentials
	}
	if err := s.compare(user.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Seed creates the admin unless one with the same email exists. Existing rows
// are never modified.
func (s *Service) Seed(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, ErrMissingCredentials
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, fmt.Errorf("find admin: %w", err)
	}
	if err := s.create(ctx, email, password); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) create(ctx context.Context, email, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := models.AdminUser{Email: email, PasswordHash: hash}
	if err := s.repo.Create(ctx, &user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
