package user

import (
	"context"
	"strings"
)

// Service defines business logic related to users.
type Service interface {
	// LoginByEmail resolves a registered user by their (normalized) email.
	// There is no password step: identity issuance is handled by the JWT
	// layer once the email is proven to be registered.
	LoginByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// IsAdmin reports whether the given identity holds the admin flag.
	// Unknown identities are not admins.
	IsAdmin(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, u *User) error
}

type service struct {
	repo Repository
}

// NewService creates a new user Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LoginByEmail(ctx context.Context, email string) (*User, error) {
	cleanEmail := NormalizeEmail(email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}
	return s.repo.GetByEmail(ctx, cleanEmail)
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) IsAdmin(ctx context.Context, id string) (bool, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}

func (s *service) Create(ctx context.Context, u *User) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Email == "" {
		return ErrEmailRequired
	}
	return s.repo.Create(ctx, u)
}

// NormalizeEmail trims spaces and lowercases the email so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
