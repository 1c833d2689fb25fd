package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name  string
	Email string
	Role  string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return User{}, ErrInvalidInput
	}

	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return User{}, ErrInvalidInput
		}
	}

	role := Role(strings.ToLower(strings.TrimSpace(in.Role)))
	switch role {
	case RoleVeterinarian, RoleReceptionist, RoleOwner:
	case "":
		role = RoleVeterinarian
	default:
		return User{}, ErrInvalidInput
	}

	now := s.now()
	u := User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// FindByID implementa appointments.UserDirectory.
func (s *Service) FindByID(ctx context.Context, id string) (User, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, false, nil
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
