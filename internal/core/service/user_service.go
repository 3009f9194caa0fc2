package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

// UserService backs the admin-only user management routes.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err, id)
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	role := domain.RoleUser
	if in.Role != "" {
		r, ok := domain.ParseRole(in.Role)
		if !ok {
			return nil, domain.Errorf(domain.ErrValidation, "role must be one of: user, host, admin")
		}
		role = r
	}

	user, err := newUser(in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created by admin")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err, id)
	}
	if err := applyUserEdits(user, in.Name, in.Email); err != nil {
		return nil, err
	}
	if in.Role != nil {
		r, ok := domain.ParseRole(*in.Role)
		if !ok {
			return nil, domain.Errorf(domain.ErrValidation, "role must be one of: user, host, admin")
		}
		user.Role = r
	}
	user.UpdatedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, userLookupError(err, id)
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return userLookupError(err, id)
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func userLookupError(err error, id string) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.Errorf(domain.ErrUserNotFound, "user not found with id of %s", id)
	}
	return err
}
