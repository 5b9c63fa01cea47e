package service

import (
	"context"
	"fmt"
	"strings"

	"pixel-kart/internal/model"
	"pixel-kart/internal/repository"

	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// List retrieves all users.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Update overwrites the editable fields of a user.
func (s *userService) Update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Username == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Username is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "A valid email is required")
	}

	if err := s.userRepo.Update(ctx, id, req); err != nil {
		if err == model.ErrUserNotFound || err == model.ErrUserExists {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Str("username", req.Username).Msg("user updated")

	return s.userRepo.GetByID(ctx, id)
}
