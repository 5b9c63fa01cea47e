package service

import (
	"context"
	"fmt"
	"strings"

	"pixel-kart/internal/auth"
	"pixel-kart/internal/model"
	"pixel-kart/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new account with the password stored as a bcrypt hash.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Username == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Username is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "A valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == model.ErrUserExists {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	return user, nil
}

// Login verifies credentials and issues a bearer token. A missing account
// and a wrong password produce the same error, so login failures do not
// reveal which emails are registered.
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Int64("user_id", user.ID).Msg("failed login attempt")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(*user)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")

	return &model.LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}
