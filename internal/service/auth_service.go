package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"devconnector/internal/auth"
	"devconnector/internal/avatar"
	apperrors "devconnector/internal/errors"
	"devconnector/internal/metrics"
	"devconnector/internal/model"
	"devconnector/internal/repository"
)

const bcryptCost = 10

// AuthService registers accounts and authenticates logins.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
}

type authService struct {
	userRepo repository.UserRepository
	codec    *auth.TokenCodec
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, codec *auth.TokenCodec, m *metrics.Metrics, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		codec:    codec,
		metrics:  m,
		logger:   logger,
	}
}

// Register creates a user with a hashed password and returns a session token.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Avatar:       avatar.URL(email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	s.metrics.Registered()
	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Login checks the credentials and returns a session token. Unknown email and
// wrong password fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.Login(false)
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.Login(false)
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	s.metrics.Login(true)
	return token, nil
}
