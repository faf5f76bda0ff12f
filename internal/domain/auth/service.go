package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
	"puntoventa/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		PasswordMinLength: 8,
	}
}

// Service provides operator authentication.
type Service struct {
	repo       OperatorRepository
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(repo OperatorRepository, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		repo:       repo,
		jwtService: jwtService,
		config:     config,
	}
}

// Register creates a new operator account.
func (s *Service) Register(ctx context.Context, username, password, name string, isAdmin bool) (*Operator, error) {
	if username == "" {
		return nil, apperror.NewValidation("username is required").WithDetail("field", "username")
	}

	if len(password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.repo.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, apperror.NewConflict("username already registered").WithDetail("username", username)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	op := NewOperator(username, string(passwordHash))
	op.Name = name
	op.IsAdmin = isAdmin

	if err := s.repo.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("create operator: %w", err)
	}

	logger.Info(ctx, "operator registered",
		"operator_id", op.ID,
		"username", op.Username)

	return op, nil
}

// Login authenticates an operator and returns a token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, *Operator, error) {
	op, err := s.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := op.CanLogin(); err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(creds.Password)); err != nil {
		op.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		_ = s.repo.Update(ctx, op)
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	tokenString, expiresAt, err := s.jwtService.GenerateAccessToken(op)
	if err != nil {
		return nil, nil, fmt.Errorf("generate token: %w", err)
	}

	op.RecordSuccessfulLogin()
	_ = s.repo.Update(ctx, op)

	logger.Info(ctx, "operator logged in",
		"operator_id", op.ID,
		"username", op.Username)

	return &Token{
		AccessToken: tokenString,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, op, nil
}

// ChangePassword updates an operator's password after verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, operatorID id.ID, current, newPassword string) error {
	op, err := s.repo.GetByID(ctx, operatorID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(current)); err != nil {
		return apperror.NewUnauthorized("invalid credentials")
	}

	if len(newPassword) < s.config.PasswordMinLength {
		return apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	op.PasswordHash = string(hash)
	op.UpdatedAt = time.Now()
	return s.repo.Update(ctx, op)
}
