// Package service implements staff authentication: credential checks,
// access token issuance, and staff account management.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"rentcar-backend/internal/auth/password"
	"rentcar-backend/internal/auth/repository"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/config"
	"rentcar-backend/platform/logger"
)

// Config is the configuration surface the auth service needs.
type Config = config.AuthServiceConfig

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (repository.User, error)
	ListUsers(ctx context.Context) ([]repository.User, error)
	CreateUser(ctx context.Context, email, passwordHash, name, role string) (uuid.UUID, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type Service struct {
	repo UserRepository
	cfg  Config
	log  *logger.Logger
}

func New(repo UserRepository, cfg Config, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// SignIn checks credentials and issues an access token. The error is the
// same for unknown email and wrong password.
func (s *Service) SignIn(ctx context.Context, email, plaintext string) (string, repository.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.AuthEvent("sign_in", email, false, "unknown email")
		return "", repository.User{}, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return "", repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}

	if !password.Verify(user.PasswordHash, plaintext) {
		s.log.AuthEvent("sign_in", email, false, "wrong password")
		return "", repository.User{}, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return "", repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return token, user, nil
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context, id uuid.UUID) (repository.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.User{}, apperr.Unauthorized("unknown user")
	}
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	return user, nil
}

// ListUsers returns all staff accounts.
func (s *Service) ListUsers(ctx context.Context) ([]repository.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list users", err)
	}
	return users, nil
}

// CreateUser adds a staff account.
func (s *Service) CreateUser(ctx context.Context, email, plaintext, name, role string) (repository.User, error) {
	if !repository.ValidRole(role) {
		return repository.User{}, apperr.Validation("unknown role")
	}
	if len(plaintext) < 8 {
		return repository.User{}, apperr.Validation("password must be at least 8 characters")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return repository.User{}, apperr.Conflict("email already in use")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to check email", err)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	id, err := s.repo.CreateUser(ctx, email, hash, name, role)
	if err != nil {
		return repository.User{}, apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	return s.Me(ctx, id)
}

// SetRole changes a staff account's role.
func (s *Service) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	if !repository.ValidRole(role) {
		return apperr.Validation("unknown role")
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to update role", err)
	}
	return nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	if len(next) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}

	user, err := s.Me(ctx, id)
	if err != nil {
		return err
	}
	if !password.Verify(user.PasswordHash, current) {
		return apperr.Unauthorized("invalid credentials")
	}

	hash, err := password.Hash(next)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to update password", err)
	}
	return nil
}

func (s *Service) signAccessToken(user repository.User) (string, error) {
	ttl := s.cfg.GetAccessTokenTTL()
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"type": "access",
		"role": user.Role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
