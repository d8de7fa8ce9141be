package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"rentcar-backend/internal/auth/password"
	"rentcar-backend/internal/auth/repository"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
)

type stubUsers struct {
	users map[string]repository.User
}

func (r *stubUsers) GetByEmail(ctx context.Context, email string) (repository.User, error) {
	u, ok := r.users[email]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubUsers) GetByID(ctx context.Context, id uuid.UUID) (repository.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (r *stubUsers) ListUsers(ctx context.Context) ([]repository.User, error) {
	out := make([]repository.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUsers) CreateUser(ctx context.Context, email, passwordHash, name, role string) (uuid.UUID, error) {
	id := uuid.New()
	r.users[email] = repository.User{ID: id, Email: email, PasswordHash: passwordHash, Name: name, Role: role}
	return id, nil
}

func (r *stubUsers) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	for email, u := range r.users {
		if u.ID == id {
			u.Role = role
			r.users[email] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubUsers) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	for email, u := range r.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			r.users[email] = u
			return nil
		}
	}
	return repository.ErrNotFound
}

type stubConfig struct{}

func (stubConfig) GetJWTAccessSecret() string       { return "test-secret" }
func (stubConfig) GetAccessTokenTTL() time.Duration { return time.Hour }

func newTestAuth(t *testing.T) (*Service, repository.User) {
	t.Helper()

	hash, err := password.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	admin := repository.User{
		ID:           uuid.New(),
		Email:        "admin@rentcar.ch",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         repository.RoleAdmin,
	}

	repo := &stubUsers{users: map[string]repository.User{admin.Email: admin}}
	return New(repo, stubConfig{}, logger.New("development")), admin
}

func TestSignInIssuesRoleClaim(t *testing.T) {
	svc, admin := newTestAuth(t)

	token, user, err := svc.SignIn(context.Background(), admin.Email, "correct horse battery")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.ID != admin.ID {
		t.Fatalf("expected user %s, got %s", admin.ID, user.ID)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatalf("expected valid map claims")
	}
	if claims["sub"] != admin.ID.String() {
		t.Fatalf("expected sub %s, got %v", admin.ID, claims["sub"])
	}
	if claims["type"] != "access" {
		t.Fatalf("expected type access, got %v", claims["type"])
	}
	if claims["role"] != repository.RoleAdmin {
		t.Fatalf("expected role %s, got %v", repository.RoleAdmin, claims["role"])
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc, admin := newTestAuth(t)

	_, _, err := svc.SignIn(context.Background(), admin.Email, "wrong")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, _, err := svc.SignIn(context.Background(), "nobody@rentcar.ch", "whatever")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, admin := newTestAuth(t)

	_, err := svc.CreateUser(context.Background(), admin.Email, "another password", "Other", repository.RoleStaff)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.CreateUser(context.Background(), "staff@rentcar.ch", "short", "Staff", repository.RoleStaff)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, admin := newTestAuth(t)

	err := svc.ChangePassword(context.Background(), admin.ID, "not the password", "a new long password")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), admin.ID, "correct horse battery", "a new long password"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, err := svc.SignIn(context.Background(), admin.Email, "a new long password"); err != nil {
		t.Fatalf("SignIn after password change: %v", err)
	}
}
