package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"puntoventa/internal/core/apperror"
	"puntoventa/internal/core/id"
)

type memOperatorRepo struct {
	operators map[string]*Operator
}

func newMemOperatorRepo() *memOperatorRepo {
	return &memOperatorRepo{operators: make(map[string]*Operator)}
}

func (r *memOperatorRepo) Create(_ context.Context, op *Operator) error {
	r.operators[op.Username] = op
	return nil
}

func (r *memOperatorRepo) GetByID(_ context.Context, operatorID id.ID) (*Operator, error) {
	for _, op := range r.operators {
		if op.ID == operatorID {
			return op, nil
		}
	}
	return nil, apperror.NewNotFound("operator", operatorID)
}

func (r *memOperatorRepo) GetByUsername(_ context.Context, username string) (*Operator, error) {
	op, ok := r.operators[username]
	if !ok {
		return nil, apperror.NewNotFound("operator", username)
	}
	return op, nil
}

func (r *memOperatorRepo) Update(_ context.Context, op *Operator) error {
	r.operators[op.Username] = op
	return nil
}

func (r *memOperatorRepo) Exists(_ context.Context, username string) (bool, error) {
	_, ok := r.operators[username]
	return ok, nil
}

func (r *memOperatorRepo) List(_ context.Context) ([]*Operator, error) {
	var out []*Operator
	for _, op := range r.operators {
		out = append(out, op)
	}
	return out, nil
}

func newTestService() (*Service, *memOperatorRepo) {
	repo := newMemOperatorRepo()
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	cfg := DefaultServiceConfig()
	cfg.MaxLoginAttempts = 3
	return NewService(repo, jwtSvc, cfg), repo
}

func seedOperator(t *testing.T, repo *memOperatorRepo, username, password string) *Operator {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	op := NewOperator(username, string(hash))
	op.Name = "Cajero Uno"
	repo.operators[username] = op
	return op
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()
	op := seedOperator(t, repo, "caja1", "secreto123")
	ctx := context.Background()

	token, loggedIn, err := svc.Login(ctx, Credentials{Username: "caja1", Password: "secreto123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.AccessToken == "" || token.TokenType != "Bearer" {
		t.Errorf("unexpected token: %+v", token)
	}
	if loggedIn.ID != op.ID {
		t.Error("wrong operator returned")
	}
	if op.LastLoginAt == nil {
		t.Error("last login not recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newTestService()
	seedOperator(t, repo, "caja1", "secreto123")

	_, _, err := svc.Login(context.Background(), Credentials{Username: "caja1", Password: "wrong"})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeUnauthorized {
		t.Errorf("expected code %s, got %v", apperror.CodeUnauthorized, err)
	}
}

func TestLoginLockout(t *testing.T) {
	svc, repo := newTestService()
	op := seedOperator(t, repo, "caja1", "secreto123")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, _ = svc.Login(ctx, Credentials{Username: "caja1", Password: "wrong"})
	}
	if !op.IsLocked() {
		t.Fatal("expected account locked after repeated failures")
	}

	// Correct password is rejected while locked.
	_, _, err := svc.Login(ctx, Credentials{Username: "caja1", Password: "secreto123"})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeForbidden {
		t.Errorf("expected code %s, got %v", apperror.CodeForbidden, err)
	}
}

func TestLoginInactiveOperator(t *testing.T) {
	svc, repo := newTestService()
	op := seedOperator(t, repo, "caja1", "secreto123")
	op.IsActive = false

	_, _, err := svc.Login(context.Background(), Credentials{Username: "caja1", Password: "secreto123"})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeForbidden {
		t.Errorf("expected code %s, got %v", apperror.CodeForbidden, err)
	}
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	op, err := svc.Register(ctx, "admin", "secreto123", "Administrador", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !op.IsAdmin || op.Name != "Administrador" {
		t.Errorf("unexpected operator: %+v", op)
	}
	if _, ok := repo.operators["admin"]; !ok {
		t.Fatal("operator not persisted")
	}

	// Duplicate username rejected.
	_, err = svc.Register(ctx, "admin", "secreto123", "", false)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeConflict {
		t.Errorf("expected code %s, got %v", apperror.CodeConflict, err)
	}

	// Short password rejected.
	_, err = svc.Register(ctx, "caja2", "corto", "", false)
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeValidation {
		t.Errorf("expected code %s, got %v", apperror.CodeValidation, err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	jwtSvc := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "puntoventa",
		AccessTokenTTL: time.Hour,
	})

	op := NewOperator("caja1", "hash")
	op.Name = "Cajero Uno"
	op.IsAdmin = true

	tokenString, expiresAt, err := jwtSvc.GenerateAccessToken(op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 59*time.Minute {
		t.Errorf("unexpected expiry: %v", expiresAt)
	}

	opCtx, err := jwtSvc.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opCtx.OperatorID != op.ID.String() || opCtx.Username != "caja1" || !opCtx.IsAdmin {
		t.Errorf("unexpected context: %+v", opCtx)
	}
}

func TestJWTRejectsBadSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	tokenString, _, err := issuer.GenerateAccessToken(NewOperator("caja1", "hash"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := verifier.ValidateToken(tokenString); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}

func TestChangePassword(t *testing.T) {
	svc, repo := newTestService()
	op := seedOperator(t, repo, "caja1", "secreto123")
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, op.ID, "secreto123", "nuevosecreto"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := svc.Login(ctx, Credentials{Username: "caja1", Password: "nuevosecreto"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}

	err := svc.ChangePassword(ctx, op.ID, "wrong", "otrosecreto")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.CodeUnauthorized {
		t.Errorf("expected code %s, got %v", apperror.CodeUnauthorized, err)
	}
}
