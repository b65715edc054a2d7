package services

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

func newTestAuthService(t *testing.T) *AuthService {
	db := setupTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), "test-secret", 30*time.Minute)
}

func TestAuthService_EnsureOperatorAndLogin(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	created, err := auth.EnsureOperator(ctx, "admin", "admin123")
	if err != nil || !created {
		t.Fatalf("expected operator to be created, created=%v err=%v", created, err)
	}

	created, err = auth.EnsureOperator(ctx, "admin", "different")
	if err != nil || created {
		t.Fatalf("expected existing operator to be kept, created=%v err=%v", created, err)
	}

	token, err := auth.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token.TokenType != "bearer" || token.AccessToken == "" {
		t.Errorf("unexpected token response %+v", token)
	}

	subject, err := auth.VerifyToken(token.AccessToken)
	if err != nil {
		t.Fatalf("token verification failed: %v", err)
	}
	if subject != "admin" {
		t.Errorf("expected subject admin, got %q", subject)
	}

	if _, err := auth.Login(ctx, "admin", "different"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := auth.Login(ctx, "ghost", "admin123"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestAuthService_EnsureOperatorRequiresPassword(t *testing.T) {
	auth := newTestAuthService(t)

	if _, err := auth.EnsureOperator(context.Background(), "admin", ""); !errors.Is(err, ErrOperatorPasswordRequired) {
		t.Errorf("expected ErrOperatorPasswordRequired, got %v", err)
	}
}

func TestAuthService_VerifyTokenRejects(t *testing.T) {
	auth := newTestAuthService(t)

	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return issued }
	token, err := auth.IssueToken("admin")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	auth.now = func() time.Time { return issued.Add(31 * time.Minute) }
	if _, err := auth.VerifyToken(token); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}

	other := NewAuthService(nil, "another-secret", time.Hour)
	foreign, _ := other.IssueToken("admin")
	auth.now = time.Now
	if _, err := auth.VerifyToken(foreign); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected token signed with another key to be rejected, got %v", err)
	}

	if _, err := auth.VerifyToken("not-a-jwt"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected garbage token to be rejected, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.SetOperatorPassword(ctx, "admin", "pw"); err != nil {
		t.Fatalf("failed to store operator: %v", err)
	}

	user, err := auth.CurrentUser(ctx, "admin")
	if err != nil || user.Username != "admin" {
		t.Fatalf("unexpected current user %+v err=%v", user, err)
	}

	if _, err := auth.CurrentUser(ctx, "ghost"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
