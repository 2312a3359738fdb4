package service

import (
	"context"
	"testing"

	"github.com/spec-kit/mini-crm/internal/auth"
	"github.com/spec-kit/mini-crm/internal/config"
	"github.com/spec-kit/mini-crm/internal/domain"
	apperrors "github.com/spec-kit/mini-crm/pkg/util/errorutil"
)

func testAuthConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            4,
	}}
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()

	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, apperrors.NewNotFound("user", nil)
		},
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			user.ID = "user-1"
			return nil
		},
	}
	svc := NewAuthService(testAuthConfig(), repo)

	user, token, _, err := svc.Register(ctx, "John Doe", "John@Example.com", "password123", domain.RoleEmployee)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Email != "john@example.com" {
		t.Errorf("expected normalized email, got %s", user.Email)
	}
	if user.Role != domain.RoleEmployee {
		t.Errorf("expected EMPLOYEE role, got %s", user.Role)
	}
	if token == "" {
		t.Error("expected a signed token")
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("token should parse, got %v", err)
	}
	if claims.SubjectID != "user-1" || claims.Role != domain.RoleEmployee {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()

	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email}, nil
		},
	}
	svc := NewAuthService(testAuthConfig(), repo)

	_, _, _, err := svc.Register(ctx, "John Doe", "john@example.com", "password123", domain.RoleAdmin)
	if !apperrors.IsConflict(err) {
		t.Fatalf("expected Conflict for duplicate email, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("correct-password", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: hash, Role: domain.RoleEmployee}, nil
		},
	}
	svc := NewAuthService(testAuthConfig(), repo)

	_, _, _, err = svc.Login(ctx, "john@example.com", "wrong-password")
	if err == nil {
		t.Fatal("expected error for wrong password")
	}
	if apperrors.ToDomainError(err).Code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED, got %s", apperrors.ToDomainError(err).Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	ctx := context.Background()

	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, apperrors.NewNotFound("user", nil)
		},
	}
	svc := NewAuthService(testAuthConfig(), repo)

	_, _, _, err := svc.Login(ctx, "ghost@example.com", "whatever")
	if apperrors.ToDomainError(err).Code != "UNAUTHORIZED" {
		t.Fatalf("expected UNAUTHORIZED for unknown email, got %v", err)
	}
}
