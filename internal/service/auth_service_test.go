package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aubrey-sherman/baby-bootcamp-be/config"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/dto"
	"github.com/aubrey-sherman/baby-bootcamp-be/internal/repository"
	"github.com/aubrey-sherman/baby-bootcamp-be/pkg/jwt"
)

func setupTestAuthService() (AuthService, *jwt.Manager) {
	repo := &repository.Repository{
		User:  newMockUserRepo(),
		Block: newMockBlockRepo(),
		Entry: newMockEntryRepo(),
	}
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	return NewAuthService(repo, jwtMgr, zap.NewNop()), jwtMgr
}

func registerReq() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:  "ada",
		Password:  "correct-horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		BabyName:  "Byron",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, jwtMgr := setupTestAuthService()

	result, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("register should succeed: %v", err)
	}
	if result.User.Username != "ada" || result.User.BabyName != "Byron" {
		t.Errorf("unexpected user in response: %+v", result.User)
	}
	if result.ExpiresIn != 900 {
		t.Errorf("expected expires_in 900, got %d", result.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("access token should parse: %v", err)
	}
	if claims.Username != "ada" || claims.TokenType != "access" {
		t.Errorf("unexpected access claims: %+v", claims)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("first register should succeed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerReq())
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("register should succeed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ada", Password: "correct-horse"}); err != nil {
		t.Errorf("login should succeed: %v", err)
	}

	// Wrong password and unknown user collapse into the same error.
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ada", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _ := setupTestAuthService()

	registered, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("register should succeed: %v", err)
	}

	result, err := svc.Refresh(context.Background(), registered.RefreshToken)
	if err != nil {
		t.Fatalf("refresh should succeed: %v", err)
	}
	if result.User.Username != "ada" {
		t.Errorf("refresh returned wrong user: %s", result.User.Username)
	}

	// An access token must not pass as a refresh token.
	_, err = svc.Refresh(context.Background(), registered.AccessToken)
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("expected ErrInvalidRefresh for access token, got %v", err)
	}

	_, err = svc.Refresh(context.Background(), "garbage")
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("expected ErrInvalidRefresh for garbage, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := setupTestAuthService()

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("register should succeed: %v", err)
	}

	user, err := svc.Me(context.Background(), "ada")
	if err != nil {
		t.Fatalf("me should succeed: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("unexpected email %s", user.Email)
	}

	_, err = svc.Me(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
