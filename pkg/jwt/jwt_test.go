package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/aubrey-sherman/baby-bootcamp-be/config"
)

func testManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestManager_RoundTrip(t *testing.T) {
	m := testManager(15 * time.Minute)

	access, err := m.GenerateAccessToken("ada")
	if err != nil {
		t.Fatalf("generating access token: %v", err)
	}
	claims, err := m.ParseToken(access)
	if err != nil {
		t.Fatalf("parsing access token: %v", err)
	}
	if claims.Username != "ada" || claims.TokenType != "access" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	refresh, err := m.GenerateRefreshToken("ada")
	if err != nil {
		t.Fatalf("generating refresh token: %v", err)
	}
	claims, err = m.ParseToken(refresh)
	if err != nil {
		t.Fatalf("parsing refresh token: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("expected token_type refresh, got %s", claims.TokenType)
	}
}

func TestManager_Expired(t *testing.T) {
	m := testManager(-time.Minute)

	token, err := m.GenerateAccessToken("ada")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestManager_WrongSecret(t *testing.T) {
	token, err := testManager(15 * time.Minute).GenerateAccessToken("ada")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	other := NewManager(&config.AuthConfig{
		JWTSecret:       "different-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestManager_Garbage(t *testing.T) {
	m := testManager(15 * time.Minute)
	if _, err := m.ParseToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestManager_AccessTokenTTL(t *testing.T) {
	if got := testManager(15 * time.Minute).AccessTokenTTL(); got != 900 {
		t.Errorf("expected 900 seconds, got %d", got)
	}
}
