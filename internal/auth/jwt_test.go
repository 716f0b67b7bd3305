package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/config"
)

func newTestManager(secret string) *JWTManager {
	return NewJWTManager(&config.Config{JWTSecret: secret})
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newTestManager("test-secret-key-for-testing-min-32-chars")

	token, err := m.GenerateAccessToken("64f0c0ffee", "admin@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != "64f0c0ffee" {
		t.Errorf("expected user id 64f0c0ffee, got %s", claims.UserID)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("expected role admin, got %s", claims.Role)
	}
	if claims.Subject != "64f0c0ffee" {
		t.Errorf("expected subject 64f0c0ffee, got %s", claims.Subject)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := newTestManager("secret-one-secret-one-secret-one").GenerateAccessToken("u1", "a@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := newTestManager("secret-two-secret-two-secret-two").ValidateAccessToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	m := newTestManager("test-secret-key-for-testing-min-32-chars")
	m.accessTokenExpiry = -time.Minute

	token, err := m.GenerateAccessToken("u1", "a@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManager_RejectsNonHMAC(t *testing.T) {
	m := newTestManager("test-secret-key-for-testing-min-32-chars")

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1", Role: RoleAdmin})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := m.ValidateAccessToken(signed); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_Garbage(t *testing.T) {
	m := newTestManager("test-secret-key-for-testing-min-32-chars")
	if _, err := m.ValidateAccessToken("not.a.token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
