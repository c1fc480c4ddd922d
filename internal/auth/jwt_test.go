package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := GenerateJWT(secret, userID, "brand@example.com", "BRAND", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "brand@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "brand@example.com")
	}
	if claims.Role != "BRAND" {
		t.Errorf("Role = %q, want BRAND", claims.Role)
	}
	if claims.Issuer != "influencetie" {
		t.Errorf("Issuer = %q, want influencetie", claims.Issuer)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", uuid.New(), "a@b.c", "INFLUENCER", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Error("ParseJWT with wrong secret should fail")
	}
}

func TestParseJWTExpired(t *testing.T) {
	claims := Claims{
		UserID: uuid.New(),
		Email:  "a@b.c",
		Role:   "INFLUENCER",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    "influencetie",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("ParseJWT with expired token should fail")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not.a.token"); err == nil {
		t.Error("ParseJWT with garbage should fail")
	}
}
