package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maisonvela/vela-backend/pkg/config"
	"github.com/maisonvela/vela-backend/pkg/enums"
)

func tokenConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "vela-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := tokenConfig()
	userID := uuid.New()

	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: userID,
		Email:  "shopper@example.com",
		Role:   enums.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("user id mismatch: %s", claims.UserID)
	}
	if claims.Role != enums.RoleCustomer {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
	if claims.Email != "shopper@example.com" {
		t.Fatalf("email mismatch: %s", claims.Email)
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := tokenConfig()

	signed, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		Role:   enums.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestMintAccessTokenRejectsInvalidRole(t *testing.T) {
	if _, err := MintAccessToken(tokenConfig(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.Role("superuser"),
	}); err == nil {
		t.Fatal("expected invalid role error")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := tokenConfig()
	other := cfg
	other.Issuer = "someone-else"

	signed, err := MintAccessToken(other, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		Role:   enums.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected issuer mismatch to be rejected")
	}
}
