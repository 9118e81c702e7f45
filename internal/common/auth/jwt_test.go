package auth

import (
	"testing"
	"time"

	"github.com/phuchau23/CarS/internal/common/config"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "xecuaban",
		Audience:  "xecuaban",
	}

	token, exp, err := GenerateAccessToken(cfg, "u-1", []string{"driver"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "driver" {
		t.Fatalf("roles mismatch: %#v", claims.Roles)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "secret-a", Issuer: "xecuaban"}
	token, _, err := GenerateAccessToken(cfg, "u-1", nil, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	bad := config.AuthConfig{JWTSecret: "secret-b", Issuer: "xecuaban"}
	if _, err := ParseAccessToken(bad, token); err == nil {
		t.Fatalf("expected parse failure with wrong secret")
	}
}

func TestGenerateAccessTokenValidation(t *testing.T) {
	if _, _, err := GenerateAccessToken(config.AuthConfig{JWTSecret: "s"}, "", nil, time.Hour); err == nil {
		t.Fatalf("expected error for empty subject")
	}
	if _, _, err := GenerateAccessToken(config.AuthConfig{}, "u-1", nil, time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
