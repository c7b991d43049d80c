package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewService(t *testing.T) {
	secret := "test-secret-key"
	service := NewService(secret)

	if service == nil {
		t.Fatal("expected non-nil Service")
	}
	if string(service.jwtSecret) != secret {
		t.Errorf("expected secret %q, got %q", secret, string(service.jwtSecret))
	}
	if service.tokenDuration != 24*time.Hour {
		t.Errorf("expected token duration 24h, got %v", service.tokenDuration)
	}
}

func TestGenerateToken(t *testing.T) {
	service := NewService("test-secret-key")

	tests := []struct {
		name     string
		operator string
	}{
		{name: "named operator", operator: "alice"},
		{name: "empty operator", operator: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.GenerateToken(tt.operator)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if token == "" {
				t.Fatal("expected non-empty token")
			}

			claims, err := service.ValidateToken(token)
			if err != nil {
				t.Fatalf("failed to validate generated token: %v", err)
			}
			if claims.Operator != tt.operator {
				t.Errorf("Operator = %q, want %q", claims.Operator, tt.operator)
			}
			if claims.Issuer != "crossfill" {
				t.Errorf("Issuer = %q, want %q", claims.Issuer, "crossfill")
			}
		})
	}
}

func TestGenerateToken_Expiration(t *testing.T) {
	service := NewService("test-secret-key")

	before := time.Now().Truncate(time.Second)
	token, err := service.GenerateToken("alice")
	after := time.Now().Add(time.Second).Truncate(time.Second)

	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	actualExpiry := claims.ExpiresAt.Time
	minExpiry := before.Add(24 * time.Hour)
	maxExpiry := after.Add(24 * time.Hour)

	if actualExpiry.Before(minExpiry) || actualExpiry.After(maxExpiry) {
		t.Errorf("token expiry = %v, expected between %v and %v", actualExpiry, minExpiry, maxExpiry)
	}
	if claims.IssuedAt.Time.Before(before) || claims.IssuedAt.Time.After(after) {
		t.Errorf("token IssuedAt = %v, expected between %v and %v", claims.IssuedAt.Time, before, after)
	}
}

func TestValidateToken(t *testing.T) {
	service := NewService("test-secret-key")

	validToken, _ := service.GenerateToken("alice")

	tests := []struct {
		name         string
		token        string
		wantErr      error
		wantOperator string
	}{
		{name: "valid token", token: validToken, wantOperator: "alice"},
		{name: "empty token", token: "", wantErr: ErrInvalidToken},
		{name: "malformed token", token: "not.a.valid.jwt.token", wantErr: ErrInvalidToken},
		{name: "random string", token: "randomgarbage123", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("ValidateToken() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ValidateToken() unexpected error = %v", err)
			}
			if claims.Operator != tt.wantOperator {
				t.Errorf("Operator = %q, want %q", claims.Operator, tt.wantOperator)
			}
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service1 := NewService("secret-one")
	service2 := NewService("secret-two")

	token, err := service1.GenerateToken("alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = service2.ValidateToken(token)
	if err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken when validating with wrong secret, got %v", err)
	}
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	service := &Service{
		jwtSecret:     []byte("test-secret"),
		tokenDuration: -1 * time.Hour,
	}

	token, err := service.GenerateToken("alice")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = service.ValidateToken(token)
	if err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired for expired token, got %v", err)
	}
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	service := NewService("test-secret")

	claims := &Claims{
		Operator: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "crossfill",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

	_, err := service.ValidateToken(tokenString)
	if err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for wrong signing method, got %v", err)
	}
}

func TestClaims_Structure(t *testing.T) {
	service := NewService("test-secret")

	token, _ := service.GenerateToken("alice")
	claims, _ := service.ValidateToken(token)

	if claims.Operator == "" {
		t.Error("Operator should not be empty")
	}
	if claims.ExpiresAt == nil {
		t.Error("ExpiresAt should not be nil")
	}
	if claims.IssuedAt == nil {
		t.Error("IssuedAt should not be nil")
	}
	if claims.Issuer == "" {
		t.Error("Issuer should not be empty")
	}
}
