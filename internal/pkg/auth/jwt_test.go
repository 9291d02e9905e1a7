package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/studybuddy/backend/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studybuddy.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(time.Hour)
	user := &models.User{ID: 42, Username: "alice"}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("expected non-empty tokens")
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}
	if refreshExpiresIn != 86400 {
		t.Errorf("refreshExpiresIn = %d, want 86400", refreshExpiresIn)
	}

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("claims = %+v, want UserID 42 and Username alice", claims)
	}
	if claims.Issuer != "studybuddy.test" {
		t.Errorf("Issuer = %q, want studybuddy.test", claims.Issuer)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService(-time.Minute)
	accessToken, _, _, _, err := svc.GenerateTokenPair(&models.User{ID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := svc.ValidateToken(accessToken); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	accessToken, _, _, _, err := svc.GenerateTokenPair(&models.User{ID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour, RefreshTokenExp: time.Hour})
	if _, err := other.ValidateToken(accessToken); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateAndExtractClaimsRejectsEmpty(t *testing.T) {
	svc := newTestService(time.Hour)
	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("empty token = %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Errorf("ExtractBearerToken = (%q, %v), want (abc.def.ghi, nil)", token, err)
	}

	// A bare token without the prefix is passed through
	token, err = ExtractBearerToken("abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Errorf("ExtractBearerToken = (%q, %v), want (abc.def.ghi, nil)", token, err)
	}

	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("empty header = %v, want ErrInvalidFormat", err)
	}
}
