package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/studybuddy/backend/internal/app/models/dto"
	"github.com/studybuddy/backend/internal/pkg/apperrors"
	"github.com/studybuddy/backend/internal/pkg/auth"
)

type testEnv struct {
	users        *mockUserRepo
	tokens       *mockTokenRepo
	courses      *mockCourseRepo
	enrollments  *mockEnrollmentRepo
	sessions     *mockSessionRepo
	participants *mockParticipantRepo

	authService       *AuthService
	enrollmentService *EnrollmentService
	sessionService    *SessionService
	dashboardService  *DashboardService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:        newMockUserRepo(),
		tokens:       newMockTokenRepo(),
		courses:      newMockCourseRepo(),
		participants: newMockParticipantRepo(),
	}
	env.enrollments = newMockEnrollmentRepo(env.courses)
	env.sessions = newMockSessionRepo(env.enrollments, env.courses, env.users)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studybuddy.test",
	})

	nop := zerolog.Nop()
	env.authService = NewAuthService(env.users, env.tokens, jwtService, nop)
	env.enrollmentService = NewEnrollmentService(env.courses, env.enrollments, nop)
	env.sessionService = NewSessionService(env.sessions, env.participants, env.courses, env.enrollments, nop)
	env.dashboardService = NewDashboardService(env.users, env.enrollmentService, env.sessionService, nop)
	return env
}

func (env *testEnv) register(t *testing.T, username, email, password string) int64 {
	t.Helper()
	resp, err := env.authService.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", username, err)
	}
	return resp.UserID
}

func TestRegister(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.authService.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.UserID == 0 || resp.Username != "alice" {
		t.Errorf("unexpected response: %+v", resp)
	}

	user, err := env.users.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv()
	cases := []dto.RegisterRequest{
		{Username: "", Email: "a@example.com", Password: "pw"},
		{Username: "a", Email: "", Password: "pw"},
		{Username: "a", Email: "a@example.com", Password: ""},
		{Username: "   ", Email: "a@example.com", Password: "pw"},
	}
	for _, req := range cases {
		if _, err := env.authService.Register(context.Background(), &req); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("Register(%+v) = %v, want validation error", req, err)
		}
	}
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.register(t, "alice", "alice@example.com", "secret123")

	_, err := env.authService.Register(ctx, &dto.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "pw",
	})
	if !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		t.Errorf("duplicate username = %v, want ErrUsernameAlreadyExists", err)
	}

	_, err = env.authService.Register(ctx, &dto.RegisterRequest{
		Username: "bob", Email: "alice@example.com", Password: "pw",
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("duplicate email = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := env.register(t, "alice", "alice@example.com", "secret123")

	tokens, err := env.authService.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}
	if tokens.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", tokens.TokenType)
	}
	if env.tokens.liveTokenCount(userID) != 1 {
		t.Error("refresh token not persisted")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.register(t, "alice", "alice@example.com", "secret123")

	cases := []dto.LoginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: "secret123"},
		{Username: "", Password: "secret123"},
		{Username: "alice", Password: ""},
	}
	for _, req := range cases {
		if _, err := env.authService.Login(ctx, &req); !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Login(%q/%q) = %v, want ErrInvalidCredentials", req.Username, req.Password, err)
		}
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.register(t, "alice", "alice@example.com", "secret123")

	tokens, err := env.authService.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	refreshed, err := env.authService.RefreshToken(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if refreshed.RefreshToken == tokens.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token is revoked and cannot be reused
	if _, err := env.authService.RefreshToken(ctx, tokens.RefreshToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("reused token = %v, want ErrTokenRevoked", err)
	}
}

func TestRefreshTokenUnknown(t *testing.T) {
	env := newTestEnv()
	if _, err := env.authService.RefreshToken(context.Background(), "no-such-token"); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Errorf("RefreshToken = %v, want ErrTokenNotFound", err)
	}
	if _, err := env.authService.RefreshToken(context.Background(), ""); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Errorf("RefreshToken(empty) = %v, want ErrTokenInvalid", err)
	}
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := env.register(t, "alice", "alice@example.com", "secret123")

	for i := 0; i < 3; i++ {
		if _, err := env.authService.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret123"}); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
	}
	if env.tokens.liveTokenCount(userID) != 3 {
		t.Fatalf("liveTokenCount = %d, want 3", env.tokens.liveTokenCount(userID))
	}

	if err := env.authService.Logout(ctx, userID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if env.tokens.liveTokenCount(userID) != 0 {
		t.Error("logout left live refresh tokens behind")
	}
}
