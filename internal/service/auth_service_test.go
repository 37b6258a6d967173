package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"finboard/internal/dto"
	"finboard/internal/models"
	"finboard/internal/repository"
	"finboard/pkg/auth"

	"go.uber.org/zap"
)

func newAuthService() (*AuthService, *auth.JWTManager) {
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
	return NewAuthService(repository.NewMemoryUserRepository(), jwtManager, zap.NewNop()), jwtManager
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, jwtManager := newAuthService()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Name: "John Doe", Email: " User@Example.com ", Password: "password123"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.User.Email != "user@example.com" || reg.TokenType != "Bearer" || reg.ExpiresIn != 900 {
		t.Errorf("unexpected response %+v", reg)
	}

	claims, err := jwtManager.ValidateToken(reg.AccessToken)
	if err != nil || claims.UserID != reg.User.ID || claims.TokenType != auth.TokenTypeAccess {
		t.Errorf("access token claims = %+v, %v", claims, err)
	}

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("login user = %s, want %s", login.User.ID, reg.User.ID)
	}
}

func TestAuthServiceRegisterErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "B", Email: "A@example.com", Password: "secret2"}); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate email error = %v, want ErrUserExists", err)
	}

	tests := []struct {
		name  string
		req   dto.RegisterRequest
		field string
	}{
		{"missing name", dto.RegisterRequest{Email: "n@example.com", Password: "secret1"}, "name"},
		{"missing email", dto.RegisterRequest{Name: "N", Password: "secret1"}, "email"},
		{"malformed email", dto.RegisterRequest{Name: "N", Email: "not-an-email", Password: "secret1"}, "email"},
		{"display name email", dto.RegisterRequest{Name: "N", Email: "N <n@example.com>", Password: "secret1"}, "email"},
		{"short password", dto.RegisterRequest{Name: "N", Email: "n@example.com", Password: "12345"}, "password"},
		{"password over bcrypt limit", dto.RegisterRequest{Name: "N", Email: "n@example.com", Password: strings.Repeat("p", 73)}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tt.req)
			if ve, ok := IsValidationError(err); !ok || ve.Field != tt.field {
				t.Errorf("error = %v, want ValidationError on %q", err, tt.field)
			}
		})
	}
}

// racingUserStore misses on lookup so Register reaches Create after a concurrent insert.
type racingUserStore struct {
	*repository.MemoryUserRepository
}

func (racingUserStore) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}

func TestAuthServiceRegisterConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	store := racingUserStore{repository.NewMemoryUserRepository()}
	svc := NewAuthService(store, auth.NewJWTManager("test-secret", time.Minute, time.Hour), zap.NewNop())

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "B", Email: "a@example.com", Password: "secret2"})
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("error = %v, want ErrUserExists", err)
	}
}

func TestAuthServiceRegisterPasswordAtBcryptLimit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	password := strings.Repeat("p", maxPasswordBytes)
	if _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "N", Email: "n@example.com", Password: password}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "n@example.com", Password: password}); err != nil {
		t.Errorf("Login() error = %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "n@example.com", Password: password + "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("over-long login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthServiceLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()
	if _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	for _, req := range []dto.LoginRequest{
		{Email: "a@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "secret1"},
	} {
		if _, err := svc.Login(ctx, &req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%s) error = %v, want ErrInvalidCredentials", req.Email, err)
		}
	}
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, jwtManager := newAuthService()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}

	refreshed, err := svc.RefreshToken(ctx, reg.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if refreshed.User.ID != reg.User.ID || refreshed.AccessToken == "" {
		t.Errorf("unexpected response %+v", refreshed)
	}

	if _, err := svc.RefreshToken(ctx, reg.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("access token accepted as refresh token: %v", err)
	}
	if _, err := svc.RefreshToken(ctx, "garbage"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("garbage token error = %v", err)
	}

	orphan, err := jwtManager.GenerateRefreshToken("8d0c3c5e-2b9a-4d8e-9f1a-3c7b6e5d4a21")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RefreshToken(ctx, orphan); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user error = %v, want ErrUserNotFound", err)
	}
}
