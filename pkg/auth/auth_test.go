package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("user1", "John Doe", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "user1" || claims.Email != "user@example.com" || claims.Name != "John Doe" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeAccess)
	}
}

func TestJWTManagerRefreshToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateRefreshToken("user1")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeRefresh)
	}
}

func TestJWTManagerRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, time.Hour)
	token, err := m.GenerateToken("user1", "", "")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other", time.Hour, time.Hour)
		if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTManager("secret", time.Hour, time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := later.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CheckPasswordHash("password123", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPasswordHash("password124", hash) {
		t.Error("expected wrong password to fail")
	}
}
