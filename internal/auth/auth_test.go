package auth

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gatherly/gatherly-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("expected correct password to verify")
	}

	ok, err = VerifyPassword(hash, "wrong password")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("expected wrong password to fail")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "anything")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("malformed hash should verify as false")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	a, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected different salts to produce different hashes")
	}
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	svc, err := NewTokenService(key, 15*time.Minute, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)
	user := &domain.User{ID: "usr-123", Email: "sam@example.com"}

	token, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if !strings.HasPrefix(token, "v4.local.") {
		t.Errorf("expected v4.local token, got %s", token[:20])
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != "usr-123" {
		t.Errorf("UserID: got %q", claims.UserID)
	}
	if claims.Email != "sam@example.com" {
		t.Errorf("Email: got %q", claims.Email)
	}
	if claims.Subject != "usr-123" {
		t.Errorf("Subject: got %q", claims.Subject)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	svc, err := NewTokenService(key, -time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, err := svc.GenerateAccessToken(&domain.User{ID: "usr-1", Email: "a@b.c"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.VerifyAccessToken(token); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc := newTestTokenService(t)
	other := newTestTokenService(t)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "usr-1", Email: "a@b.c"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := other.VerifyAccessToken(token); err == nil {
		t.Error("expected token to fail under a different key")
	}
}

func TestNewTokenService_BadKeyLength(t *testing.T) {
	if _, err := NewTokenService(make([]byte, 16), time.Minute, time.Hour); err == nil {
		t.Error("expected error for short key")
	}
}

func TestRefreshToken(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty refresh token")
	}

	hash := HashRefreshToken(token)
	if hash == token {
		t.Error("hash should differ from token")
	}
	if HashRefreshToken(token) != hash {
		t.Error("hashing should be deterministic")
	}

	other, err := svc.GenerateRefreshToken()
	if err != nil {
		t.Fatal(err)
	}
	if HashRefreshToken(other) == hash {
		t.Error("different tokens should hash differently")
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key, err := LoadOrGenerateKey(dir)
	if err != nil {
		t.Fatalf("LoadOrGenerateKey: %v", err)
	}
	if len(key) != 32 {
		t.Fatalf("expected 32-byte key, got %d", len(key))
	}

	// Second load returns the same key.
	again, err := LoadOrGenerateKey(dir)
	if err != nil {
		t.Fatalf("second LoadOrGenerateKey: %v", err)
	}
	if string(key) != string(again) {
		t.Error("expected stable key across loads")
	}
}

func TestLoadOrGenerateKey_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "auth.key"), []byte("short"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOrGenerateKey(dir); err == nil {
		t.Error("expected error for corrupt key file")
	}
}
