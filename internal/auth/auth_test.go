package auth

import (
	"errors"
	"testing"
	"time"

	"lol-tracker/internal/config"
	"lol-tracker/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		JWTExpiration: time.Hour,
		BcryptCost:    4,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testConfig())
	user := &domain.User{ID: 42, Username: "faker", Role: domain.RoleAdmin}

	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Username() != "faker" || claims.UserID != 42 || claims.Role != domain.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer(testConfig())
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }

	token, err := issuer.Issue(&domain.User{ID: 1, Username: "u", Role: domain.RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	issuer.now = func() time.Time { return start.Add(2 * time.Hour) }
	if _, err := issuer.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer(testConfig()).Issue(&domain.User{ID: 1, Username: "u"})
	if err != nil {
		t.Fatal(err)
	}
	other := testConfig()
	other.JWTSecret = "ffffffffffffffffffffffffffffffff"
	if _, err := NewTokenIssuer(other).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
	if _, err := NewTokenIssuer(other).Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token error = %v", err)
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(testConfig())
	hash, err := h.Hash("s3cret!")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "s3cret!" {
		t.Fatal("hash must not equal plaintext")
	}
	if !h.Matches(hash, "s3cret!") {
		t.Error("expected match")
	}
	if h.Matches(hash, "wrong") {
		t.Error("expected mismatch")
	}
	if h.Matches("not-a-hash", "s3cret!") {
		t.Error("malformed hash must not match")
	}
}
