package security

import (
	"errors"
	"testing"

	"github.com/cwrk-planet/forum-service/internal/domain"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery", &BcryptConfig{Cost: 4, MinLength: 6})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash equals plaintext")
	}
	if err := ComparePassword(hash, "correct horse battery"); err != nil {
		t.Fatalf("compare with correct password: %v", err)
	}
	if err := ComparePassword(hash, "wrong password"); err == nil {
		t.Fatal("compare with wrong password succeeded")
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	_, err := HashPassword("short", &BcryptConfig{MinLength: 8})
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestRandomStringURLSafe_Distinct(t *testing.T) {
	a, err := RandomStringURLSafe(32)
	if err != nil {
		t.Fatalf("rand: %v", err)
	}
	b, err := RandomStringURLSafe(32)
	if err != nil {
		t.Fatalf("rand: %v", err)
	}
	if a == b {
		t.Fatal("two random tokens are equal")
	}
	if SHA256HexOfString(a) == SHA256HexOfString(b) {
		t.Fatal("hashes of distinct tokens are equal")
	}
}
