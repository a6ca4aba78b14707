package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "correct horse battery") {
		t.Fatalf("expected password to match its own hash")
	}
	if CheckPassword(hash, "wrong password") {
		t.Fatalf("expected mismatch for a different password")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	second, err := HashPassword("same input", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if first == second {
		t.Fatalf("expected per-call salts to produce distinct hashes")
	}
}
