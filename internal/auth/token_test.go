package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, expiresAt, err := tm.Issue("admin-1")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 59*time.Minute {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	id, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if id != "admin-1" {
		t.Fatalf("expected admin-1, got %q", id)
	}
}

func TestCrossScopeTokenRejected(t *testing.T) {
	adminTokens := NewTokenManager("admin-secret", time.Hour)
	userTokens := NewTokenManager("user-secret", time.Hour)

	adminToken, _, err := adminTokens.Issue("admin-1")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	userToken, _, err := userTokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, err := userTokens.Parse(adminToken); err == nil {
		t.Fatalf("admin token must not verify under the user secret")
	}
	if _, err := adminTokens.Parse(userToken); err == nil {
		t.Fatalf("user token must not verify under the admin secret")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	expired := TokenManager{secret: []byte("secret"), ttl: -time.Minute}
	token, _, err := expired.Issue("user-1")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := tm.Parse(token); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}

	nearExpiry := TokenManager{secret: []byte("secret"), ttl: time.Second}
	token, _, err = nearExpiry.Issue("user-1")
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if _, err := tm.Parse(token); err != nil {
		t.Fatalf("token just before expiry must verify: %v", err)
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	for _, bad := range []string{"", "garbage", "a.b.c"} {
		if _, err := tm.Parse(bad); err == nil {
			t.Fatalf("expected %q to fail verification", bad)
		}
	}
}
