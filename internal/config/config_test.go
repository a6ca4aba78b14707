package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("unexpected default port %q", cfg.App.Port)
	}
	if cfg.Auth.TokenTTL() != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %v", cfg.Auth.TokenTTL())
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.AdminJWTSecret == cfg.Auth.UserJWTSecret {
		t.Fatalf("admin and user secrets must differ")
	}
}

func TestAddr(t *testing.T) {
	app := AppConfig{Host: "127.0.0.1", Port: "9000"}
	if app.Addr() != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", app.Addr())
	}
}
