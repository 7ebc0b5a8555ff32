package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAuthConfigDefaults(t *testing.T) {
	cfg := AuthConfig{JWTSecret: "s"}
	cfg.ApplyDefaults()

	if cfg.TokenTTL != 3600*time.Second {
		t.Fatalf("token_ttl = %s, want 3600s", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("bcrypt_cost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.PasswordMinLength != 6 {
		t.Fatalf("password_min_length = %d, want 6", cfg.PasswordMinLength)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestAuthConfigRequiresSecret(t *testing.T) {
	cfg := AuthConfig{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing jwt secret")
	}
}

func TestAuthConfigRejectsBadCost(t *testing.T) {
	for _, cost := range []int{1, 3, 32, 100} {
		cfg := AuthConfig{JWTSecret: "s", BcryptCost: cost}
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err == nil {
			t.Fatalf("cost %d: expected validation error", cost)
		}
	}
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
environment: staging
server:
  port: 5000
database:
  dsn: "file::memory:"
auth:
  jwt_secret: from-file
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("EQUIPHUB_AUTH_JWT_SECRET", "from-env")

	cfg, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "staging" {
		t.Fatalf("environment = %q", cfg.Environment)
	}
	if cfg.Server.Port != 5000 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("jwt_secret = %q, env override lost", cfg.Auth.JWTSecret)
	}
	// Untouched sections still get their defaults.
	if cfg.Auth.TokenTTL != 3600*time.Second {
		t.Fatalf("token_ttl = %s", cfg.Auth.TokenTTL)
	}
	if cfg.Name != "equiphub" {
		t.Fatalf("name = %q", cfg.Name)
	}
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
environment: qa
auth:
  jwt_secret: s
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(WithConfigFile(path)); err == nil {
		t.Fatal("expected error for invalid environment")
	}
}
