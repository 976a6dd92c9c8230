package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_TOKEN", "GROQ_API_KEY", "GEMINI_API_KEY",
		"GITREFINY_GEMINI_MODEL", "GITREFINY_ADDR", "GITREFINY_CACHE_TTL", "PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if cfg.GitHubToken != "" || cfg.GroqAPIKey != "" {
		t.Error("credentials set without any source")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "gitrefiny.toml")
	content := `
github_token = "file-token"
groq_api_key = "file-groq"
cache_ttl = "30m"
addr = ":8080"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubToken != "file-token" || cfg.GroqAPIKey != "file-groq" {
		t.Errorf("credentials = %q/%q", cfg.GitHubToken, cfg.GroqAPIKey)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", cfg.CacheTTL)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "gitrefiny.toml")
	if err := os.WriteFile(path, []byte(`github_token = "file-token"`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("GITREFINY_CACHE_TTL", "2h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubToken != "env-token" {
		t.Errorf("GitHubToken = %q, want env-token", cfg.GitHubToken)
	}
	if cfg.CacheTTL != 2*time.Hour {
		t.Errorf("CacheTTL = %v, want 2h", cfg.CacheTTL)
	}
}

func TestLoadPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", cfg.Addr)
	}

	// An explicit address wins over PORT.
	t.Setenv("GITREFINY_ADDR", ":7000")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("Addr = %q, want :7000", cfg.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Load succeeded for a missing named file")
	}
}

func TestLoadBadTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITREFINY_CACHE_TTL", "soon")

	if _, err := Load(""); err == nil {
		t.Error("Load accepted an invalid duration")
	}
}
