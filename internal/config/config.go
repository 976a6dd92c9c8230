// Package config loads application configuration. Sources are merged with
// fixed precedence: command-line flags (applied by the caller) over
// environment variables over an optional TOML file over built-in defaults.
// A .env file in the working directory is folded into the environment
// before it is read.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/Ujjayini-101/GitRefiny/pkg/cache"
	"github.com/Ujjayini-101/GitRefiny/pkg/errors"
)

// DefaultAddr is the default HTTP listen address.
const DefaultAddr = ":5000"

// Config holds all runtime configuration.
type Config struct {
	// GitHubToken is the default Personal Access Token for GitHub API
	// calls. Per-request tokens override it.
	GitHubToken string

	// GroqAPIKey enables the Groq Llama generation backend.
	GroqAPIKey string

	// GeminiAPIKey enables the Gemini generation backend.
	GeminiAPIKey string

	// GeminiModel overrides the default Gemini model name.
	GeminiModel string

	// CacheTTL is the analysis result cache lifetime.
	CacheTTL time.Duration

	// Addr is the HTTP server listen address.
	Addr string
}

// fileConfig is the TOML file shape. Durations are strings ("30m", "2h").
type fileConfig struct {
	GitHubToken  string `toml:"github_token"`
	GroqAPIKey   string `toml:"groq_api_key"`
	GeminiAPIKey string `toml:"gemini_api_key"`
	GeminiModel  string `toml:"gemini_model"`
	CacheTTL     string `toml:"cache_ttl"`
	Addr         string `toml:"addr"`
}

// Load assembles the configuration. path names an optional TOML file: empty
// means no file, a missing named file is an error. A .env file is loaded
// best-effort before environment variables are read.
func Load(path string) (*Config, error) {
	// Ignore the error: a missing .env file is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		CacheTTL: cache.DefaultTTL,
		Addr:     DefaultAddr,
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "load config file %s", path)
	}

	setString(&c.GitHubToken, fc.GitHubToken)
	setString(&c.GroqAPIKey, fc.GroqAPIKey)
	setString(&c.GeminiAPIKey, fc.GeminiAPIKey)
	setString(&c.GeminiModel, fc.GeminiModel)
	setString(&c.Addr, fc.Addr)
	if fc.CacheTTL != "" {
		ttl, err := time.ParseDuration(fc.CacheTTL)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err,
				"invalid cache_ttl %q in %s", fc.CacheTTL, path)
		}
		c.CacheTTL = ttl
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.GitHubToken, os.Getenv("GITHUB_TOKEN"))
	setString(&c.GroqAPIKey, os.Getenv("GROQ_API_KEY"))
	setString(&c.GeminiAPIKey, os.Getenv("GEMINI_API_KEY"))
	setString(&c.GeminiModel, os.Getenv("GITREFINY_GEMINI_MODEL"))
	setString(&c.Addr, os.Getenv("GITREFINY_ADDR"))
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GITREFINY_ADDR") == "" {
		c.Addr = ":" + port
	}
	if v := os.Getenv("GITREFINY_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err,
				"invalid GITREFINY_CACHE_TTL %q", v)
		}
		c.CacheTTL = ttl
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
