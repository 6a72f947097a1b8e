package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SQLITE_DB_PATH", "BCRYPT_COST",
		"RATE_LIMIT_PER_MINUTE", "LOG_LEVEL",
		"READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SQLiteDBPath != "./data/budget.db" {
		t.Errorf("SQLiteDBPath = %q", cfg.SQLiteDBPath)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Errorf("RateLimitPerMinute = %d, want 60", cfg.RateLimitPerMinute)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.ReadTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Errorf("RateLimitPerMinute = %d, want 30", cfg.RateLimitPerMinute)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:               "8080",
			SQLiteDBPath:       t.TempDir() + "/budget.db",
			BcryptCost:         10,
			RateLimitPerMinute: 60,
			LogLevel:           "info",
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       10 * time.Second,
			ShutdownTimeout:    30 * time.Second,
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"non numeric port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"empty db path", func(c *Config) { c.SQLiteDBPath = "" }, "database path"},
		{"bcrypt cost too low", func(c *Config) { c.BcryptCost = 3 }, "bcrypt cost"},
		{"bcrypt cost too high", func(c *Config) { c.BcryptCost = 32 }, "bcrypt cost"},
		{"zero rate limit", func(c *Config) { c.RateLimitPerMinute = 0 }, "rate limit"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log level"},
		{"short read timeout", func(c *Config) { c.ReadTimeout = time.Millisecond }, "read timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tc.wantMsg)
			}
		})
	}
}
