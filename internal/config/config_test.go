package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_ITEMS", "")
	t.Setenv("MAX_CAPACITY", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.MaxItems != defaultMaxItems {
		t.Fatalf("expected default max items %d, got %d", defaultMaxItems, cfg.MaxItems)
	}
	if cfg.MaxCapacity != defaultMaxCapacity {
		t.Fatalf("expected default max capacity %d, got %d", defaultMaxCapacity, cfg.MaxCapacity)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_ITEMS", "500")
	t.Setenv("MAX_CAPACITY", "2000")
	t.Setenv("RATE_LIMIT_RPS", "5")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.MaxItems != 500 {
		t.Fatalf("expected overridden max items, got %d", cfg.MaxItems)
	}
	if cfg.MaxCapacity != 2000 {
		t.Fatalf("expected overridden max capacity, got %d", cfg.MaxCapacity)
	}
	if cfg.RateLimitRPS != 5 {
		t.Fatalf("expected overridden rate limit, got %f", cfg.RateLimitRPS)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MAX_ITEMS", "")
	t.Setenv("MAX_CAPACITY", "")

	content := `port: "7777"
max_items: 1234
max_capacity: 999
shutdown_grace_period: 3s
rate_limit:
  rps: 10
  burst: 20
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7777" {
		t.Fatalf("expected YAML port, got %s", cfg.Port)
	}
	if cfg.MaxItems != 1234 {
		t.Fatalf("expected YAML max items, got %d", cfg.MaxItems)
	}
	if cfg.MaxCapacity != 999 {
		t.Fatalf("expected YAML max capacity, got %d", cfg.MaxCapacity)
	}
	if cfg.ShutdownGracePeriod != 3*time.Second {
		t.Fatalf("expected YAML grace period, got %s", cfg.ShutdownGracePeriod)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Fatalf("expected YAML rate limit, got %f/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestCLIOverridesWinOverEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_ITEMS", "500")

	port := "6060"
	maxItems := 42
	cfg, err := Load(&CLIOverrides{Port: &port, MaxItems: &maxItems})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "6060" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.MaxItems != 42 {
		t.Fatalf("expected CLI max items to win, got %d", cfg.MaxItems)
	}
}

func TestLoadRejectsMissingConfigFile(t *testing.T) {
	if _, err := Load(&CLIOverrides{ConfigFile: "/does/not/exist.yaml"}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
