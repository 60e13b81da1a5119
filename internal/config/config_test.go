package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidatesWithBaseURL(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without store.baseUrl")
	}
	cfg.Store.BaseURL = "https://store.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadJSONOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"httpAddr": ":9999", "store": {"baseUrl": "https://s.example.com", "docPath": "/events.json"}}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("httpAddr: %q", cfg.HTTPAddr)
	}
	if cfg.Store.DocPath != "/events.json" {
		t.Fatalf("docPath: %q", cfg.Store.DocPath)
	}
	// untouched defaults survive
	if cfg.MaxRetries != 3 || cfg.CacheTTLMs != 5000 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestFromEnvOverlay(t *testing.T) {
	t.Setenv("EPOCHLINE_STORE_BASE_URL", "https://env.example.com")
	t.Setenv("EPOCHLINE_MAX_RETRIES", "5")
	t.Setenv("EPOCHLINE_CACHE_TTL_MS", "0")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.Store.BaseURL != "https://env.example.com" {
		t.Fatalf("baseUrl: %q", cfg.Store.BaseURL)
	}
	if cfg.MaxRetries != 5 {
		t.Fatalf("maxRetries: %d", cfg.MaxRetries)
	}
	if cfg.CacheTTLMs != 0 {
		t.Fatalf("cacheTtlMs: %d", cfg.CacheTTLMs)
	}
}

func TestFromEnvIgnoresGarbageNumbers(t *testing.T) {
	t.Setenv("EPOCHLINE_MAX_RETRIES", "many")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.MaxRetries != 3 {
		t.Fatalf("maxRetries should keep default, got %d", cfg.MaxRetries)
	}
}

func TestDefaultDataDirNotEmpty(t *testing.T) {
	if DefaultDataDir() == "" {
		t.Fatalf("empty data dir")
	}
}
