package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// StoreConfig locates the remote versioned document store.
type StoreConfig struct {
	// BaseURL is the store's base URL, e.g. "https://store.example.com".
	BaseURL string `json:"baseUrl"`
	// DocPath is the timeline document path under BaseURL.
	DocPath string `json:"docPath"`
	// AuthToken authenticates against the store when non-empty.
	AuthToken string `json:"authToken"`
	// RequestTimeoutMs bounds each remote call.
	RequestTimeoutMs int `json:"requestTimeoutMs"`
}

// OwnerConfig is the single identity allowed to write. The token is injected
// once at process start; the capability check receives it explicitly.
type OwnerConfig struct {
	// Token is the bearer token granting the owner capability. Empty
	// disables all writes through the HTTP API.
	Token string `json:"token"`
}

// Config is the top-level configuration loaded from file/env/flags.
type Config struct {
	HTTPAddr   string      `json:"httpAddr"`
	DataDir    string      `json:"dataDir"`
	Store      StoreConfig `json:"store"`
	Owner      OwnerConfig `json:"owner"`
	MaxRetries int         `json:"maxRetries"`
	CacheTTLMs int         `json:"cacheTtlMs"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		Store: StoreConfig{
			DocPath:          "/timeline.json",
			RequestTimeoutMs: 10000,
		},
		MaxRetries: 3,
		CacheTTLMs: 5000,
	}
}

// Validate checks the parts a running server cannot do without.
func (c Config) Validate() error {
	if c.Store.BaseURL == "" {
		return errors.New("config: store.baseUrl is required")
	}
	if c.Store.DocPath == "" || c.Store.DocPath[0] != '/' {
		return fmt.Errorf("config: store.docPath must start with '/', got %q", c.Store.DocPath)
	}
	if c.MaxRetries < 0 {
		return errors.New("config: maxRetries must be >= 0")
	}
	return nil
}

// Load reads configuration from a JSON file. If path is empty, returns
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".json", "":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported extension %q; use JSON", filepath.Ext(path))
	}
	return cfg, nil
}
