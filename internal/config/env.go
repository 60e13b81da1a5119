package config

import (
	"os"
	"strconv"
)

// FromEnv overlays EPOCHLINE_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("EPOCHLINE_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("EPOCHLINE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("EPOCHLINE_STORE_BASE_URL"); v != "" {
		cfg.Store.BaseURL = v
	}
	if v := os.Getenv("EPOCHLINE_STORE_DOC_PATH"); v != "" {
		cfg.Store.DocPath = v
	}
	if v := os.Getenv("EPOCHLINE_STORE_AUTH_TOKEN"); v != "" {
		cfg.Store.AuthToken = v
	}
	if v := os.Getenv("EPOCHLINE_STORE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Store.RequestTimeoutMs = n
		}
	}
	if v := os.Getenv("EPOCHLINE_OWNER_TOKEN"); v != "" {
		cfg.Owner.Token = v
	}
	if v := os.Getenv("EPOCHLINE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("EPOCHLINE_CACHE_TTL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CacheTTLMs = n
		}
	}
}
