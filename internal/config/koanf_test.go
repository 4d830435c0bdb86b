// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

package config

import (
	"testing"

	"github.com/knadh/koanf/v2"
)

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"DUCKDB_PATH", "database.path"},
		{"DUCKDB_MAX_MEMORY", "database.max_memory"},
		{"DUCKDB_THREADS", "database.threads"},
		{"HTTP_HOST", "server.host"},
		{"HTTP_PORT", "server.port"},
		{"HTTP_TIMEOUT", "server.timeout"},
		{"ENVIRONMENT", "server.environment"},
		{"API_DEFAULT_PAGE_SIZE", "api.default_page_size"},
		{"API_MAX_PAGE_SIZE", "api.max_page_size"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"RATE_LIMIT_WINDOW", "security.rate_limit_window"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},
		{"LOG_CALLER", "logging.caller"},
		// Unmapped variables are skipped entirely
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanfDefaults(t *testing.T) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}

	if cfg.Server.Port != 3857 {
		t.Errorf("expected default port 3857, got %d", cfg.Server.Port)
	}
	if cfg.Database.MaxMemory != "2GB" {
		t.Errorf("expected default max memory 2GB, got %s", cfg.Database.MaxMemory)
	}
}

func TestLoadWithKoanfEnvOverride(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DUCKDB_PATH", ":memory:")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected HTTP_PORT override 9090, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected LOG_LEVEL override debug, got %s", cfg.Logging.Level)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("expected DUCKDB_PATH override, got %s", cfg.Database.Path)
	}
}

func TestLoadWithKoanfCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf failed: %v", err)
	}

	if len(cfg.Security.CORSOrigins) != 2 {
		t.Fatalf("expected 2 CORS origins, got %v", cfg.Security.CORSOrigins)
	}
	if cfg.Security.CORSOrigins[0] != "https://a.example.com" {
		t.Errorf("unexpected first origin: %s", cfg.Security.CORSOrigins[0])
	}
	if cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected second origin: %s", cfg.Security.CORSOrigins[1])
	}
}

func TestLoadWithKoanfInvalidEnvRejected(t *testing.T) {
	t.Setenv("HTTP_PORT", "99999")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestProcessSliceFields(t *testing.T) {
	t.Parallel()

	k := koanf.New(".")
	if err := k.Set("security.cors_origins", "https://x.test,https://y.test"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := processSliceFields(k); err != nil {
		t.Fatalf("processSliceFields failed: %v", err)
	}

	got := k.Strings("security.cors_origins")
	if len(got) != 2 || got[0] != "https://x.test" || got[1] != "https://y.test" {
		t.Errorf("unexpected slice result: %v", got)
	}
}
