// Paperscope - Research Preprint Analytics API
// Copyright 2026 Preprint Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/preprintlabs/paperscope

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration failed validation: %v", err)
	}
	if cfg.API.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want 20", cfg.API.DefaultPageSize)
	}
	if cfg.API.MaxPageSize != 100 {
		t.Errorf("MaxPageSize = %d, want 100", cfg.API.MaxPageSize)
	}
	if cfg.Cache.Analytics.TTL != 5*time.Minute {
		t.Errorf("analytics TTL = %v, want 5m", cfg.Cache.Analytics.TTL)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero default page size", func(c *Config) { c.API.DefaultPageSize = 0 }},
		{"max below default", func(c *Config) { c.API.MaxPageSize = 5 }},
		{"zero general TTL", func(c *Config) { c.Cache.General.TTL = 0 }},
		{"zero analytics capacity", func(c *Config) { c.Cache.Analytics.Capacity = 0 }},
		{"negative threads", func(c *Config) { c.Database.Threads = -1 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"PAPERSCOPE_HTTP_PORT", "server.port"},
		{"PAPERSCOPE_DUCKDB_PATH", "database.path"},
		{"PAPERSCOPE_CACHE_ANALYTICS_TTL", "cache.analytics.ttl"},
		{"PAPERSCOPE_CORS_ORIGINS", "api.cors_origins"},
		{"PAPERSCOPE_LOG_LEVEL", "logging.level"},
		// Unprefixed names never map, even when the suffix is known.
		{"HTTP_PORT", ""},
		{"PATH", ""},
		{"PAPERSCOPE_SOMETHING_UNRELATED", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PAPERSCOPE_HTTP_PORT", "9090")
	t.Setenv("PAPERSCOPE_DUCKDB_PATH", "/tmp/papers.duckdb")
	t.Setenv("PAPERSCOPE_CACHE_GENERAL_TTL", "90s")
	t.Setenv("PAPERSCOPE_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/papers.duckdb" {
		t.Errorf("Path = %q", cfg.Database.Path)
	}
	if cfg.Cache.General.TTL != 90*time.Second {
		t.Errorf("general TTL = %v, want 90s", cfg.Cache.General.TTL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.API.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
	for i := range want {
		if cfg.API.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.API.CORSOrigins[i], want[i])
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 3000\napi:\n  default_page_size: 10\n  max_page_size: 50\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000 from file", cfg.Server.Port)
	}
	if cfg.API.DefaultPageSize != 10 || cfg.API.MaxPageSize != 50 {
		t.Errorf("page sizes = %d/%d, want 10/50", cfg.API.DefaultPageSize, cfg.API.MaxPageSize)
	}
	// Untouched sections keep defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestEnvBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PAPERSCOPE_HTTP_PORT", "4000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Port = %d, want env override 4000", cfg.Server.Port)
	}
}
