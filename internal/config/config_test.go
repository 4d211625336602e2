// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadFromPathTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
version = "1"

[api]
base_url = "https://api.example.com/api"
web_url = "https://admin.example.com"
timeout_secs = 5

[session]
idle_timeout_secs = 600
warning_secs = 60

[update]
enabled = false
interval_secs = 300

[audit]
enabled = true

[ui]
theme = "light"
page_size = 25
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Update.Enabled {
		t.Error("update should be disabled")
	}
	if cfg.Update.IntervalSecs != 300 {
		t.Errorf("IntervalSecs = %d, want 300", cfg.Update.IntervalSecs)
	}
	if cfg.UI.Theme != "light" || cfg.UI.PageSize != 25 {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoadFromPathPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[api]\nbase_url = \"https://api.example.com/api\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.API.TimeoutSecs != Default().API.TimeoutSecs {
		t.Errorf("TimeoutSecs = %d, want default", cfg.API.TimeoutSecs)
	}
	if cfg.Update.IntervalSecs != Default().Update.IntervalSecs {
		t.Errorf("IntervalSecs = %d, want default", cfg.Update.IntervalSecs)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MOTOUR_ADMIN_API_URL", "https://override.example.com/api")
	t.Setenv("MOTOUR_ADMIN_UPDATE_CHECK", "0")
	t.Setenv("MOTOUR_ADMIN_IDLE_TIMEOUT", "300")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.BaseURL != "https://override.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Update.Enabled {
		t.Error("update should be disabled via env")
	}
	if cfg.Session.IdleTimeoutSecs != 300 {
		t.Errorf("IdleTimeoutSecs = %d, want 300", cfg.Session.IdleTimeoutSecs)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }},
		{"tiny poll interval", func(c *Config) { c.Update.IntervalSecs = 5 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
		{"zero page size", func(c *Config) { c.UI.PageSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "https://api.example.com/api"
	cfg.UI.PageSize = 50

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.API.BaseURL, cfg.API.BaseURL)
	}
	if loaded.UI.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", loaded.UI.PageSize)
	}
}
