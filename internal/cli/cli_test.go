// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/motourapp/admin-tui/internal/config"
)

func TestParseGlobalFlags(t *testing.T) {
	remaining, args := parseGlobalFlags([]string{"--json", "status", "-q", "--config", "/tmp/c.toml"})

	if !args.JSON || !args.Quiet {
		t.Errorf("global flags not parsed: %+v", args)
	}
	if args.Config != "/tmp/c.toml" {
		t.Errorf("Config = %q", args.Config)
	}
	if len(remaining) != 1 || remaining[0] != "status" {
		t.Errorf("remaining = %v", remaining)
	}
}

func TestConfigSet(t *testing.T) {
	cfg := config.Default()

	if err := configSet(cfg, "api.url", "https://api.motour.app/api"); err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "https://api.motour.app/api" {
		t.Errorf("api.url not applied: %q", cfg.API.BaseURL)
	}

	if err := configSet(cfg, "update.enabled", "false"); err != nil {
		t.Fatal(err)
	}
	if cfg.Update.Enabled {
		t.Error("update.enabled not applied")
	}

	if err := configSet(cfg, "ui.page_size", "25"); err != nil {
		t.Fatal(err)
	}
	if cfg.UI.PageSize != 25 {
		t.Errorf("ui.page_size = %d", cfg.UI.PageSize)
	}

	if err := configSet(cfg, "session.idle_timeout_secs", "xyz"); err == nil {
		t.Error("non-integer value accepted")
	}
	if err := configSet(cfg, "no.such.key", "1"); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestConfigGet(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Theme = "light"

	got, err := configGet(cfg, "ui.theme")
	if err != nil {
		t.Fatal(err)
	}
	if got != "light" {
		t.Errorf("ui.theme = %q", got)
	}

	got, err = configGet(cfg, "update.interval_secs")
	if err != nil {
		t.Fatal(err)
	}
	if got != "120" {
		t.Errorf("update.interval_secs = %q", got)
	}

	if _, err := configGet(cfg, "no.such.key"); err == nil {
		t.Error("unknown key accepted")
	}
}
