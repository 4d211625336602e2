// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDeliversReloadedConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.UI.PageSize = 20
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { reloads <- c })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.debounce = 50 * time.Millisecond
	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}

	cfg.UI.PageSize = 50
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-reloads:
		if got.UI.PageSize != 50 {
			t.Errorf("reloaded ui.page_size = %d, want 50", got.UI.PageSize)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered after config save")
	}

	// One save settles into one callback, not one per fs event.
	select {
	case <-reloads:
		t.Error("second reload delivered for a single save")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}

	reloads := make(chan *Config, 1)
	w, err := NewWatcher(path, func(c *Config) { reloads <- c })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.debounce = 50 * time.Millisecond
	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}

	if err := SaveTOML(Default(), filepath.Join(dir, "other.toml")); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloads:
		t.Error("reload delivered for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
