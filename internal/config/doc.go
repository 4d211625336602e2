// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the Motour admin console.
//
// # Configuration Sources
//
// Configuration is resolved in order of precedence:
//
//  1. MOTOUR_ADMIN_* environment variables
//  2. ~/.motour-admin/config.toml
//  3. ~/.motour-admin/config.json
//  4. Built-in defaults
//
// # Live Reload
//
// A Watcher can be attached to the config file so that edits made while the
// console is running (for example via `motour-admin config set`) take effect
// without a restart:
//
//	w, err := config.NewWatcher(path, func(cfg *config.Config) {
//	    // apply new config
//	})
//	if err == nil {
//	    w.Watch()
//	    defer w.Close()
//	}
package config
