// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command implementation.
//
// Command: config
// Subcommands:
//   show (default)   Print the effective configuration
//   get KEY          Print one setting
//   set KEY VALUE    Update one setting and save
//   path             Print the config file path
//
// Settable keys:
//   api.url, api.web_url, api.timeout_secs,
//   session.idle_timeout_secs, update.enabled, update.interval_secs,
//   ui.theme, ui.page_size
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/motourapp/admin-tui/internal/config"
)

// HandleConfig implements the config command against the file at path.
func HandleConfig(cfg *config.Config, path string, args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "show":
		return configShow(cfg, path, args.JSON)

	case "get":
		key := parser.Positional(1)
		if key == "" {
			return fmt.Errorf("usage: motour-admin config get KEY")
		}
		value, err := configGet(cfg, key)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil

	case "set":
		key := parser.Positional(1)
		value := parser.Positional(2)
		if key == "" || value == "" {
			return fmt.Errorf("usage: motour-admin config set KEY VALUE")
		}
		if err := configSet(cfg, key, value); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.SaveTOML(cfg, path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		if !args.Quiet {
			fmt.Printf("%s = %s\n", key, value)
		}
		return nil

	case "path":
		fmt.Println(path)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand: %s", parser.Subcommand())
	}
}

func configShow(cfg *config.Config, path string, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}
	fmt.Printf("Config file: %s\n\n", path)
	fmt.Printf("api.url                   = %s\n", cfg.API.BaseURL)
	fmt.Printf("api.web_url               = %s\n", cfg.API.WebURL)
	fmt.Printf("api.timeout_secs          = %d\n", cfg.API.TimeoutSecs)
	fmt.Printf("session.idle_timeout_secs = %d\n", cfg.Session.IdleTimeoutSecs)
	fmt.Printf("update.enabled            = %t\n", cfg.Update.Enabled)
	fmt.Printf("update.interval_secs      = %d\n", cfg.Update.IntervalSecs)
	fmt.Printf("audit.enabled             = %t\n", cfg.Audit.Enabled)
	fmt.Printf("ui.theme                  = %s\n", cfg.UI.Theme)
	fmt.Printf("ui.page_size              = %d\n", cfg.UI.PageSize)
	return nil
}

func configGet(cfg *config.Config, key string) (string, error) {
	switch key {
	case "api.url":
		return cfg.API.BaseURL, nil
	case "api.web_url":
		return cfg.API.WebURL, nil
	case "api.timeout_secs":
		return strconv.Itoa(cfg.API.TimeoutSecs), nil
	case "session.idle_timeout_secs":
		return strconv.Itoa(cfg.Session.IdleTimeoutSecs), nil
	case "update.enabled":
		return strconv.FormatBool(cfg.Update.Enabled), nil
	case "update.interval_secs":
		return strconv.Itoa(cfg.Update.IntervalSecs), nil
	case "audit.enabled":
		return strconv.FormatBool(cfg.Audit.Enabled), nil
	case "ui.theme":
		return cfg.UI.Theme, nil
	case "ui.page_size":
		return strconv.Itoa(cfg.UI.PageSize), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func configSet(cfg *config.Config, key, value string) error {
	boolVal := func() (bool, error) { return strconv.ParseBool(value) }
	intVal := func() (int, error) { return strconv.Atoi(value) }

	switch key {
	case "api.url":
		cfg.API.BaseURL = value
	case "api.web_url":
		cfg.API.WebURL = value
	case "api.timeout_secs":
		n, err := intVal()
		if err != nil {
			return fmt.Errorf("%s must be an integer", key)
		}
		cfg.API.TimeoutSecs = n
	case "session.idle_timeout_secs":
		n, err := intVal()
		if err != nil {
			return fmt.Errorf("%s must be an integer", key)
		}
		cfg.Session.IdleTimeoutSecs = n
	case "update.enabled":
		b, err := boolVal()
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		cfg.Update.Enabled = b
	case "update.interval_secs":
		n, err := intVal()
		if err != nil {
			return fmt.Errorf("%s must be an integer", key)
		}
		cfg.Update.IntervalSecs = n
	case "audit.enabled":
		b, err := boolVal()
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		cfg.Audit.Enabled = b
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.page_size":
		n, err := intVal()
		if err != nil {
			return fmt.Errorf("%s must be an integer", key)
		}
		cfg.UI.PageSize = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
