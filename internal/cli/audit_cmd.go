// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// audit_cmd.go - Local action trail command.
//
// Command: audit
// Subcommands:
//   show (default)   Print recent entries, newest first
//   prune            Delete entries older than --days (default 90)
//
// Flags:
//   --limit N   Number of entries to show (default 50)
//   --days N    Retention window for prune
//   --json      Output entries as JSON
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/motourapp/admin-tui/internal/audit"
)

// HandleAudit implements the audit command against the local trail.
func HandleAudit(ctx context.Context, trail *audit.Trail, args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "show", "list":
		limit := parser.FlagIntOrDefault("limit", 50)
		entries, err := trail.Recent(ctx, limit)
		if err != nil {
			return err
		}
		if args.JSON || parser.BoolFlag("json") {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}
		if len(entries) == 0 {
			fmt.Println("No recorded actions.")
			return nil
		}
		for _, e := range entries {
			line := fmt.Sprintf("%s  %-22s %s", e.At.Format("2006-01-02 15:04:05"), e.Action, e.Actor)
			if e.Target != "" {
				line += "  target=" + e.Target
			}
			if e.Detail != "" {
				line += "  " + e.Detail
			}
			fmt.Println(line)
		}
		return nil

	case "prune":
		days := parser.FlagIntOrDefault("days", 90)
		if days <= 0 {
			return fmt.Errorf("--days must be positive")
		}
		n, err := trail.Prune(ctx, time.Now().AddDate(0, 0, -days))
		if err != nil {
			return err
		}
		if !args.Quiet {
			fmt.Printf("Pruned %d entries older than %d days.\n", n, days)
		}
		return nil

	default:
		return fmt.Errorf("unknown audit subcommand: %s", parser.Subcommand())
	}
}
