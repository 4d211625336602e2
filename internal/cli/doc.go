// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the
// non-interactive commands of motour-admin.
//
// Running the binary with no arguments starts the TUI; everything else
// (login, logout, status, config, audit, check-update) is a one-shot
// command that prints and exits. Output degrades gracefully when stdout
// is not a terminal: no colors, no prompts.
package cli
