// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package views implements the screens of the admin TUI: login,
// dashboard, users, destinations, ratings, pending registrations and the
// document archive.
//
// Each view is a self-contained Bubble Tea sub-model owning its data,
// loading state and keybindings. Views load data through commands that
// hit the admin API off the UI goroutine and report back with typed
// messages; the root model routes messages to whichever view is active.
package views
