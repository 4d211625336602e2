// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared visual components of the admin
// TUI: the navigation bar, the bottom status bar, transient toasts, the
// update banner and the document preview pane. Components are plain
// value types rendered by the views that own them.
package components
