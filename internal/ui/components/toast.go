// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motourapp/admin-tui/internal/ui/styles"
)

// =============================================================================
// TOASTS
// =============================================================================

// ToastKind classifies a transient notification.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// Auto-dismiss durations. Errors stay longer to be read.
const (
	InfoToastDuration  = 4 * time.Second
	ErrorToastDuration = 8 * time.Second
)

// Toast is a one-line non-blocking notification. Unlike a modal it never
// steals input; it draws over the status bar and auto-dismisses.
type Toast struct {
	visible bool
	kind    ToastKind
	message string
	shownAt time.Time
	Width   int
}

// ToastExpiredMsg dismisses a toast whose display time is up.
type ToastExpiredMsg struct {
	ShownAt time.Time
}

// Show displays a toast and returns its dismiss timer.
func (t *Toast) Show(kind ToastKind, message string) tea.Cmd {
	t.visible = true
	t.kind = kind
	t.message = message
	t.shownAt = time.Now()

	d := InfoToastDuration
	if kind == ToastError {
		d = ErrorToastDuration
	}
	shownAt := t.shownAt
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ShownAt: shownAt}
	})
}

// Expire hides the toast if the expiry matches the current showing.
func (t *Toast) Expire(msg ToastExpiredMsg) {
	if t.visible && msg.ShownAt.Equal(t.shownAt) {
		t.visible = false
	}
}

// Visible reports whether the toast is currently shown.
func (t *Toast) Visible() bool { return t.visible }

// Render draws the toast line, or "" when hidden.
func (t *Toast) Render() string {
	if !t.visible {
		return ""
	}
	var color lipgloss.AdaptiveColor
	switch t.kind {
	case ToastSuccess:
		color = styles.Emerald
	case ToastError:
		color = styles.Rose
	default:
		color = styles.Sky
	}
	style := lipgloss.NewStyle().
		Foreground(styles.TextInverse).
		Background(color).
		Padding(0, 1)
	if t.Width > 0 {
		style = style.MaxWidth(t.Width)
	}
	return style.Render(t.message)
}
