// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motourapp/admin-tui/internal/ui/styles"
	"github.com/motourapp/admin-tui/internal/update"
)

// =============================================================================
// UPDATE BANNER
// =============================================================================

// UpdateBanner is the non-blocking notice shown when a newer console
// build is deployed. It auto-dismisses after update.NotificationTimeout;
// the operator can apply with "u" or dismiss with escape. Dismissing is
// final for that fingerprint: the poller will not report it again.
type UpdateBanner struct {
	visible     bool
	fingerprint string
	shownAt     time.Time
	Width       int
}

// BannerExpiredMsg dismisses a banner whose display time is up.
type BannerExpiredMsg struct {
	ShownAt time.Time
}

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(styles.TextInverse).
	Background(styles.Amber).
	Padding(0, 1)

// Show makes the banner visible and returns the auto-dismiss timer.
func (b *UpdateBanner) Show(n update.Notification) tea.Cmd {
	b.visible = true
	b.fingerprint = n.Fingerprint
	b.shownAt = time.Now()
	shownAt := b.shownAt
	return tea.Tick(update.NotificationTimeout, func(time.Time) tea.Msg {
		return BannerExpiredMsg{ShownAt: shownAt}
	})
}

// Expire hides the banner if the expiry matches the current showing.
// A stale timer from an earlier banner must not dismiss a newer one.
func (b *UpdateBanner) Expire(msg BannerExpiredMsg) {
	if b.visible && msg.ShownAt.Equal(b.shownAt) {
		b.visible = false
	}
}

// Dismiss hides the banner.
func (b *UpdateBanner) Dismiss() { b.visible = false }

// Visible reports whether the banner is currently shown.
func (b *UpdateBanner) Visible() bool { return b.visible }

// Fingerprint returns the build the banner announces.
func (b *UpdateBanner) Fingerprint() string { return b.fingerprint }

// Render draws the banner line, or "" when hidden.
func (b *UpdateBanner) Render() string {
	if !b.visible {
		return ""
	}
	text := "A new console version is available - press u to update, esc to dismiss"
	style := bannerStyle
	if b.Width > 0 {
		style = style.Width(b.Width)
	}
	return style.Render(text)
}
