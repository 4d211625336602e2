// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/motourapp/admin-tui/internal/ui/styles"
	"github.com/motourapp/admin-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Status represents the current application activity.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusSaving
	StatusError
	StatusOffline
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusSaving:
		return "Saving..."
	case StatusError:
		return "Error"
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// StatusBar is the bottom bar: who is logged in, where, and what the app
// is currently doing.
type StatusBar struct {
	Email   string // logged-in admin, "" before login
	Server  string // API host
	Status  Status
	Message string // transient detail next to the status
	Width   int
}

var (
	barStyle = lipgloss.NewStyle().
			Background(styles.SurfaceDim).
			Foreground(styles.TextSecondary).
			Padding(0, 1)

	barAccentStyle = lipgloss.NewStyle().
			Background(styles.SurfaceDim).
			Foreground(styles.Teal).
			Bold(true)

	barErrorStyle = lipgloss.NewStyle().
			Background(styles.SurfaceDim).
			Foreground(styles.Rose)
)

// Render draws the status bar at the configured width.
func (b StatusBar) Render() string {
	if b.Width <= 0 {
		b.Width = 80
	}

	left := b.Status.String()
	if b.Message != "" {
		left += " " + b.Message
	}
	style := barStyle
	if b.Status == StatusError || b.Status == StatusOffline {
		style = barErrorStyle
	}

	right := b.Server
	if b.Email != "" {
		right = fmt.Sprintf("%s @ %s", b.Email, b.Server)
	}

	leftRendered := style.Render(util.TruncateWidth(left, b.Width/2))
	rightRendered := barAccentStyle.Render(util.TruncateWidth(right, b.Width/2))

	gap := b.Width - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if gap < 1 {
		gap = 1
	}
	filler := barStyle.Render(strings.Repeat(" ", gap))

	return leftRendered + filler + rightRendered
}

// HasDarkBackground reports the terminal background, used when themes
// need to bypass lipgloss adaptive detection.
func HasDarkBackground() bool {
	return termenv.HasDarkBackground()
}
