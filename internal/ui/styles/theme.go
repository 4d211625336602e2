// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// Title is the style for view headings.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	// Subtitle is for secondary headings and counts next to titles.
	Subtitle = lipgloss.NewStyle().
			Foreground(TextSecondary)

	// Label is for form field labels and table headers.
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	// Help is for keybinding hints at the bottom of a view.
	Help = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Selected is for the focused row or navigation item.
	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextInverse).
			Background(Teal)

	// Success, Warning and Error render one-line result messages.
	Success = lipgloss.NewStyle().Foreground(Emerald)
	Warning = lipgloss.NewStyle().Foreground(Amber)
	Error   = lipgloss.NewStyle().Foreground(Rose)

	// Panel draws a bordered box around a focused detail or form.
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2)

	// Badge renders short inline state markers (roles, statuses).
	Badge = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(TextInverse).
		Background(Sky)
)

// StatusBadge picks a badge style for a domain status string.
func StatusBadge(status string) lipgloss.Style {
	switch status {
	case "approved", "active", "premium":
		return Badge.Background(Emerald)
	case "rejected", "suspended", "expired":
		return Badge.Background(Rose)
	case "pending", "free":
		return Badge.Background(Amber)
	default:
		return Badge
	}
}
