// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/motourapp/admin-tui/internal/ui/styles"
)

// NavItem is one entry in the top navigation bar.
type NavItem struct {
	Label string
	Key   string // the shortcut that activates it, shown dimmed
}

// NavBar renders the horizontal section switcher at the top of the
// dashboard. The active index is highlighted; items the current admin
// lacks permission for are not included at all.
type NavBar struct {
	Items  []NavItem
	Active int
	Width  int
}

var (
	navItemStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(styles.TextSecondary)

	navActiveStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(styles.TextInverse).
			Background(styles.Teal)

	navKeyStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// Render draws the navigation bar.
func (n NavBar) Render() string {
	parts := make([]string, 0, len(n.Items))
	for i, item := range n.Items {
		label := item.Label
		if item.Key != "" {
			label += " " + navKeyStyle.Render(item.Key)
		}
		if i == n.Active {
			parts = append(parts, navActiveStyle.Render(item.Label))
			continue
		}
		parts = append(parts, navItemStyle.Render(label))
	}
	bar := strings.Join(parts, "")
	if n.Width > 0 {
		bar = lipgloss.NewStyle().Width(n.Width).Render(bar)
	}
	return bar
}
