// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/ui/styles"
)

// =============================================================================
// DASHBOARD VIEW
// =============================================================================

// statsLoadedMsg delivers fresh platform statistics.
type statsLoadedMsg struct {
	stats api.DashboardStats
}

// Dashboard shows the platform at a glance: user, destination, rating
// and subscription counts plus pending work.
type Dashboard struct {
	client *api.Client

	stats  api.DashboardStats
	loaded bool
	busy   bool
	spin   spinner.Model

	Width  int
	Height int
}

// NewDashboard creates the dashboard view.
func NewDashboard(client *api.Client) *Dashboard {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Teal)
	return &Dashboard{client: client, spin: spin}
}

// Init triggers the first load.
func (d *Dashboard) Init() tea.Cmd {
	return d.Reload()
}

// Reload fetches current statistics.
func (d *Dashboard) Reload() tea.Cmd {
	d.busy = true
	return tea.Batch(d.spin.Tick, func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		stats, err := d.client.DashboardStatsOverview(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return statsLoadedMsg{stats: *stats}
	})
}

// Update handles messages.
func (d *Dashboard) Update(msg tea.Msg) (*Dashboard, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		d.stats = msg.stats
		d.loaded = true
		d.busy = false
		return d, nil

	case ErrMsg:
		d.busy = false
		return d, nil

	case spinner.TickMsg:
		if !d.busy {
			return d, nil
		}
		var cmd tea.Cmd
		d.spin, cmd = d.spin.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		if msg.String() == "r" {
			return d, d.Reload()
		}
	}
	return d, nil
}

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(styles.Overlay).
	Padding(0, 2).
	Width(24)

func card(title string, value int, note string) string {
	body := styles.Label.Render(title) + "\n" +
		lipgloss.NewStyle().Bold(true).Foreground(styles.Teal).Render(fmt.Sprintf("%d", value))
	if note != "" {
		body += "\n" + styles.Help.Render(note)
	}
	return cardStyle.Render(body)
}

// View renders the stat cards.
func (d *Dashboard) View() string {
	title := styles.Title.Render("Dashboard")
	if d.busy && !d.loaded {
		return title + "\n\n" + d.spin.View() + " Loading statistics..."
	}
	if !d.loaded {
		return title + "\n\n" + styles.Help.Render("Statistics unavailable. Press r to retry.")
	}

	s := d.stats
	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Users", s.TotalUsers, fmt.Sprintf("%d verified", s.VerifiedUsers)),
		card("Destinations", s.TotalDestinations, ""),
		card("Ratings", s.TotalRatings, fmt.Sprintf("avg %.1f", s.AverageRating)),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Pending registrations", s.PendingRegistrations, "needs review"),
		card("Active subscriptions", s.ActiveSubscriptions, ""),
		card("Blocked users", s.BlockedUsers, ""),
	)

	out := title + "\n\n" + row1 + "\n" + row2 + "\n\n" +
		styles.Help.Render("r: refresh")
	if d.busy {
		out += "  " + d.spin.View()
	}
	return out
}
