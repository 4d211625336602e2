// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motourapp/admin-tui/internal/ui/styles"
)

// requestTimeout bounds every view-initiated API call.
const requestTimeout = 30 * time.Second

// ErrMsg reports a failed view operation. The root model turns it into
// a toast; authentication failures are handled before it gets here.
type ErrMsg struct {
	Err error
}

// StatusMsg reports a completed operation worth a transient notice.
type StatusMsg struct {
	Text string
}

// apiCtx returns the context for a view-initiated API call.
func apiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// errCmd wraps an error into an ErrMsg command.
func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// newTable builds a table with the shared look.
func newTable(cols []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(styles.TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Overlay).
		BorderBottom(true)
	s.Selected = s.Selected.
		Bold(true).
		Foreground(styles.TextInverse).
		Background(styles.Teal)
	t.SetStyles(s)
	return t
}

// tableHeight derives a table body height from the view height.
func tableHeight(viewHeight int) int {
	h := viewHeight - 6
	if h < 3 {
		h = 3
	}
	return h
}
