// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation.
//
// Command: status
// Short:   Display session and connectivity status
// Aliases: s, whoami
//
// Examples:
//   motour-admin status           Show status
//   motour-admin status --json    Status in JSON format
//
// Status Sections:
//   Session:  whether credentials are stored and for whom
//   Server:   API base URL and whether the stored session is accepted
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/config"
	"github.com/motourapp/admin-tui/internal/session"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")) // Cyan

	statusLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Width(10)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")) // Green

	statusBadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")) // Red
)

type statusReport struct {
	LoggedIn  bool   `json:"logged_in"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	APIURL    string `json:"api_url"`
	Reachable bool   `json:"reachable"`
	Accepted  bool   `json:"session_accepted"`
	Error     string `json:"error,omitempty"`
}

// HandleStatus reports the stored session and whether the server still
// accepts it. The connectivity probe is best-effort; a dead server does
// not make the command fail.
func HandleStatus(ctx context.Context, cfg *config.Config, store *session.Store, client *api.Client, args Args) error {
	report := statusReport{
		LoggedIn: store.IsAuthenticated(),
		APIURL:   cfg.API.BaseURL,
	}
	if report.LoggedIn {
		user := store.Identity()
		report.Email = user.Email
		report.Role = user.Role

		if _, err := client.Me(ctx); err != nil {
			report.Error = err.Error()
			report.Reachable = !api.IsTransportError(err)
		} else {
			report.Reachable = true
			report.Accepted = true
		}
	}

	if args.JSON {
		return json.NewEncoder(os.Stdout).Encode(report)
	}

	plain := !ColorEnabled()
	render := func(s lipgloss.Style, text string) string {
		if plain {
			return text
		}
		return s.Render(text)
	}

	fmt.Println(render(statusTitleStyle, "Motour Admin Status"))
	fmt.Println()

	if !report.LoggedIn {
		fmt.Printf("%s %s\n", render(statusLabelStyle, "Session"), render(statusBadStyle, "not logged in"))
		fmt.Printf("%s %s\n", render(statusLabelStyle, "Server"), report.APIURL)
		return nil
	}

	fmt.Printf("%s %s\n", render(statusLabelStyle, "Session"), render(statusOKStyle, "logged in"))
	fmt.Printf("%s %s\n", render(statusLabelStyle, "Email"), report.Email)
	fmt.Printf("%s %s\n", render(statusLabelStyle, "Role"), report.Role)
	fmt.Printf("%s %s\n", render(statusLabelStyle, "Server"), report.APIURL)

	switch {
	case report.Accepted:
		fmt.Printf("%s %s\n", render(statusLabelStyle, "Verified"), render(statusOKStyle, "session accepted by server"))
	case report.Reachable:
		fmt.Printf("%s %s\n", render(statusLabelStyle, "Verified"), render(statusBadStyle, "session rejected: "+report.Error))
	default:
		fmt.Printf("%s %s\n", render(statusLabelStyle, "Verified"), render(statusBadStyle, "server unreachable"))
	}
	return nil
}
