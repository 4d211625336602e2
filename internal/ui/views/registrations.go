// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/ui/styles"
)

// =============================================================================
// PENDING REGISTRATIONS VIEW
// =============================================================================

// registrationsLoadedMsg delivers pending registrations.
type registrationsLoadedMsg struct {
	list api.RegistrationList
}

// registrationDecidedMsg reports a recorded decision.
type registrationDecidedMsg struct {
	note string
}

type regMode int

const (
	regBrowse regMode = iota
	regNotes // collecting admin notes before a reject
)

// Registrations reviews users whose subscription payment awaits
// confirmation. Approval is immediate; rejection asks for a note that
// ends up in the user's registration record.
type Registrations struct {
	client *api.Client

	tbl   table.Model
	list  api.RegistrationList
	mode  regMode
	notes textinput.Model
	page  int

	Width  int
	Height int
}

// NewRegistrations creates the pending registrations view.
func NewRegistrations(client *api.Client) *Registrations {
	cols := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Email", Width: 26},
		{Title: "Payment ref", Width: 16},
		{Title: "Submitted", Width: 12},
	}
	notes := textinput.New()
	notes.Placeholder = "reason shown to the user"
	notes.CharLimit = 300
	return &Registrations{client: client, tbl: newTable(cols, 10), notes: notes, page: 1}
}

// Init triggers the first load.
func (v *Registrations) Init() tea.Cmd {
	return v.Reload()
}

// Reload fetches the pending queue.
func (v *Registrations) Reload() tea.Cmd {
	page := v.page
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		list, err := v.client.ListPendingRegistrations(ctx, api.RegistrationListParams{Page: page, Limit: 20})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return registrationsLoadedMsg{list: *list}
	}
}

// Typing reports whether the view currently owns text input.
func (v *Registrations) Typing() bool {
	return v.mode == regNotes
}

func (v *Registrations) selected() *api.PendingRegistration {
	i := v.tbl.Cursor()
	if i < 0 || i >= len(v.list.Users) {
		return nil
	}
	return &v.list.Users[i]
}

// Update handles messages.
func (v *Registrations) Update(msg tea.Msg) (*Registrations, tea.Cmd) {
	switch msg := msg.(type) {
	case registrationsLoadedMsg:
		v.list = msg.list
		rows := make([]table.Row, len(msg.list.Users))
		for i, r := range msg.list.Users {
			rows[i] = table.Row{r.FullName, r.Email, r.PaymentReference, r.SubmittedAt.Format("2006-01-02")}
		}
		v.tbl.SetRows(rows)
		v.tbl.SetHeight(tableHeight(v.Height))
		return v, nil

	case registrationDecidedMsg:
		return v, tea.Batch(v.Reload(), func() tea.Msg { return StatusMsg{Text: msg.note} })

	case tea.KeyMsg:
		if v.mode == regNotes {
			return v.updateNotes(msg)
		}
		return v.updateBrowse(msg)
	}
	return v, nil
}

func (v *Registrations) updateBrowse(msg tea.KeyMsg) (*Registrations, tea.Cmd) {
	switch msg.String() {
	case "a":
		if r := v.selected(); r != nil {
			return v, v.decide(r, api.RegistrationApprove, "")
		}
		return v, nil
	case "x":
		if v.selected() != nil {
			v.mode = regNotes
			v.notes.Reset()
			v.notes.Focus()
			return v, textinput.Blink
		}
		return v, nil
	case "r":
		return v, v.Reload()
	}

	var cmd tea.Cmd
	v.tbl, cmd = v.tbl.Update(msg)
	return v, cmd
}

func (v *Registrations) updateNotes(msg tea.KeyMsg) (*Registrations, tea.Cmd) {
	switch msg.String() {
	case "enter":
		r := v.selected()
		notes := strings.TrimSpace(v.notes.Value())
		v.mode = regBrowse
		v.notes.Blur()
		if r == nil {
			return v, nil
		}
		if notes == "" {
			return v, errCmd(fmt.Errorf("a rejection reason is required"))
		}
		return v, v.decide(r, api.RegistrationReject, notes)
	case "esc":
		v.mode = regBrowse
		v.notes.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.notes, cmd = v.notes.Update(msg)
	return v, cmd
}

func (v *Registrations) decide(r *api.PendingRegistration, action api.RegistrationAction, notes string) tea.Cmd {
	id, email := r.ID, r.Email
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if err := v.client.UpdateRegistrationStatus(ctx, id, action, notes); err != nil {
			return ErrMsg{Err: err}
		}
		if action == api.RegistrationApprove {
			return registrationDecidedMsg{note: "Approved " + email}
		}
		return registrationDecidedMsg{note: "Rejected " + email}
	}
}

// View renders the pending registrations screen.
func (v *Registrations) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Pending registrations"))
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("  %d waiting", v.list.Pagination.Total)) + "\n")
	b.WriteString(v.tbl.View() + "\n")

	if v.mode == regNotes {
		b.WriteString(styles.Label.Render("Rejection reason: ") + v.notes.View())
	} else {
		b.WriteString(styles.Help.Render("a: approve  x: reject  r: refresh"))
	}
	return b.String()
}
