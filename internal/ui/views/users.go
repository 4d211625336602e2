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
// USERS VIEW
// =============================================================================

// usersLoadedMsg delivers a page of users.
type usersLoadedMsg struct {
	list api.UserList
}

// userMutatedMsg reports a completed user mutation; the view reloads.
type userMutatedMsg struct {
	note string
}

// usersMode is the interaction state of the users view.
type usersMode int

const (
	usersBrowse usersMode = iota
	usersSearch
	usersConfirmDelete
	usersConfirmBlock
)

// Users lists end users with search, pagination, verification/block
// toggles, subscription changes and deletion.
type Users struct {
	client *api.Client

	tbl    table.Model
	search textinput.Model
	list   api.UserList
	mode   usersMode
	page   int
	limit  int
	query  string

	Width  int
	Height int
}

// NewUsers creates the users view.
func NewUsers(client *api.Client, pageSize int) *Users {
	if pageSize <= 0 {
		pageSize = 20
	}
	search := textinput.New()
	search.Placeholder = "name or email"
	search.CharLimit = 120

	cols := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Subscription", Width: 14},
		{Title: "State", Width: 10},
		{Title: "Trips", Width: 6},
	}
	return &Users{
		client: client,
		tbl:    newTable(cols, 10),
		search: search,
		page:   1,
		limit:  pageSize,
	}
}

// Init triggers the first load.
func (v *Users) Init() tea.Cmd {
	return v.Reload()
}

// Reload fetches the current page with the active search.
func (v *Users) Reload() tea.Cmd {
	page, limit, query := v.page, v.limit, v.query
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		list, err := v.client.ListUsers(ctx, api.UserListParams{Page: page, Limit: limit, Search: query})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return usersLoadedMsg{list: *list}
	}
}

// Typing reports whether the view currently owns text input, so global
// digit shortcuts must not steal keystrokes.
func (v *Users) Typing() bool {
	return v.mode == usersSearch
}

func (v *Users) selected() *api.User {
	i := v.tbl.Cursor()
	if i < 0 || i >= len(v.list.Users) {
		return nil
	}
	return &v.list.Users[i]
}

// Update handles messages.
func (v *Users) Update(msg tea.Msg) (*Users, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		v.list = msg.list
		rows := make([]table.Row, len(msg.list.Users))
		for i, u := range msg.list.Users {
			state := "active"
			if u.IsBlocked {
				state = "blocked"
			} else if !u.IsVerified {
				state = "pending"
			}
			rows[i] = table.Row{u.FullName, u.Email, u.SubscriptionTier, state, fmt.Sprintf("%d", u.TripsCompleted)}
		}
		v.tbl.SetRows(rows)
		v.tbl.SetHeight(tableHeight(v.Height))
		return v, nil

	case userMutatedMsg:
		return v, tea.Batch(v.Reload(), func() tea.Msg { return StatusMsg{Text: msg.note} })

	case tea.KeyMsg:
		switch v.mode {
		case usersSearch:
			return v.updateSearch(msg)
		case usersConfirmDelete, usersConfirmBlock:
			return v.updateConfirm(msg)
		}
		return v.updateBrowse(msg)
	}
	return v, nil
}

func (v *Users) updateBrowse(msg tea.KeyMsg) (*Users, tea.Cmd) {
	switch msg.String() {
	case "/":
		v.mode = usersSearch
		v.search.SetValue(v.query)
		v.search.Focus()
		return v, textinput.Blink

	case "r":
		return v, v.Reload()

	case "left", "h":
		if v.page > 1 {
			v.page--
			return v, v.Reload()
		}
		return v, nil

	case "right", "l":
		if v.page < v.list.Pagination.Pages {
			v.page++
			return v, v.Reload()
		}
		return v, nil

	case "v":
		if u := v.selected(); u != nil {
			return v, v.setVerified(u.ID, !u.IsVerified)
		}
		return v, nil

	case "b":
		if v.selected() != nil {
			v.mode = usersConfirmBlock
		}
		return v, nil

	case "s":
		if u := v.selected(); u != nil {
			return v, v.cycleSubscription(u)
		}
		return v, nil

	case "d", "delete":
		if v.selected() != nil {
			v.mode = usersConfirmDelete
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.tbl, cmd = v.tbl.Update(msg)
	return v, cmd
}

func (v *Users) updateSearch(msg tea.KeyMsg) (*Users, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.query = strings.TrimSpace(v.search.Value())
		v.page = 1
		v.mode = usersBrowse
		v.search.Blur()
		return v, v.Reload()
	case "esc":
		v.mode = usersBrowse
		v.search.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

func (v *Users) updateConfirm(msg tea.KeyMsg) (*Users, tea.Cmd) {
	u := v.selected()
	confirmDelete := v.mode == usersConfirmDelete
	v.mode = usersBrowse
	if u == nil {
		return v, nil
	}
	switch msg.String() {
	case "y", "enter":
		if confirmDelete {
			return v, v.deleteUser(u.ID, u.Email)
		}
		return v, v.setBlocked(u.ID, !u.IsBlocked)
	}
	return v, nil
}

func (v *Users) setVerified(id string, verified bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if _, err := v.client.UpdateUser(ctx, id, api.UserUpdate{IsVerified: &verified}); err != nil {
			return ErrMsg{Err: err}
		}
		if verified {
			return userMutatedMsg{note: "User verified"}
		}
		return userMutatedMsg{note: "Verification removed"}
	}
}

func (v *Users) setBlocked(id string, blocked bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if _, err := v.client.UpdateUser(ctx, id, api.UserUpdate{IsBlocked: &blocked}); err != nil {
			return ErrMsg{Err: err}
		}
		if blocked {
			return userMutatedMsg{note: "User blocked"}
		}
		return userMutatedMsg{note: "User unblocked"}
	}
}

// cycleSubscription steps the selected user through the tiers the
// backend accepts: free -> premium -> pro -> free.
func (v *Users) cycleSubscription(u *api.User) tea.Cmd {
	next := map[string]string{"free": "premium", "premium": "pro", "pro": "free"}
	tier, ok := next[u.SubscriptionTier]
	if !ok {
		tier = "free"
	}
	status := "active"
	if tier == "free" {
		status = "none"
	}
	id := u.ID
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if _, err := v.client.UpdateUserSubscription(ctx, id, api.SubscriptionUpdate{Status: status, Tier: tier}); err != nil {
			return ErrMsg{Err: err}
		}
		return userMutatedMsg{note: "Subscription set to " + tier}
	}
}

func (v *Users) deleteUser(id, email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if err := v.client.DeleteUser(ctx, id); err != nil {
			return ErrMsg{Err: err}
		}
		return userMutatedMsg{note: "Deleted " + email}
	}
}

// View renders the users screen.
func (v *Users) View() string {
	var b strings.Builder
	title := styles.Title.Render("Users")
	count := styles.Subtitle.Render(fmt.Sprintf("  %d total, page %d/%d",
		v.list.Pagination.Total, v.list.Pagination.Page, max(1, v.list.Pagination.Pages)))
	b.WriteString(title + count + "\n")

	if v.mode == usersSearch {
		b.WriteString(styles.Label.Render("Search: ") + v.search.View() + "\n")
	} else if v.query != "" {
		b.WriteString(styles.Subtitle.Render("Filter: "+v.query) + "\n")
	}

	b.WriteString(v.tbl.View() + "\n")

	switch v.mode {
	case usersConfirmDelete:
		if u := v.selected(); u != nil {
			b.WriteString(styles.Warning.Render(fmt.Sprintf("Delete %s permanently? y/n", u.Email)))
		}
	case usersConfirmBlock:
		if u := v.selected(); u != nil {
			verb := "Block"
			if u.IsBlocked {
				verb = "Unblock"
			}
			b.WriteString(styles.Warning.Render(fmt.Sprintf("%s %s? y/n", verb, u.Email)))
		}
	default:
		b.WriteString(styles.Help.Render("/: search  v: verify  b: block  s: subscription  d: delete  h/l: page  r: refresh"))
	}
	return b.String()
}
