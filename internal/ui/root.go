// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui hosts the root Bubble Tea model of the admin console. The
// root owns navigation, the session guard, idle tracking and the update
// poller; the screens themselves live in the views package.
package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/audit"
	"github.com/motourapp/admin-tui/internal/session"
	"github.com/motourapp/admin-tui/internal/ui/components"
	"github.com/motourapp/admin-tui/internal/ui/views"
	"github.com/motourapp/admin-tui/internal/update"
)

// =============================================================================
// ROUTES
// =============================================================================

// Route identifies a screen.
type Route int

const (
	RouteLogin Route = iota
	RouteDashboard
	RouteUsers
	RouteDestinations
	RouteRatings
	RouteSubscriptions
	RouteArchive
)

// protected reports whether a route requires an authenticated session.
func (r Route) protected() bool { return r != RouteLogin }

// UnauthorizedMsg is injected by the host when the API rejects the
// session token. Credentials are already cleared when it arrives.
type UnauthorizedMsg struct{}

// loggedOutMsg reports a completed voluntary or idle logout.
type loggedOutMsg struct {
	idle bool
}

// =============================================================================
// ROOT MODEL
// =============================================================================

// Options carries the collaborators the root model needs.
type Options struct {
	Store    *session.Store
	Client   *api.Client
	Poller   *update.Poller // nil disables update checks
	Trail    *audit.Trail   // nil disables the local action log
	Idle     *session.Idle
	Reloader update.Reloader
	CacheDir string // local cache cleared when an update is applied
	PageSize int
}

// Root is the top-level model.
type Root struct {
	opts  Options
	route Route

	login         *views.Login
	dashboard     *views.Dashboard
	users         *views.Users
	destinations  *views.Destinations
	ratings       *views.Ratings
	registrations *views.Registrations
	archive       *views.Archive

	nav    components.NavBar
	status components.StatusBar
	banner components.UpdateBanner
	toast  components.Toast

	idleWarning string
	width       int
	height      int
}

// navRoutes maps nav bar positions to routes, in display order.
var navRoutes = []Route{
	RouteDashboard, RouteUsers, RouteDestinations,
	RouteRatings, RouteSubscriptions, RouteArchive,
}

// New builds the root model. The starting route honors the session
// guard: a restored session lands on the dashboard, anything else on
// the login screen.
func New(opts Options) *Root {
	r := &Root{
		opts:          opts,
		login:         views.NewLogin(opts.Store),
		dashboard:     views.NewDashboard(opts.Client),
		users:         views.NewUsers(opts.Client, opts.PageSize),
		destinations:  views.NewDestinations(opts.Client),
		ratings:       views.NewRatings(opts.Client),
		registrations: views.NewRegistrations(opts.Client),
		archive:       views.NewArchive(opts.Client),
	}
	r.nav = components.NavBar{
		Items: []components.NavItem{
			{Label: "Dashboard", Key: "1"},
			{Label: "Users", Key: "2"},
			{Label: "Destinations", Key: "3"},
			{Label: "Ratings", Key: "4"},
			{Label: "Subscriptions", Key: "5"},
			{Label: "Archive", Key: "6"},
		},
	}
	r.route = RouteLogin
	if opts.Store.IsAuthenticated() {
		r.route = RouteDashboard
	}
	return r
}

// Route returns the active route.
func (r *Root) Route() Route { return r.route }

// Navigate moves to a route, re-evaluating the session guard at this
// moment. The guard result is never cached: a session revoked since the
// last navigation is caught here.
func (r *Root) Navigate(target Route) tea.Cmd {
	authed := r.opts.Store.IsAuthenticated()

	if target.protected() && !authed {
		r.route = RouteLogin
		return r.login.Init()
	}
	if target == RouteLogin && authed {
		target = RouteDashboard
	}

	r.route = target
	for i, route := range navRoutes {
		if route == target {
			r.nav.Active = i
		}
	}
	switch target {
	case RouteLogin:
		return r.login.Init()
	case RouteDashboard:
		return r.dashboard.Init()
	case RouteUsers:
		return r.users.Init()
	case RouteDestinations:
		return r.destinations.Init()
	case RouteRatings:
		return r.ratings.Init()
	case RouteSubscriptions:
		return r.registrations.Init()
	case RouteArchive:
		return r.archive.Init()
	}
	return nil
}

// Init starts the tickers and the active view.
func (r *Root) Init() tea.Cmd {
	cmds := []tea.Cmd{r.Navigate(r.route)}
	if r.opts.Idle != nil {
		cmds = append(cmds, session.IdleTickCmd())
	}
	if r.opts.Poller != nil {
		cmds = append(cmds, r.opts.Poller.TickCmd())
	}
	return tea.Batch(cmds...)
}

// Update routes messages.
func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width, r.height = msg.Width, msg.Height
		r.applySizes()
		return r, nil

	case tea.FocusMsg:
		// Terminal regained focus: edge-triggered update check.
		if r.opts.Poller != nil {
			return r, r.opts.Poller.CheckEdgeCmd(context.Background())
		}
		return r, nil

	case UnauthorizedMsg:
		cmd := r.Navigate(RouteLogin)
		return r, tea.Batch(cmd, r.toast.Show(components.ToastError, "Session expired. Please sign in again."))

	case loggedOutMsg:
		cmd := r.Navigate(RouteLogin)
		text := "Signed out."
		if msg.idle {
			text = "Signed out after inactivity."
		}
		r.idleWarning = ""
		return r, tea.Batch(cmd, r.toast.Show(components.ToastInfo, text))

	case update.TickMsg:
		if r.opts.Poller == nil {
			return r, nil
		}
		return r, tea.Batch(
			r.opts.Poller.CheckCmd(context.Background()),
			r.opts.Poller.TickCmd(),
		)

	case update.AvailableMsg:
		r.audit("update.available", "", msg.Notification.Fingerprint)
		return r, r.banner.Show(msg.Notification)

	case components.BannerExpiredMsg:
		r.banner.Expire(msg)
		return r, nil

	case components.ToastExpiredMsg:
		r.toast.Expire(msg)
		return r, nil

	case session.IdleTickMsg:
		if r.opts.Idle == nil {
			return r, nil
		}
		return r, r.opts.Idle.HandleTick()

	case session.IdleWarningMsg:
		r.idleWarning = fmt.Sprintf("Session expires in %s. Press any key to stay signed in.",
			msg.Remaining.Round(time.Second))
		return r, nil

	case session.IdleTimeoutMsg:
		if !r.opts.Store.IsAuthenticated() {
			return r, nil
		}
		r.audit("logout.idle", "", "")
		return r, r.logout(true)

	case views.ErrMsg:
		// The active view sees the error too, so it can leave its
		// loading state and render a retry hint.
		_, cmd := r.updateActive(msg)
		return r, tea.Batch(cmd, r.toast.Show(components.ToastError, api.UserMessage(msg.Err)))

	case views.StatusMsg:
		return r, r.toast.Show(components.ToastSuccess, msg.Text)

	case views.LoginSuccessMsg:
		r.audit("login", "", "")
		if r.opts.Idle != nil {
			r.opts.Idle.RecordActivity()
		}
		cmds := []tea.Cmd{r.Navigate(RouteDashboard)}
		if r.opts.Poller != nil {
			// Session resumed: edge-triggered update check.
			cmds = append(cmds, r.opts.Poller.CheckEdgeCmd(context.Background()))
		}
		return r, tea.Batch(cmds...)

	case tea.KeyMsg:
		return r.handleKey(msg)
	}

	return r.updateActive(msg)
}

func (r *Root) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if r.opts.Idle != nil {
		r.opts.Idle.RecordActivity()
		r.idleWarning = ""
	}

	switch msg.String() {
	case "ctrl+c":
		return r, tea.Quit

	case "u":
		if r.banner.Visible() {
			return r, r.applyUpdate()
		}

	case "esc":
		if r.banner.Visible() {
			r.banner.Dismiss()
			return r, nil
		}

	case "ctrl+l":
		if r.opts.Store.IsAuthenticated() {
			r.audit("logout", "", "")
			return r, r.logout(false)
		}

	case "1", "2", "3", "4", "5", "6":
		if r.route != RouteLogin && !r.typingInActiveView() {
			idx := int(msg.String()[0] - '1')
			return r, r.Navigate(navRoutes[idx])
		}
	}

	return r.updateActive(msg)
}

// typingInActiveView reports whether the active view currently owns text
// input, so digit shortcuts must pass through.
func (r *Root) typingInActiveView() bool {
	// Views handle their own input modes; only the table-browse modes
	// reach this path with digits unclaimed. Views that own a text input
	// consume digits while searching or editing.
	switch r.route {
	case RouteUsers:
		return r.users.Typing()
	case RouteDestinations:
		return r.destinations.Typing()
	case RouteSubscriptions:
		return r.registrations.Typing()
	case RouteArchive:
		return r.archive.Typing()
	}
	return false
}

func (r *Root) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch r.route {
	case RouteLogin:
		r.login, cmd = r.login.Update(msg)
	case RouteDashboard:
		r.dashboard, cmd = r.dashboard.Update(msg)
	case RouteUsers:
		r.users, cmd = r.users.Update(msg)
	case RouteDestinations:
		r.destinations, cmd = r.destinations.Update(msg)
	case RouteRatings:
		r.ratings, cmd = r.ratings.Update(msg)
	case RouteSubscriptions:
		r.registrations, cmd = r.registrations.Update(msg)
	case RouteArchive:
		r.archive, cmd = r.archive.Update(msg)
	}
	return r, cmd
}

func (r *Root) logout(idle bool) tea.Cmd {
	store := r.opts.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store.Logout(ctx)
		return loggedOutMsg{idle: idle}
	}
}

// applyUpdate clears the local cache, waits the cosmetic delay and
// restarts the process. On success it never returns.
func (r *Root) applyUpdate() tea.Cmd {
	r.audit("update.apply", "", r.banner.Fingerprint())
	r.banner.Dismiss()
	opts := r.opts
	return func() tea.Msg {
		if err := update.Apply(context.Background(), []string{opts.CacheDir}, opts.Reloader); err != nil {
			log.Printf("update apply failed: %v", err)
			return views.ErrMsg{Err: err}
		}
		return tea.QuitMsg{}
	}
}

// audit records an operator action in the local trail, best-effort.
func (r *Root) audit(action, target, detail string) {
	if r.opts.Trail == nil {
		return
	}
	actor := ""
	if id := r.opts.Store.Identity(); id != nil {
		actor = id.Email
	}
	entry := audit.Entry{Actor: actor, Action: action, Target: target, Detail: detail}
	if err := r.opts.Trail.Log(context.Background(), entry); err != nil {
		log.Printf("audit log failed: %v", err)
	}
}

// View renders the frame: nav, active view, banner, toast, status bar.
func (r *Root) View() string {
	if r.route == RouteLogin {
		out := r.login.View()
		if t := r.toast.Render(); t != "" {
			out += "\n" + t
		}
		return out
	}

	var b strings.Builder
	r.nav.Width = r.width
	b.WriteString(r.nav.Render() + "\n")

	if banner := r.banner.Render(); banner != "" {
		b.WriteString(banner + "\n")
	}
	if r.idleWarning != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(r.idleWarning) + "\n")
	}

	body := r.activeView()
	b.WriteString(body)

	if t := r.toast.Render(); t != "" {
		b.WriteString("\n" + t)
	}

	r.status.Width = r.width
	if id := r.opts.Store.Identity(); id != nil {
		r.status.Email = id.Email
	}
	b.WriteString("\n" + r.status.Render())
	return b.String()
}

func (r *Root) activeView() string {
	switch r.route {
	case RouteDashboard:
		return r.dashboard.View()
	case RouteUsers:
		return r.users.View()
	case RouteDestinations:
		return r.destinations.View()
	case RouteRatings:
		return r.ratings.View()
	case RouteSubscriptions:
		return r.registrations.View()
	case RouteArchive:
		return r.archive.View()
	}
	return ""
}

func (r *Root) applySizes() {
	h := r.height - 4
	if h < 5 {
		h = 5
	}
	r.login.Width, r.login.Height = r.width, r.height
	r.dashboard.Width, r.dashboard.Height = r.width, h
	r.users.Width, r.users.Height = r.width, h
	r.destinations.Width, r.destinations.Height = r.width, h
	r.ratings.Width, r.ratings.Height = r.width, h
	r.registrations.Width, r.registrations.Height = r.width, h
	r.archive.Width, r.archive.Height = r.width, h
	r.banner.Width = r.width
	r.toast.Width = r.width
}

// SetServer sets the status bar server label.
func (r *Root) SetServer(host string) { r.status.Server = host }
