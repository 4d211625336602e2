// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/session"
	"github.com/motourapp/admin-tui/internal/ui/styles"
)

// =============================================================================
// LOGIN VIEW
// =============================================================================

// LoginSuccessMsg tells the root model to leave the login screen.
type LoginSuccessMsg struct{}

// loginResultMsg carries the outcome of an authentication attempt.
type loginResultMsg struct {
	err error
}

const (
	fieldEmail = iota
	fieldPassword
	fieldCode
)

// Login is the authentication screen. It owns the only credential entry
// path; passwords live in the inputs only until the attempt resolves.
type Login struct {
	store *session.Store

	email    textinput.Model
	password textinput.Model
	code     textinput.Model
	focus    int

	mfaNeeded bool
	busy      bool
	spin      spinner.Model
	errText   string

	Width  int
	Height int
}

// NewLogin creates the login screen.
func NewLogin(store *session.Store) *Login {
	email := textinput.New()
	email.Placeholder = "admin email"
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 200

	code := textinput.New()
	code.Placeholder = "verification code"
	code.CharLimit = 10

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(styles.Teal)

	return &Login{
		store:    store,
		email:    email,
		password: password,
		code:     code,
		spin:     spin,
	}
}

// Init returns the initial command.
func (l *Login) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input.
func (l *Login) Update(msg tea.Msg) (*Login, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		l.busy = false
		if msg.err == nil {
			l.password.Reset()
			l.code.Reset()
			l.errText = ""
			return l, func() tea.Msg { return LoginSuccessMsg{} }
		}
		if errors.Is(msg.err, session.ErrMFARequired) {
			l.mfaNeeded = true
			l.errText = ""
			l.setFocus(fieldCode)
			return l, nil
		}
		var apiErr *api.APIError
		if errors.As(msg.err, &apiErr) {
			l.errText = api.UserMessage(apiErr)
		} else {
			l.errText = "Could not reach the server. Check your connection and try again."
		}
		return l, nil

	case spinner.TickMsg:
		if !l.busy {
			return l, nil
		}
		var cmd tea.Cmd
		l.spin, cmd = l.spin.Update(msg)
		return l, cmd

	case tea.KeyMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "tab", "down":
			l.setFocus(l.nextField(1))
			return l, nil
		case "shift+tab", "up":
			l.setFocus(l.nextField(-1))
			return l, nil
		case "enter":
			return l.submit()
		}
	}

	var cmd tea.Cmd
	switch l.focus {
	case fieldEmail:
		l.email, cmd = l.email.Update(msg)
	case fieldPassword:
		l.password, cmd = l.password.Update(msg)
	case fieldCode:
		l.code, cmd = l.code.Update(msg)
	}
	return l, cmd
}

func (l *Login) nextField(dir int) int {
	max := fieldPassword
	if l.mfaNeeded {
		max = fieldCode
	}
	next := l.focus + dir
	if next < 0 {
		next = max
	}
	if next > max {
		next = 0
	}
	return next
}

func (l *Login) setFocus(field int) {
	l.focus = field
	l.email.Blur()
	l.password.Blur()
	l.code.Blur()
	switch field {
	case fieldEmail:
		l.email.Focus()
	case fieldPassword:
		l.password.Focus()
	case fieldCode:
		l.code.Focus()
	}
}

func (l *Login) submit() (*Login, tea.Cmd) {
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()
	if email == "" || password == "" {
		l.errText = "Email and password are required."
		return l, nil
	}
	if l.mfaNeeded && strings.TrimSpace(l.code.Value()) == "" {
		l.errText = "Enter the verification code."
		return l, nil
	}

	l.busy = true
	l.errText = ""
	code := strings.TrimSpace(l.code.Value())
	mfa := l.mfaNeeded

	attempt := func() tea.Msg {
		ctx, cancel := apiCtx()
		defer cancel()
		if mfa {
			return loginResultMsg{err: l.store.LoginWithCode(ctx, email, password, code)}
		}
		return loginResultMsg{err: l.store.Login(ctx, email, password)}
	}
	return l, tea.Batch(l.spin.Tick, attempt)
}

// View renders the login screen centered in the window.
func (l *Login) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Motour Admin"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Sign in to manage the platform"))
	b.WriteString("\n\n")

	b.WriteString(styles.Label.Render("Email"))
	b.WriteString("\n" + l.email.View() + "\n\n")
	b.WriteString(styles.Label.Render("Password"))
	b.WriteString("\n" + l.password.View() + "\n")

	if l.mfaNeeded {
		b.WriteString("\n" + styles.Label.Render("Verification code"))
		b.WriteString("\n" + l.code.View() + "\n")
	}

	b.WriteString("\n")
	switch {
	case l.busy:
		b.WriteString(l.spin.View() + " Signing in...")
	case l.errText != "":
		b.WriteString(styles.Error.Render(l.errText))
	default:
		b.WriteString(styles.Help.Render("enter: sign in   tab: next field   ctrl+c: quit"))
	}

	panel := styles.Panel.Render(b.String())
	if l.Width > 0 && l.Height > 0 {
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}
