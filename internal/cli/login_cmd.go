// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login_cmd.go - login/logout command implementations.
//
// Command: login
// Short:   Authenticate against the admin API and store credentials
//
// Examples:
//   motour-admin login                   Prompt for email and password
//   motour-admin login ops@motour.app    Prompt for password only
//
// Credentials are encrypted at rest; a stored session survives restarts
// until it is revoked or rejected by the server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/session"
)

// HandleLogin authenticates interactively and persists the session.
func HandleLogin(ctx context.Context, store *session.Store, args Args) error {
	email := strings.TrimSpace(args.Email)
	if email == "" {
		var err error
		email, err = PromptLine("Email: ")
		if err != nil {
			return err
		}
	}
	if email == "" {
		return errors.New("email is required")
	}

	password, err := PromptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password is required")
	}

	err = store.Login(ctx, email, password)
	if errors.Is(err, session.ErrMFARequired) {
		code, perr := PromptLine("Verification code: ")
		if perr != nil {
			return perr
		}
		err = store.LoginWithCode(ctx, email, password, code)
	}
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("login failed: %s", api.UserMessage(apiErr))
		}
		return fmt.Errorf("login failed: %w", err)
	}

	user := store.Identity()
	if !args.Quiet {
		fmt.Printf("Logged in as %s (%s)\n", user.Email, user.Role)
	}
	return nil
}

// HandleLogout ends the session. Local credentials are cleared even when
// the server cannot be reached.
func HandleLogout(ctx context.Context, store *session.Store, args Args) error {
	if !store.IsAuthenticated() {
		if !args.Quiet {
			fmt.Println("Not logged in.")
		}
		return nil
	}
	store.Logout(ctx)
	if !args.Quiet {
		fmt.Println("Logged out.")
	}
	return nil
}
