// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// =============================================================================
// AUTHENTICATION ENDPOINTS
// =============================================================================

// loginRequest is the wire format of the admin login call.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode,omitempty"`
}

// LoginResult is the successful login payload.
type LoginResult struct {
	Token string    `json:"token"`
	User  AdminUser `json:"user"`

	// MFARequired is set when the server accepted the password but wants a
	// TOTP code in a follow-up login call. Token and User are empty then.
	MFARequired bool `json:"mfaRequired"`
}

// Login exchanges credentials for a bearer token and the admin's identity.
// On rejection the returned error carries the server's message.
func (c *Client) Login(ctx context.Context, email, password, mfaCode string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/admin/login",
		nil, loginRequest{Email: email, Password: password, MFACode: mfaCode}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout notifies the server that the session is ending. Callers treat this
// as best-effort; local session state is cleared regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Me fetches the authenticated admin's current profile.
func (c *Client) Me(ctx context.Context) (*AdminUser, error) {
	var payload struct {
		User AdminUser `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}
