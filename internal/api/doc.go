// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the client for the Motour admin REST API.
//
// The client attaches the current bearer credential to every request, fires
// each request exactly once (no retries), and funnels HTTP 401 responses
// through a single unauthorized hook so that individual callers never need
// their own session-expiry handling:
//
//	client := api.NewClient(cfg.API.BaseURL, api.WithCredentials(store))
//	client.SetUnauthorizedHook(func() {
//	    store.Clear()
//	    // route back to the login view
//	})
//
// Two error kinds come back from every call and must not be conflated:
//
//   - *APIError: the server was reached and rejected the request. Only an
//     APIError with status 401 ends the session.
//   - anything else: a transport failure. Surfaced to the caller, never
//     escalated into a forced logout.
package api
