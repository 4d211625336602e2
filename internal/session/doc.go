// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the admin console's authenticated-session state.
//
// # Session Store
//
// Store is the single source of truth for "is an administrator currently
// authenticated". The credential (bearer token) and the admin's identity are
// held together and persisted together: both present or both absent, never
// one without the other. State survives restarts via an encrypted
// credentials file under the config directory.
//
//	store := session.NewStore(credsPath, sealer, client)
//	store.Hydrate()
//	if err := store.Login(ctx, email, password); err != nil { ... }
//	defer store.Logout(ctx)
//
// Logout clears local state unconditionally, even when the remote logout
// call fails; a dead backend never traps the operator in a logged-in
// client. Clearing an already-cleared session is a no-op.
//
// # Idle Timeout
//
// Idle tracks operator activity and drives the warning/auto-logout cycle
// from the root Bubble Tea model's ticks.
package session
