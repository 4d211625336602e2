// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/secrets"
	"github.com/motourapp/admin-tui/internal/util"
)

// ErrMFARequired indicates the server accepted the password but wants a
// TOTP code; callers should prompt and retry with LoginWithCode.
var ErrMFARequired = errors.New("multi-factor code required")

// AuthClient is the slice of the API client the store needs.
type AuthClient interface {
	Login(ctx context.Context, email, password, mfaCode string) (*api.LoginResult, error)
	Logout(ctx context.Context) error
}

// Session pairs the opaque bearer credential with the authenticated
// administrator's identity. The two always travel together.
type Session struct {
	Credential string
	User       api.AdminUser
}

// persisted is the on-disk session layout. The token, the identity, and the
// logged-in flag are written and cleared as one sealed unit, never
// partially.
type persisted struct {
	Token    string        `json:"token"`
	User     api.AdminUser `json:"user"`
	LoggedIn bool          `json:"logged_in"`
	SavedAt  time.Time     `json:"saved_at"`
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store holds the current session and persists it across restarts. All
// methods are safe for concurrent use. Construct one per process; tests
// construct isolated instances against temp paths.
type Store struct {
	mu sync.Mutex

	path   string
	sealer *secrets.Sealer
	auth   AuthClient

	// totpSecret, when set, generates MFA codes instead of prompting.
	totpSecret string

	cur *Session // nil when unauthenticated
}

// NewStore creates a session store persisting to path, sealed at rest.
func NewStore(path string, sealer *secrets.Sealer, auth AuthClient) *Store {
	return &Store{path: path, sealer: sealer, auth: auth}
}

// SetTOTPSecret configures automatic MFA code generation.
func (s *Store) SetTOTPSecret(secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totpSecret = secret
}

// =============================================================================
// HYDRATION
// =============================================================================

// Hydrate loads any persisted session from disk. Called once at startup.
// A missing, unreadable, or incomplete credentials file leaves the store
// unauthenticated; it is never an error.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	sealed, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("session: unreadable credentials file: %v", err)
		}
		return
	}
	plain, err := s.sealer.Open(sealed)
	if err != nil {
		log.Printf("session: discarding undecryptable credentials: %v", err)
		return
	}
	var p persisted
	if err := json.Unmarshal(plain, &p); err != nil {
		log.Printf("session: discarding corrupt credentials: %v", err)
		return
	}
	// Credential and identity must both be present; a half-written state
	// counts as logged out.
	if !p.LoggedIn || p.Token == "" || p.User.ID == "" {
		return
	}
	s.cur = &Session{Credential: p.Token, User: p.User}
}

// =============================================================================
// LOGIN / LOGOUT
// =============================================================================

// Login authenticates with the backend and persists the session on
// success. On failure nothing changes and the returned error carries the
// server's message. When the server demands a second factor and no TOTP
// secret is configured, ErrMFARequired is returned.
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.login(ctx, email, password, "")
}

// LoginWithCode authenticates with an operator-supplied MFA code.
func (s *Store) LoginWithCode(ctx context.Context, email, password, code string) error {
	return s.login(ctx, email, password, code)
}

func (s *Store) login(ctx context.Context, email, password, code string) error {
	result, err := s.auth.Login(ctx, email, password, code)
	if err != nil {
		return err
	}

	if result.MFARequired {
		s.mu.Lock()
		secret := s.totpSecret
		s.mu.Unlock()
		if secret == "" {
			return ErrMFARequired
		}
		generated, err := totp.GenerateCode(secret, time.Now())
		if err != nil {
			return errors.Join(ErrMFARequired, err)
		}
		result, err = s.auth.Login(ctx, email, password, generated)
		if err != nil {
			return err
		}
		if result.MFARequired {
			return ErrMFARequired
		}
	}

	sess := &Session{Credential: result.Token, User: result.User}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(sess); err != nil {
		// The backend accepted the login; a persistence failure only
		// costs durability, not the running session.
		log.Printf("session: failed to persist credentials: %v", err)
	}
	s.cur = sess
	return nil
}

// Logout notifies the backend (best-effort, failure ignored) and then
// unconditionally clears local state. Always succeeds locally.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	authenticated := s.cur != nil
	s.mu.Unlock()

	if authenticated {
		if err := s.auth.Logout(ctx); err != nil {
			log.Printf("session: remote logout failed (ignored): %v", err)
		}
	}
	s.Clear()
}

// Clear wipes local session state. Idempotent: clearing an already-cleared
// session is a no-op. This is also the 401 escalation path.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("session: failed to remove credentials file: %v", err)
	}
}

// persist writes the session to disk as one sealed unit. Caller holds mu.
func (s *Store) persist(sess *Session) error {
	plain, err := json.Marshal(persisted{
		Token:    sess.Credential,
		User:     sess.User,
		LoggedIn: true,
		SavedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(s.path, sealed, 0600)
}

// =============================================================================
// READS
// =============================================================================

// IsAuthenticated reports whether a credential and identity are both
// present. Pure read, no network.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur != nil
}

// Identity returns the authenticated admin's identity, or nil.
func (s *Store) Identity() *api.AdminUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	u := s.cur.User
	return &u
}

// HasPermission reports whether the current identity holds perm. False
// when unauthenticated.
func (s *Store) HasPermission(perm string) bool {
	return s.Identity().HasPermission(perm)
}

// Credential returns the current bearer token, or "". Implements
// api.CredentialSource.
func (s *Store) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.Credential
}

// RefreshIdentity replaces the cached identity after the backend confirms
// it (e.g. a /auth/me round trip), re-persisting the session.
func (s *Store) RefreshIdentity(user api.AdminUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return
	}
	s.cur.User = user
	if err := s.persist(s.cur); err != nil {
		log.Printf("session: failed to persist refreshed identity: %v", err)
	}
}
