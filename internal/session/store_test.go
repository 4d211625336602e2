// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/secrets"
)

// fakeAuth is an AuthClient with scripted responses.
type fakeAuth struct {
	loginResult *api.LoginResult
	loginErr    error
	logoutErr   error

	loginCalls  int
	logoutCalls int
	lastMFACode string
}

func (f *fakeAuth) Login(_ context.Context, email, password, mfaCode string) (*api.LoginResult, error) {
	f.loginCalls++
	f.lastMFACode = mfaCode
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func newTestStore(t *testing.T, auth AuthClient) *Store {
	t.Helper()
	dir := t.TempDir()
	sealer := secrets.NewSealer(filepath.Join(dir, "master.key"))
	return NewStore(filepath.Join(dir, "credentials"), sealer, auth)
}

func okLogin() *api.LoginResult {
	return &api.LoginResult{
		Token: "tok-abc",
		User:  api.AdminUser{ID: "a1", Email: "admin@example.com", FullName: "Admin", Role: "admin"},
	}
}

func TestLoginLogoutWindow(t *testing.T) {
	auth := &fakeAuth{loginResult: okLogin()}
	store := newTestStore(t, auth)

	assert.False(t, store.IsAuthenticated())

	require.NoError(t, store.Login(context.Background(), "admin@example.com", "correct-pass"))
	assert.True(t, store.IsAuthenticated())
	require.NotNil(t, store.Identity())
	assert.Equal(t, "admin@example.com", store.Identity().Email)
	assert.Equal(t, "tok-abc", store.Credential())

	store.Logout(context.Background())
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.Identity())
	assert.Empty(t, store.Credential())
}

func TestLoginFailureMutatesNothing(t *testing.T) {
	auth := &fakeAuth{loginErr: &api.APIError{StatusCode: 401, Message: "invalid credentials"}}
	store := newTestStore(t, auth)

	err := store.Login(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)

	assert.False(t, store.IsAuthenticated())
	// No storage keys written.
	_, statErr := os.Stat(storePath(store))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLogoutSucceedsLocallyWhenRemoteFails(t *testing.T) {
	auth := &fakeAuth{loginResult: okLogin(), logoutErr: errors.New("network down")}
	store := newTestStore(t, auth)

	require.NoError(t, store.Login(context.Background(), "admin@example.com", "correct-pass"))
	store.Logout(context.Background())

	assert.Equal(t, 1, auth.logoutCalls)
	assert.False(t, store.IsAuthenticated(), "local logout must succeed despite remote failure")
}

func TestDoubleLogoutIdempotent(t *testing.T) {
	auth := &fakeAuth{loginResult: okLogin()}
	store := newTestStore(t, auth)

	require.NoError(t, store.Login(context.Background(), "admin@example.com", "correct-pass"))
	store.Logout(context.Background())
	store.Logout(context.Background())
	store.Clear()

	assert.False(t, store.IsAuthenticated())
}

func TestClearOn401(t *testing.T) {
	auth := &fakeAuth{loginResult: okLogin()}
	store := newTestStore(t, auth)
	require.NoError(t, store.Login(context.Background(), "admin@example.com", "correct-pass"))

	// Simulate the API client's unauthorized hook.
	store.Clear()
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Credential())
}

func TestHydrateRestoresSession(t *testing.T) {
	dir := t.TempDir()
	sealer := secrets.NewSealer(filepath.Join(dir, "master.key"))
	path := filepath.Join(dir, "credentials")
	auth := &fakeAuth{loginResult: okLogin()}

	first := NewStore(path, sealer, auth)
	require.NoError(t, first.Login(context.Background(), "admin@example.com", "correct-pass"))

	second := NewStore(path, sealer, auth)
	second.Hydrate()
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "tok-abc", second.Credential())
	assert.Equal(t, "a1", second.Identity().ID)
}

func TestHydrateToleratesMissingAndCorruptFiles(t *testing.T) {
	auth := &fakeAuth{}
	store := newTestStore(t, auth)
	store.Hydrate() // no file
	assert.False(t, store.IsAuthenticated())

	require.NoError(t, os.WriteFile(storePath(store), []byte("garbage"), 0600))
	store.Hydrate()
	assert.False(t, store.IsAuthenticated())
}

func TestLoginMFAWithConfiguredSecret(t *testing.T) {
	auth := &switchingAuth{after: okLogin()}
	store := newTestStore(t, auth)
	// Valid base32 TOTP secret.
	store.SetTOTPSecret("JBSWY3DPEHPK3PXP")

	err := store.Login(context.Background(), "admin@example.com", "correct-pass")
	require.NoError(t, err)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, 2, auth.calls)
	assert.NotEmpty(t, auth.lastMFACode, "second login call should carry a generated code")
}

func TestLoginMFAWithoutSecretReturnsErrMFARequired(t *testing.T) {
	auth := &fakeAuth{loginResult: &api.LoginResult{MFARequired: true}}
	store := newTestStore(t, auth)

	err := store.Login(context.Background(), "admin@example.com", "correct-pass")
	assert.ErrorIs(t, err, ErrMFARequired)
	assert.False(t, store.IsAuthenticated())
}

// switchingAuth reports MFA required on the first login call and a real
// session on the second.
type switchingAuth struct {
	after       *api.LoginResult
	calls       int
	lastMFACode string
}

func (s *switchingAuth) Login(ctx context.Context, email, password, code string) (*api.LoginResult, error) {
	s.calls++
	s.lastMFACode = code
	if s.calls == 1 {
		return &api.LoginResult{MFARequired: true}, nil
	}
	return s.after, nil
}

func (s *switchingAuth) Logout(ctx context.Context) error { return nil }

// storePath exposes the store's path for test assertions.
func storePath(s *Store) string { return s.path }
