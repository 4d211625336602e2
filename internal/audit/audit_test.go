// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestTrail(t *testing.T) *Trail {
	t.Helper()
	trail, err := Open(filepath.Join(t.TempDir(), "audit", "trail.db"))
	require.NoError(t, err)
	t.Cleanup(func() { trail.Close() })
	return trail
}

func TestLogAndRecent(t *testing.T) {
	trail := openTestTrail(t)
	ctx := context.Background()

	require.NoError(t, trail.Log(ctx, Entry{
		Actor:  "ops@motour.app",
		Action: "login",
	}))
	require.NoError(t, trail.Log(ctx, Entry{
		Actor:  "ops@motour.app",
		Action: "user.update",
		Target: "64fa12",
		Detail: "subscription: free -> premium",
		At:     time.Now().Add(time.Second),
	}))

	entries, err := trail.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "user.update", entries[0].Action)
	assert.Equal(t, "64fa12", entries[0].Target)
	assert.Equal(t, "login", entries[1].Action)
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestRecentRespectsLimit(t *testing.T) {
	trail := openTestTrail(t)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, trail.Log(ctx, Entry{
			Actor:  "ops@motour.app",
			Action: "destination.update",
			At:     base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := trail.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestPrune(t *testing.T) {
	trail := openTestTrail(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, trail.Log(ctx, Entry{Actor: "a", Action: "login", At: old}))
	require.NoError(t, trail.Log(ctx, Entry{Actor: "a", Action: "login"}))

	n, err := trail.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	entries, err := trail.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestClosedTrail(t *testing.T) {
	trail := openTestTrail(t)
	require.NoError(t, trail.Close())

	assert.ErrorIs(t, trail.Log(context.Background(), Entry{Actor: "a", Action: "login"}), ErrClosed)
	_, err := trail.Recent(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestTrailSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trail.db")

	trail, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, trail.Log(context.Background(), Entry{Actor: "a", Action: "login"}))
	require.NoError(t, trail.Close())

	trail, err = Open(path)
	require.NoError(t, err)
	defer trail.Close()

	entries, err := trail.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
