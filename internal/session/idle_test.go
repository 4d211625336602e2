// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"
	"time"
)

func TestIdleNotExpiredInitially(t *testing.T) {
	idle := NewIdle(15*time.Minute, 2*time.Minute)
	if idle.IsExpired() {
		t.Error("fresh idle tracker should not be expired")
	}
	if idle.RemainingTime() <= 0 {
		t.Error("remaining time should be positive")
	}
}

func TestIdleExpiry(t *testing.T) {
	idle := NewIdle(10*time.Millisecond, 2*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	if !idle.IsExpired() {
		t.Error("expected expiry after timeout")
	}
	if idle.RemainingTime() != 0 {
		t.Errorf("RemainingTime = %v, want 0", idle.RemainingTime())
	}
}

func TestActivityResetsExpiry(t *testing.T) {
	idle := NewIdle(50*time.Millisecond, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	idle.RecordActivity()
	time.Sleep(30 * time.Millisecond)
	if idle.IsExpired() {
		t.Error("activity should have reset the timeout")
	}
}

func TestZeroTimeoutNeverExpires(t *testing.T) {
	idle := NewIdle(0, 0)
	time.Sleep(5 * time.Millisecond)
	if idle.IsExpired() {
		t.Error("zero timeout must disable expiry")
	}
}
