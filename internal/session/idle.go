// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// IDLE TIMEOUT
// =============================================================================

// Idle tracks operator activity and decides when to warn about and when to
// end an idle session. A zero timeout disables expiry entirely.
type Idle struct {
	mu sync.Mutex

	lastActivity  time.Time
	timeout       time.Duration
	warningBefore time.Duration
	warningShown  bool
}

// NewIdle creates an idle tracker with the given timeout and warning lead
// time.
func NewIdle(timeout, warningBefore time.Duration) *Idle {
	return &Idle{
		lastActivity:  time.Now(),
		timeout:       timeout,
		warningBefore: warningBefore,
	}
}

// RecordActivity updates the last-activity timestamp. Call on user input.
func (i *Idle) RecordActivity() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.lastActivity = time.Now()
	i.warningShown = false
}

// IdleTime returns how long since last activity.
func (i *Idle) IdleTime() time.Duration {
	i.mu.Lock()
	defer i.mu.Unlock()
	return time.Since(i.lastActivity)
}

// RemainingTime returns time until expiry, or zero when already expired.
func (i *Idle) RemainingTime() time.Duration {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.timeout == 0 {
		return time.Duration(1<<63 - 1)
	}
	remaining := i.timeout - time.Since(i.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsExpired reports whether the session has idled out.
func (i *Idle) IsExpired() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.timeout > 0 && time.Since(i.lastActivity) >= i.timeout
}

// SetTimeout updates the timeout duration.
func (i *Idle) SetTimeout(d time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.timeout = d
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// IdleTickMsg is sent periodically to evaluate idle state.
type IdleTickMsg struct {
	Time time.Time
}

// IdleWarningMsg indicates the session is about to idle out.
type IdleWarningMsg struct {
	Remaining time.Duration
}

// IdleTimeoutMsg indicates the session has idled out.
type IdleTimeoutMsg struct{}

// IdleTickCmd returns a command that ticks once per second.
func IdleTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return IdleTickMsg{Time: t}
	})
}

// HandleTick evaluates idle state and returns the resulting messages plus
// the next tick.
func (i *Idle) HandleTick() tea.Cmd {
	var cmds []tea.Cmd

	i.mu.Lock()
	expired := i.timeout > 0 && time.Since(i.lastActivity) >= i.timeout
	shouldWarn := false
	var remaining time.Duration
	if i.timeout > 0 && !expired && !i.warningShown {
		idle := time.Since(i.lastActivity)
		if idle >= i.timeout-i.warningBefore {
			shouldWarn = true
			remaining = i.timeout - idle
			i.warningShown = true
		}
	}
	i.mu.Unlock()

	if shouldWarn {
		cmds = append(cmds, func() tea.Msg {
			return IdleWarningMsg{Remaining: remaining}
		})
	}
	if expired {
		cmds = append(cmds, func() tea.Msg {
			return IdleTimeoutMsg{}
		})
	}
	cmds = append(cmds, IdleTickCmd())
	return tea.Batch(cmds...)
}
