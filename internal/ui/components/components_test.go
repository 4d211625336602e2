// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/motourapp/admin-tui/internal/update"
)

func TestStatusBarShowsIdentityAndActivity(t *testing.T) {
	bar := StatusBar{
		Email:  "ops@motour.app",
		Server: "api.motour.app",
		Status: StatusLoading,
		Width:  100,
	}
	out := bar.Render()
	if !strings.Contains(out, "ops@motour.app") {
		t.Error("status bar missing identity")
	}
	if !strings.Contains(out, "Loading") {
		t.Error("status bar missing activity")
	}
	if w := lipgloss.Width(out); w > 100 {
		t.Errorf("status bar wider than terminal: %d", w)
	}
}

func TestNavBarHighlightsActive(t *testing.T) {
	nav := NavBar{
		Items: []NavItem{
			{Label: "Dashboard", Key: "1"},
			{Label: "Users", Key: "2"},
		},
		Active: 1,
	}
	out := nav.Render()
	if !strings.Contains(out, "Dashboard") || !strings.Contains(out, "Users") {
		t.Fatalf("nav bar missing items: %q", out)
	}
}

func TestUpdateBannerLifecycle(t *testing.T) {
	var b UpdateBanner
	if b.Visible() {
		t.Fatal("banner visible before Show")
	}

	cmd := b.Show(update.Notification{Fingerprint: "assets/b.js", DetectedAt: time.Now()})
	if cmd == nil {
		t.Fatal("Show returned no dismiss timer")
	}
	if !b.Visible() || b.Fingerprint() != "assets/b.js" {
		t.Fatalf("banner state after Show: visible=%t fp=%q", b.Visible(), b.Fingerprint())
	}
	if !strings.Contains(b.Render(), "new console version") {
		t.Errorf("banner text: %q", b.Render())
	}

	// A stale expiry from an earlier showing must not dismiss this one.
	b.Expire(BannerExpiredMsg{ShownAt: time.Now().Add(-time.Minute)})
	if !b.Visible() {
		t.Error("stale expiry dismissed the banner")
	}

	b.Dismiss()
	if b.Visible() || b.Render() != "" {
		t.Error("banner still rendering after dismiss")
	}
}

func TestToastExpiry(t *testing.T) {
	var toast Toast
	cmd := toast.Show(ToastError, "save failed")
	if cmd == nil || !toast.Visible() {
		t.Fatal("toast did not show")
	}

	// A stale expiry from an earlier toast is ignored.
	toast.Expire(ToastExpiredMsg{ShownAt: toast.shownAt.Add(-time.Minute)})
	if !toast.Visible() {
		t.Error("stale expiry dismissed the toast")
	}

	toast.Expire(ToastExpiredMsg{ShownAt: toast.shownAt})
	if toast.Visible() {
		t.Error("toast visible after matching expiry")
	}
}

func TestRenderDocumentFallsBackOnUnknownContent(t *testing.T) {
	content := "just some plain text"
	out := RenderDocument("notes.xyz", content)
	if !strings.Contains(stripANSI(out), "just some plain text") {
		t.Errorf("plain content lost in rendering: %q", out)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == 0x1b:
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
