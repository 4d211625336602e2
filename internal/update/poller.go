// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package update

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"
)

const (
	// DefaultInterval is the operational default poll interval.
	DefaultInterval = 120 * time.Second

	// ApplyDelay is the fixed pause before the reload is issued, matching
	// the web console's behavior.
	ApplyDelay = 1500 * time.Millisecond

	// NotificationTimeout is how long an update banner stays visible
	// before auto-dismissing.
	NotificationTimeout = 15 * time.Second

	// edgeCheckEvery throttles edge-triggered checks (focus regained,
	// session resumed) so a burst of triggers costs one fetch.
	edgeCheckEvery = 10 * time.Second

	// maxEntryPageSize bounds the fetched markup.
	maxEntryPageSize = 2 * 1024 * 1024
)

// Notification reports that newer assets are deployed than the build this
// poller first observed.
type Notification struct {
	Fingerprint string
	DetectedAt  time.Time
}

// =============================================================================
// POLLER
// =============================================================================

// Poller periodically fingerprints the deployed admin bundle and reports
// when it changes. Comparison is always current-vs-initial: the baseline is
// captured once when the poller is seeded and never advances. Each distinct
// changed fingerprint is reported exactly once, not once per poll.
//
// Every failure mode of a check (transport error, non-2xx, no asset
// references in the markup) is swallowed and logged; the next scheduled
// poll simply tries again.
type Poller struct {
	entryURL string
	client   *http.Client
	interval time.Duration
	limiter  *rate.Limiter

	mu       sync.Mutex
	inFlight bool
	initial  string
	notified map[string]bool
}

// NewPoller creates a poller for the entry page at entryURL
// (e.g. "https://admin.motour.app"). Call Seed before the first Check.
func NewPoller(entryURL string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		entryURL: strings.TrimRight(entryURL, "/"),
		client:   &http.Client{Timeout: 15 * time.Second},
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(edgeCheckEvery), 1),
		notified: make(map[string]bool),
	}
}

// SetHTTPClient replaces the HTTP client (used in tests).
func (p *Poller) SetHTTPClient(c *http.Client) { p.client = c }

// Interval returns the configured poll interval.
func (p *Poller) Interval() time.Duration { return p.interval }

// Seed captures the baseline fingerprint from the currently served entry
// page. When the fetch fails or the markup carries no asset references,
// the build-time stamp is used if present; otherwise the first successful
// poll seeds the baseline without notifying.
func (p *Poller) Seed(ctx context.Context) {
	markup, err := p.fetchEntryPage(ctx)
	if err != nil {
		log.Printf("update: baseline fetch failed: %v", err)
		return
	}
	fp := Fingerprint(markup)
	if fp == "" {
		fp = BuildStamp(markup)
	}
	p.mu.Lock()
	p.initial = fp
	p.mu.Unlock()
}

// Initial returns the baseline fingerprint ("" when not yet seeded).
func (p *Poller) Initial() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initial
}

// Check performs one poll. It returns a Notification when a not yet
// reported fingerprint change is detected, and nil in every other case
// including all failures. Overlapping calls are skipped: if a poll is
// still in flight, Check returns nil immediately.
func (p *Poller) Check(ctx context.Context) *Notification {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return nil
	}
	p.inFlight = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	markup, err := p.fetchEntryPage(ctx)
	if err != nil {
		log.Printf("update: check failed: %v", err)
		return nil
	}

	fp := Fingerprint(markup)
	if fp == "" {
		log.Printf("update: no asset references in entry page, skipping comparison")
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initial == "" {
		// Baseline was never captured; adopt the first observation.
		p.initial = fp
		return nil
	}
	if fp == p.initial || p.notified[fp] {
		return nil
	}
	p.notified[fp] = true
	return &Notification{Fingerprint: fp, DetectedAt: time.Now()}
}

// CheckEdge is Check for edge triggers (terminal focus regained, session
// resume). A rate limiter collapses trigger bursts into one fetch.
func (p *Poller) CheckEdge(ctx context.Context) *Notification {
	if !p.limiter.Allow() {
		return nil
	}
	return p.Check(ctx)
}

// fetchEntryPage fetches the served entry page with cache-defeating query
// and headers.
func (p *Poller) fetchEntryPage(ctx context.Context) (string, error) {
	u := fmt.Sprintf("%s/index.html?t=%d", p.entryURL, time.Now().UnixMilli())
	if _, err := url.Parse(u); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Expires", "0")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("entry page returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEntryPageSize))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// =============================================================================
// UPDATE APPLICATION
// =============================================================================

// Reloader restarts the application. Provided by the host process; invoked
// only from the operator-confirmed apply path, never automatically.
type Reloader interface {
	Reload() error
}

// Apply applies an update: best-effort removal of the given local cache
// directories, a fixed cosmetic delay, then the reload. The reload is
// always attempted, even when cache clearing fails. There is no
// verification that the restart picks up new assets; this is advisory.
func Apply(ctx context.Context, cacheDirs []string, r Reloader) error {
	for _, dir := range cacheDirs {
		if dir == "" {
			continue
		}
		if err := removeContents(dir); err != nil {
			log.Printf("update: cache clear failed for %s (ignored): %v", dir, err)
		}
	}

	select {
	case <-time.After(ApplyDelay):
	case <-ctx.Done():
	}

	return r.Reload()
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg schedules the next interval poll.
type TickMsg struct {
	Time time.Time
}

// AvailableMsg announces a detected update.
type AvailableMsg struct {
	Notification Notification
}

// TickCmd returns a command that ticks at the poll interval.
func (p *Poller) TickCmd() tea.Cmd {
	return tea.Tick(p.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// CheckCmd runs one poll off the UI goroutine and emits an AvailableMsg
// when an update is detected.
func (p *Poller) CheckCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		if n := p.Check(ctx); n != nil {
			return AvailableMsg{Notification: *n}
		}
		return nil
	}
}

// CheckEdgeCmd is CheckCmd for edge triggers.
func (p *Poller) CheckEdgeCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		if n := p.CheckEdge(ctx); n != nil {
			return AvailableMsg{Notification: *n}
		}
		return nil
	}
}
