// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// entryServer serves whatever markup is currently set, counting requests.
type entryServer struct {
	mu       sync.Mutex
	markup   string
	requests atomic.Int64
	lastURL  string
}

func (s *entryServer) set(markup string) {
	s.mu.Lock()
	s.markup = markup
	s.mu.Unlock()
}

func (s *entryServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.mu.Lock()
		s.lastURL = r.URL.String()
		markup := s.markup
		s.mu.Unlock()
		w.Write([]byte(markup))
	}
}

func page(assets string) string {
	var b strings.Builder
	b.WriteString("<html><head>")
	for _, a := range strings.Split(assets, "|") {
		if strings.HasSuffix(a, ".css") {
			b.WriteString(`<link rel="stylesheet" href="/` + a + `">`)
		}
	}
	b.WriteString("</head><body>")
	for _, a := range strings.Split(assets, "|") {
		if strings.HasSuffix(a, ".js") {
			b.WriteString(`<script src="/` + a + `"></script>`)
		}
	}
	b.WriteString("</body></html>")
	return b.String()
}

func newTestPoller(t *testing.T, srv *entryServer) *Poller {
	t.Helper()
	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)
	p := NewPoller(ts.URL, DefaultInterval)
	p.SetHTTPClient(ts.Client())
	return p
}

func TestCheckNotifiesOncePerDistinctChange(t *testing.T) {
	srv := &entryServer{}
	srv.set(page("assets/a.js|assets/a.css"))
	p := newTestPoller(t, srv)
	p.Seed(context.Background())

	if got := p.Initial(); got != "assets/a.js|assets/a.css" {
		t.Fatalf("baseline = %q", got)
	}

	// Steady state: same build, no notification.
	if n := p.Check(context.Background()); n != nil {
		t.Fatalf("unexpected notification in steady state: %+v", n)
	}

	srv.set(page("assets/b.js|assets/a.css"))
	n := p.Check(context.Background())
	if n == nil {
		t.Fatal("expected notification after asset change")
	}
	if n.Fingerprint != "assets/b.js|assets/a.css" {
		t.Errorf("notification fingerprint = %q", n.Fingerprint)
	}

	// Same changed build seen again: already reported.
	if n := p.Check(context.Background()); n != nil {
		t.Errorf("duplicate notification for same fingerprint: %+v", n)
	}

	// A further distinct build gets its own notification.
	srv.set(page("assets/c.js|assets/a.css"))
	if n := p.Check(context.Background()); n == nil {
		t.Error("expected notification for second distinct fingerprint")
	}
}

func TestCheckSwallowsFetchFailure(t *testing.T) {
	srv := &entryServer{}
	srv.set(page("assets/a.js"))
	p := newTestPoller(t, srv)
	p.Seed(context.Background())

	// Point at a closed server; the check must fail silently.
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()
	broken := NewPoller(dead.URL, DefaultInterval)
	if n := broken.Check(context.Background()); n != nil {
		t.Errorf("notification despite transport failure: %+v", n)
	}
}

func TestCheckSkipsWhenNoAssetsInMarkup(t *testing.T) {
	srv := &entryServer{}
	srv.set(page("assets/a.js"))
	p := newTestPoller(t, srv)
	p.Seed(context.Background())

	srv.set("<html><body>deploy in progress</body></html>")
	if n := p.Check(context.Background()); n != nil {
		t.Errorf("notification from assetless markup: %+v", n)
	}

	// Recovered markup with the original build: still no notification.
	srv.set(page("assets/a.js"))
	if n := p.Check(context.Background()); n != nil {
		t.Errorf("notification after recovery to baseline: %+v", n)
	}
}

func TestCheckAdoptsFirstObservationWhenUnseeded(t *testing.T) {
	srv := &entryServer{}
	srv.set(page("assets/a.js"))
	p := newTestPoller(t, srv)

	if n := p.Check(context.Background()); n != nil {
		t.Fatalf("first observation must seed, not notify: %+v", n)
	}
	if got := p.Initial(); got != "assets/a.js" {
		t.Errorf("adopted baseline = %q", got)
	}

	srv.set(page("assets/b.js"))
	if n := p.Check(context.Background()); n == nil {
		t.Error("expected notification after adopted baseline changed")
	}
}

func TestCheckOverlapGuard(t *testing.T) {
	srv := &entryServer{}
	srv.set(page("assets/a.js"))
	p := newTestPoller(t, srv)
	p.Seed(context.Background())

	p.mu.Lock()
	p.inFlight = true
	p.mu.Unlock()

	before := srv.requests.Load()
	if n := p.Check(context.Background()); n != nil {
		t.Errorf("overlapping check returned notification: %+v", n)
	}
	if srv.requests.Load() != before {
		t.Error("overlapping check performed a fetch")
	}

	p.mu.Lock()
	p.inFlight = false
	p.mu.Unlock()
	if n := p.Check(context.Background()); n != nil {
		t.Errorf("steady-state check after guard release: %+v", n)
	}
}

func TestCheckEdgeRateLimited(t *testing.T) {
	srv := &entryServer{}
	srv.set(page("assets/a.js"))
	p := newTestPoller(t, srv)
	p.Seed(context.Background())

	before := srv.requests.Load()
	for i := 0; i < 5; i++ {
		p.CheckEdge(context.Background())
	}
	if got := srv.requests.Load() - before; got != 1 {
		t.Errorf("burst of 5 edge triggers caused %d fetches, want 1", got)
	}
}

func TestFetchDefeatsCaches(t *testing.T) {
	var gotCacheControl, gotPragma string
	srv := &entryServer{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.mu.Lock()
		srv.lastURL = r.URL.String()
		srv.mu.Unlock()
		gotCacheControl = r.Header.Get("Cache-Control")
		gotPragma = r.Header.Get("Pragma")
		w.Write([]byte(page("assets/a.js")))
	}))
	defer ts.Close()

	p := NewPoller(ts.URL, DefaultInterval)
	p.SetHTTPClient(ts.Client())
	p.Seed(context.Background())

	srv.mu.Lock()
	u := srv.lastURL
	srv.mu.Unlock()
	if !strings.HasPrefix(u, "/index.html?t=") {
		t.Errorf("entry URL = %q, want cache-busting /index.html?t=...", u)
	}
	if !strings.Contains(gotCacheControl, "no-cache") {
		t.Errorf("Cache-Control = %q", gotCacheControl)
	}
	if gotPragma != "no-cache" {
		t.Errorf("Pragma = %q", gotPragma)
	}
}

type recordingReloader struct {
	called bool
	when   time.Time
}

func (r *recordingReloader) Reload() error {
	r.called = true
	r.when = time.Now()
	return nil
}

func TestApplyClearsCacheThenReloads(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stale.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := &recordingReloader{}
	start := time.Now()
	if err := Apply(context.Background(), []string{dir}, r); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !r.called {
		t.Fatal("reload was not invoked")
	}
	if elapsed := r.when.Sub(start); elapsed < ApplyDelay {
		t.Errorf("reload fired after %v, want at least %v", elapsed, ApplyDelay)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache dir removed entirely: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestApplyReloadsEvenWhenCacheClearFails(t *testing.T) {
	r := &recordingReloader{}
	// A file path is not a directory; clearing it fails.
	f := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(f, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // skip the cosmetic delay
	if err := Apply(ctx, []string{f, ""}, r); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !r.called {
		t.Error("reload must run regardless of cache clear outcome")
	}
}
