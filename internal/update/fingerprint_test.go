// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package update

import (
	"reflect"
	"testing"
)

const samplePage = `<!doctype html>
<html>
<head>
<meta name="build-time" content="2026-02-11T09:30:00Z">
<link rel="stylesheet" href="/assets/index-9f2c1b.css">
</head>
<body>
<script type="module" src="/assets/index-4ad81c.js"></script>
<script src='/assets/vendor-77e0aa.js'></script>
</body>
</html>`

func TestExtractAssetsScriptsBeforeStyles(t *testing.T) {
	got := ExtractAssets(samplePage)
	want := []string{
		"assets/index-4ad81c.js",
		"assets/vendor-77e0aa.js",
		"assets/index-9f2c1b.css",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractAssets = %v, want %v", got, want)
	}
}

func TestExtractAssetsNoAssets(t *testing.T) {
	if got := ExtractAssets("<html><body>maintenance</body></html>"); got != nil {
		t.Errorf("ExtractAssets = %v, want nil", got)
	}
}

func TestFingerprintJoinsWithPipe(t *testing.T) {
	got := Fingerprint(samplePage)
	want := "assets/index-4ad81c.js|assets/vendor-77e0aa.js|assets/index-9f2c1b.css"
	if got != want {
		t.Errorf("Fingerprint = %q, want %q", got, want)
	}
}

func TestFingerprintOrderSensitive(t *testing.T) {
	a := Fingerprint(`<script src="assets/a.js"></script><script src="assets/b.js"></script>`)
	b := Fingerprint(`<script src="assets/b.js"></script><script src="assets/a.js"></script>`)
	if a == b {
		t.Errorf("fingerprints with reordered assets should differ, both %q", a)
	}
}

func TestFingerprintEmptyWhenNoAssets(t *testing.T) {
	if got := Fingerprint("<html></html>"); got != "" {
		t.Errorf("Fingerprint = %q, want empty", got)
	}
}

func TestBuildStamp(t *testing.T) {
	if got := BuildStamp(samplePage); got != "2026-02-11T09:30:00Z" {
		t.Errorf("BuildStamp = %q", got)
	}
	if got := BuildStamp("<html></html>"); got != "" {
		t.Errorf("BuildStamp on bare markup = %q, want empty", got)
	}
}
