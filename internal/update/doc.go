// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package update detects newly deployed admin console builds and applies
// them on operator request.
//
// Detection works by fingerprinting the served entry page: the hashed
// asset references (scripts then styles, joined with "|") identify a
// build. The fingerprint observed at startup is the fixed baseline; any
// later poll that produces a different fingerprint means a new build is
// deployed. Polls run on a fixed interval plus edge triggers (terminal
// focus regained), rate-limited so trigger bursts cost one fetch.
//
// RELIABILITY: detection is advisory. Every poll failure is swallowed and
// logged, overlapping polls are skipped rather than queued, and applying
// an update is a best-effort cache clear followed by a process reload
// with no verification of the outcome.
package update
