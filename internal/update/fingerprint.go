// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package update

import (
	"regexp"
	"strings"
)

// =============================================================================
// ASSET FINGERPRINTING
// =============================================================================

// The deployed admin bundle references its hashed build assets from the
// entry page markup. The ordered list of those references identifies the
// build: same markup, same fingerprint; any renamed asset, different
// fingerprint. There is no contract with the build process beyond these
// path patterns appearing somewhere in the markup text.
var (
	scriptRe    = regexp.MustCompile(`assets/[^"']+\.js`)
	styleRe     = regexp.MustCompile(`assets/[^"']+\.css`)
	buildTimeRe = regexp.MustCompile(`<meta\s+name="build-time"\s+content="([^"]*)"`)
)

// ExtractAssets returns the script asset references followed by the style
// asset references, each in document order. Returns nil when the markup
// references no build assets.
func ExtractAssets(markup string) []string {
	scripts := scriptRe.FindAllString(markup, -1)
	styles := styleRe.FindAllString(markup, -1)
	if len(scripts) == 0 && len(styles) == 0 {
		return nil
	}
	assets := make([]string, 0, len(scripts)+len(styles))
	assets = append(assets, scripts...)
	assets = append(assets, styles...)
	return assets
}

// Fingerprint derives the build fingerprint from entry-page markup: the
// extracted asset references joined with "|". Order-sensitive. Returns ""
// when no assets are referenced.
func Fingerprint(markup string) string {
	return strings.Join(ExtractAssets(markup), "|")
}

// BuildStamp returns the build-time meta tag content, or "". Used only as
// a fallback fingerprint seed when the markup carries no asset references.
func BuildStamp(markup string) string {
	m := buildTimeRe.FindStringSubmatch(markup)
	if m == nil {
		return ""
	}
	return m[1]
}
