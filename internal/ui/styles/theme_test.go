// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestStatusBadgeSemantics(t *testing.T) {
	if StatusBadge("approved").GetBackground() != Emerald {
		t.Error("approved should be emerald")
	}
	if StatusBadge("rejected").GetBackground() != Rose {
		t.Error("rejected should be rose")
	}
	if StatusBadge("pending").GetBackground() != Amber {
		t.Error("pending should be amber")
	}
	if StatusBadge("something-else").GetBackground() != Sky {
		t.Error("unknown statuses should use the neutral badge")
	}
}

func TestAdaptiveColorsHaveBothVariants(t *testing.T) {
	colors := map[string]struct{ light, dark string }{
		"Teal":        {Teal.Light, Teal.Dark},
		"Rose":        {Rose.Light, Rose.Dark},
		"Amber":       {Amber.Light, Amber.Dark},
		"TextPrimary": {TextPrimary.Light, TextPrimary.Dark},
	}
	for name, c := range colors {
		if c.light == "" || c.dark == "" {
			t.Errorf("%s is missing a light or dark variant", name)
		}
		if c.light == c.dark {
			t.Errorf("%s has identical light and dark variants", name)
		}
	}
}
