// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// update_cmd.go - One-shot deployment check.
//
// Command: check-update
// Short:   Compare the deployed console build against the one observed
//          at startup and report whether they differ.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/motourapp/admin-tui/internal/update"
)

// HandleCheckUpdate runs a single poll and reports the result.
func HandleCheckUpdate(ctx context.Context, poller *update.Poller, args Args) error {
	poller.Seed(ctx)
	if poller.Initial() == "" {
		return fmt.Errorf("could not fingerprint the deployed console")
	}

	// Seed then poll immediately: with a fresh baseline a non-nil result
	// means the deployment changed between the two fetches, which is as
	// close to "update in progress" as a single shot can observe.
	n := poller.Check(ctx)

	if args.JSON {
		out := map[string]any{"baseline": poller.Initial(), "changed": n != nil}
		if n != nil {
			out["fingerprint"] = n.Fingerprint
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	if n != nil {
		fmt.Printf("A new console build is being deployed (%s).\n", n.Fingerprint)
		return nil
	}
	fmt.Println("Console deployment is stable.")
	fmt.Printf("Current build: %s\n", poller.Initial())
	return nil
}
