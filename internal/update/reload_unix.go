// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows
// +build !windows

package update

import (
	"os"
	"syscall"
)

// ProcessReloader restarts the running binary in place. On Unix this
// replaces the current process image via exec(2), preserving the PID so
// supervisors and terminal sessions keep their handle on us.
type ProcessReloader struct{}

// Reload re-executes the current binary with the original arguments and
// environment. On success this call never returns.
func (ProcessReloader) Reload() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return syscall.Exec(exe, os.Args, os.Environ())
}
