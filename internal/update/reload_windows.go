// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows
// +build windows

package update

import (
	"os"
	"os/exec"
)

// ProcessReloader restarts the running binary in place. Windows has no
// exec(2) equivalent, so we spawn a fresh copy inheriting our stdio and
// then exit.
type ProcessReloader struct{}

// Reload launches a new instance of the current binary and terminates
// this one. On success this call never returns.
func (ProcessReloader) Reload() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return err
	}
	os.Exit(0)
	return nil
}
