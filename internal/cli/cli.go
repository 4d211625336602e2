// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for motour-admin.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdConfig
	CmdAudit
	CmdCheckUpdate
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON    bool // Output in JSON format
	Quiet   bool
	Verbose bool
	Config  string // Explicit config file path

	// Command-specific
	Email      string
	Subcommand string

	// Raw args remaining after the command word
	Raw []string
}

const usageText = `motour-admin - terminal admin console for the Motour platform

Manage destinations, users, ratings and pending registrations from the
terminal, against the same admin API the web console uses.

Usage:
  motour-admin                    Start the dashboard TUI (default)
  motour-admin login [email]      Authenticate and store credentials
  motour-admin logout             End the session and clear credentials
  motour-admin status, s          Show session and connectivity status
  motour-admin config [show|get|set]  Configuration
  motour-admin audit [show|prune] Local action trail
  motour-admin check-update       Check whether a newer console is deployed
  motour-admin version            Show version information
  motour-admin help               Show this help

Global flags:
  --json            Output in JSON format where supported
  --config PATH     Use an explicit config file
  -q, --quiet       Suppress informational output
  -v, --verbose     Verbose output

Examples:
  motour-admin login ops@motour.app
  motour-admin status --json
  motour-admin config set api.url https://api.motour.app/api
  motour-admin audit show --limit 20
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	args := os.Args[1:]

	remaining, parsed := parseGlobalFlags(args)

	// No arguments: start the TUI
	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		parsed.Subcommand = remaining[0]
	}

	switch cmd {
	case "tui", "dashboard":
		return CmdTUI, parsed

	case "login":
		if parsed.Subcommand != "" {
			parsed.Email = parsed.Subcommand
		}
		return CmdLogin, parsed

	case "logout":
		return CmdLogout, parsed

	case "status", "s", "whoami":
		return CmdStatus, parsed

	case "config":
		return CmdConfig, parsed

	case "audit":
		return CmdAudit, parsed

	case "check-update", "update":
		return CmdCheckUpdate, parsed

	case "version", "-V":
		return CmdVersion, parsed

	case "help", "-h", "--help":
		return CmdHelp, parsed

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags extracts flags that apply to every command and returns
// the remaining arguments untouched.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	remaining := make([]string, 0, len(args))

	i := 0
	for i < len(args) {
		switch args[i] {
		case "--json":
			parsed.JSON = true
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--config":
			if i+1 < len(args) {
				parsed.Config = args[i+1]
				i++
			}
		default:
			remaining = append(remaining, args[i])
		}
		i++
	}

	return remaining, parsed
}

// PrintUsage writes the top-level help text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information.
func PrintVersion(jsonOut bool) {
	if jsonOut {
		fmt.Printf("{\"version\":%q,\"commit\":%q,\"built\":%q,\"go\":%q,\"platform\":%q}\n",
			Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS+"/"+runtime.GOARCH)
		return
	}
	fmt.Printf("motour-admin %s\n", Version)
	fmt.Printf("  commit:   %s\n", GitCommit)
	fmt.Printf("  built:    %s\n", BuildDate)
	fmt.Printf("  go:       %s\n", runtime.Version())
	fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
