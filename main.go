// motour-admin - terminal admin console for the Motour travel platform.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/motourapp/admin-tui/internal/api"
	"github.com/motourapp/admin-tui/internal/audit"
	"github.com/motourapp/admin-tui/internal/cli"
	"github.com/motourapp/admin-tui/internal/config"
	"github.com/motourapp/admin-tui/internal/secrets"
	"github.com/motourapp/admin-tui/internal/session"
	"github.com/motourapp/admin-tui/internal/ui"
	"github.com/motourapp/admin-tui/internal/update"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

// app bundles the wired collaborators shared by the TUI and the one-shot
// commands.
type app struct {
	cfg     *config.Config
	cfgPath string
	client  *api.Client
	store   *session.Store
	trail   *audit.Trail // nil when auditing is disabled
	poller  *update.Poller
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion(args.JSON)
		return
	case cli.CmdHelp:
		cli.PrintUsage()
		return
	}

	a, err := wire(args)
	if err != nil {
		fatal(err)
	}
	defer a.close()

	ctx := context.Background()

	switch cmd {
	case cli.CmdTUI:
		err = runTUI(a)
	case cli.CmdLogin:
		err = cli.HandleLogin(ctx, a.store, args)
		if err == nil {
			a.record(ctx, "login", "")
		}
	case cli.CmdLogout:
		a.record(ctx, "logout", "")
		err = cli.HandleLogout(ctx, a.store, args)
	case cli.CmdStatus:
		err = cli.HandleStatus(ctx, a.cfg, a.store, a.client, args)
	case cli.CmdConfig:
		err = cli.HandleConfig(a.cfg, a.cfgPath, args)
	case cli.CmdAudit:
		if a.trail == nil {
			err = fmt.Errorf("local audit trail is disabled (audit.enabled = false)")
		} else {
			err = cli.HandleAudit(ctx, a.trail, args)
		}
	case cli.CmdCheckUpdate:
		err = cli.HandleCheckUpdate(ctx, a.poller, args)
	}
	if err != nil {
		fatal(err)
	}
}

// wire loads configuration and builds the collaborator graph.
func wire(args cli.Args) (*app, error) {
	if err := config.EnsureConfigDir(); err != nil {
		return nil, err
	}

	var (
		cfg     *config.Config
		cfgPath string
		err     error
	)
	if args.Config != "" {
		cfgPath = args.Config
		cfg, err = config.LoadFromPath(cfgPath)
	} else {
		cfgPath, _ = config.ConfigPathTOML()
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, api.WithTimeout(cfg.Timeout()))

	credPath, err := config.CredentialsPath()
	if err != nil {
		return nil, err
	}
	sealer := secrets.NewSealer(filepath.Join(filepath.Dir(credPath), "master.key"))

	store := session.NewStore(credPath, sealer, client)
	store.SetTOTPSecret(cfg.Session.TOTPSecret)
	store.Hydrate()
	client.SetCredentials(store)

	a := &app{
		cfg:     cfg,
		cfgPath: cfgPath,
		client:  client,
		store:   store,
		poller:  update.NewPoller(cfg.API.WebURL, cfg.UpdateInterval()),
	}

	if cfg.Audit.Enabled {
		dbPath, err := cfg.AuditDBPath()
		if err == nil {
			a.trail, err = audit.Open(dbPath)
		}
		if err != nil {
			// The console must work without its local trail.
			log.Printf("audit trail unavailable: %v", err)
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.trail != nil {
		a.trail.Close()
	}
}

// record writes a CLI action to the local trail, best-effort.
func (a *app) record(ctx context.Context, action, detail string) {
	if a.trail == nil {
		return
	}
	actor := ""
	if id := a.store.Identity(); id != nil {
		actor = id.Email
	}
	entry := audit.Entry{Actor: actor, Action: action, Detail: detail}
	if err := a.trail.Log(ctx, entry); err != nil {
		log.Printf("audit log failed: %v", err)
	}
}

func runTUI(a *app) error {
	// TUI output owns the terminal; route log output to a file.
	if dir, err := config.ConfigDir(); err == nil {
		if f, err := os.OpenFile(filepath.Join(dir, "motour-admin.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
			log.SetOutput(f)
			defer f.Close()
		}
	}

	idle := session.NewIdle(a.cfg.IdleTimeout(), time.Duration(a.cfg.Session.WarningSecs)*time.Second)

	var poller *update.Poller
	if a.cfg.Update.Enabled {
		poller = a.poller
		seedCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		poller.Seed(seedCtx)
		cancel()
	}

	cacheDir := ""
	if dir, err := config.ConfigDir(); err == nil {
		cacheDir = filepath.Join(dir, "cache")
	}

	root := ui.New(ui.Options{
		Store:    a.store,
		Client:   a.client,
		Poller:   poller,
		Trail:    a.trail,
		Idle:     idle,
		Reloader: update.ProcessReloader{},
		CacheDir: cacheDir,
		PageSize: a.cfg.UI.PageSize,
	})
	root.SetServer(serverHost(a.cfg.API.BaseURL))

	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithReportFocus())

	// A rejected token anywhere in the client clears the session and
	// kicks the UI back to the login screen.
	a.client.SetUnauthorizedHook(func() {
		a.store.Clear()
		program.Send(ui.UnauthorizedMsg{})
	})
	defer a.client.SetUnauthorizedHook(nil)

	// Reload live-tunable settings when the config file changes on disk.
	watcher, err := config.NewWatcher(a.cfgPath, func(next *config.Config) {
		idle.SetTimeout(next.IdleTimeout())
		log.Printf("config reloaded from %s", a.cfgPath)
	})
	if err == nil {
		if werr := watcher.Watch(); werr == nil {
			defer watcher.Close()
		}
	}

	_, err = program.Run()
	return err
}

// serverHost extracts the display host from the API base URL.
func serverHost(base string) string {
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		return u.Host
	}
	return base
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
