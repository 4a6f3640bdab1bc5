// Package cli provides the interactive terminal frontend of the vault. It
// is deliberately thin: all cryptographic and persistence rules live in the
// services; the CLI only collects input, resets session activity on every
// command and renders results.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/passvault/internal/clipboard"
	"github.com/dmitrijs2005/passvault/internal/config"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/vault"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/entries"
	"github.com/dmitrijs2005/passvault/internal/vault/services"
	"github.com/dmitrijs2005/passvault/internal/vault/session"
)

// App wires the vault services behind an interactive prompt.
type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	auth     services.AuthService
	entries  services.EntryService
	sessions *session.Manager
	gate     *clipboard.Gate
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens (or creates) the vault database and builds the application.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	dir := cfg.DataDir
	if dir == "" {
		var err error
		dir, err = vault.DefaultDataDir()
		if err != nil {
			return nil, err
		}
	} else if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	path := filepath.Join(dir, cfg.DatabaseFile)
	db, err := vault.Open(ctx, vault.DSN(path))
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "vault opened", "path", path)

	return &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		auth:     services.NewAuthService(db),
		entries:  services.NewEntryService(entries.NewSQLiteRepository(db)),
		sessions: session.NewManager(cfg.IdleThreshold),
		gate:     clipboard.NewGate(clipboard.System{}, logger),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run starts the idle watchdog and enters the command loop. It returns when
// the user quits or stdin is exhausted.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	watchdog := session.NewWatchdog(a.sessions, a.config.WatchdogTick, a.logger, func() {
		fmt.Fprintln(a.out, "\nYou were logged out due to inactivity. Press Enter to continue.")
	})
	go watchdog.Run(ctx)

	fmt.Fprintln(a.out, "Welcome to passvault (type 'help' for commands)")

	if err := a.ensureMaster(ctx); err != nil {
		return err
	}

	a.repl(ctx)
	return nil
}

// Close releases the database connection.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Current().SignedIn
}

// ensureMaster drives first-run setup when no master password exists yet.
func (a *App) ensureMaster(ctx context.Context) error {
	set, err := a.auth.IsMasterSet(ctx)
	if err != nil {
		return err
	}
	if set {
		return nil
	}
	fmt.Fprintln(a.out, "No master password set. Let's create one.")
	return a.setMaster(ctx)
}
