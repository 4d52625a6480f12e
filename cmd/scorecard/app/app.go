// Package app provides the application context and dependency wiring
// for the scorecard CLI: configuration, logging, and lazy construction
// of the reconciliation client.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/sbmops/scorecard"
	"github.com/sbmops/scorecard/pkg/reconciler"
)

// App holds the CLI application's shared dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	mu     sync.Mutex
	client scorecard.Client
}

// New creates a new App with configuration loaded from all sources.
func New(version, commit, date, builtBy string) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(config)

	return &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		config:  config,
		logger:  &logger,
	}, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// VersionDetails returns the full build information.
func (a *App) VersionDetails() string {
	return fmt.Sprintf("scorecard %s (commit %s, built %s by %s)",
		a.version, a.commit, a.date, a.builtBy)
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the scorecard client, creating it lazily from the
// configuration. Roster or option errors surface on first use.
func (a *App) Client() (scorecard.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	var opts []scorecard.Option
	if a.config.RosterDir != "" {
		opts = append(opts, scorecard.WithRosterDir(a.config.RosterDir))
	}
	var recOpts []reconciler.Option
	if a.config.Threshold > 0 {
		recOpts = append(recOpts, reconciler.WithThreshold(a.config.Threshold))
	}
	if a.config.Strategy != "" {
		recOpts = append(recOpts, reconciler.WithStrategy(reconciler.StrategyType(a.config.Strategy)))
	}
	if len(recOpts) > 0 {
		opts = append(opts, scorecard.WithReconcilerOptions(recOpts...))
	}

	client, err := scorecard.New(opts...)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// ContextWithSignals returns a context cancelled on SIGINT or SIGTERM.
func ContextWithSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// ExitOnError prints the error to stderr and exits non-zero.
func ExitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
