package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vk/slurmchain/internal/cluster"
	"github.com/vk/slurmchain/internal/ctxlog"
	"github.com/vk/slurmchain/internal/sequencer"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	runID     string
	table     *cluster.Table
	submitter sequencer.Submitter // nil outside tests; Run picks the real one
}

// Option customizes an App, primarily for tests.
type Option func(*App)

// WithSubmitter replaces the scheduler-backed submitter with the given one.
func WithSubmitter(sub sequencer.Submitter) Option {
	return func(a *App) {
		a.submitter = sub
	}
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and cluster
// table.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	table, err := cluster.NewTable(ctx, cfg.ClustersPath)
	if err != nil {
		// A failure to load the cluster table is a fatal startup error.
		panic(fmt.Errorf("failed to load cluster table: %w", err))
	}
	logger.Debug("Cluster table loaded.", "clusters", table.Names())

	app := &App{
		outW:   outW,
		logger: logger,
		runID:  uuid.NewString(),
		table:  table,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// RunID returns the run's unique identifier. This is primarily for testing.
func (a *App) RunID() string {
	return a.runID
}
