package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/slurmchain/internal/chain"
	"github.com/vk/slurmchain/internal/ctxlog"
	"github.com/vk/slurmchain/internal/joblist"
	"github.com/vk/slurmchain/internal/sequencer"
	"github.com/vk/slurmchain/internal/slurm"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	logger := a.logger.With("run_id", a.runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	payloads, deps, err := readInputs(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Debug("Job inputs read.", "jobs", len(payloads), "per_job_deps", deps != nil)

	nodes, err := chain.Build(ctx, payloads, deps)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	defaults, err := a.table.Lookup(cfg.Cluster)
	if err != nil {
		return err
	}
	opts := cfg.Overrides
	defaults.Apply(&opts)
	logger.Debug("Resource options resolved.", "cluster", cfg.Cluster, "args", opts.Args())

	runDir := filepath.Join(cfg.RunDir, a.runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	sub := a.submitter
	if sub == nil {
		if cfg.DryRun {
			sub = slurm.NewDryRun(runDir, opts)
		} else {
			sub = slurm.NewClient(runDir, opts)
		}
	}

	var seqOpts []sequencer.Option
	if cfg.FixedDependency != "" {
		seqOpts = append(seqOpts, sequencer.WithFixedDependency(cfg.FixedDependency))
	}

	logger.Info("🚀 Starting submission.", "jobs", len(nodes), "dry_run", cfg.DryRun)
	ids, err := sequencer.New(seqOpts...).Run(ctx, nodes, sub)
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	for _, id := range ids {
		fmt.Fprintln(a.outW, id)
	}
	logger.Info("🏁 All jobs submitted.", "count", len(ids))

	logger.Debug("App.Run method finished.")
	return nil
}

// readInputs turns the configured input form into job payloads, plus the
// parsed per-job dependency lines when a deps file was given.
func readInputs(ctx context.Context, cfg *Config) ([]chain.Payload, []chain.DepsLine, error) {
	logger := ctxlog.FromContext(ctx)

	var payloads []chain.Payload
	switch {
	case cfg.BatchPath != "":
		logger.Debug("Reading batch file.", "path", cfg.BatchPath)
		f, err := os.Open(cfg.BatchPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open batch file: %w", err)
		}
		defer f.Close()
		payloads, err = joblist.ReadBatch(f)
		if err != nil {
			return nil, nil, err
		}
	case cfg.ScriptPath != "":
		logger.Debug("Reading script file.", "path", cfg.ScriptPath)
		f, err := os.Open(cfg.ScriptPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open script file: %w", err)
		}
		defer f.Close()
		payload, err := joblist.ReadScript(f)
		if err != nil {
			return nil, nil, err
		}
		payloads = []chain.Payload{payload}
	default:
		payloads = []chain.Payload{chain.CommandPayload(cfg.Command)}
	}

	var deps []chain.DepsLine
	if cfg.DepsPath != "" {
		logger.Debug("Reading dependency file.", "path", cfg.DepsPath)
		f, err := os.Open(cfg.DepsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open dependency file: %w", err)
		}
		defer f.Close()
		deps, err = chain.ParseDeps(f)
		if err != nil {
			return nil, nil, err
		}
	}

	return payloads, deps, nil
}
