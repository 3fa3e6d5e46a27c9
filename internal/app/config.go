package app

import (
	"errors"

	"github.com/vk/slurmchain/internal/slurm"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Job input. Exactly one of Command, ScriptPath and BatchPath is set.
	Command    []string // inline command argv
	ScriptPath string   // single job from a script file
	BatchPath  string   // one job per batch-file line

	// Dependency input. DepsPath gives per-job predecessor annotations and
	// requires BatchPath; FixedDependency is an opaque scheduler expression
	// applied to every job. The two are mutually exclusive.
	DepsPath        string
	FixedDependency string

	Cluster      string // cluster-table entry supplying resource defaults
	ClustersPath string // site cluster file or directory, optional

	// Overrides are the resource options given on the command line; they win
	// over the cluster table's defaults.
	Overrides slurm.Options

	RunDir string // wrapper scripts land under RunDir/<run id>
	DryRun bool

	LogFormat string
	LogLevel  string
}

// ConfigConflictError reports mutually exclusive inputs supplied together.
// It is a boundary-validation failure: nothing has been read or submitted
// when it fires.
type ConfigConflictError struct {
	Reason string
}

func (e *ConfigConflictError) Error() string {
	return "conflicting options: " + e.Reason
}

// NewConfig validates cross-field constraints and fills defaults. Mutually
// exclusive inputs yield a *ConfigConflictError.
func NewConfig(cfg Config) (*Config, error) {
	inputs := 0
	for _, set := range []bool{len(cfg.Command) > 0, cfg.ScriptPath != "", cfg.BatchPath != ""} {
		if set {
			inputs++
		}
	}
	if inputs == 0 {
		return nil, errors.New("no jobs given: pass a command, --script or --batch")
	}
	if inputs > 1 {
		return nil, &ConfigConflictError{Reason: "a command, --script and --batch are mutually exclusive; give exactly one"}
	}

	if cfg.DepsPath != "" && cfg.BatchPath == "" {
		return nil, &ConfigConflictError{Reason: "--deps-file only applies to --batch input"}
	}
	if cfg.DepsPath != "" && cfg.FixedDependency != "" {
		return nil, &ConfigConflictError{Reason: "--deps-file and --dependency are mutually exclusive"}
	}

	if cfg.Cluster == "" {
		cfg.Cluster = "local"
	}
	if cfg.RunDir == "" {
		cfg.RunDir = ".slurmchain"
	}

	return &cfg, nil
}
