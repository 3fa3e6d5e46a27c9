package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/slurmchain/internal/app"
	"github.com/vk/slurmchain/internal/slurm"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("slurmchain", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Slurmchain - submits dependency-chained jobs to a SLURM batch scheduler.

Usage:
  slurmchain [options] [COMMAND [ARG...]]

Arguments:
  COMMAND [ARG...]
    A single command to submit as one job. Mutually exclusive with
    --script and --batch.

Options:
`)
		flagSet.PrintDefaults()
	}

	scriptFlag := flagSet.String("script", "", "Submit one job running the given script file.")
	batchFlag := flagSet.String("batch", "", "Submit one job per line of the given batch file.")
	depsFileFlag := flagSet.String("deps-file", "", "Per-job dependency file for --batch: one line per job, '-' or indices of earlier jobs.")
	dependencyFlag := flagSet.String("dependency", "", "Fixed scheduler dependency expression applied to every job verbatim.")
	clusterFlag := flagSet.String("cluster", "local", "Cluster-table entry supplying resource defaults.")
	clustersFileFlag := flagSet.String("clusters-file", "", "Site cluster description file or directory of .hcl files.")
	jobNameFlag := flagSet.String("job-name", "", "Job name. Defaults to job-<index>.")
	partitionFlag := flagSet.String("partition", "", "Partition to submit to.")
	nodesFlag := flagSet.Int("nodes", 0, "Number of nodes per job.")
	ntasksFlag := flagSet.Int("ntasks-per-node", 0, "Tasks per node.")
	cpusFlag := flagSet.Int("cpus-per-task", 0, "CPUs per task.")
	gpusFlag := flagSet.Int("gpus-per-node", 0, "GPUs per node.")
	memFlag := flagSet.String("mem", "", "Memory per node, e.g. '64G'.")
	timeFlag := flagSet.String("time", "", "Walltime limit, e.g. '12:00:00'.")
	accountFlag := flagSet.String("account", "", "Account to charge the job to.")
	constraintFlag := flagSet.String("constraint", "", "Node feature constraint.")
	outputFlag := flagSet.String("output", "", "Job output file pattern.")
	runDirFlag := flagSet.String("run-dir", ".slurmchain", "Directory the generated wrapper scripts are written under.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Write wrapper scripts and fabricate job ids without invoking sbatch.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	extra := make(map[string]string)
	flagSet.Func("o", "Extra sbatch option as key=value. Repeatable.", func(s string) error {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return fmt.Errorf("expected key=value, got %q", s)
		}
		extra[k] = v
		return nil
	})

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	command := flagSet.Args()
	if len(command) == 0 && *scriptFlag == "" && *batchFlag == "" {
		slog.Debug("No job input provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	overrides := slurm.Options{
		JobName:       *jobNameFlag,
		Partition:     *partitionFlag,
		Nodes:         *nodesFlag,
		NtasksPerNode: *ntasksFlag,
		CPUsPerTask:   *cpusFlag,
		GPUsPerNode:   *gpusFlag,
		Mem:           *memFlag,
		Time:          *timeFlag,
		Account:       *accountFlag,
		Constraint:    *constraintFlag,
		Output:        *outputFlag,
	}
	if len(extra) > 0 {
		overrides.Extra = extra
	}

	config, err := app.NewConfig(app.Config{
		Command:         command,
		ScriptPath:      *scriptFlag,
		BatchPath:       *batchFlag,
		DepsPath:        *depsFileFlag,
		FixedDependency: *dependencyFlag,
		Cluster:         *clusterFlag,
		ClustersPath:    *clustersFileFlag,
		Overrides:       overrides,
		RunDir:          *runDirFlag,
		DryRun:          *dryRunFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
