package slurm

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/vk/slurmchain/internal/chain"
	"github.com/vk/slurmchain/internal/ctxlog"
)

// jobIDPattern matches the line sbatch prints on a successful submission.
var jobIDPattern = regexp.MustCompile(`Submitted batch job (\d+)`)

// Client submits jobs through the local sbatch binary. For each node it
// writes the wrapper script into the run directory and invokes
// "sbatch [--dependency=EXPR] <script>", blocking until the scheduler
// answers.
type Client struct {
	runDir string
	opts   Options
	sbatch string
}

// NewClient returns a Client writing wrapper scripts into runDir and
// submitting them with the given resolved option set.
func NewClient(runDir string, opts Options) *Client {
	return &Client{runDir: runDir, opts: opts, sbatch: "sbatch"}
}

// Submit implements the sequencer's Submitter boundary. An empty dependency
// expression means no --dependency flag is passed at all.
func (c *Client) Submit(ctx context.Context, node *chain.Node, dependency string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	scriptPath, err := writeScript(c.runDir, node, jobOptions(c.opts, node))
	if err != nil {
		return "", err
	}

	args := submitArgs(dependency, scriptPath)
	logger.Debug("Invoking sbatch.", "args", args)
	out, err := exec.CommandContext(ctx, c.sbatch, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("sbatch failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	return parseJobID(string(out))
}

// submitArgs builds the sbatch argument list. An empty dependency expression
// yields no --dependency flag at all.
func submitArgs(dependency, scriptPath string) []string {
	var args []string
	if dependency != "" {
		args = append(args, "--dependency="+dependency)
	}
	return append(args, scriptPath)
}

// parseJobID extracts the scheduler-assigned job id from sbatch output.
func parseJobID(out string) (string, error) {
	m := jobIDPattern.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("sbatch output contained no job id: %q", strings.TrimSpace(out))
	}
	return m[1], nil
}
