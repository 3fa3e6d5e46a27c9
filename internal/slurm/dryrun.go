package slurm

import (
	"context"
	"strconv"

	"github.com/vk/slurmchain/internal/chain"
	"github.com/vk/slurmchain/internal/ctxlog"
)

// DryRun writes the same wrapper scripts a real run would, but never touches
// the scheduler: instead it fabricates sequential numeric job ids. The
// sequencing logic upstream is identical either way, so a dry run exercises
// the full dependency chain and leaves the scripts behind for inspection.
type DryRun struct {
	runDir string
	opts   Options
	next   int
}

// NewDryRun returns a DryRun submitter writing scripts into runDir.
// Fabricated ids start at 1000000 so they are recognizably fake yet shaped
// like real scheduler ids.
func NewDryRun(runDir string, opts Options) *DryRun {
	return &DryRun{runDir: runDir, opts: opts, next: 1000000}
}

// Submit implements the sequencer's Submitter boundary.
func (d *DryRun) Submit(ctx context.Context, node *chain.Node, dependency string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	scriptPath, err := writeScript(d.runDir, node, jobOptions(d.opts, node))
	if err != nil {
		return "", err
	}

	id := strconv.Itoa(d.next)
	d.next++
	logger.Info("Dry run: sbatch not invoked.", "script", scriptPath, "dependency", dependency, "fabricated_id", id)
	return id, nil
}
