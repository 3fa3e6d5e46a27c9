package chain

import (
	"context"
	"fmt"

	"github.com/vk/slurmchain/internal/ctxlog"
)

// Build constructs the validated dependency graph for one run. deps may be
// nil, in which case no node declares predecessors (a fixed dependency
// expression, if any, is applied later at the sequencer level and is not part
// of the graph).
//
// Build is pure construction: it performs no submissions and has no side
// effects, so a ValidationError always fires before the scheduler has been
// contacted.
func Build(ctx context.Context, payloads []Payload, deps []DepsLine) ([]*Node, error) {
	logger := ctxlog.FromContext(ctx)

	if len(payloads) == 0 {
		return nil, &ValidationError{Line: -1, Reason: "no jobs to submit"}
	}
	if deps != nil && len(deps) != len(payloads) {
		return nil, &ValidationError{
			Line:   -1,
			Reason: fmt.Sprintf("dependency file has %d lines but %d jobs were given", len(deps), len(payloads)),
		}
	}

	nodes := make([]*Node, len(payloads))
	for i, payload := range payloads {
		if len(payload.Command) == 0 && len(payload.Lines) == 0 {
			return nil, &ValidationError{Line: i, Reason: "empty payload"}
		}

		var preds []int
		if deps != nil && !deps[i].None {
			if i == 0 && len(deps[i].Indices) > 0 {
				return nil, &ValidationError{Line: 0, Reason: "the first job cannot declare dependencies"}
			}
			for _, c := range deps[i].Indices {
				// c < i rejects self-references, forward references and
				// therefore cycles in a single check: edges may only point
				// at lower indices.
				if c >= i {
					return nil, &ValidationError{
						Line:   i,
						Reason: fmt.Sprintf("dependency on job %d does not reference an earlier job", c),
					}
				}
			}
			preds = deps[i].Indices
		}

		nodes[i] = &Node{Index: i, Payload: payload, Predecessors: preds}
	}

	logger.Debug("Dependency graph built.", "jobs", len(nodes), "per_job_deps", deps != nil)
	return nodes, nil
}
