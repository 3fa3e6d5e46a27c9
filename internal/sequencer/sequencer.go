package sequencer

import (
	"context"
	"strings"

	"github.com/vk/slurmchain/internal/chain"
	"github.com/vk/slurmchain/internal/ctxlog"
)

// Submitter is the boundary to the external batch scheduler. Submit blocks
// until the scheduler has accepted or rejected the job and returns the
// scheduler-assigned job id. dependency is the ready-made dependency
// expression for the node, empty when none applies; implementations pass it
// through verbatim.
type Submitter interface {
	Submit(ctx context.Context, node *chain.Node, dependency string) (string, error)
}

// Sequencer submits a job chain one node at a time in index order.
type Sequencer struct {
	fixed string
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithFixedDependency makes every node carry the given dependency expression
// verbatim, instead of deriving expressions from predecessor job ids. Used
// when the caller supplies an externally known expression (for example
// "afterok:555" for a job already on the scheduler).
func WithFixedDependency(expr string) Option {
	return func(s *Sequencer) {
		s.fixed = expr
	}
}

// New returns a Sequencer with the given options applied.
func New(opts ...Option) *Sequencer {
	s := &Sequencer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run submits every node in ascending index order and returns the assigned
// job ids in that same order. On the first submission failure it halts
// immediately: the error wraps the scheduler failure in a *SubmissionError,
// nodes submitted so far keep their ids, and no further node is attempted.
func (s *Sequencer) Run(ctx context.Context, nodes []*chain.Node, sub Submitter) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	ids := make([]string, 0, len(nodes))
	for _, node := range nodes {
		expr := s.Expression(nodes, node)
		logger.Debug("Submitting job.", "index", node.Index, "dependency", expr)

		id, err := sub.Submit(ctx, node, expr)
		if err != nil {
			logger.Error("Submission failed, halting.", "index", node.Index, "error", err)
			return nil, &SubmissionError{Index: node.Index, Err: err}
		}

		node.MarkSubmitted(id)
		ids = append(ids, id)
		logger.Info("Job submitted.", "index", node.Index, "job_id", id, "dependency", expr)
	}

	return ids, nil
}

// Expression computes the dependency expression for node n within its graph:
// the configured fixed expression when one is set, the empty string when the
// predecessor set is empty, and otherwise "afterok:" followed by the
// comma-joined predecessor job ids in ascending index order.
func (s *Sequencer) Expression(nodes []*chain.Node, n *chain.Node) string {
	if s.fixed != "" {
		return s.fixed
	}
	if len(n.Predecessors) == 0 {
		return ""
	}

	ids := make([]string, 0, len(n.Predecessors))
	for _, c := range n.Predecessors {
		ids = append(ids, nodes[c].MustJobID())
	}
	return "afterok:" + strings.Join(ids, ",")
}
