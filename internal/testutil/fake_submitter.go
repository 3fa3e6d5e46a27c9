package testutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/slurmchain/internal/chain"
)

// SubmitCall records one submission the fake scheduler received.
type SubmitCall struct {
	Index      int
	Payload    chain.Payload
	Dependency string
}

// FakeSubmitter stands in for the sbatch-backed client. It hands out the
// scripted ids in call order and can be told to fail at a given node index.
type FakeSubmitter struct {
	IDs    []string
	FailAt int // node index to fail at; -1 means never

	Calls []SubmitCall
}

// NewFakeSubmitter returns a FakeSubmitter that never fails and yields the
// given job ids in order.
func NewFakeSubmitter(ids ...string) *FakeSubmitter {
	return &FakeSubmitter{IDs: ids, FailAt: -1}
}

// Submit implements the sequencer's Submitter boundary.
func (f *FakeSubmitter) Submit(_ context.Context, node *chain.Node, dependency string) (string, error) {
	f.Calls = append(f.Calls, SubmitCall{
		Index:      node.Index,
		Payload:    node.Payload,
		Dependency: dependency,
	})
	if node.Index == f.FailAt {
		return "", errors.New("sbatch: error: Batch job submission failed")
	}
	if len(f.Calls) > len(f.IDs) {
		return "", fmt.Errorf("fake submitter has no id left for call %d", len(f.Calls))
	}
	return f.IDs[len(f.Calls)-1], nil
}

// Dependencies returns the dependency expression of every received call in
// order, for compact assertions.
func (f *FakeSubmitter) Dependencies() []string {
	deps := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		deps[i] = c.Dependency
	}
	return deps
}
