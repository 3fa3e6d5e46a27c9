package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payloads(n int) []Payload {
	ps := make([]Payload, n)
	for i := range ps {
		ps[i] = CommandPayload([]string{"echo", "job"})
	}
	return ps
}

func TestBuild(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("per-job dependency graph", func(t *testing.T) {
		t.Parallel()
		deps := []DepsLine{{None: true}, {Indices: []int{0}}, {Indices: []int{0, 1}}}

		nodes, err := Build(ctx, payloads(3), deps)
		require.NoError(t, err)
		require.Len(t, nodes, 3)

		assert.Empty(t, nodes[0].Predecessors)
		assert.Equal(t, []int{0}, nodes[1].Predecessors)
		assert.Equal(t, []int{0, 1}, nodes[2].Predecessors)
		for i, n := range nodes {
			assert.Equal(t, i, n.Index)
			_, submitted := n.JobID()
			assert.False(t, submitted)
		}
	})

	t.Run("nil dependency spec yields an unconnected graph", func(t *testing.T) {
		t.Parallel()
		nodes, err := Build(ctx, payloads(2), nil)
		require.NoError(t, err)
		for _, n := range nodes {
			assert.Empty(t, n.Predecessors)
		}
	})

	t.Run("every predecessor index is smaller than its owner", func(t *testing.T) {
		t.Parallel()
		deps := []DepsLine{{None: true}, {Indices: []int{0}}, {Indices: []int{0, 1}}, {Indices: []int{2}}}
		nodes, err := Build(ctx, payloads(4), deps)
		require.NoError(t, err)
		for _, n := range nodes {
			for _, c := range n.Predecessors {
				assert.Less(t, c, n.Index)
			}
		}
	})

	t.Run("length mismatch is rejected before anything else", func(t *testing.T) {
		t.Parallel()
		deps := []DepsLine{{None: true}, {Indices: []int{0}}}

		_, err := Build(ctx, payloads(3), deps)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, -1, verr.Line)
		assert.Contains(t, verr.Error(), "2 lines but 3 jobs")
	})

	t.Run("first job with dependencies is rejected", func(t *testing.T) {
		t.Parallel()
		deps := []DepsLine{{Indices: []int{0}}, {None: true}}

		_, err := Build(ctx, payloads(2), deps)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 0, verr.Line)
	})

	t.Run("self reference is rejected", func(t *testing.T) {
		t.Parallel()
		deps := []DepsLine{{None: true}, {Indices: []int{1}}}

		_, err := Build(ctx, payloads(2), deps)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 1, verr.Line)
		assert.Contains(t, verr.Error(), "job 1")
	})

	t.Run("forward reference is rejected", func(t *testing.T) {
		t.Parallel()
		deps := []DepsLine{{None: true}, {Indices: []int{2}}, {None: true}}

		_, err := Build(ctx, payloads(3), deps)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 1, verr.Line)
	})

	t.Run("empty job list is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Build(ctx, nil, nil)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("empty payload is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Build(ctx, []Payload{{}}, nil)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 0, verr.Line)
	})
}

func TestNodeStateTransition(t *testing.T) {
	t.Parallel()

	t.Run("pending to submitted, exactly once", func(t *testing.T) {
		t.Parallel()
		n := &Node{Index: 3}

		_, submitted := n.JobID()
		require.False(t, submitted)

		n.MarkSubmitted("12345")
		id, submitted := n.JobID()
		require.True(t, submitted)
		assert.Equal(t, "12345", id)
		assert.Equal(t, "12345", n.MustJobID())

		assert.Panics(t, func() { n.MarkSubmitted("99999") })
	})

	t.Run("empty job id panics", func(t *testing.T) {
		t.Parallel()
		n := &Node{}
		assert.Panics(t, func() { n.MarkSubmitted("") })
	})

	t.Run("reading a pending node's id panics", func(t *testing.T) {
		t.Parallel()
		n := &Node{Index: 1}
		assert.Panics(t, func() { n.MustJobID() })
	})
}
