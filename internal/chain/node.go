package chain

import "fmt"

// Payload is the unit of work a node submits: either a single command in
// argv form or the verbatim body lines of a script. Exactly one of the two
// fields is set.
type Payload struct {
	Command []string
	Lines   []string
}

// CommandPayload wraps an argument vector as a job payload.
func CommandPayload(argv []string) Payload {
	return Payload{Command: argv}
}

// ScriptPayload wraps verbatim script body lines as a job payload.
func ScriptPayload(lines []string) Payload {
	return Payload{Lines: lines}
}

// IsCommand reports whether the payload is an argument vector rather than a
// script body.
func (p Payload) IsCommand() bool {
	return p.Command != nil
}

// Node is one entry in the dependency graph. Its index doubles as its
// identity: dependency references are indices of earlier nodes.
//
// A node is in one of two states: pending (no job id) or submitted (job id
// assigned, immutable). The sequencer only ever moves a node from pending to
// submitted, never back.
type Node struct {
	// Index is the node's position in submission order: unique, dense,
	// starting at 0.
	Index int
	// Payload is the unit of work to submit.
	Payload Payload
	// Predecessors holds the indices of nodes this node depends on, in
	// ascending order. Every element is strictly smaller than Index.
	Predecessors []int

	jobID     string
	submitted bool
}

// JobID returns the scheduler-assigned job id and whether the node has been
// submitted yet.
func (n *Node) JobID() (string, bool) {
	return n.jobID, n.submitted
}

// MarkSubmitted records the scheduler-assigned job id, transitioning the node
// from pending to submitted. Calling it twice, or with an empty id, is a
// programmer error and panics.
func (n *Node) MarkSubmitted(id string) {
	if id == "" {
		panic(fmt.Sprintf("chain: empty job id for job %d", n.Index))
	}
	if n.submitted {
		panic(fmt.Sprintf("chain: job %d already submitted as %s", n.Index, n.jobID))
	}
	n.jobID = id
	n.submitted = true
}

// MustJobID returns the job id of a submitted node. Reading the id of a
// pending node means submission order was violated, which the sequencer's
// ascending-index traversal makes impossible; hitting it is a programmer
// error and panics.
func (n *Node) MustJobID() string {
	if !n.submitted {
		panic(fmt.Sprintf("chain: job %d has no job id yet", n.Index))
	}
	return n.jobID
}
