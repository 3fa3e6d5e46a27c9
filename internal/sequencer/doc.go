// Package sequencer walks a built job chain in ascending index order and
// submits each node to the scheduler, threading the job ids returned for
// earlier nodes into the dependency expressions of later ones.
//
// The ordering is the whole contract: because chain.Build only admits edges
// that point at lower indices, index order is a topological order, and a
// node is never submitted before all of its predecessors carry job ids.
// Submission is strictly sequential — the scheduler call for node i must
// return an id before node i+1 can even be formatted — and the first failure
// halts the run. Jobs already handed to the scheduler stay submitted; no
// compensating cancellation is issued.
package sequencer
