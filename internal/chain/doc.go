// Package chain models a batch of jobs and the dependency edges between them
// as an index-ordered directed acyclic graph.
//
// Every predecessor of a node must have a strictly smaller index, so slice
// order is itself a valid topological order: submitting nodes 0..n-1 in
// sequence guarantees each node's predecessors already carry scheduler job
// ids. Build enforces that property up front, which also rules out cycles and
// self-references without a graph traversal — nothing downstream needs a
// general topological sort.
package chain
