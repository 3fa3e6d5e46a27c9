// Package cluster holds the static cluster-description table: per-cluster
// resource defaults (partition, node geometry, time limits, accounting)
// loaded from HCL files. A built-in table ships embedded in the binary and
// site files overlay it, so the tool works out of the box but admins can
// describe their own machines.
//
// Defaults only ever fill holes: anything the user set explicitly on the
// command line wins over the table.
package cluster
