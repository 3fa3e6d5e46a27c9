package cluster

import (
	"github.com/vk/slurmchain/internal/slurm"
)

// Defaults is one cluster's resource-default set, decoded from a
// `cluster "name" { ... }` HCL block. Zero values mean the cluster declares
// no default for that field.
type Defaults struct {
	Name          string            `hcl:"name,label"`
	Partition     string            `hcl:"partition,optional"`
	Nodes         int               `hcl:"nodes,optional"`
	NtasksPerNode int               `hcl:"ntasks_per_node,optional"`
	CPUsPerTask   int               `hcl:"cpus_per_task,optional"`
	GPUsPerNode   int               `hcl:"gpus_per_node,optional"`
	Mem           string            `hcl:"mem,optional"`
	Time          string            `hcl:"time,optional"`
	Account       string            `hcl:"account,optional"`
	Constraint    string            `hcl:"constraint,optional"`
	Options       map[string]string `hcl:"options,optional"`
}

// Apply fills the unset fields of o from the cluster's defaults. Fields the
// caller already set — command-line overrides — are left alone, so the merge
// priority is always flags over table.
func (d *Defaults) Apply(o *slurm.Options) {
	if o.Partition == "" {
		o.Partition = d.Partition
	}
	if o.Nodes == 0 {
		o.Nodes = d.Nodes
	}
	if o.NtasksPerNode == 0 {
		o.NtasksPerNode = d.NtasksPerNode
	}
	if o.CPUsPerTask == 0 {
		o.CPUsPerTask = d.CPUsPerTask
	}
	if o.GPUsPerNode == 0 {
		o.GPUsPerNode = d.GPUsPerNode
	}
	if o.Mem == "" {
		o.Mem = d.Mem
	}
	if o.Time == "" {
		o.Time = d.Time
	}
	if o.Account == "" {
		o.Account = d.Account
	}
	if o.Constraint == "" {
		o.Constraint = d.Constraint
	}

	for k, v := range d.Options {
		if o.Extra == nil {
			o.Extra = make(map[string]string)
		}
		if _, set := o.Extra[k]; !set {
			o.Extra[k] = v
		}
	}
}
