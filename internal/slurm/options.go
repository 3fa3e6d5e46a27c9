package slurm

import (
	"fmt"
	"sort"
)

// Options is the scheduler option set for one job. The named fields form the
// closed set of options this tool understands, emitted in a fixed priority
// order; Extra carries open-ended options the tool passes through untouched,
// appended in sorted key order so the rendered script is deterministic.
//
// Zero values mean "not set" and are omitted from the output entirely.
type Options struct {
	JobName       string
	Partition     string
	Nodes         int
	NtasksPerNode int
	CPUsPerTask   int
	GPUsPerNode   int
	Mem           string
	Time          string
	Account       string
	Constraint    string
	Output        string

	Extra map[string]string
}

// Args renders the option set as sbatch-style "--flag=value" strings. The
// known fields come first in their priority order, then the Extra options
// sorted by key.
func (o Options) Args() []string {
	var args []string
	add := func(flag, value string) {
		if value != "" {
			args = append(args, fmt.Sprintf("--%s=%s", flag, value))
		}
	}
	addInt := func(flag string, value int) {
		if value > 0 {
			args = append(args, fmt.Sprintf("--%s=%d", flag, value))
		}
	}

	add("job-name", o.JobName)
	add("partition", o.Partition)
	addInt("nodes", o.Nodes)
	addInt("ntasks-per-node", o.NtasksPerNode)
	addInt("cpus-per-task", o.CPUsPerTask)
	if o.GPUsPerNode > 0 {
		args = append(args, fmt.Sprintf("--gres=gpu:%d", o.GPUsPerNode))
	}
	add("mem", o.Mem)
	add("time", o.Time)
	add("account", o.Account)
	add("constraint", o.Constraint)
	add("output", o.Output)

	keys := make([]string, 0, len(o.Extra))
	for k := range o.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		add(k, o.Extra[k])
	}

	return args
}

// MultiNode reports whether the job spans more than one node, which decides
// whether the wrapper script needs rendezvous exports and an srun launch.
func (o Options) MultiNode() bool {
	return o.Nodes > 1
}
