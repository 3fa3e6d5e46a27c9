// Package slurm is the boundary to the external batch scheduler. It formats
// scheduler options, renders the wrapper script each job runs, and submits
// scripts through the sbatch command line, parsing the job id the scheduler
// prints back. A dry-run submitter writes the same scripts but fabricates
// ids locally instead of invoking sbatch.
//
// Nothing in this package knows about dependency graphs: the dependency
// expression arrives ready-made from the sequencer and is passed through to
// sbatch verbatim.
package slurm
