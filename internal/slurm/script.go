package slurm

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/vk/slurmchain/internal/chain"
)

//go:embed templates/wrapper.sh.tmpl
var wrapperText string

var wrapperTmpl = template.Must(template.New("wrapper.sh").Parse(wrapperText))

// masterPort is the rendezvous port exported for multi-node jobs.
const masterPort = 29500

type scriptValues struct {
	Directives []string
	MultiNode  bool
	MasterPort int
	Run        []string
}

// RenderScript produces the wrapper script a job runs: the SBATCH preamble
// from opts, threading and (for multi-node jobs) rendezvous exports, then
// the payload itself. Command payloads are shell-quoted on a single line and
// launched through srun when the job spans nodes; script payloads are
// emitted verbatim.
func RenderScript(payload chain.Payload, opts Options) (string, error) {
	var run []string
	if payload.IsCommand() {
		line := shellJoin(payload.Command)
		if opts.MultiNode() {
			line = "srun " + line
		}
		run = []string{line}
	} else {
		run = payload.Lines
	}

	var sb strings.Builder
	err := wrapperTmpl.Execute(&sb, scriptValues{
		Directives: opts.Args(),
		MultiNode:  opts.MultiNode(),
		MasterPort: masterPort,
		Run:        run,
	})
	if err != nil {
		return "", fmt.Errorf("rendering wrapper script: %w", err)
	}
	return sb.String(), nil
}

// writeScript renders the wrapper script for a node and writes it into the
// run directory as job-NNN.sh, returning the file path.
func writeScript(runDir string, node *chain.Node, opts Options) (string, error) {
	script, err := RenderScript(node.Payload, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(runDir, fmt.Sprintf("job-%03d.sh", node.Index))
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("writing wrapper script: %w", err)
	}
	return path, nil
}

// jobOptions specializes the shared option set for one node, filling in a
// per-job name when none was configured.
func jobOptions(opts Options, node *chain.Node) Options {
	if opts.JobName == "" {
		opts.JobName = fmt.Sprintf("job-%d", node.Index)
	}
	return opts
}

// shellJoin renders an argument vector as a single shell command line,
// single-quoting any argument the shell would otherwise reinterpret.
func shellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n\"'\\$`&|;<>()*?[]#~") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
