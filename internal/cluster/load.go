package cluster

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/slurmchain/internal/ctxlog"
	"github.com/vk/slurmchain/internal/fsutil"
)

//go:embed builtin.hcl
var builtinHCL []byte

// fileSchema is the top-level structure of a cluster description file.
type fileSchema struct {
	Clusters []*Defaults `hcl:"cluster,block"`
}

// NewTable builds a Table from the embedded built-in descriptions plus, when
// path is non-empty, a site file or a directory of .hcl files. Site entries
// replace built-in entries of the same name; a name defined twice across the
// site files is an error.
func NewTable(ctx context.Context, path string) (*Table, error) {
	logger := ctxlog.FromContext(ctx)

	table := &Table{clusters: make(map[string]*Defaults)}

	builtin, err := decodeFile("builtin.hcl", builtinHCL)
	if err != nil {
		// The embedded table ships with the binary; failing to decode it is
		// a programmer error.
		panic(fmt.Errorf("embedded cluster table is invalid: %w", err))
	}
	for _, d := range builtin {
		table.clusters[d.Name] = d
	}

	if path == "" {
		logger.Debug("Cluster table ready.", "clusters", table.Names())
		return table, nil
	}

	paths, err := sitePaths(path)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	for _, filePath := range paths {
		src, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("reading cluster file: %w", err)
		}
		entries, err := decodeFile(filePath, src)
		if err != nil {
			return nil, err
		}
		for _, d := range entries {
			if prev, dup := seen[d.Name]; dup {
				return nil, fmt.Errorf("cluster %q defined twice (in %s and %s)", d.Name, prev, filePath)
			}
			seen[d.Name] = filePath
			table.clusters[d.Name] = d
		}
		logger.Debug("Loaded cluster descriptions.", "file", filePath, "count", len(entries))
	}

	logger.Debug("Cluster table ready.", "clusters", table.Names())
	return table, nil
}

// decodeFile parses one HCL cluster file and decodes its cluster blocks.
func decodeFile(name string, src []byte) ([]*Defaults, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", name, diags)
	}

	var fs fileSchema
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &fs); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", name, diags)
	}
	return fs.Clusters, nil
}

// sitePaths resolves the --clusters-file argument to the list of HCL files
// to load: the file itself, or every .hcl file under a directory.
func sitePaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cluster file path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	paths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("scanning cluster directory: %w", err)
	}
	return paths, nil
}

// evalContext exposes the process environment to cluster files as the `env`
// object, so site files can write attributes like
// `account = env.SLURM_ACCOUNT`.
func evalContext() *hcl.EvalContext {
	vals := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k != "" {
			vals[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vals)},
	}
}
