package chain

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/vk/slurmchain/internal/fsutil"
)

// DepsLine is the parsed form of one dependency-file line. The two shapes a
// line can take are decided here, once, and never re-interpreted downstream:
// either the explicit "-" skip token (None) or a set of predecessor indices
// (Indices, ascending and deduplicated).
type DepsLine struct {
	None    bool
	Indices []int
}

// ParseDeps reads a dependency file: one line per job, where a line is either
// "-" (no dependencies) or whitespace-separated indices of earlier jobs.
// Blank lines are rejected rather than skipped so that line numbers always
// correspond to job indices.
func ParseDeps(r io.Reader) ([]DepsLine, error) {
	lines, err := fsutil.ReadLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading dependency file: %w", err)
	}

	parsed := make([]DepsLine, 0, len(lines))
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			return nil, &ValidationError{Line: i, Reason: `blank line; use "-" for a job without dependencies`}
		}
		if line == "-" {
			parsed = append(parsed, DepsLine{None: true})
			continue
		}

		fields := strings.Fields(line)
		indices := make([]int, 0, len(fields))
		for _, field := range fields {
			idx, err := strconv.Atoi(field)
			if err != nil || idx < 0 {
				return nil, &ValidationError{Line: i, Reason: fmt.Sprintf("%q is not a job index", field)}
			}
			indices = append(indices, idx)
		}
		slices.Sort(indices)
		indices = slices.Compact(indices)
		parsed = append(parsed, DepsLine{Indices: indices})
	}

	return parsed, nil
}
