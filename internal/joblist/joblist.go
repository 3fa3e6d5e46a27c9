package joblist

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/vk/slurmchain/internal/chain"
	"github.com/vk/slurmchain/internal/fsutil"
)

// ReadBatch reads a batch file: one job command per non-blank line, split
// into an argument vector with shell word rules (quoting and escaping work
// as in a shell). Lines starting with '#' are comments. Errors name the
// one-based file line so the user can find the offending command.
func ReadBatch(r io.Reader) ([]chain.Payload, error) {
	lines, err := fsutil.ReadLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var payloads []chain.Payload
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		argv, err := shellwords.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("batch file line %d: %w", i+1, err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("batch file line %d: no command", i+1)
		}
		payloads = append(payloads, chain.CommandPayload(argv))
	}

	if len(payloads) == 0 {
		return nil, errors.New("batch file contains no jobs")
	}
	return payloads, nil
}

// ReadScript reads a script file verbatim into a single job payload. A
// leading shebang line is dropped because the generated wrapper script
// supplies its own.
func ReadScript(r io.Reader) (chain.Payload, error) {
	lines, err := fsutil.ReadLines(r)
	if err != nil {
		return chain.Payload{}, fmt.Errorf("reading script file: %w", err)
	}

	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		lines = lines[1:]
	}

	empty := true
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			empty = false
			break
		}
	}
	if empty {
		return chain.Payload{}, errors.New("script file contains no commands")
	}

	return chain.ScriptPayload(lines), nil
}
