package chain

import "fmt"

// ValidationError reports a malformed dependency specification. It is always
// raised before any submission happens, so a run that fails with it has not
// touched the scheduler. Line is the zero-based job index of the offending
// entry, or -1 when the problem spans the whole input.
type ValidationError struct {
	Line   int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Line < 0 {
		return "invalid dependency specification: " + e.Reason
	}
	return fmt.Sprintf("invalid dependency specification at job %d: %s", e.Line, e.Reason)
}
