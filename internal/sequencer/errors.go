package sequencer

import "fmt"

// SubmissionError reports a failed scheduler submission. Index is the node
// whose submission failed; nodes with lower indices were already accepted by
// the scheduler and stay submitted, nodes with higher indices were never
// attempted. The run must be resubmitted as a whole once the cause is fixed;
// the sequencer never retries.
type SubmissionError struct {
	Index int
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submitting job %d: %v", e.Index, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
