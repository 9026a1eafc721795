package gesture

import "fmt"

// InvariantError describes an event that is impossible under the input
// contract, such as a move while flinging. The handler panics with a
// *InvariantError rather than producing a wrong gesture; callers that want
// to survive a buggy input source can recover and inspect it with errors.As.
type InvariantError struct {
	Op     string    // handler operation, e.g. "touch move"
	State  StateKind // state at the time of the violation
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("gesture: %s in state %s", e.Op, e.State)
	}
	return fmt.Sprintf("gesture: %s in state %s: %s", e.Op, e.State, e.Detail)
}

// invariantf panics with an *InvariantError.
func invariantf(op string, state StateKind, format string, args ...any) {
	panic(&InvariantError{Op: op, State: state, Detail: fmt.Sprintf(format, args...)})
}
