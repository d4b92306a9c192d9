package matcher

import "fmt"

// InvariantError reports a structurally invalid token tree: a path
// step addressing a non-group token, or a group id outside the capture
// table. These are programmer errors in the compiler feeding the
// engine, not match failures; continuing would produce undefined
// capture data, so the engine panics with this value rather than
// returning it.
type InvariantError struct {
	// Reason describes the violated invariant.
	Reason string

	// Index is the offending token index or group id, -1 if not
	// applicable.
	Index int
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("matcher: invariant violation: %s (index %d)", e.Reason, e.Index)
	}
	return fmt.Sprintf("matcher: invariant violation: %s", e.Reason)
}
