// Package matcher executes compiled POSIX regex token trees against
// byte strings.
//
// The engine simulates every live match attempt ("branch") in lock-step
// across the input, one byte per round. Before testing a byte it
// computes the epsilon-closure of the live set: entering groups,
// queuing "repeat again" siblings, resolving zero-width assertions.
// Branches are cloned rather than deduplicated, so ambiguous patterns
// can fan out exponentially; that behavior is contractual, because the
// order branches are queued and discarded is what realizes POSIX
// greedy/leftmost preference (see Engine.closure).
//
// A Branch shares an immutable snapshot of the branch it was spawned
// from. Snapshots are never written after creation; branch history is
// an append-only tree.
package matcher

// Span is a half-open [Start, End) byte-offset range. The zero group
// slot convention follows the engine's capture tables: Start == -1
// means the slot was never set.
type Span struct {
	Start int
	End   int
}

// IsValid reports whether the span was set on the winning path.
func (s Span) IsValid() bool {
	return s.Start >= 0
}

// Captures is the result of a match attempt: one optional span per
// group id. Slot 0 is the whole-match span when present; an invalid
// slot means the group never participated in the successful path.
type Captures []Span

// clone returns an independent copy.
func (c Captures) clone() Captures {
	out := make(Captures, len(c))
	copy(out, c)
	return out
}

// newCaptures returns n unset slots.
func newCaptures(n int) Captures {
	c := make(Captures, n)
	for i := range c {
		c[i] = Span{Start: -1, End: -1}
	}
	return c
}

// Flags carries the option bits that change matching semantics. Their
// interaction is exact: Newline overrides NoStart/NoEnd at embedded
// newlines, and suppresses '\n' for OpAny and inverted brackets.
type Flags struct {
	// CaseInsensitive folds ASCII case on both operands of literal and
	// bracket comparisons.
	CaseInsensitive bool

	// Newline makes ^ and $ also match around embedded '\n' bytes.
	Newline bool

	// NoStart disables ^ at true offset 0.
	NoStart bool

	// NoEnd disables $ at true end of input.
	NoEnd bool
}
