package matcher

import (
	"github.com/coregx/posixre/syntax"
)

// pathStep records one group descent: which token in the enclosing
// sequence was the group, which alternative was taken, and the group's
// id.
type pathStep struct {
	index   int
	variant int
	id      int
}

// Branch is one live execution cursor into the token tree.
//
// A branch exclusively owns index, repeated, path and caps. parent is a
// shared pointer to the immutable snapshot of the branch whose group
// token this branch is an expansion of; it is read (token, range,
// repeat counter) but never written, so the parent chain forms a tree
// of frozen history with no cycles.
type Branch struct {
	// index addresses the current token within the sequence path
	// resolves to.
	index int

	// repeated counts how many times the current token has matched so
	// far.
	repeated int

	// tokens is the root sequence this branch descends from.
	tokens []syntax.Node

	// path records the group/alternative choices taken from tokens down
	// to the currently active sequence.
	path []pathStep

	// caps is this branch's capture snapshot, one slot per group id.
	caps Captures

	parent *Branch
}

// NewBranch seeds a match attempt on one alternative. slots is the
// size of the capture table; every group id reachable from any
// alternative of the same pattern must fit, so callers size it from
// the whole tree, not from this sequence alone. Returns nil for an
// empty sequence, which can never match.
func NewBranch(tokens []syntax.Node, slots int) *Branch {
	if len(tokens) == 0 {
		return nil
	}
	return &Branch{
		tokens: tokens,
		caps:   newCaptures(slots),
	}
}

// Clone returns an independent copy sharing only the token tree and
// the (immutable) parent chain.
func (b *Branch) Clone() *Branch {
	next := *b
	next.path = append([]pathStep(nil), b.path...)
	next.caps = b.caps.clone()
	return &next
}

// descend resolves one path step, failing fast if the step does not
// address a group token.
func descend(tokens []syntax.Node, step pathStep) [][]syntax.Node {
	if step.index < 0 || step.index >= len(tokens) || tokens[step.index].Token.Op != syntax.OpGroup {
		panic(&InvariantError{Reason: "path step addresses a non-group token", Index: step.index})
	}
	return tokens[step.index].Token.Alternatives
}

// parentTokens resolves the sequence containing the group this
// branch's last path step descended into: every step except the final
// one is walked, because the final step addresses the currently active
// sequence, which is validated separately by sequence().
func (b *Branch) parentTokens() []syntax.Node {
	tokens := b.tokens
	if n := len(b.path); n > 0 {
		for _, step := range b.path[:n-1] {
			tokens = descend(tokens, step)[step.variant]
		}
	}
	return tokens
}

// sequence resolves the currently active token sequence.
func (b *Branch) sequence() []syntax.Node {
	tokens := b.parentTokens()
	if n := len(b.path); n > 0 {
		step := b.path[n-1]
		tokens = descend(tokens, step)[step.variant]
	}
	return tokens
}

// node returns the current (token, range) pair.
func (b *Branch) node() *syntax.Node {
	return &b.sequence()[b.index]
}

// updateGroupEnds records offset as the running end of every group
// currently open along this branch's path. Groups are touched at every
// offset they remain open, so a closed group's span survives as-is.
func (b *Branch) updateGroupEnds(offset int) {
	for _, step := range b.path {
		if step.id < 0 || step.id >= len(b.caps) {
			panic(&InvariantError{Reason: "group id outside capture table", Index: step.id})
		}
		if !b.caps[step.id].IsValid() {
			panic(&InvariantError{Reason: "open group has no recorded start", Index: step.id})
		}
		b.caps[step.id].End = offset
	}
}

// enterGroup forks caps with group id opened at offset. The start is
// always rewritten; an existing end from a previous repetition is kept
// until updateGroupEnds touches it.
func enterGroup(caps Captures, id, offset int) Captures {
	out := caps.clone()
	if id < 0 || id >= len(out) {
		panic(&InvariantError{Reason: "group id outside capture table", Index: id})
	}
	if out[id].IsValid() {
		out[id].Start = offset
	} else {
		out[id] = Span{Start: offset, End: 0}
	}
	return out
}

// mergeInto copies every set slot of b's snapshot into dst. Used when
// a group closes, so spans captured inside it survive in the branch
// that continues past it.
func (b *Branch) mergeInto(dst Captures) {
	for i, s := range b.caps {
		if s.IsValid() {
			dst[i] = s
		}
	}
}

// newGroupBranch creates the branch that enters one alternative of a
// group. parent is snapshotted with its repeat counter incremented;
// the child records the extended path and forked captures. Returns nil
// if the root sequence is empty.
func newGroupBranch(path []pathStep, caps Captures, tokens []syntax.Node, parent *Branch) *Branch {
	if len(tokens) == 0 {
		return nil
	}
	snap := parent.Clone()
	snap.repeated++
	return &Branch{
		tokens: tokens,
		path:   path,
		caps:   caps,
		parent: snap,
	}
}

// nextBranch returns the branch one token further along, or nil when
// there is no legal forward move. Running past the end of a sequence
// exits the group: the parent must already have repeated at least its
// minimum, and the captures taken inside the group are merged into the
// continuation so they survive the close.
func (b *Branch) nextBranch() *Branch {
	if b.index+1 >= len(b.sequence()) {
		parent := b.parent
		if parent == nil {
			return nil
		}
		// Don't move past the group until it has repeated enough.
		if parent.repeated < parent.node().Range.Min {
			return nil
		}
		next := parent.nextBranch()
		if next == nil {
			return nil
		}
		b.mergeInto(next.caps)
		return next
	}
	next := b.Clone()
	next.index++
	next.repeated = 0
	return next
}

// addRepeats queues "try the group body one more time" branches: the
// nearest enclosing group (including the current token) that has not
// hit its maximum gets one new branch per alternative, each opening
// the group again at offset. Runs alongside nextBranch's "treat the
// group as done" move; queuing both is what makes repetition greedy.
func (b *Branch) addRepeats(insert []*Branch, offset int) []*Branch {
	branch := b
	for {
		node := branch.node()
		if node.Token.Op == syntax.OpGroup &&
			(node.Range.Max == syntax.Unbounded || branch.repeated < node.Range.Max) {
			for variant := range node.Token.Alternatives {
				path := make([]pathStep, len(branch.path), len(branch.path)+1)
				copy(path, branch.path)
				path = append(path, pathStep{
					index:   branch.index,
					variant: variant,
					id:      node.Token.GroupID,
				})
				caps := enterGroup(b.caps, node.Token.GroupID, offset)
				if g := newGroupBranch(path, caps, branch.tokens, branch); g != nil {
					insert = append(insert, g)
				}
			}
			break
		}
		if branch.parent == nil {
			break
		}
		branch = branch.parent
	}
	return insert
}

// isExplored reports whether the branch is a valid terminal state:
// every enclosing group has met its minimum and no legal forward move
// remains. A branch that is explored when it dies is a successful
// match.
func (b *Branch) isExplored() bool {
	branch := b
	for {
		for p := branch.parent; p != nil; p = p.parent {
			if p.repeated < p.node().Range.Min {
				// Group did not repeat enough times.
				return false
			}
		}
		if branch.repeated < branch.node().Range.Min {
			return false
		}
		next := branch.nextBranch()
		if next == nil {
			break
		}
		branch = next
	}
	return true
}
