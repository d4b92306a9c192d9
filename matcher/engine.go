package matcher

import (
	"github.com/coregx/posixre/internal/ctype"
	"github.com/coregx/posixre/syntax"
)

// Engine steps a live set of branches across one input, byte by byte.
// The offset cursor only moves forward, so successive match attempts
// on the same Engine yield non-overlapping, left-to-right results.
// An Engine is single-use state for one input; it is not safe for
// concurrent use.
type Engine struct {
	flags  Flags
	input  []byte
	offset int
}

// NewEngine returns an engine positioned at the start of input.
func NewEngine(input []byte, flags Flags) *Engine {
	return &Engine{flags: flags, input: input}
}

// Offset returns the current position of the cursor.
func (e *Engine) Offset() int {
	return e.offset
}

// byteAt returns the input byte at i, reporting whether it exists.
func (e *Engine) byteAt(i int) (byte, bool) {
	if i < 0 || i >= len(e.input) {
		return 0, false
	}
	return e.input[i], true
}

// closure computes the epsilon-closure of the live set at the current
// offset: every open group is touched with the offset as its running
// end, every branch sitting on a Group token spawns one child per
// alternative, and every branch that has met its token's minimum
// additionally queues the "move past" branch and any eligible "repeat
// again" branches. Spawned branches are appended and processed in
// queue order until none spawn further.
//
// The insertion order is a contract: group alternatives in declaration
// order, "move past" before "repeat again", spawned generations after
// the branches that spawned them. Together with the last-dead-end-wins
// rule in run, this order is what realizes POSIX greedy/leftmost
// preference; reordering it silently changes which ambiguous parse
// wins.
func (e *Engine) closure(branches []*Branch) []*Branch {
	for i := 0; i < len(branches); i++ {
		b := branches[i]
		b.updateGroupEnds(e.offset)

		node := b.node()
		if node.Token.Op == syntax.OpGroup {
			for variant := range node.Token.Alternatives {
				path := make([]pathStep, len(b.path), len(b.path)+1)
				copy(path, b.path)
				path = append(path, pathStep{
					index:   b.index,
					variant: variant,
					id:      node.Token.GroupID,
				})
				caps := enterGroup(b.caps, node.Token.GroupID, e.offset)
				if g := newGroupBranch(path, caps, b.tokens, b); g != nil {
					branches = append(branches, g)
				}
			}
		}
		if b.repeated >= node.Range.Min {
			if next := b.nextBranch(); next != nil {
				branches = append(branches, next)
			}
			branches = b.addRepeats(branches, e.offset)
		}
	}
	return branches
}

// run executes one match attempt from the current offset and returns
// the winning capture snapshot, or nil if no branch ever completed.
// The live set shrinks as branches fail to accept bytes; a branch that
// is fully explored at the moment it dies records its snapshot as the
// current best, and later dead ends overwrite earlier ones.
func (e *Engine) run(branches []*Branch) Captures {
	var succeeded Captures
	prev, prevOK := e.byteAt(e.offset - 1)

	for {
		next, nextOK := e.byteAt(e.offset)

		branches = e.closure(branches)

		keep := branches[:0]
		for _, b := range branches {
			node := b.node()
			accepts := true

			// Resolve a chain of zero-width assertions against the
			// surrounding bytes. If the branch runs out of tokens the
			// chain result stands as-is (end-of-input edge case).
			for isZeroWidth(node.Token.Op) {
				switch node.Token.Op {
				case syntax.OpStart:
					accepts = accepts && ((!e.flags.NoStart && e.offset == 0) ||
						(e.flags.Newline && prevOK && prev == '\n'))
				case syntax.OpEnd:
					accepts = accepts && ((!e.flags.NoEnd && !nextOK) ||
						(e.flags.Newline && nextOK && next == '\n'))
				case syntax.OpWordStart:
					accepts = accepts && (!prevOK || ctype.IsWordBoundary(prev))
				case syntax.OpWordEnd:
					accepts = accepts && (!nextOK || ctype.IsWordBoundary(next))
				}
				adv := b.nextBranch()
				if adv == nil {
					break
				}
				b = adv
				node = b.node()
			}

			// A token already repeated Max times cannot consume again.
			if max := node.Range.Max; max != syntax.Unbounded && b.repeated >= max {
				accepts = false
			}

			if accepts {
				switch tok := &node.Token; tok.Op {
				case syntax.OpInternalStart:
					// Consume one byte while still seeking a starting
					// position.
					accepts = nextOK
				case syntax.OpGroup:
					// Content was already expanded during closure; the
					// group token itself never consumes.
					accepts = false
				case syntax.OpAny:
					accepts = nextOK && (!e.flags.Newline || next != '\n')
				case syntax.OpChar:
					if e.flags.CaseInsensitive {
						accepts = nextOK && tok.Ch&^32 == next&^32
					} else {
						accepts = nextOK && next == tok.Ch
					}
				case syntax.OpOneOf:
					accepts = nextOK &&
						!(tok.Invert && e.flags.Newline && next == '\n') &&
						oneOfMatches(tok, next, e.flags.CaseInsensitive)
				default:
					// A zero-width token with no successor, like a
					// trailing "$" or "\>": the chain result above
					// stands.
				}
			}

			if !accepts {
				if b.isExplored() {
					succeeded = b.caps.clone()
				}
				continue
			}

			b.repeated++
			keep = append(keep, b)
		}
		branches = keep

		// The synthetic start token is lazy, not greedy: once a match
		// exists, branches still seeking a later starting position must
		// not win over it.
		if len(branches) == 0 ||
			(succeeded != nil && allSeekingStart(branches)) {
			return succeeded
		}

		if nextOK {
			e.offset++
			prev, prevOK = next, true
		}
	}
}

func isZeroWidth(op syntax.Op) bool {
	switch op {
	case syntax.OpStart, syntax.OpEnd, syntax.OpWordStart, syntax.OpWordEnd:
		return true
	}
	return false
}

func oneOfMatches(tok *syntax.Token, b byte, foldCase bool) bool {
	for i := range tok.Items {
		if tok.Items[i].Matches(b, foldCase) {
			return !tok.Invert
		}
	}
	return tok.Invert
}

func allSeekingStart(branches []*Branch) bool {
	for _, b := range branches {
		if b.node().Token.Op != syntax.OpInternalStart {
			return false
		}
	}
	return true
}

// MatchAnchored matches the pattern at offset 0 of input and does not
// search for substrings. On success the returned captures hold the
// whole-match span in slot 0 and one slot per group id; nil means no
// match.
func MatchAnchored(alternatives [][]syntax.Node, flags Flags, input []byte) Captures {
	slots := syntax.CountGroups(alternatives) + 1
	e := NewEngine(input, flags)

	branches := make([]*Branch, 0, len(alternatives))
	for _, alt := range alternatives {
		if b := NewBranch(alt, slots); b != nil {
			branches = append(branches, b)
		}
	}

	start := e.offset
	caps := e.run(branches)
	if caps == nil {
		return nil
	}
	if caps[0].IsValid() {
		panic(&InvariantError{Reason: "whole-match slot already written", Index: 0})
	}
	caps[0] = Span{Start: start, End: e.offset}
	return caps
}

// Searcher finds successive non-overlapping matches of a pattern in
// one input. It wraps the pattern's alternation in a synthetic
// sequence, an unbounded byte-consuming start seeker followed by a
// group with id 0, so the same stepping engine serves substring search
// and slot 0 falls out as the whole-match span.
type Searcher struct {
	engine *Engine
	seed   *Branch
}

// NewSearcher returns a searcher positioned at the start of input.
func NewSearcher(alternatives [][]syntax.Node, flags Flags, input []byte) *Searcher {
	wrapper := []syntax.Node{
		{
			Token: syntax.Token{Op: syntax.OpInternalStart},
			Range: syntax.Range{Min: 0, Max: syntax.Unbounded},
		},
		{
			Token: syntax.Token{Op: syntax.OpGroup, GroupID: 0, Alternatives: alternatives},
			Range: syntax.Once,
		},
	}
	return &Searcher{
		engine: NewEngine(input, flags),
		seed:   NewBranch(wrapper, syntax.CountGroups(alternatives)+1),
	}
}

// Offset returns the position the next attempt will start from.
func (s *Searcher) Offset() int {
	return s.engine.offset
}

// SkipTo advances the cursor to offset. The cursor never moves
// backwards, so positions already searched stay searched. Callers use
// this to fast-forward past input a prefilter has proven dead.
func (s *Searcher) SkipTo(offset int) {
	if offset > s.engine.offset {
		s.engine.offset = offset
	}
}

// Next returns the captures of the next match, or nil when the rest of
// the input holds none. An empty match advances the cursor by one byte
// so that repeated calls always make progress.
func (s *Searcher) Next() Captures {
	before := s.engine.offset
	if before > len(s.engine.input) {
		return nil
	}
	caps := s.engine.run([]*Branch{s.seed.Clone()})
	if caps == nil {
		return nil
	}
	if s.engine.offset == before {
		s.engine.offset++
	}
	return caps
}

// Search collects up to max substring matches left-to-right; max < 0
// collects them all. Matches share one forward-only cursor and never
// overlap.
func Search(alternatives [][]syntax.Node, flags Flags, input []byte, max int) []Captures {
	if max == 0 {
		return nil
	}
	s := NewSearcher(alternatives, flags, input)
	var matches []Captures
	for max < 0 || len(matches) < max {
		caps := s.Next()
		if caps == nil {
			break
		}
		matches = append(matches, caps)
	}
	return matches
}
