package literal

import (
	"github.com/coregx/posixre/syntax"
)

// Extraction limits. Crossing group alternatives multiplies the
// literal count, so both the set size and the per-literal length are
// capped; hitting a cap degrades to "no usable literals" or to
// incomplete literals rather than an expensive prefilter.
const (
	// MaxLiterals bounds how many alternative prefixes extraction may
	// produce before giving up.
	MaxLiterals = 64

	// MaxLiteralLen bounds the length of a single extracted prefix.
	MaxLiteralLen = 32
)

// ExtractPrefixes returns the mandatory leading literals of a
// compiled pattern: every match of the pattern starts with one of the
// returned byte sequences. limit caps the number of literals; limit <=
// 0 uses MaxLiterals.
//
// The result is empty when any alternative can start with something
// other than a fixed byte (a wildcard, a bracket expression, an
// optional leading token), because then no finite literal set is
// mandatory. Zero-width assertions are skipped: they constrain the
// position of a match, not its bytes, so candidate positions found by
// the literals remain a superset of true matches.
func ExtractPrefixes(alternatives [][]syntax.Node, limit int) *Seq {
	if limit <= 0 {
		limit = MaxLiterals
	}
	seq := NewSeq()
	for _, alt := range alternatives {
		prefixes, ok := sequencePrefixes(alt, limit)
		if !ok || len(prefixes) == 0 {
			return NewSeq()
		}
		for _, p := range prefixes {
			if p.Len() == 0 {
				// A mandatory empty prefix filters nothing.
				return NewSeq()
			}
			seq.Push(p)
			if seq.Len() > limit {
				return NewSeq()
			}
		}
	}
	seq.Minimize()
	return seq
}

// sequencePrefixes walks one token sequence front to back, growing
// every open prefix until a construct stops extraction. The bool
// result is false when the literal set would exceed limit.
func sequencePrefixes(seq []syntax.Node, limit int) ([]Literal, bool) {
	open := []Literal{{Bytes: nil, Complete: true}}

	for i := range seq {
		node := &seq[i]

		switch node.Token.Op {
		case syntax.OpStart, syntax.OpEnd, syntax.OpWordStart, syntax.OpWordEnd:
			// Zero-width: position constraint only.
			continue

		case syntax.OpChar:
			if node.Range.Min == 0 {
				return markIncomplete(open), true
			}
			for j := range open {
				for n := 0; n < node.Range.Min; n++ {
					if len(open[j].Bytes) >= MaxLiteralLen {
						return markIncomplete(open), true
					}
					open[j].Bytes = append(open[j].Bytes, node.Token.Ch)
				}
			}
			if node.Range.Max != node.Range.Min {
				// Further copies are optional; the bytes after them
				// are no longer at a fixed position.
				return markIncomplete(open), true
			}

		case syntax.OpGroup:
			if node.Range.Min == 0 {
				return markIncomplete(open), true
			}
			inner := NewSeq()
			for _, alt := range node.Token.Alternatives {
				prefixes, ok := sequencePrefixes(alt, limit)
				if !ok {
					return nil, false
				}
				for _, p := range prefixes {
					inner.Push(p)
				}
			}
			crossed, ok := cross(open, inner, limit)
			if !ok {
				return nil, false
			}
			open = crossed
			if node.Range.Min != 1 || node.Range.Max != 1 || !allComplete(open) {
				// Only the first mandatory occurrence contributes a
				// fixed prefix.
				return markIncomplete(open), true
			}

		default:
			// OpAny, OpOneOf, OpInternalStart: not a fixed byte.
			return markIncomplete(open), true
		}
	}

	return open, true
}

// cross concatenates every open prefix with every inner prefix. The
// concatenation is complete only when both halves are.
func cross(open []Literal, inner *Seq, limit int) ([]Literal, bool) {
	if inner.IsEmpty() {
		return nil, false
	}
	if len(open)*inner.Len() > limit {
		return nil, false
	}
	out := make([]Literal, 0, len(open)*inner.Len())
	for _, o := range open {
		for i := 0; i < inner.Len(); i++ {
			in := inner.Get(i)
			b := make([]byte, 0, len(o.Bytes)+len(in.Bytes))
			b = append(b, o.Bytes...)
			b = append(b, in.Bytes...)
			if len(b) > MaxLiteralLen {
				b = b[:MaxLiteralLen]
				out = append(out, Literal{Bytes: b, Complete: false})
				continue
			}
			out = append(out, Literal{Bytes: b, Complete: o.Complete && in.Complete})
		}
	}
	return out, true
}

func markIncomplete(lits []Literal) []Literal {
	for i := range lits {
		lits[i].Complete = false
	}
	return lits
}

func allComplete(lits []Literal) bool {
	for i := range lits {
		if !lits[i].Complete {
			return false
		}
	}
	return true
}
