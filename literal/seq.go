// Package literal extracts mandatory literal prefixes from compiled
// patterns and represents them as sequences usable by prefilters.
//
// A pattern like `hello\|world` can only match where "hello" or
// "world" occurs, so a substring search can skip everything before the
// first occurrence of either. Extraction is conservative: whenever a
// construct makes the continuation uncertain (optional repetition, a
// wildcard, a bracket expression) it stops and marks the literal
// incomplete rather than guess.
package literal

import (
	"bytes"
	"sort"
)

// Literal is one mandatory byte-sequence prefix of a pattern
// alternative. Complete reports that the literal covers the whole
// alternative, so matching it is matching the pattern.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral returns a literal over a copy of b.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: append([]byte(nil), b...), Complete: complete}
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// Seq is an ordered set of alternative literals. A non-empty Seq means
// every match of the pattern starts with one of its members.
type Seq struct {
	literals []Literal
}

// NewSeq returns a sequence over the given literals.
func NewSeq(literals ...Literal) *Seq {
	return &Seq{literals: literals}
}

// Len returns the number of literals.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// IsEmpty reports whether the sequence holds no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// Push appends a literal.
func (s *Seq) Push(l Literal) {
	s.literals = append(s.literals, l)
}

// MinLen returns the length of the shortest literal, or 0 for an
// empty sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	min := s.literals[0].Len()
	for _, l := range s.literals[1:] {
		if l.Len() < min {
			min = l.Len()
		}
	}
	return min
}

// Minimize sorts the literals, removes duplicates, and removes any
// literal that has another literal of the sequence as a prefix: for
// prefix scanning, finding "foo" subsumes finding "foobar". A literal
// absorbed this way loses its Complete flag, since the shorter prefix
// no longer spans a whole alternative.
func (s *Seq) Minimize() {
	if s.Len() < 2 {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return bytes.Compare(s.literals[i].Bytes, s.literals[j].Bytes) < 0
	})
	out := s.literals[:0]
	for _, l := range s.literals {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if bytes.HasPrefix(l.Bytes, last.Bytes) {
				// l is subsumed by the shorter prefix before it.
				if !bytes.Equal(l.Bytes, last.Bytes) {
					last.Complete = false
				} else if !l.Complete {
					last.Complete = false
				}
				continue
			}
		}
		out = append(out, l)
	}
	s.literals = out
}
