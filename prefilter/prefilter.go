// Package prefilter narrows substring search to candidate positions
// using literals extracted from the pattern.
//
// A prefilter scans the haystack for the pattern's mandatory prefix
// literals. Positions before the first occurrence cannot start a
// match, so the engine's cursor can skip straight to the candidate.
// A prefilter only ever advances the search start; it never decides a
// match by itself unless the literal covers the whole pattern.
//
// Strategy selection, from the extracted sequence:
//   - a single one-byte literal: bytes.IndexByte
//   - a single literal: bytes.Index
//   - several literals: an Aho-Corasick automaton
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/posixre/literal"
)

// Prefilter finds candidate match positions for a pattern.
type Prefilter interface {
	// Find returns the first candidate position at or after start, or
	// -1 when the rest of the haystack holds none. No occurrence of
	// any prefix literal starts before the returned position, so it is
	// always safe to skip to; the engine still has to verify a full
	// match there unless IsComplete reports true.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is already a full match,
	// which holds when the literal spans the entire pattern.
	IsComplete() bool

	// LiteralLen returns the matched literal's length when IsComplete
	// is true, and 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the heap memory retained by this prefilter,
	// for budgeting.
	HeapBytes() int
}

// Builder selects a prefilter strategy for an extracted literal
// sequence.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder returns a builder over the pattern's mandatory prefix
// literals, as produced by literal.ExtractPrefixes.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build returns the best prefilter for the literals, or nil when no
// effective prefilter exists (no literals, or the automaton failed to
// build).
func (b *Builder) Build() Prefilter {
	seq := b.prefixes
	if seq.IsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return &bytePrefilter{needle: lit.Bytes[0], complete: lit.Complete}
		}
		return newSubstringPrefilter(lit)
	}

	return newMultiPrefilter(seq)
}

// bytePrefilter scans for a single byte.
type bytePrefilter struct {
	needle   byte
	complete bool
}

func (p *bytePrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (p *bytePrefilter) IsComplete() bool {
	return p.complete
}

func (p *bytePrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *bytePrefilter) HeapBytes() int {
	return 0
}

// substringPrefilter scans for one multi-byte literal.
type substringPrefilter struct {
	needle   []byte
	complete bool
}

func newSubstringPrefilter(lit literal.Literal) Prefilter {
	return &substringPrefilter{
		needle:   append([]byte(nil), lit.Bytes...),
		complete: lit.Complete,
	}
}

func (p *substringPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx < 0 {
		return -1
	}
	return start + idx
}

func (p *substringPrefilter) IsComplete() bool {
	return p.complete
}

func (p *substringPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *substringPrefilter) HeapBytes() int {
	return len(p.needle)
}

// multiPrefilter scans for any of several literals with an
// Aho-Corasick automaton.
type multiPrefilter struct {
	auto      *ahocorasick.Automaton
	complete  bool
	fixedLen  int
	maxLen    int
	heapBytes int
}

func newMultiPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	complete := true
	fixedLen := seq.Get(0).Len()
	maxLen := 0
	heapBytes := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		complete = complete && lit.Complete
		if lit.Len() != fixedLen {
			fixedLen = 0
		}
		if lit.Len() > maxLen {
			maxLen = lit.Len()
		}
		heapBytes += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &multiPrefilter{
		auto:      auto,
		complete:  complete && fixedLen != 0,
		fixedLen:  fixedLen,
		maxLen:    maxLen,
		heapBytes: heapBytes,
	}
}

func (p *multiPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	// The automaton reports the earliest-ending occurrence. A longer
	// literal can start earlier and still be unfinished at that point,
	// so the occurrence's own start is not a safe skip target. No
	// occurrence ends before m.End, hence none starts before
	// m.End - maxLen; that bound is.
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	pos := m.End - p.maxLen
	if pos < start {
		pos = start
	}
	return pos
}

func (p *multiPrefilter) IsComplete() bool {
	return p.complete
}

func (p *multiPrefilter) LiteralLen() int {
	if p.complete {
		return p.fixedLen
	}
	return 0
}

func (p *multiPrefilter) HeapBytes() int {
	return p.heapBytes
}
