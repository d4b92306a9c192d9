// Package posixre implements POSIX basic regular expressions (BRE)
// over byte strings, with capturing groups and POSIX anchor, word
// boundary and greedy repetition semantics.
//
// The engine is a backtracking branch simulator: it advances every
// live match attempt in lock-step, one byte per round, and reports the
// byte-offset spans of all capturing groups. There is no automaton
// determinization and no linear-time guarantee; pathological patterns
// can fan out exponentially.
//
// Basic usage:
//
//	re, err := posixre.Compile(`h\(i\)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("hello hi lol") // true
//
// Matching flags are chainable and mirror the classic POSIX knobs:
//
//	re := posixre.MustCompile(`^hello$`).Newline(true)
//	re.MatchString("hi\nhello\nbye") // true
//
// Patterns are compiled by the posixre/syntax package and executed by
// posixre/matcher; substring search is accelerated, when the pattern
// allows it, by mandatory-prefix literals (posixre/literal) driving a
// prefilter (posixre/prefilter).
package posixre

import (
	"github.com/coregx/posixre/literal"
	"github.com/coregx/posixre/matcher"
	"github.com/coregx/posixre/prefilter"
	"github.com/coregx/posixre/syntax"
)

// Regexp is a compiled pattern plus its matching flags.
//
// A Regexp is safe for concurrent matching once configured; the flag
// setters mutate the receiver and must not race with matching.
type Regexp struct {
	pattern      string
	alternatives [][]syntax.Node
	flags        matcher.Flags
	groups       int
	prefilter    prefilter.Prefilter
}

// Compile parses a BRE pattern with the default POSIX class table.
//
// The dialect: `\(`...`\)` groups with `\|` alternation, `*`, `\?`,
// `\+` and `\{m,n\}` repetition, bracket expressions with [:name:]
// classes, `^`/`$` anchors and `\<`/`\>` word boundaries.
func Compile(pattern string) (*Regexp, error) {
	alternatives, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return newRegexp(pattern, alternatives), nil
}

// CompileWithClasses parses a pattern with additional bracket classes
// registered, usable as [[:name:]]. Classes with default names
// override the defaults.
func CompileWithClasses(pattern string, classes map[string]func(byte) bool) (*Regexp, error) {
	p := syntax.NewParser([]byte(pattern))
	for name, fn := range classes {
		p.WithClass(name, fn)
	}
	alternatives, err := p.Parse()
	if err != nil {
		return nil, err
	}
	return newRegexp(pattern, alternatives), nil
}

// MustCompile is Compile, panicking on error. Use for patterns known
// valid at build time.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic("posixre: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

func newRegexp(pattern string, alternatives [][]syntax.Node) *Regexp {
	re := &Regexp{
		pattern:      pattern,
		alternatives: alternatives,
		groups:       syntax.CountGroups(alternatives),
	}
	prefixes := literal.ExtractPrefixes(alternatives, 0)
	re.prefilter = prefilter.NewBuilder(prefixes).Build()
	return re
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.pattern
}

// NumSubexp returns the number of capture slots a match reports:
// one per `\(`...`\)` group, plus slot 0 for the whole match.
func (re *Regexp) NumSubexp() int {
	return re.groups + 1
}

// CaseInsensitive folds ASCII case on both operands of literal and
// bracket comparisons. Returns re for chaining.
func (re *Regexp) CaseInsensitive(v bool) *Regexp {
	re.flags.CaseInsensitive = v
	return re
}

// Newline makes `^` and `$` also match around embedded '\n' bytes,
// overriding NoStart and NoEnd at those positions, and keeps `.` and
// inverted bracket expressions from matching '\n'. Returns re for
// chaining.
func (re *Regexp) Newline(v bool) *Regexp {
	re.flags.Newline = v
	return re
}

// NoStart disables `^` matching true offset 0. A newline-triggered
// start still matches when Newline is set. Returns re for chaining.
func (re *Regexp) NoStart(v bool) *Regexp {
	re.flags.NoStart = v
	return re
}

// NoEnd disables `$` matching true end of input. A newline-triggered
// end still matches when Newline is set. Returns re for chaining.
func (re *Regexp) NoEnd(v bool) *Regexp {
	re.flags.NoEnd = v
	return re
}

// MatchExact matches the pattern at the start of b without searching
// for substrings. nil means no match at offset 0; otherwise the
// captures hold the whole-match span in slot 0 and one optional span
// per group, in declaration order.
func (re *Regexp) MatchExact(b []byte) matcher.Captures {
	return matcher.MatchAnchored(re.alternatives, re.flags, b)
}

// Matches returns the captures of up to n non-overlapping substring
// matches, left-to-right. n < 0 returns all matches; n == 0 returns
// nil. Slot 0 of each capture set is that match's whole span.
func (re *Regexp) Matches(b []byte, n int) []matcher.Captures {
	if n == 0 {
		return nil
	}

	// The prefilter only fast-forwards the cursor over input that
	// provably holds no match start, so search results are identical
	// with and without it. Case folding happens at match time, which
	// the extracted literals don't model, so they only apply to
	// case-sensitive matching.
	pf := re.prefilter
	if re.flags.CaseInsensitive {
		pf = nil
	}

	s := matcher.NewSearcher(re.alternatives, re.flags, b)
	var out []matcher.Captures
	for n < 0 || len(out) < n {
		if pf != nil {
			pos := pf.Find(b, s.Offset())
			if pos < 0 {
				break
			}
			s.SkipTo(pos)
		}
		caps := s.Next()
		if caps == nil {
			break
		}
		out = append(out, caps)
	}
	return out
}

// Match reports whether b contains any match of the pattern.
func (re *Regexp) Match(b []byte) bool {
	return re.Matches(b, 1) != nil
}

// MatchString reports whether s contains any match of the pattern.
func (re *Regexp) MatchString(s string) bool {
	return re.Match([]byte(s))
}

// FindIndex returns the span of the leftmost match as [start, end),
// or nil if there is none.
func (re *Regexp) FindIndex(b []byte) []int {
	m := re.Matches(b, 1)
	if m == nil {
		return nil
	}
	whole := m[0][0]
	return []int{whole.Start, whole.End}
}

// FindStringIndex is FindIndex on a string.
func (re *Regexp) FindStringIndex(s string) []int {
	return re.FindIndex([]byte(s))
}

// FindSubmatchIndex returns the leftmost match as flattened index
// pairs: pair 2*i, 2*i+1 spans group i, with slot 0 the whole match
// and -1,-1 for groups not exercised on the winning path. nil means
// no match.
func (re *Regexp) FindSubmatchIndex(b []byte) []int {
	m := re.Matches(b, 1)
	if m == nil {
		return nil
	}
	return flattenCaptures(m[0])
}

// FindAllIndex returns the spans of up to n matches; n < 0 means all.
func (re *Regexp) FindAllIndex(b []byte, n int) [][]int {
	matches := re.Matches(b, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, caps := range matches {
		out[i] = []int{caps[0].Start, caps[0].End}
	}
	return out
}

// FindAllSubmatchIndex returns up to n matches as flattened index
// pairs, in FindSubmatchIndex's layout; n < 0 means all.
func (re *Regexp) FindAllSubmatchIndex(b []byte, n int) [][]int {
	matches := re.Matches(b, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, caps := range matches {
		out[i] = flattenCaptures(caps)
	}
	return out
}

func flattenCaptures(caps matcher.Captures) []int {
	out := make([]int, 2*len(caps))
	for i, span := range caps {
		if span.IsValid() {
			out[2*i] = span.Start
			out[2*i+1] = span.End
		} else {
			out[2*i] = -1
			out[2*i+1] = -1
		}
	}
	return out
}

// Count returns the number of non-overlapping matches in b, at most n
// when n > 0.
func (re *Regexp) Count(b []byte, n int) int {
	return len(re.Matches(b, n))
}

// Split slices s around matches of the pattern.
//
// n > 0 returns at most n substrings, the last one the unsplit
// remainder; n == 0 returns nil; n < 0 returns all substrings.
func (re *Regexp) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	matches := re.Matches([]byte(s), -1)
	if len(matches) == 0 {
		return []string{s}
	}

	out := make([]string, 0, len(matches)+1)
	last := 0
	for _, caps := range matches {
		whole := caps[0]
		if n > 0 && len(out) >= n-1 {
			break
		}
		out = append(out, s[last:whole.Start])
		last = whole.End
	}
	return append(out, s[last:])
}

// ReplaceAllLiteral returns a copy of src with every match replaced
// by repl. The replacement is substituted directly.
func (re *Regexp) ReplaceAllLiteral(src, repl []byte) []byte {
	matches := re.Matches(src, -1)
	if len(matches) == 0 {
		return append([]byte(nil), src...)
	}

	out := make([]byte, 0, len(src))
	last := 0
	for _, caps := range matches {
		whole := caps[0]
		out = append(out, src[last:whole.Start]...)
		out = append(out, repl...)
		last = whole.End
	}
	return append(out, src[last:]...)
}

// ReplaceAllLiteralString is ReplaceAllLiteral on strings.
func (re *Regexp) ReplaceAllLiteralString(src, repl string) string {
	return string(re.ReplaceAllLiteral([]byte(src), []byte(repl)))
}

// QuoteMeta escapes every BRE metacharacter in text, yielding a
// pattern that matches the literal text. Only unescaped
// metacharacters exist in BRE, so `(`, `)`, `{`, `}`, `|`, `?` and
// `+` pass through unchanged.
func QuoteMeta(text string) string {
	const special = `\.*[]^$`

	n := 0
	for i := 0; i < len(text); i++ {
		if isSpecial(text[i], special) {
			n++
		}
	}
	if n == 0 {
		return text
	}

	out := make([]byte, 0, len(text)+n)
	for i := 0; i < len(text); i++ {
		if isSpecial(text[i], special) {
			out = append(out, '\\')
		}
		out = append(out, text[i])
	}
	return string(out)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
