// Package syntax compiles POSIX basic regular expressions (BRE) into the
// token tree consumed by the matcher.
//
// A compiled pattern is a list of alternatives, each an ordered sequence
// of Node values. A Node pairs a Token with the repetition Range that
// applies to it. Groups nest: a Group token carries its own list of
// alternatives, so the tree is recursive.
//
// The dialect is the classic C-library BRE flavor: `\(`...`\)` groups
// with `\|` alternation, `*` and the escaped
// repetition operators `\?`, `\+`, `\{m,n\}`, bracket expressions with
// named classes, and `\<`/`\>` word boundaries.
package syntax

// Op identifies the kind of a Token.
type Op uint8

const (
	// OpChar matches one literal byte.
	OpChar Op = iota

	// OpAny matches any byte ('.'); newline handling is a matcher flag.
	OpAny

	// OpOneOf matches a bracket expression like [abc] or [^[:digit:]].
	OpOneOf

	// OpStart is the zero-width '^' anchor.
	OpStart

	// OpEnd is the zero-width '$' anchor.
	OpEnd

	// OpWordStart is the zero-width '\<' boundary.
	OpWordStart

	// OpWordEnd is the zero-width '\>' boundary.
	OpWordEnd

	// OpInternalStart is a synthetic token used by substring search: it
	// consumes one byte while a starting position is still being sought.
	// The parser never emits it.
	OpInternalStart

	// OpGroup is a capturing group holding nested alternatives.
	OpGroup
)

// String returns a short printable name for the op.
func (op Op) String() string {
	switch op {
	case OpChar:
		return "Char"
	case OpAny:
		return "Any"
	case OpOneOf:
		return "OneOf"
	case OpStart:
		return "Start"
	case OpEnd:
		return "End"
	case OpWordStart:
		return "WordStart"
	case OpWordEnd:
		return "WordEnd"
	case OpInternalStart:
		return "InternalStart"
	case OpGroup:
		return "Group"
	}
	return "Unknown"
}

// Unbounded marks a repetition with no upper limit, like `*` or `\+`.
const Unbounded = -1

// Range bounds how many times the token it is attached to may repeat.
// Min <= Max holds whenever Max != Unbounded. `a` is Range{1, 1},
// `a*` is Range{0, Unbounded}, `a\{2,5\}` is Range{2, 5}.
type Range struct {
	Min int
	Max int
}

// Once is the default repetition: exactly one occurrence.
var Once = Range{Min: 1, Max: 1}

// ClassItem is one member of a bracket expression: either a literal
// byte or a named character class like [:digit:].
type ClassItem struct {
	// Ch is the literal byte when Class is nil.
	Ch byte

	// Class, when non-nil, is the membership predicate of a named class.
	Class func(byte) bool

	// Name is the class name ("digit", "alpha", ...) when Class is
	// non-nil. It exists for diagnostics and tree comparison; matching
	// uses only Class.
	Name string
}

// Matches reports whether b belongs to this item. Literal bytes fold
// ASCII case on both operands when foldCase is set; class predicates
// never fold.
func (ci ClassItem) Matches(b byte, foldCase bool) bool {
	if ci.Class != nil {
		return ci.Class(b)
	}
	if foldCase {
		return ci.Ch&^32 == b&^32
	}
	return ci.Ch == b
}

// Token is one compiled pattern element. Op selects the variant; the
// remaining fields are meaningful only for the ops noted on them.
type Token struct {
	Op Op

	// Ch is the literal byte for OpChar.
	Ch byte

	// Invert and Items describe an OpOneOf bracket expression.
	Invert bool
	Items  []ClassItem

	// GroupID and Alternatives describe an OpGroup. Group ids are dense
	// and assigned in pre-order; id 0 is reserved for the whole match.
	GroupID      int
	Alternatives [][]Node
}

// Node pairs a token with its repetition bounds.
type Node struct {
	Token Token
	Range Range
}

// CountGroups returns the number of OpGroup tokens anywhere in the
// tree. Callers size capture arrays with it.
func CountGroups(alternatives [][]Node) int {
	n := 0
	for _, alt := range alternatives {
		n += countGroupsSeq(alt)
	}
	return n
}

func countGroupsSeq(seq []Node) int {
	n := 0
	for i := range seq {
		if seq[i].Token.Op == OpGroup {
			n++
			n += CountGroups(seq[i].Token.Alternatives)
		}
	}
	return n
}
