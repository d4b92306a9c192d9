package syntax

import "fmt"

// ErrorKind classifies pattern compilation errors.
type ErrorKind uint8

const (
	// KindUnexpectedEOF indicates the pattern ended mid-construct.
	KindUnexpectedEOF ErrorKind = iota

	// KindEmptyRepetition indicates `\{\}` with no count.
	KindEmptyRepetition

	// KindExpected indicates a specific byte was required but missing.
	KindExpected

	// KindIllegalRange indicates a repetition with min > max.
	KindIllegalRange

	// KindIntegerOverflow indicates a repetition count too large.
	KindIntegerOverflow

	// KindLeadingRepetition indicates a repetition operator with
	// nothing to repeat, like `*abc` or `\{2\}`.
	KindLeadingRepetition

	// KindUnclosedRepetition indicates `\{` without a closing brace.
	KindUnclosedRepetition

	// KindUnknownClass indicates an unregistered [:name:] class.
	KindUnknownClass

	// KindUnknownCollation indicates a malformed [[.x.]] or [[=x=]]
	// element.
	KindUnknownCollation
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindUnexpectedEOF:
		return "UnexpectedEOF"
	case KindEmptyRepetition:
		return "EmptyRepetition"
	case KindExpected:
		return "Expected"
	case KindIllegalRange:
		return "IllegalRange"
	case KindIntegerOverflow:
		return "IntegerOverflow"
	case KindLeadingRepetition:
		return "LeadingRepetition"
	case KindUnclosedRepetition:
		return "UnclosedRepetition"
	case KindUnknownClass:
		return "UnknownClass"
	case KindUnknownCollation:
		return "UnknownCollation"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", uint8(k))
	}
}

// ParseError describes why a pattern failed to compile.
type ParseError struct {
	Kind ErrorKind

	// Want and Got carry the expected and encountered bytes for
	// KindExpected. Got is -1 at end of input.
	Want byte
	Got  int

	// Class is the offending class name for KindUnknownClass.
	Class string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case KindUnexpectedEOF:
		return "regex syntax: unexpected end of pattern"
	case KindEmptyRepetition:
		return "regex syntax: repetition with no count"
	case KindExpected:
		if e.Got < 0 {
			return fmt.Sprintf("regex syntax: expected %q, got end of pattern", e.Want)
		}
		return fmt.Sprintf("regex syntax: expected %q, got %q", e.Want, byte(e.Got))
	case KindIllegalRange:
		return "regex syntax: repetition minimum exceeds maximum"
	case KindIntegerOverflow:
		return "regex syntax: repetition count overflows"
	case KindLeadingRepetition:
		return "regex syntax: repetition operator with nothing to repeat"
	case KindUnclosedRepetition:
		return "regex syntax: unclosed repetition"
	case KindUnknownClass:
		return fmt.Sprintf("regex syntax: unknown character class [:%s:]", e.Class)
	case KindUnknownCollation:
		return "regex syntax: unknown collation element"
	default:
		return fmt.Sprintf("regex syntax: %s", e.Kind)
	}
}

// Is reports whether target is a ParseError of the same kind, so tests
// can match on kind with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
