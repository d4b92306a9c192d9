// Package ctype provides ASCII byte classification for the regex engine.
//
// These are the POSIX character classes used by bracket expressions like
// [[:digit:]], plus the word-boundary predicate used by \< and \>. All
// predicates are pure functions over single bytes; the engine is
// byte-oriented and has no Unicode semantics.
package ctype

// IsAlnum reports whether b is an ASCII letter or digit.
func IsAlnum(b byte) bool {
	return IsAlpha(b) || IsDigit(b)
}

// IsAlpha reports whether b is an ASCII letter.
func IsAlpha(b byte) bool {
	return IsLower(b) || IsUpper(b)
}

// IsBlank reports whether b is a space or tab.
func IsBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

// IsCntrl reports whether b is an ASCII control character.
func IsCntrl(b byte) bool {
	return b < 0x20 || b == 0x7f
}

// IsDigit reports whether b is an ASCII decimal digit.
func IsDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// IsGraph reports whether b is a visible ASCII character (printable,
// not space).
func IsGraph(b byte) bool {
	return b >= 0x21 && b <= 0x7e
}

// IsLower reports whether b is an ASCII lowercase letter.
func IsLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// IsPrint reports whether b is printable ASCII, including space.
func IsPrint(b byte) bool {
	return b >= 0x20 && b <= 0x7e
}

// IsPunct reports whether b is visible ASCII that is neither a letter
// nor a digit.
func IsPunct(b byte) bool {
	return IsGraph(b) && !IsAlnum(b)
}

// IsSpace reports whether b is ASCII whitespace: space, \t, \n, \v,
// \f or \r.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsUpper reports whether b is an ASCII uppercase letter.
func IsUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// IsXdigit reports whether b is an ASCII hexadecimal digit.
func IsXdigit(b byte) bool {
	return IsDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// IsWordBoundary reports whether b terminates a word: anything that is
// not alphanumeric and not an underscore. The \< and \> assertions
// treat start/end of input as boundaries; that case is handled by the
// caller, which only consults this predicate when a neighboring byte
// exists.
func IsWordBoundary(b byte) bool {
	return !IsAlnum(b) && b != '_'
}
