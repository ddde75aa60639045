package lexer

// Character classification over single bytes. These are pure,
// constant-time predicates with no error conditions. The lexer only
// ever needs to classify single ASCII bytes, never full Unicode code
// points, so there is no reason to decode runes before asking "is this
// a digit".

// IsDecimalDigit reports whether b is one of '0'-'9'.
func IsDecimalDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// IsBinaryDigit reports whether b is '0' or '1'.
func IsBinaryDigit(b byte) bool {
	return b == '0' || b == '1'
}

// IsLowerHexDigit reports whether b is one of 'a'-'f'.
func IsLowerHexDigit(b byte) bool {
	return b >= 'a' && b <= 'f'
}

// IsUpperHexDigit reports whether b is one of 'A'-'F'.
func IsUpperHexDigit(b byte) bool {
	return b >= 'A' && b <= 'F'
}

// IsHexDigit reports whether b is a decimal digit or a hex letter of
// either case.
func IsHexDigit(b byte) bool {
	return IsDecimalDigit(b) || IsLowerHexDigit(b) || IsUpperHexDigit(b)
}

// IsAlpha reports whether b is an ASCII letter.
func IsAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsLower reports whether b is a lowercase ASCII letter.
func IsLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// IsAlnum reports whether b is an ASCII letter or decimal digit.
func IsAlnum(b byte) bool {
	return IsAlpha(b) || IsDecimalDigit(b)
}

// IsIdentifierStart reports whether b can start an identifier: a letter
// or underscore.
func IsIdentifierStart(b byte) bool {
	return IsAlpha(b) || b == '_'
}

// IsIdentifierContinue reports whether b can continue an identifier
// after its first byte: a letter, digit, or underscore.
func IsIdentifierContinue(b byte) bool {
	return IsAlnum(b) || b == '_'
}

// IsHorizontalWhitespace reports whether b is a space or tab.
func IsHorizontalWhitespace(b byte) bool {
	return b == ' ' || b == '\t'
}

// IsSpace reports whether b is any whitespace byte: horizontal
// whitespace, newline, carriage return, vertical tab, or form feed.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
