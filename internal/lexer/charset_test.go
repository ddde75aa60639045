package lexer

import "testing"

func TestCharacterPredicates(t *testing.T) {
	tests := []struct {
		name string
		fn   func(byte) bool
		yes  string
		no   string
	}{
		{"IsDecimalDigit", IsDecimalDigit, "0123456789", "abcXYZ_ \t"},
		{"IsBinaryDigit", IsBinaryDigit, "01", "23456789abc"},
		{"IsLowerHexDigit", IsLowerHexDigit, "abcdef", "ABCDEF0123456789g"},
		{"IsUpperHexDigit", IsUpperHexDigit, "ABCDEF", "abcdef0123456789g"},
		{"IsHexDigit", IsHexDigit, "0123456789abcdefABCDEF", "gGzZ_ "},
		{"IsAlpha", IsAlpha, "abcXYZ", "0123_ "},
		{"IsLower", IsLower, "abcxyz", "ABCXYZ0123_ "},
		{"IsAlnum", IsAlnum, "abcXYZ0123", "_ \t"},
		{"IsIdentifierStart", IsIdentifierStart, "abcXYZ_", "0123 "},
		{"IsIdentifierContinue", IsIdentifierContinue, "abcXYZ_0123", " \t"},
		{"IsHorizontalWhitespace", IsHorizontalWhitespace, " \t", "\n\r\v\fa"},
		{"IsSpace", IsSpace, " \t\n\r\v\f", "a0_"},
	}

	for _, tt := range tests {
		for i := 0; i < len(tt.yes); i++ {
			if !tt.fn(tt.yes[i]) {
				t.Errorf("%s(%q) = false, want true", tt.name, tt.yes[i])
			}
		}
		for i := 0; i < len(tt.no); i++ {
			if tt.fn(tt.no[i]) {
				t.Errorf("%s(%q) = true, want false", tt.name, tt.no[i])
			}
		}
	}
}
