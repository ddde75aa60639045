package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/brambletree/langfront/internal/diagnostics"
)

const multiLineIndicator = `"""`

// multiLineStringLiteralPrefixSize returns the length of the multi-line
// opening delimiter (the `"""`, an optional language tag, and the
// terminating newline) if text begins with one, or 0 if it does not.
func multiLineStringLiteralPrefixSize(text []byte) int {
	if !strings.HasPrefix(string(text), multiLineIndicator) {
		return 0
	}

	rest := text[len(multiLineIndicator):]
	for i, b := range rest {
		if b == '#' || b == '\n' || b == '"' {
			if b != '\n' {
				return 0
			}
			return len(multiLineIndicator) + i + 1
		}
	}
	return 0
}

// LexedStringLiteral is the transient recognition result for one string
// literal, before decoding.
type LexedStringLiteral struct {
	// Text is the literal's full span, including delimiters and any
	// leading '#'s.
	Text string
	// Content is Text with the delimiters (and leading '#'s) stripped.
	Content string
	// ContentOffset is the byte offset of Content's first byte within
	// Text, i.e. the length of the opening delimiter (leading '#'s plus
	// the quote or triple-quote and, for a multi-line literal, its
	// trailing newline).
	ContentOffset int
	// HashLevel is the number of '#' on each side of the delimiters.
	HashLevel int
	MultiLine bool
	// Terminated reports whether a matching terminator was found.
	Terminated bool
}

// LexStringLiteral attempts to recognize a string literal at the start
// of text. It returns ok=false and consumes nothing if text does not
// begin with a (possibly hash-prefixed) string delimiter.
func LexStringLiteral(text []byte) (LexedStringLiteral, bool) {
	cursor := 0
	n := len(text)

	for cursor < n && text[cursor] == '#' {
		cursor++
	}
	hashLevel := cursor

	terminator := []byte(`"`)
	escape := []byte(`\`)

	multiLinePrefixSize := multiLineStringLiteralPrefixSize(text[hashLevel:])
	multiLine := multiLinePrefixSize > 0
	switch {
	case multiLine:
		cursor += multiLinePrefixSize
		terminator = []byte(multiLineIndicator)
	case cursor < n && text[cursor] == '"':
		cursor++
	default:
		return LexedStringLiteral{}, false
	}

	prefixLen := cursor

	for i := 0; i < hashLevel; i++ {
		terminator = append(terminator, '#')
		escape = append(escape, '#')
	}

	for ; cursor < n; cursor++ {
		switch text[cursor] {
		case '\\':
			if hasPrefixAt(text, cursor, escape) {
				cursor += len(escape)
				if cursor >= n || (!multiLine && text[cursor] == '\n') {
					span := text[:cursor]
					return LexedStringLiteral{
						Text:          string(span),
						Content:       string(span[prefixLen:]),
						ContentOffset: prefixLen,
						HashLevel:     hashLevel,
						MultiLine:     multiLine,
					}, true
				}
				// cursor now points at the one byte the escape
				// consumes; leave it there so the outer loop's
				// cursor++ advances past it without the switch
				// re-examining it as a potential terminator.
			}
		case '\n':
			if !multiLine {
				span := text[:cursor]
				return LexedStringLiteral{
					Text:          string(span),
					Content:       string(span[prefixLen:]),
					ContentOffset: prefixLen,
					HashLevel:     hashLevel,
					MultiLine:     multiLine,
				}, true
			}
		case '"':
			if len(terminator) == 1 || hasPrefixAt(text, cursor, terminator) {
				end := cursor + len(terminator)
				return LexedStringLiteral{
					Text:          string(text[:end]),
					Content:       string(text[prefixLen:cursor]),
					ContentOffset: prefixLen,
					HashLevel:     hashLevel,
					MultiLine:     multiLine,
					Terminated:    true,
				}, true
			}
		}
	}

	return LexedStringLiteral{
		Text:          string(text),
		Content:       string(text[prefixLen:]),
		ContentOffset: prefixLen,
		HashLevel:     hashLevel,
		MultiLine:     multiLine,
	}, true
}

func hasPrefixAt(text []byte, at int, prefix []byte) bool {
	if at+len(prefix) > len(text) {
		return false
	}
	for i, b := range prefix {
		if text[at+i] != b {
			return false
		}
	}
	return true
}

// checkIndent finds the whitespace-only run that makes up content's last
// line: the indentation that lines up with the closing """ and is
// stripped from every other line of the literal. It reports a
// diagnostic and returns only the leading whitespace of that line if
// anything else appears before the closing delimiter.
func checkIndent(emitter diagnostics.Emitter, contentBase int, content string) string {
	lastLineStart := strings.LastIndexByte(content, '\n') + 1
	lastLine := content[lastLineStart:]

	for i := 0; i < len(lastLine); i++ {
		if !IsHorizontalWhitespace(lastLine[i]) {
			diagnostics.Emit(emitter, contentBase+lastLineStart+i, diagnostics.KindInvalidString, diagnostics.Error,
				`Only whitespace is permitted before the closing """ of a multi-line string.`, nil)
			return lastLine[:i]
		}
	}
	return lastLine
}

// ComputeValue decodes a LexedStringLiteral's content into its string
// value. contentBase is the absolute byte offset of
// l.Content's first byte in the source buffer, used to translate
// in-content indices into absolute diagnostic locations. If the literal
// was never terminated, ComputeValue returns "" without emitting any
// diagnostic of its own — termination is the lexer's responsibility to
// report.
func (l LexedStringLiteral) ComputeValue(emitter diagnostics.Emitter, contentBase int) string {
	if !l.Terminated {
		return ""
	}

	var indent string
	if l.MultiLine {
		indent = checkIndent(emitter, contentBase, l.Content)
	}

	return expandEscapeSequencesAndRemoveIndent(emitter, contentBase, l.Content, l.HashLevel, indent)
}

func expandEscapeSequencesAndRemoveIndent(emitter diagnostics.Emitter, base int, contents string, hashLevel int, indent string) string {
	escape := "\\" + strings.Repeat("#", hashLevel)

	var result strings.Builder
	result.Grow(len(contents))

	pos := 0 // index into contents / offset base+pos into the source
	for {
		if strings.HasPrefix(contents[pos:], indent) {
			pos += len(indent)
		} else {
			lineStart := pos
			for pos < len(contents) && IsHorizontalWhitespace(contents[pos]) {
				pos++
			}
			if pos >= len(contents) || contents[pos] != '\n' {
				diagnostics.Emit(emitter, base+lineStart, diagnostics.KindInvalidString, diagnostics.Error,
					`Indentation does not match that of the closing """ in multi-line string literal.`, nil)
			}
		}

		for {
			end := findEndOfRegularText(contents, pos)
			result.WriteString(contents[pos:end])
			pos = end

			if pos >= len(contents) {
				return result.String()
			}

			if contents[pos] == '\n' {
				trimTrailingSpaceOnLine(&result)
				result.WriteByte('\n')
				pos++
				break
			}

			if IsHorizontalWhitespace(contents[pos]) {
				afterSpace := pos
				for afterSpace < len(contents) && IsHorizontalWhitespace(contents[afterSpace]) {
					afterSpace++
				}
				if afterSpace >= len(contents) || contents[afterSpace] != '\n' {
					diagnostics.Emit(emitter, base+pos, diagnostics.KindInvalidString, diagnostics.Error,
						"Whitespace other than plain space must be expressed with an escape sequence in a string literal.", nil)
					result.WriteString(contents[pos:afterSpace])
				}
				pos = afterSpace
				continue
			}

			if !strings.HasPrefix(contents[pos:], escape) {
				result.WriteByte(contents[pos])
				pos++
				continue
			}
			pos += len(escape)

			if pos < len(contents) && contents[pos] == '\n' {
				pos++
				break
			}

			pos = expandAndConsumeEscapeSequence(emitter, base, contents, pos, &result)
		}
	}
}

// findEndOfRegularText returns the index of the first byte at or after
// pos that is '\n', '\\', or non-space horizontal whitespace.
func findEndOfRegularText(contents string, pos int) int {
	for i := pos; i < len(contents); i++ {
		c := contents[i]
		if c == '\n' || c == '\\' || (IsHorizontalWhitespace(c) && c != ' ') {
			return i
		}
	}
	return len(contents)
}

// trimTrailingSpaceOnLine removes trailing whitespace from the output
// built so far, stopping at (and not crossing) a prior '\n'.
func trimTrailingSpaceOnLine(result *strings.Builder) {
	s := result.String()
	end := len(s)
	for end > 0 && s[end-1] != '\n' && IsSpace(s[end-1]) {
		end--
	}
	if end == len(s) {
		return
	}
	result.Reset()
	result.WriteString(s[:end])
}

// expandAndConsumeEscapeSequence dispatches on contents[pos], the byte
// following an escape introducer, appending its expansion to result and
// returning the index just past everything the escape consumed.
func expandAndConsumeEscapeSequence(emitter diagnostics.Emitter, base int, contents string, pos int, result *strings.Builder) int {
	first := contents[pos]
	pos++

	switch first {
	case 't':
		result.WriteByte('\t')
		return pos
	case 'n':
		result.WriteByte('\n')
		return pos
	case 'r':
		result.WriteByte('\r')
		return pos
	case '"':
		result.WriteByte('"')
		return pos
	case '\'':
		result.WriteByte('\'')
		return pos
	case '\\':
		result.WriteByte('\\')
		return pos
	case '0':
		result.WriteByte(0)
		if pos < len(contents) && IsDecimalDigit(contents[pos]) {
			diagnostics.Emit(emitter, base+pos, diagnostics.KindInvalidString, diagnostics.Error,
				`Decimal digit follows \0 escape sequence. Use \x00 instead of \0 if the next character is a digit.`, nil)
		}
		return pos
	case 'x':
		if pos+1 < len(contents) && isUpperHexDigitOrDecimal(contents[pos]) && isUpperHexDigitOrDecimal(contents[pos+1]) {
			result.WriteByte(hexNibbles(contents[pos], contents[pos+1]))
			return pos + 2
		}
		diagnostics.Emit(emitter, base+pos, diagnostics.KindInvalidString, diagnostics.Error,
			`Escape sequence \x must be followed by two uppercase hexadecimal digits, for example \x0F.`, nil)
	case 'u':
		if pos < len(contents) && contents[pos] == '{' {
			digitsStart := pos + 1
			digitsEnd := digitsStart
			for digitsEnd < len(contents) && isUpperHexDigitOrDecimal(contents[digitsEnd]) {
				digitsEnd++
			}
			if digitsEnd > digitsStart && digitsEnd < len(contents) && contents[digitsEnd] == '}' {
				if ok := expandUnicodeEscapeSequence(emitter, base+digitsStart, contents[digitsStart:digitsEnd], result); ok {
					return digitsEnd + 1
				}
				break
			}
		}
		diagnostics.Emit(emitter, base+pos, diagnostics.KindInvalidString, diagnostics.Error,
			`Escape sequence \u must be followed by a braced sequence of uppercase hexadecimal digits, for example \u{70AD}.`, nil)
	default:
		diagnostics.Emit(emitter, base+pos-1, diagnostics.KindInvalidString, diagnostics.Error,
			"Unrecognized escape sequence '"+string(first)+"'.", map[string]any{"byte": first})
	}

	result.WriteByte(first)
	return pos
}

// isUpperHexDigitOrDecimal reports whether c is a digit of an escape
// sequence: '0'-'9' or 'A'-'F'.
func isUpperHexDigitOrDecimal(c byte) bool {
	return IsDecimalDigit(c) || IsUpperHexDigit(c)
}

func hexNibbles(hi, lo byte) byte {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) byte {
	if IsDecimalDigit(c) {
		return c - '0'
	}
	return c - 'A' + 10
}

// expandUnicodeEscapeSequence decodes the hex digits of a `\u{...}`
// escape into a code point and appends its UTF-8 encoding to result.
func expandUnicodeEscapeSequence(emitter diagnostics.Emitter, digitsBase int, digits string, result *strings.Builder) bool {
	var codePoint int64
	for i := 0; i < len(digits); i++ {
		codePoint = codePoint*16 + int64(hexNibble(digits[i]))
	}

	if codePoint > 0x10FFFF {
		diagnostics.Emit(emitter, digitsBase, diagnostics.KindInvalidString, diagnostics.Error,
			`Code point specified by \u{...} escape is greater than 0x10FFFF.`, nil)
		return false
	}
	if codePoint >= 0xD800 && codePoint < 0xE000 {
		diagnostics.Emit(emitter, digitsBase, diagnostics.KindInvalidString, diagnostics.Error,
			`Code point specified by \u{...} escape is a surrogate character.`, nil)
		return false
	}

	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], rune(codePoint))
	result.Write(buf[:n])
	return true
}
