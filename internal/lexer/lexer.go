package lexer

import (
	"github.com/brambletree/langfront/internal/diagnostics"
)

// Lex scans source into a TokenizedBuffer, reporting any lexical errors
// through emitter. Lex always returns a usable buffer, even when the
// input is malformed: unrecognized bytes become Error tokens and
// unmatched brackets are left with no partner, so the parser and any
// other consumer never has to special-case a failed lex.
func Lex(filename string, source []byte, emitter diagnostics.Emitter) *TokenizedBuffer {
	l := &lexState{
		buffer:  newTokenizedBuffer(filename, source),
		source:  source,
		emitter: emitter,
	}
	l.run()
	return l.buffer
}

type lexState struct {
	buffer  *TokenizedBuffer
	source  []byte
	emitter diagnostics.Emitter

	pos int

	// openGroups is a stack of handles to opening grouping tokens still
	// awaiting their closing partner, innermost last.
	openGroups []TokenHandle
}

func (l *lexState) run() {
	n := len(l.source)
	for l.pos < n {
		if l.skipWhitespaceAndComments() {
			continue
		}
		if l.pos >= n {
			break
		}

		c := l.source[l.pos]
		switch {
		case IsDecimalDigit(c):
			l.lexNumber()
		case c == '"' || c == '#':
			if !l.lexString() {
				l.lexSymbolOrError()
			}
		case IsIdentifierStart(c):
			l.lexIdentifierOrKeyword()
		default:
			l.lexSymbolOrError()
		}
	}

	l.closeUnmatchedGroups()
	l.buffer.appendToken(EndOfFile, n, 0)
}

// skipWhitespaceAndComments advances past any run of whitespace and
// comments starting at l.pos, appending a Comment token for each
// comment found. It returns true if it advanced at all.
func (l *lexState) skipWhitespaceAndComments() bool {
	start := l.pos
	n := len(l.source)

	for l.pos < n {
		c := l.source[l.pos]
		switch {
		case IsSpace(c):
			l.pos++
		case c == '/' && l.pos+1 < n && l.source[l.pos+1] == '/':
			l.lexLineComment()
		case c == '/' && l.pos+1 < n && l.source[l.pos+1] == '*':
			l.lexBlockComment()
		default:
			return l.pos != start
		}
	}
	return l.pos != start
}

func (l *lexState) lexLineComment() {
	start := l.pos
	n := len(l.source)
	for l.pos < n && l.source[l.pos] != '\n' {
		l.pos++
	}
	l.buffer.appendToken(Comment, start, l.pos-start)
}

func (l *lexState) lexBlockComment() {
	start := l.pos
	n := len(l.source)
	depth := 0
	l.pos += 2 // consume the opening "/*"
	depth++

	for l.pos < n && depth > 0 {
		switch {
		case l.pos+1 < n && l.source[l.pos] == '/' && l.source[l.pos+1] == '*':
			depth++
			l.pos += 2
		case l.pos+1 < n && l.source[l.pos] == '*' && l.source[l.pos+1] == '/':
			depth--
			l.pos += 2
		default:
			l.pos++
		}
	}

	if depth > 0 {
		diagnostics.Emit(l.emitter, start, diagnostics.KindUnterminatedComment, diagnostics.Error,
			"Unterminated block comment.", nil)
	}
	l.buffer.appendToken(Comment, start, l.pos-start)
}

func (l *lexState) lexNumber() {
	start := l.pos
	lit, ok := LexNumericLiteral(l.source[l.pos:])
	if !ok {
		l.lexSymbolOrError()
		return
	}
	l.pos += len(lit.Text)

	value := lit.ComputeValue(l.emitter, start)
	kind := IntegerLiteral
	if !lit.IsInteger() {
		kind = RealLiteral
	}

	h := l.buffer.appendToken(kind, start, len(lit.Text))
	switch value.Kind {
	case NumericInteger:
		l.buffer.setIntegerValue(h, value.Integer)
	case NumericReal:
		l.buffer.setRealValue(h, value.Real)
	case NumericUnrecoverableError:
		// A diagnostic was already emitted by ComputeValue; the token
		// still carries its literal span so the parser and any
		// formatting tool can report on it, just with no side-table
		// value.
	}
}

func (l *lexState) lexString() bool {
	lit, ok := LexStringLiteral(l.source[l.pos:])
	if !ok {
		return false
	}

	start := l.pos
	l.pos += len(lit.Text)

	contentBase := start + lit.ContentOffset
	if !lit.Terminated {
		diagnostics.Emit(l.emitter, start, diagnostics.KindInvalidString, diagnostics.Error,
			"String literal is missing its closing delimiter.", nil)
	}
	value := lit.ComputeValue(l.emitter, contentBase)

	h := l.buffer.appendToken(StringLiteral, start, len(lit.Text))
	l.buffer.setStringValue(h, value)
	return true
}

func (l *lexState) lexIdentifierOrKeyword() {
	start := l.pos
	n := len(l.source)
	l.pos++
	for l.pos < n && IsIdentifierContinue(l.source[l.pos]) {
		l.pos++
	}
	text := string(l.source[start:l.pos])

	if kind, ok := sizedTypeLiteralKind(text); ok {
		l.buffer.appendToken(kind, start, l.pos-start)
		return
	}

	kind := LookupKeyword(text)
	l.buffer.appendToken(kind, start, l.pos-start)
	if kind == Identifier {
		l.buffer.internIdentifier(text)
	}
}

// sizedTypeLiteralKind recognizes i<digits>, u<digits>, and f<digits>
// spellings such as i32, u64, f32.
func sizedTypeLiteralKind(text string) (TokenKind, bool) {
	if len(text) < 2 {
		return 0, false
	}
	var kind TokenKind
	switch text[0] {
	case 'i':
		kind = IntTypeLiteral
	case 'u':
		kind = UnsignedIntTypeLiteral
	case 'f':
		kind = FloatTypeLiteral
	default:
		return 0, false
	}
	for i := 1; i < len(text); i++ {
		if !IsDecimalDigit(text[i]) {
			return 0, false
		}
	}
	return kind, true
}

func (l *lexState) lexSymbolOrError() {
	start := l.pos
	rest := l.source[l.pos:]

	for _, kind := range symbolSpellings {
		spelling := kind.FixedSpelling()
		if len(spelling) <= len(rest) && string(rest[:len(spelling)]) == spelling {
			l.pos += len(spelling)
			h := l.buffer.appendToken(kind, start, len(spelling))
			l.recordGrouping(h, kind)
			return
		}
	}

	diagnostics.Emit(l.emitter, start, diagnostics.KindInvalidCharacter, diagnostics.Error,
		"Unrecognized character in input.", map[string]any{"byte": l.source[start]})
	l.pos++
	l.buffer.appendToken(Error, start, l.pos-start)
}

func (l *lexState) recordGrouping(h TokenHandle, kind TokenKind) {
	switch {
	case kind.IsOpeningSymbol():
		l.openGroups = append(l.openGroups, h)

	case kind.IsClosingSymbol():
		if len(l.openGroups) == 0 {
			diagnostics.Emit(l.emitter, l.buffer.TokenAt(h).Offset, diagnostics.KindMismatchedBracket, diagnostics.Error,
				"Closing symbol without a matching opening symbol.", nil)
			return
		}

		top := l.openGroups[len(l.openGroups)-1]
		if l.buffer.Kind(top) != kind.OpeningSymbol() {
			diagnostics.Emit(l.emitter, l.buffer.TokenAt(h).Offset, diagnostics.KindMismatchedBracket, diagnostics.Error,
				"Closing symbol does not match the innermost open grouping symbol.", nil)
			return
		}

		l.openGroups = l.openGroups[:len(l.openGroups)-1]
		l.buffer.setPartner(top, h)
		l.buffer.setPartner(h, top)
	}
}

// closeUnmatchedGroups reports every opening symbol still on the stack
// at end of file; they remain unmatched (Token.Partner stays noPartner).
func (l *lexState) closeUnmatchedGroups() {
	for _, h := range l.openGroups {
		diagnostics.Emit(l.emitter, l.buffer.TokenAt(h).Offset, diagnostics.KindMismatchedBracket, diagnostics.Error,
			"Opening symbol has no matching closing symbol before end of file.", nil)
	}
	l.openGroups = nil
}
