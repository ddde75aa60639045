package lexer

import (
	"testing"

	"github.com/brambletree/langfront/internal/diagnostics"
)

func lexAll(t *testing.T, src string) (*TokenizedBuffer, *diagnostics.CollectingEmitter) {
	t.Helper()
	e := &diagnostics.CollectingEmitter{}
	buf := Lex("test.txt", []byte(src), e)
	return buf, e
}

func kindsOf(buf *TokenizedBuffer) []TokenKind {
	var out []TokenKind
	for _, h := range buf.Tokens() {
		out = append(out, buf.Kind(h))
	}
	return out
}

func TestLex_EmptyInputProducesOnlyEndOfFile(t *testing.T) {
	buf, e := lexAll(t, "")
	if got := kindsOf(buf); len(got) != 1 || got[0] != EndOfFile {
		t.Fatalf("kinds = %v, want [EndOfFile]", got)
	}
	if len(e.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", e.Diagnostics)
	}
}

func TestLex_KeywordsAndIdentifiers(t *testing.T) {
	buf, e := lexAll(t, "let x = fn")
	want := []TokenKind{Let, Identifier, Assign, Fn, EndOfFile}
	got := kindsOf(buf)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if len(e.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", e.Diagnostics)
	}
}

func TestLex_SizedTypeLiterals(t *testing.T) {
	buf, _ := lexAll(t, "i32 u64 f32 x1")
	want := []TokenKind{IntTypeLiteral, UnsignedIntTypeLiteral, FloatTypeLiteral, Identifier, EndOfFile}
	got := kindsOf(buf)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLex_Punctuation_LongestMatch(t *testing.T) {
	buf, _ := lexAll(t, "a::b->c=>d==e!=f")
	want := []TokenKind{
		Identifier, ColonColon, Identifier, Arrow, Identifier, FatArrow,
		Identifier, Equal, Identifier, NotEqual, Identifier, EndOfFile,
	}
	got := kindsOf(buf)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLex_LineComment(t *testing.T) {
	buf, e := lexAll(t, "let x // trailing comment\n")
	want := []TokenKind{Let, Identifier, Comment, EndOfFile}
	got := kindsOf(buf)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if len(e.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", e.Diagnostics)
	}
}

func TestLex_NestedBlockComment(t *testing.T) {
	buf, e := lexAll(t, "/* outer /* inner */ still-outer */ x")
	want := []TokenKind{Comment, Identifier, EndOfFile}
	got := kindsOf(buf)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if len(e.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", e.Diagnostics)
	}
}

func TestLex_UnterminatedBlockComment(t *testing.T) {
	_, e := lexAll(t, "/* never closed")
	if !e.HasKind(diagnostics.KindUnterminatedComment) {
		t.Errorf("expected KindUnterminatedComment, got %v", e.Kinds())
	}
}

func TestLex_MatchedBrackets(t *testing.T) {
	buf, e := lexAll(t, "fn f(x: i32) { [1] }")
	if len(e.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", e.Diagnostics)
	}

	var opens, closes []TokenHandle
	for _, h := range buf.Tokens() {
		switch {
		case buf.Kind(h).IsOpeningSymbol():
			opens = append(opens, h)
		case buf.Kind(h).IsClosingSymbol():
			closes = append(closes, h)
		}
	}
	if len(opens) != 3 || len(closes) != 3 {
		t.Fatalf("opens = %d, closes = %d, want 3 and 3", len(opens), len(closes))
	}
	for _, open := range opens {
		partner, ok := buf.Partner(open)
		if !ok {
			t.Errorf("token %v has no partner", buf.Kind(open))
			continue
		}
		if buf.Kind(partner) != buf.Kind(open).ClosingSymbol() {
			t.Errorf("token %v partnered with %v, want %v", buf.Kind(open), buf.Kind(partner), buf.Kind(open).ClosingSymbol())
		}
	}
}

func TestLex_MismatchedBracket(t *testing.T) {
	_, e := lexAll(t, "(]")
	if !e.HasKind(diagnostics.KindMismatchedBracket) {
		t.Errorf("expected KindMismatchedBracket, got %v", e.Kinds())
	}
}

func TestLex_UnmatchedOpenAtEOF(t *testing.T) {
	_, e := lexAll(t, "(((")
	count := 0
	for _, k := range e.Kinds() {
		if k == diagnostics.KindMismatchedBracket {
			count++
		}
	}
	if count != 3 {
		t.Errorf("got %d KindMismatchedBracket diagnostics, want 3", count)
	}
}

func TestLex_UnrecognizedCharacter(t *testing.T) {
	buf, e := lexAll(t, "a $ b")
	want := []TokenKind{Identifier, Error, Identifier, EndOfFile}
	got := kindsOf(buf)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !e.HasKind(diagnostics.KindInvalidCharacter) {
		t.Errorf("expected KindInvalidCharacter, got %v", e.Kinds())
	}
}

func TestLex_StringLiteralValue(t *testing.T) {
	buf, e := lexAll(t, `"hello\nworld"`)
	if len(e.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", e.Diagnostics)
	}
	tokens := buf.Tokens()
	if len(tokens) != 2 || buf.Kind(tokens[0]) != StringLiteral {
		t.Fatalf("kinds = %v, want [StringLiteral EndOfFile]", kindsOf(buf))
	}
	if got := buf.StringValue(tokens[0]); got != "hello\nworld" {
		t.Errorf("StringValue = %q, want %q", got, "hello\nworld")
	}
}

func TestLex_NumericLiteralValues(t *testing.T) {
	buf, e := lexAll(t, "42 1.5e+2")
	if len(e.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", e.Diagnostics)
	}
	tokens := buf.Tokens()
	if buf.Kind(tokens[0]) != IntegerLiteral {
		t.Fatalf("tokens[0] kind = %v, want IntegerLiteral", buf.Kind(tokens[0]))
	}
	if buf.IntegerValue(tokens[0]).Value.Int64() != 42 {
		t.Errorf("IntegerValue = %v, want 42", buf.IntegerValue(tokens[0]).Value)
	}
	if buf.Kind(tokens[1]) != RealLiteral {
		t.Fatalf("tokens[1] kind = %v, want RealLiteral", buf.Kind(tokens[1]))
	}
}

func TestLex_TextRoundTrip(t *testing.T) {
	src := "let x = 42;"
	buf, _ := lexAll(t, src)
	for _, h := range buf.Tokens() {
		if buf.Kind(h) == EndOfFile {
			continue
		}
		tok := buf.TokenAt(h)
		if got := src[tok.Offset : tok.Offset+tok.Length]; got != buf.Text(h) {
			t.Errorf("Text(%v) = %q, offset slice = %q", h, buf.Text(h), got)
		}
	}
}
