package lexer

import "math/big"

// noPartner is the sentinel stored in Token.Partner for tokens that have
// no grouping partner at all, and for grouping tokens that the bracket
// stack could not match.
const noPartner = -1

// noValue is the sentinel stored in Token.ValueIndex for tokens that do
// not carry a decoded literal value.
const noValue = -1

// Token is one entry in a TokenizedBuffer's token storage. Tokens are
// created once by the lexer and never renumbered; a Token's identity is
// its index into the buffer, which TokenHandle carries. TokenizedBuffer
// keeps whole Token records in a single slice; its fields are not split
// into parallel per-field arrays.
type Token struct {
	Kind TokenKind
	// Offset is the byte offset of the token's first byte.
	Offset int
	// Length is the token's byte length, so its span is
	// source[Offset : Offset+Length].
	Length int
	// Partner is, for a grouping token, the index of its matched
	// counterpart token, or noPartner if it is unmatched.
	Partner int
	// ValueIndex is, for IntegerLiteral/RealLiteral/StringLiteral
	// tokens, the index into the matching TokenizedBuffer side-table,
	// or noValue otherwise.
	ValueIndex int
}

// TokenHandle identifies a Token by its index into a TokenizedBuffer.
// Kept as a distinct type, rather than a bare int, so call sites can't
// accidentally mix up a token index with some other integer count.
type TokenHandle int

// IntegerValue is the decoded value of an integer literal: its
// mathematical value under its radix.
type IntegerValue struct {
	Value *big.Int
}

// RealValue is the decoded value of a real (fractional or exponential)
// literal: mantissa * radix^exponent. Radix-16 reals are normalized to
// binary radix 2, with Exponent already scaled to match
// (LexedNumericLiteral.ComputeValue does this scaling).
type RealValue struct {
	Radix    int // 2 or 10
	Mantissa *big.Int
	Exponent *big.Int // signed
}

// TokenizedBuffer is the lexer's output: an ordered sequence of Tokens
// plus the side-tables their ValueIndex fields point into. It owns its
// tokens and side-tables, and borrows (does not copy) the source text it
// was lexed from.
//
// Tokens are immutable after Lex returns; nothing downstream renumbers or
// removes a token once it has been appended.
type TokenizedBuffer struct {
	filename string
	source   []byte

	tokens []Token

	integerValues []IntegerValue
	realValues    []RealValue
	stringValues  []string

	identifiers    []string
	identifierIdx  map[string]int
}

func newTokenizedBuffer(filename string, source []byte) *TokenizedBuffer {
	return &TokenizedBuffer{
		filename:      filename,
		source:        source,
		identifierIdx: make(map[string]int),
	}
}

// Filename returns the name of the file this buffer was lexed from.
func (b *TokenizedBuffer) Filename() string {
	return b.filename
}

// Source returns the buffer's underlying source bytes. Callers must not
// mutate the returned slice.
func (b *TokenizedBuffer) Source() []byte {
	return b.source
}

// Size returns the number of tokens in the buffer, including the
// trailing EndOfFile token.
func (b *TokenizedBuffer) Size() int {
	return len(b.tokens)
}

// TokenAt returns the Token at handle.
func (b *TokenizedBuffer) TokenAt(h TokenHandle) Token {
	return b.tokens[h]
}

// Tokens returns an iterator range as a plain slice of handles, in
// lexical order, for callers that want to range over the whole stream.
func (b *TokenizedBuffer) Tokens() []TokenHandle {
	out := make([]TokenHandle, len(b.tokens))
	for i := range out {
		out[i] = TokenHandle(i)
	}
	return out
}

// Text returns the exact source bytes a token spans.
func (b *TokenizedBuffer) Text(h TokenHandle) string {
	t := b.tokens[h]
	return string(b.source[t.Offset : t.Offset+t.Length])
}

// Kind returns a token's TokenKind.
func (b *TokenizedBuffer) Kind(h TokenHandle) TokenKind {
	return b.tokens[h].Kind
}

// Partner returns the handle of a grouping token's matched counterpart,
// and ok=false if it has none (it is unmatched, or not a grouping
// token).
func (b *TokenizedBuffer) Partner(h TokenHandle) (TokenHandle, bool) {
	p := b.tokens[h].Partner
	if p == noPartner {
		return 0, false
	}
	return TokenHandle(p), true
}

// IntegerValue returns the decoded value of an IntegerLiteral token. It
// panics if h's token carries no value (any non-literal token, or an
// integer literal that failed validation); for a token of another
// literal kind it returns an unrelated entry. Callers are expected to
// check Kind first.
func (b *TokenizedBuffer) IntegerValue(h TokenHandle) IntegerValue {
	return b.integerValues[b.tokens[h].ValueIndex]
}

// RealValue returns the decoded value of a RealLiteral token.
func (b *TokenizedBuffer) RealValue(h TokenHandle) RealValue {
	return b.realValues[b.tokens[h].ValueIndex]
}

// StringValue returns the decoded value of a StringLiteral token.
func (b *TokenizedBuffer) StringValue(h TokenHandle) string {
	return b.stringValues[b.tokens[h].ValueIndex]
}

// internIdentifier returns a stable index for text in the identifier
// intern table, adding it if this is the first time it has been seen.
func (b *TokenizedBuffer) internIdentifier(text string) int {
	if idx, ok := b.identifierIdx[text]; ok {
		return idx
	}
	idx := len(b.identifiers)
	b.identifiers = append(b.identifiers, text)
	b.identifierIdx[text] = idx
	return idx
}

// appendToken records a new token and returns its handle. The token
// starts with no partner and no value; the lexer's main loop sets those
// afterwards through setPartner and the set*Value helpers.
func (b *TokenizedBuffer) appendToken(kind TokenKind, offset, length int) TokenHandle {
	b.tokens = append(b.tokens, Token{
		Kind:       kind,
		Offset:     offset,
		Length:     length,
		Partner:    noPartner,
		ValueIndex: noValue,
	})
	return TokenHandle(len(b.tokens) - 1)
}

func (b *TokenizedBuffer) setIntegerValue(h TokenHandle, v IntegerValue) {
	idx := len(b.integerValues)
	b.integerValues = append(b.integerValues, v)
	b.tokens[h].ValueIndex = idx
}

func (b *TokenizedBuffer) setRealValue(h TokenHandle, v RealValue) {
	idx := len(b.realValues)
	b.realValues = append(b.realValues, v)
	b.tokens[h].ValueIndex = idx
}

func (b *TokenizedBuffer) setStringValue(h TokenHandle, v string) {
	idx := len(b.stringValues)
	b.stringValues = append(b.stringValues, v)
	b.tokens[h].ValueIndex = idx
}

func (b *TokenizedBuffer) setPartner(h, partner TokenHandle) {
	b.tokens[h].Partner = int(partner)
}
