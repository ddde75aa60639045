package lexer

import (
	"math/big"
	"strings"

	"github.com/brambletree/langfront/internal/diagnostics"
)

// LexedNumericLiteral is the transient recognition result for one numeric
// literal, before validation and decoding: the literal's span plus where
// its radix point and exponent introducer fall within it, found with a
// single greedy scan that defers all validation to ComputeValue.
type LexedNumericLiteral struct {
	// Text is the literal's full span.
	Text string
	// RadixPoint is the index within Text of '.', or len(Text) if the
	// literal has no fractional part.
	RadixPoint int
	// Exponent is the index within Text of the exponent introducer
	// ('e' or 'p'), or len(Text) if the literal has no exponent part.
	Exponent int
}

// LexNumericLiteral attempts to recognize a numeric literal at the start
// of text. It returns ok=false and consumes nothing if text does not
// begin with a decimal digit.
func LexNumericLiteral(text []byte) (LexedNumericLiteral, bool) {
	if len(text) == 0 || !IsDecimalDigit(text[0]) {
		return LexedNumericLiteral{}, false
	}

	seenPlusMinus := false
	seenRadixPoint := false
	seenPotentialExponent := false

	radixPoint := -1
	exponent := -1

	i := 1
	n := len(text)
	for ; i != n; i++ {
		c := text[i]
		if IsAlnum(c) || c == '_' {
			if IsLower(c) && seenRadixPoint && !seenPlusMinus {
				exponent = i
				seenPotentialExponent = true
			}
			continue
		}

		if c == '.' && i+1 != n && IsAlnum(text[i+1]) && !seenRadixPoint {
			radixPoint = i
			seenRadixPoint = true
			continue
		}

		if (c == '+' || c == '-') && seenPotentialExponent &&
			exponent == i-1 && i+1 != n && IsAlnum(text[i+1]) {
			seenPlusMinus = true
			continue
		}
		break
	}

	result := LexedNumericLiteral{Text: string(text[:i])}
	if seenRadixPoint {
		result.RadixPoint = radixPoint
	} else {
		result.RadixPoint = i
	}
	if seenPotentialExponent {
		result.Exponent = exponent
	} else {
		result.Exponent = i
	}
	return result, true
}

// IsInteger reports whether the literal has no radix point, i.e. it is
// an integer literal rather than a real literal.
func (l LexedNumericLiteral) IsInteger() bool {
	return l.RadixPoint == len(l.Text)
}

// NumericValueKind distinguishes the three possible outcomes of
// ComputeValue.
type NumericValueKind int

const (
	// NumericUnrecoverableError means validation failed; a diagnostic
	// has already been emitted and no value is available.
	NumericUnrecoverableError NumericValueKind = iota
	NumericInteger
	NumericReal
)

// NumericValue is the decoded result of a numeric literal, discriminated
// by Kind.
type NumericValue struct {
	Kind NumericValueKind

	Integer IntegerValue // valid when Kind == NumericInteger
	Real    RealValue    // valid when Kind == NumericReal
}

type numericParser struct {
	emitter diagnostics.Emitter
	base    int // byte offset of literal.Text within the source buffer
	literal LexedNumericLiteral

	radix int

	intPart      string
	fractPart    string
	exponentPart string

	// Absolute byte offsets of intPart[0], fractPart[0], and
	// exponentPart[0] respectively, accounting for any radix prefix
	// or sign byte stripped off during construction.
	intPartBase      int
	fractPartBase    int
	exponentPartBase int

	exponentIsNegative bool

	mantissaNeedsCleaning bool
	exponentNeedsCleaning bool
}

func newNumericParser(emitter diagnostics.Emitter, base int, literal LexedNumericLiteral) *numericParser {
	p := &numericParser{emitter: emitter, base: base, literal: literal, radix: 10}

	intPart := literal.Text[:literal.RadixPoint]
	intPartBase := base
	switch {
	case strings.HasPrefix(intPart, "0x"):
		p.radix = 16
		intPart = intPart[2:]
		intPartBase += 2
	case strings.HasPrefix(intPart, "0b"):
		p.radix = 2
		intPart = intPart[2:]
		intPartBase += 2
	}
	p.intPart = intPart
	p.intPartBase = intPartBase

	if literal.RadixPoint < literal.Exponent {
		p.fractPart = literal.Text[literal.RadixPoint+1 : literal.Exponent]
		p.fractPartBase = base + literal.RadixPoint + 1
	}

	exponentStart := min(literal.Exponent+1, len(literal.Text))
	exponentPart := literal.Text[exponentStart:]
	exponentPartBase := base + exponentStart
	switch {
	case strings.HasPrefix(exponentPart, "+"):
		exponentPart = exponentPart[1:]
		exponentPartBase++
	case strings.HasPrefix(exponentPart, "-"):
		p.exponentIsNegative = true
		exponentPart = exponentPart[1:]
		exponentPartBase++
	}
	p.exponentPart = exponentPart
	p.exponentPartBase = exponentPartBase

	return p
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ComputeValue validates and decodes a LexedNumericLiteral, emitting
// diagnostics for any grammar violation it finds. base is the byte
// offset of literal.Text's first byte within the
// source buffer that produced it, used to translate in-literal indices
// into absolute diagnostic locations.
func (l LexedNumericLiteral) ComputeValue(emitter diagnostics.Emitter, base int) NumericValue {
	p := newNumericParser(emitter, base, l)

	if !p.checkLeadingZero() || !p.checkIntPart() || !p.checkFractionalPart() || !p.checkExponentPart() {
		return NumericValue{Kind: NumericUnrecoverableError}
	}

	if l.IsInteger() {
		return NumericValue{
			Kind:    NumericInteger,
			Integer: IntegerValue{Value: p.mantissa()},
		}
	}

	radix := 10
	if p.radix != 10 {
		radix = 2
	}
	return NumericValue{
		Kind: NumericReal,
		Real: RealValue{
			Radix:    radix,
			Mantissa: p.mantissa(),
			Exponent: p.exponentValue(),
		},
	}
}

func (p *numericParser) mantissa() *big.Int {
	digits := p.intPart
	if !p.literal.IsInteger() {
		digits = p.intPart + p.fractPart
	}
	if p.mantissaNeedsCleaning {
		digits = removeSeparators(digits)
	}
	v := new(big.Int)
	// Digits have already been validated by checkIntPart/checkFractionalPart;
	// a parse failure here would be a programming error.
	if _, ok := v.SetString(digits, p.radix); !ok {
		panic("numericliteral: validated digit sequence failed to parse: " + digits)
	}
	return v
}

func (p *numericParser) exponentValue() *big.Int {
	exponent := new(big.Int)
	if p.exponentPart != "" {
		digits := p.exponentPart
		if p.exponentNeedsCleaning {
			digits = removeSeparators(digits)
		}
		if _, ok := exponent.SetString(digits, 10); !ok {
			panic("numericliteral: validated exponent digit sequence failed to parse: " + digits)
		}
		if p.exponentIsNegative {
			exponent.Neg(exponent)
		}
	}

	excess := len(p.fractPart)
	if p.radix == 16 {
		excess *= 4
	}
	exponent.Sub(exponent, big.NewInt(int64(excess)))
	return exponent
}

func removeSeparators(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func (p *numericParser) checkLeadingZero() bool {
	if p.radix == 10 && strings.HasPrefix(p.intPart, "0") && p.intPart != "0" {
		diagnostics.Emit(p.emitter, p.intPartBase, diagnostics.KindInvalidNumber, diagnostics.Error,
			"Unknown base specifier in numeric literal.", nil)
		return false
	}
	return true
}

func (p *numericParser) checkIntPart() bool {
	result := p.checkDigitSequence(p.intPart, p.intPartBase, p.radix, true)
	p.mantissaNeedsCleaning = p.mantissaNeedsCleaning || result.hasSeparators
	return result.ok
}

func (p *numericParser) checkFractionalPart() bool {
	if p.literal.IsInteger() {
		return true
	}

	if p.radix == 2 {
		diagnostics.Emit(p.emitter, p.base+p.literal.RadixPoint, diagnostics.KindInvalidNumber, diagnostics.Error,
			"Binary real number literals are not supported.", nil)
		return false
	}

	p.mantissaNeedsCleaning = true
	return p.checkDigitSequence(p.fractPart, p.fractPartBase, p.radix, false).ok
}

func (p *numericParser) checkExponentPart() bool {
	if p.literal.Exponent == len(p.literal.Text) {
		return true
	}

	expected := byte('e')
	if p.radix == 16 {
		expected = 'p'
	}
	if p.literal.Text[p.literal.Exponent] != expected {
		diagnostics.Emit(p.emitter, p.base+p.literal.Exponent, diagnostics.KindInvalidNumber, diagnostics.Error,
			"Expected '"+string(expected)+"' to introduce exponent.", nil)
		return false
	}

	result := p.checkDigitSequence(p.exponentPart, p.exponentPartBase, 10, true)
	p.exponentNeedsCleaning = result.hasSeparators
	return result.ok
}

type digitSequenceResult struct {
	ok            bool
	hasSeparators bool
}

// checkDigitSequence validates text as a sequence of radix digits (plus
// digit separators if allowSeparators), emitting diagnostics for
// anything that isn't. base is the absolute byte offset of text[0].
func (p *numericParser) checkDigitSequence(text string, base, radix int, allowSeparators bool) digitSequenceResult {
	numSeparators := 0

	for i := 0; i < len(text); i++ {
		c := text[i]
		if isValidDigit(c, radix) {
			continue
		}

		if c == '_' {
			if !allowSeparators || i == 0 || text[i-1] == '_' || i+1 == len(text) {
				diagnostics.Emit(p.emitter, base+i, diagnostics.KindInvalidNumber, diagnostics.Error,
					"Misplaced digit separator in numeric literal.", nil)
			}
			numSeparators++
			continue
		}

		diagnostics.Emit(p.emitter, base+i, diagnostics.KindInvalidNumber, diagnostics.Error,
			invalidDigitMessage(c, radix), map[string]any{"digit": c, "radix": radix})
		return digitSequenceResult{ok: false}
	}

	if numSeparators == len(text) {
		diagnostics.Emit(p.emitter, base, diagnostics.KindInvalidNumber, diagnostics.Error,
			"Empty digit sequence in numeric literal.", nil)
		return digitSequenceResult{ok: false}
	}

	if numSeparators > 0 {
		p.checkDigitSeparatorPlacement(text, base, radix, numSeparators)
	}

	return digitSequenceResult{ok: true, hasSeparators: numSeparators != 0}
}

func (p *numericParser) checkDigitSeparatorPlacement(text string, base, radix, numSeparators int) {
	if radix == 2 {
		return
	}

	stride := 4
	if radix == 16 {
		stride = 5
	}

	remaining := numSeparators
	pos := len(text)
	for pos >= stride {
		pos -= stride
		if text[pos] != '_' {
			p.diagnoseIrregularSeparators(base, radix)
			return
		}
		remaining--
	}

	if remaining != 0 {
		p.diagnoseIrregularSeparators(base, radix)
	}
}

func (p *numericParser) diagnoseIrregularSeparators(base, radix int) {
	width := "4"
	kind := "decimal"
	if radix == 16 {
		width = "5"
		kind = "hexadecimal"
	}
	diagnostics.Emit(p.emitter, base, diagnostics.KindIrregularDigitSeparators, diagnostics.Error,
		"Digit separators in "+kind+" number should appear every "+width+" characters from the right.",
		map[string]any{"radix": radix})
}

func isValidDigit(c byte, radix int) bool {
	switch radix {
	case 2:
		return IsBinaryDigit(c)
	case 16:
		return IsDecimalDigit(c) || IsUpperHexDigit(c)
	default:
		return IsDecimalDigit(c)
	}
}

func invalidDigitMessage(digit byte, radix int) string {
	kind := "decimal"
	switch radix {
	case 2:
		kind = "binary"
	case 16:
		kind = "hexadecimal"
	}
	return "Invalid digit '" + string(digit) + "' in " + kind + " numeric literal."
}
