package parser

import (
	"github.com/brambletree/langfront/internal/lexer"
)

// Precedence orders binary operators from loosest- to tightest-binding.
// Higher values bind tighter.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment // =
	PrecOr         // ||
	PrecAnd        // &&
	PrecEquality   // ==, !=
	PrecComparison // <, <=, >, >=
	PrecTerm       // +, -
	PrecFactor     // *, /, %
	PrecCall       // ., [], (
)

// getPrecedence returns the precedence level of kind as an infix
// operator, or PrecNone if kind is not one.
func getPrecedence(kind lexer.TokenKind) Precedence {
	switch kind {
	case lexer.Assign:
		return PrecAssignment
	case lexer.PipePipe:
		return PrecOr
	case lexer.AmpAmp:
		return PrecAnd
	case lexer.Equal, lexer.NotEqual:
		return PrecEquality
	case lexer.Less, lexer.LessEqual, lexer.Greater, lexer.GreaterEqual:
		return PrecComparison
	case lexer.Plus, lexer.Minus:
		return PrecTerm
	case lexer.Star, lexer.Slash, lexer.Percent:
		return PrecFactor
	case lexer.Period, lexer.LeftSquareBracket, lexer.LeftParen:
		return PrecCall
	default:
		return PrecNone
	}
}

// isRightAssociative reports whether kind, used as a binary operator,
// associates right-to-left. Assignment is the only one: x = y = z
// means x = (y = z).
func isRightAssociative(kind lexer.TokenKind) bool {
	return kind == lexer.Assign
}
