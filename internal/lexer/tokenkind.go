package lexer

// TokenKind is a closed enumeration of token categories. Each kind's
// name, spelling, and grouping relationships live in a table literal
// (kindInfo, below) indexed by TokenKind, rather than scattered across
// per-kind methods.
type TokenKind uint8

const (
	// EndOfFile marks the end of the input. Every token stream ends
	// with exactly one of these.
	EndOfFile TokenKind = iota
	// Error is emitted for a byte the lexer could not make a token
	// out of; the lexer still advances past it and keeps scanning.
	Error
	// Comment covers both line and block comments. The parser skips
	// these; they exist as tokens so error recovery and future
	// tooling (formatters, doc generators) can see them.
	Comment

	// Identifier is any name that is not a reserved keyword.
	Identifier

	// IntegerLiteral and RealLiteral are produced by the numeric
	// literal sub-lexer (numericliteral.go); which one depends on
	// whether a radix point was present.
	IntegerLiteral
	RealLiteral
	// StringLiteral is produced by the string literal sub-lexer
	// (stringliteral.go).
	StringLiteral

	// IntTypeLiteral, UnsignedIntTypeLiteral, and FloatTypeLiteral are
	// sized numeric-type spellings such as i32, u64, f32: an
	// identifier-shaped run that is a single letter ('i', 'u', or 'f')
	// followed by one or more decimal digits and nothing else. Their
	// spelling varies per occurrence, unlike every other symbol kind
	// below.
	IntTypeLiteral
	UnsignedIntTypeLiteral
	FloatTypeLiteral

	// Keywords, ordered alphabetically for ease of maintenance.
	Break
	Continue
	Else
	False
	Fn
	For
	If
	Import
	Let
	Package
	Return
	Struct
	True
	Var
	While

	// Grouping symbols. Each opening kind's partner is the
	// corresponding closing kind and vice versa; TokenKind.OpeningSymbol
	// and ClosingSymbol enforce this as a table lookup rather than a
	// convention callers have to remember.
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftSquareBracket
	RightSquareBracket

	// Fixed-spelling punctuators.
	Comma
	Semicolon
	Colon
	ColonColon
	Period
	Arrow
	FatArrow
	Plus
	Minus
	Star
	Slash
	Percent
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	AmpAmp
	PipePipe
	Bang
	Assign

	numTokenKinds
)

type kindAttributes struct {
	name             string
	spelling         string // "" for variable-spelling kinds
	isKeyword        bool
	isSymbol         bool
	isOpeningSymbol  bool
	isClosingSymbol  bool
	isSizedTypeLit   bool
	openPartner      TokenKind // only meaningful when isClosingSymbol
	closePartner     TokenKind // only meaningful when isOpeningSymbol
}

var kindInfo = func() [numTokenKinds]kindAttributes {
	var t [numTokenKinds]kindAttributes
	t[EndOfFile] = kindAttributes{name: "EndOfFile"}
	t[Error] = kindAttributes{name: "Error"}
	t[Comment] = kindAttributes{name: "Comment"}
	t[Identifier] = kindAttributes{name: "Identifier"}
	t[IntegerLiteral] = kindAttributes{name: "IntegerLiteral"}
	t[RealLiteral] = kindAttributes{name: "RealLiteral"}
	t[StringLiteral] = kindAttributes{name: "StringLiteral"}
	t[IntTypeLiteral] = kindAttributes{name: "IntTypeLiteral", isSizedTypeLit: true}
	t[UnsignedIntTypeLiteral] = kindAttributes{name: "UnsignedIntTypeLiteral", isSizedTypeLit: true}
	t[FloatTypeLiteral] = kindAttributes{name: "FloatTypeLiteral", isSizedTypeLit: true}

	keyword := func(k TokenKind, name, spelling string) {
		t[k] = kindAttributes{name: name, spelling: spelling, isKeyword: true}
	}
	keyword(Break, "Break", "break")
	keyword(Continue, "Continue", "continue")
	keyword(Else, "Else", "else")
	keyword(False, "False", "false")
	keyword(Fn, "Fn", "fn")
	keyword(For, "For", "for")
	keyword(If, "If", "if")
	keyword(Import, "Import", "import")
	keyword(Let, "Let", "let")
	keyword(Package, "Package", "package")
	keyword(Return, "Return", "return")
	keyword(Struct, "Struct", "struct")
	keyword(True, "True", "true")
	keyword(Var, "Var", "var")
	keyword(While, "While", "while")

	opening := func(open, close TokenKind, name, spelling string) {
		t[open] = kindAttributes{name: name, spelling: spelling, isSymbol: true, isOpeningSymbol: true, closePartner: close}
	}
	closing := func(close, open TokenKind, name, spelling string) {
		t[close] = kindAttributes{name: name, spelling: spelling, isSymbol: true, isClosingSymbol: true, openPartner: open}
	}
	opening(LeftParen, RightParen, "LeftParen", "(")
	closing(RightParen, LeftParen, "RightParen", ")")
	opening(LeftBrace, RightBrace, "LeftBrace", "{")
	closing(RightBrace, LeftBrace, "RightBrace", "}")
	opening(LeftSquareBracket, RightSquareBracket, "LeftSquareBracket", "[")
	closing(RightSquareBracket, LeftSquareBracket, "RightSquareBracket", "]")

	symbol := func(k TokenKind, name, spelling string) {
		t[k] = kindAttributes{name: name, spelling: spelling, isSymbol: true}
	}
	symbol(Comma, "Comma", ",")
	symbol(Semicolon, "Semicolon", ";")
	symbol(Colon, "Colon", ":")
	symbol(ColonColon, "ColonColon", "::")
	symbol(Period, "Period", ".")
	symbol(Arrow, "Arrow", "->")
	symbol(FatArrow, "FatArrow", "=>")
	symbol(Plus, "Plus", "+")
	symbol(Minus, "Minus", "-")
	symbol(Star, "Star", "*")
	symbol(Slash, "Slash", "/")
	symbol(Percent, "Percent", "%")
	symbol(Equal, "Equal", "==")
	symbol(NotEqual, "NotEqual", "!=")
	symbol(Less, "Less", "<")
	symbol(LessEqual, "LessEqual", "<=")
	symbol(Greater, "Greater", ">")
	symbol(GreaterEqual, "GreaterEqual", ">=")
	symbol(AmpAmp, "AmpAmp", "&&")
	symbol(PipePipe, "PipePipe", "||")
	symbol(Bang, "Bang", "!")
	symbol(Assign, "Assign", "=")

	return t
}()

// Name returns the kind's identifier, e.g. "LeftParen".
func (k TokenKind) Name() string {
	return kindInfo[k].name
}

// FixedSpelling returns the kind's spelling if it has exactly one, and
// "" for kinds whose spelling varies per occurrence (identifiers,
// literals, sized-type literals, comments, EndOfFile, and Error).
func (k TokenKind) FixedSpelling() string {
	return kindInfo[k].spelling
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return kindInfo[k].isKeyword
}

// IsSymbol reports whether k is a fixed-spelling punctuator (including
// grouping symbols).
func (k TokenKind) IsSymbol() bool {
	return kindInfo[k].isSymbol
}

// IsGroupingSymbol reports whether k opens or closes a bracketed region.
func (k TokenKind) IsGroupingSymbol() bool {
	return kindInfo[k].isOpeningSymbol || kindInfo[k].isClosingSymbol
}

// IsOpeningSymbol reports whether k opens a bracketed region.
func (k TokenKind) IsOpeningSymbol() bool {
	return kindInfo[k].isOpeningSymbol
}

// IsClosingSymbol reports whether k closes a bracketed region.
func (k TokenKind) IsClosingSymbol() bool {
	return kindInfo[k].isClosingSymbol
}

// ClosingSymbol returns the closing kind that matches an opening k. It
// is only meaningful when IsOpeningSymbol(k) is true.
func (k TokenKind) ClosingSymbol() TokenKind {
	return kindInfo[k].closePartner
}

// OpeningSymbol returns the opening kind that matches a closing k. It
// is only meaningful when IsClosingSymbol(k) is true.
func (k TokenKind) OpeningSymbol() TokenKind {
	return kindInfo[k].openPartner
}

// IsSizedTypeLiteral reports whether k is one of IntTypeLiteral,
// UnsignedIntTypeLiteral, or FloatTypeLiteral.
func (k TokenKind) IsSizedTypeLiteral() bool {
	return kindInfo[k].isSizedTypeLit
}

func (k TokenKind) String() string {
	return k.Name()
}

// keywords maps keyword spellings to their TokenKind, built once from
// kindInfo rather than duplicated as a second literal.
var keywords = func() map[string]TokenKind {
	m := make(map[string]TokenKind)
	for k := TokenKind(0); k < numTokenKinds; k++ {
		if kindInfo[k].isKeyword {
			m[kindInfo[k].spelling] = k
		}
	}
	return m
}()

// LookupKeyword returns the keyword kind for an identifier-shaped run of
// text, or Identifier if it is not a reserved word.
func LookupKeyword(text string) TokenKind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Identifier
}

// symbolSpellings lists every fixed punctuator spelling longest-first, so
// the lexer's longest-match scan can walk it in order.
var symbolSpellings = func() []TokenKind {
	var kinds []TokenKind
	for k := TokenKind(0); k < numTokenKinds; k++ {
		if kindInfo[k].isSymbol {
			kinds = append(kinds, k)
		}
	}
	// Stable, deterministic longest-first ordering: a simple insertion
	// sort is plenty for a few dozen entries evaluated once at init.
	for i := 1; i < len(kinds); i++ {
		for j := i; j > 0 && len(kindInfo[kinds[j]].spelling) > len(kindInfo[kinds[j-1]].spelling); j-- {
			kinds[j], kinds[j-1] = kinds[j-1], kinds[j]
		}
	}
	return kinds
}()
