package parser

import (
	"fmt"

	"github.com/brambletree/langfront/internal/diagnostics"
	"github.com/brambletree/langfront/internal/lexer"
)

// Parse builds a ParseTree from tokens via recursive descent, using a
// Pratt parser for expressions. Diagnostics are reported through
// emitter; the parser never stops at the first error; it emits a
// node with HasError set and resynchronizes.
func Parse(tokens *lexer.TokenizedBuffer, emitter diagnostics.Emitter) *ParseTree {
	p := &parser{
		tree:    newParseTree(tokens),
		buf:     tokens,
		emitter: emitter,
	}
	for _, h := range tokens.Tokens() {
		if tokens.Kind(h) == lexer.Comment {
			continue
		}
		p.stream = append(p.stream, h)
	}
	p.parseFile()
	return p.tree
}

type parser struct {
	tree    *ParseTree
	buf     *lexer.TokenizedBuffer
	emitter diagnostics.Emitter
	stream  []lexer.TokenHandle
	pos     int
}

func (p *parser) currentHandle() lexer.TokenHandle {
	return p.stream[p.pos]
}

func (p *parser) currentKind() lexer.TokenKind {
	return p.buf.Kind(p.currentHandle())
}

func (p *parser) atEnd() bool {
	return p.currentKind() == lexer.EndOfFile
}

func (p *parser) at(kind lexer.TokenKind) bool {
	return p.currentKind() == kind
}

func (p *parser) advance() lexer.TokenHandle {
	h := p.currentHandle()
	if !p.atEnd() {
		p.pos++
	}
	return h
}

func (p *parser) match(kind lexer.TokenKind) (lexer.TokenHandle, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return lexer.TokenHandle(0), false
}

// expect consumes a token of the given kind, or emits an
// expected-X-found-Y diagnostic and leaves the cursor where it was.
func (p *parser) expect(kind lexer.TokenKind) (lexer.TokenHandle, bool) {
	if h, ok := p.match(kind); ok {
		return h, true
	}
	h := p.currentHandle()
	diagnostics.Emit(p.emitter, p.buf.TokenAt(h).Offset, diagnostics.KindExpectedTokenFoundOther, diagnostics.Error,
		fmt.Sprintf("expected %s, found %s", kind.Name(), p.currentKind().Name()),
		map[string]any{"expected": kind.Name(), "found": p.currentKind().Name()})
	return h, false
}

// synchronize advances past tokens until one of stop is current, or
// EOF, so a failed production doesn't cascade into spurious errors
// for everything that follows it.
func (p *parser) synchronize(stop ...lexer.TokenKind) {
	for !p.atEnd() {
		for _, k := range stop {
			if p.at(k) {
				return
			}
		}
		p.advance()
	}
}

var declarationStarters = []lexer.TokenKind{lexer.Fn, lexer.Struct, lexer.Import, lexer.Package, lexer.Let, lexer.Var}

func (p *parser) parseFile() {
	mark := len(p.tree.nodes)
	hasErr := p.parseDeclarationList()
	p.tree.appendParent(File, mark, hasErr)
}

func (p *parser) parseDeclarationList() bool {
	mark := len(p.tree.nodes)
	hasErr := false
	for !p.atEnd() {
		if p.parseDeclaration() {
			hasErr = true
		}
	}
	p.tree.appendParent(DeclarationList, mark, hasErr)
	return hasErr
}

// parseDeclaration parses one top-level declaration and reports
// whether it, or its recovery, involved an error.
func (p *parser) parseDeclaration() bool {
	switch p.currentKind() {
	case lexer.Fn:
		return p.parseFunctionDeclaration()
	case lexer.Struct:
		return p.parseStructDeclaration()
	case lexer.Import:
		return p.parseImportDeclaration()
	case lexer.Package:
		return p.parsePackageDeclaration()
	case lexer.Let, lexer.Var:
		return p.parseVarOrLetStatement()
	default:
		diagnostics.Emit(p.emitter, p.buf.TokenAt(p.currentHandle()).Offset, diagnostics.KindExpectedTokenFoundOther, diagnostics.Error,
			"expected a declaration, found "+p.currentKind().Name(), nil)
		tok := p.advance()
		p.tree.appendLeaf(Error, tok, true)
		p.synchronize(declarationStarters...)
		return true
	}
}

func (p *parser) parseTypeExpression() (lexer.TokenHandle, bool) {
	switch p.currentKind() {
	case lexer.Identifier, lexer.IntTypeLiteral, lexer.UnsignedIntTypeLiteral, lexer.FloatTypeLiteral:
		return p.advance(), true
	default:
		h := p.currentHandle()
		diagnostics.Emit(p.emitter, p.buf.TokenAt(h).Offset, diagnostics.KindExpectedTokenFoundOther, diagnostics.Error,
			"expected type name, found "+p.currentKind().Name(), nil)
		return h, false
	}
}

func (p *parser) parseFunctionDeclaration() bool {
	mark := len(p.tree.nodes)
	p.advance() // Fn
	nameTok, ok := p.expect(lexer.Identifier)
	hasErr := !ok
	if !p.at(lexer.LeftParen) {
		hasErr = true
	} else if p.parseParameterList() {
		hasErr = true
	}
	if p.at(lexer.Arrow) {
		p.advance()
		if _, ok := p.parseTypeExpression(); !ok {
			hasErr = true
		}
	}
	if p.at(lexer.LeftBrace) {
		if p.parseBlock() {
			hasErr = true
		}
	} else if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(FunctionDeclaration, mark, nameTok, hasErr)
	return hasErr
}

func (p *parser) parseParameterList() bool {
	mark := len(p.tree.nodes)
	hasErr := false
	p.advance() // LeftParen
	for !p.at(lexer.RightParen) && !p.atEnd() {
		if p.parseParameter() {
			hasErr = true
		}
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(lexer.RightParen); !ok {
		hasErr = true
	}
	p.tree.appendParent(ParameterList, mark, hasErr)
	return hasErr
}

func (p *parser) parseParameter() bool {
	mark := len(p.tree.nodes)
	nameTok, ok := p.expect(lexer.Identifier)
	hasErr := !ok
	if _, ok := p.expect(lexer.Colon); !ok {
		hasErr = true
	}
	if _, ok := p.parseTypeExpression(); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(Parameter, mark, nameTok, hasErr)
	return hasErr
}

func (p *parser) parseStructDeclaration() bool {
	mark := len(p.tree.nodes)
	p.advance() // Struct
	nameTok, ok := p.expect(lexer.Identifier)
	hasErr := !ok
	if _, ok := p.expect(lexer.LeftBrace); !ok {
		hasErr = true
		p.synchronize(declarationStarters...)
		p.tree.appendParentWithToken(StructDeclaration, mark, nameTok, hasErr)
		return hasErr
	}
	if p.parseFieldList() {
		hasErr = true
	}
	if _, ok := p.expect(lexer.RightBrace); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(StructDeclaration, mark, nameTok, hasErr)
	return hasErr
}

func (p *parser) parseFieldList() bool {
	mark := len(p.tree.nodes)
	hasErr := false
	for !p.at(lexer.RightBrace) && !p.atEnd() {
		if p.parseField() {
			hasErr = true
		}
		if _, ok := p.match(lexer.Comma); !ok {
			if _, ok := p.match(lexer.Semicolon); !ok {
				break
			}
		}
	}
	p.tree.appendParent(FieldList, mark, hasErr)
	return hasErr
}

func (p *parser) parseField() bool {
	mark := len(p.tree.nodes)
	nameTok, ok := p.expect(lexer.Identifier)
	hasErr := !ok
	if _, ok := p.expect(lexer.Colon); !ok {
		hasErr = true
	}
	if _, ok := p.parseTypeExpression(); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(Field, mark, nameTok, hasErr)
	return hasErr
}

func (p *parser) parseImportDeclaration() bool {
	mark := len(p.tree.nodes)
	importTok := p.advance()
	hasErr := false
	if _, ok := p.expect(lexer.Identifier); !ok {
		hasErr = true
	}
	for p.at(lexer.ColonColon) {
		p.advance()
		if _, ok := p.expect(lexer.Identifier); !ok {
			hasErr = true
		}
	}
	if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(ImportDeclaration, mark, importTok, hasErr)
	return hasErr
}

func (p *parser) parsePackageDeclaration() bool {
	mark := len(p.tree.nodes)
	packageTok := p.advance()
	hasErr := false
	if _, ok := p.expect(lexer.Identifier); !ok {
		hasErr = true
	}
	if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(PackageDeclaration, mark, packageTok, hasErr)
	return hasErr
}

var statementStarters = []lexer.TokenKind{
	lexer.Let, lexer.Var, lexer.Return, lexer.If, lexer.While, lexer.For,
	lexer.Break, lexer.Continue, lexer.LeftBrace, lexer.RightBrace,
}

func (p *parser) parseBlock() bool {
	mark := len(p.tree.nodes)
	braceTok := p.advance() // LeftBrace
	hasErr := false
	if p.parseStatementList() {
		hasErr = true
	}
	if _, ok := p.expect(lexer.RightBrace); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(Block, mark, braceTok, hasErr)
	return hasErr
}

func (p *parser) parseStatementList() bool {
	mark := len(p.tree.nodes)
	hasErr := false
	for !p.at(lexer.RightBrace) && !p.atEnd() {
		if p.parseStatement() {
			hasErr = true
		}
	}
	p.tree.appendParent(StatementList, mark, hasErr)
	return hasErr
}

func (p *parser) parseStatement() bool {
	switch p.currentKind() {
	case lexer.Let, lexer.Var:
		return p.parseVarOrLetStatement()
	case lexer.Return:
		return p.parseReturnStatement()
	case lexer.If:
		return p.parseIfStatement()
	case lexer.While:
		return p.parseWhileStatement()
	case lexer.For:
		return p.parseForStatement()
	case lexer.Break:
		return p.parseBreakStatement()
	case lexer.Continue:
		return p.parseContinueStatement()
	case lexer.LeftBrace:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseVarOrLetStatement() bool {
	mark := len(p.tree.nodes)
	kind := LetStatement
	if p.currentKind() == lexer.Var {
		kind = VarStatement
	}
	kwTok := p.advance()
	hasErr := false
	if _, ok := p.expect(lexer.Identifier); !ok {
		hasErr = true
	}
	if p.at(lexer.Colon) {
		p.advance()
		if _, ok := p.parseTypeExpression(); !ok {
			hasErr = true
		}
	}
	if _, ok := p.match(lexer.Assign); ok {
		if p.parseExpression(PrecAssignment) {
			hasErr = true
		}
	}
	if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(kind, mark, kwTok, hasErr)
	return hasErr
}

func (p *parser) parseReturnStatement() bool {
	mark := len(p.tree.nodes)
	retTok := p.advance()
	hasErr := false
	if !p.at(lexer.Semicolon) {
		if p.parseExpression(PrecAssignment) {
			hasErr = true
		}
	}
	if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(ReturnStatement, mark, retTok, hasErr)
	return hasErr
}

func (p *parser) parseIfStatement() bool {
	mark := len(p.tree.nodes)
	ifTok := p.advance()
	hasErr := false
	if _, ok := p.expect(lexer.LeftParen); !ok {
		hasErr = true
	}
	if p.parseExpression(PrecAssignment) {
		hasErr = true
	}
	if _, ok := p.expect(lexer.RightParen); !ok {
		hasErr = true
	}
	if p.parseBlock() {
		hasErr = true
	}
	if _, ok := p.match(lexer.Else); ok {
		if p.at(lexer.If) {
			if p.parseIfStatement() {
				hasErr = true
			}
		} else if p.parseBlock() {
			hasErr = true
		}
	}
	p.tree.appendParentWithToken(IfStatement, mark, ifTok, hasErr)
	return hasErr
}

func (p *parser) parseWhileStatement() bool {
	mark := len(p.tree.nodes)
	whileTok := p.advance()
	hasErr := false
	if _, ok := p.expect(lexer.LeftParen); !ok {
		hasErr = true
	}
	if p.parseExpression(PrecAssignment) {
		hasErr = true
	}
	if _, ok := p.expect(lexer.RightParen); !ok {
		hasErr = true
	}
	if p.parseBlock() {
		hasErr = true
	}
	p.tree.appendParentWithToken(WhileStatement, mark, whileTok, hasErr)
	return hasErr
}

// parseForStatement handles the three-clause C-style loop: for
// (init; condition; update) block. Each clause may be empty.
func (p *parser) parseForStatement() bool {
	mark := len(p.tree.nodes)
	forTok := p.advance()
	hasErr := false
	if _, ok := p.expect(lexer.LeftParen); !ok {
		hasErr = true
	}
	if !p.at(lexer.Semicolon) {
		if p.parseVarOrLetStatement() {
			hasErr = true
		}
	} else if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
	}
	if !p.at(lexer.Semicolon) {
		if p.parseExpression(PrecAssignment) {
			hasErr = true
		}
	}
	if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
	}
	if !p.at(lexer.RightParen) {
		if p.parseExpression(PrecAssignment) {
			hasErr = true
		}
	}
	if _, ok := p.expect(lexer.RightParen); !ok {
		hasErr = true
	}
	if p.parseBlock() {
		hasErr = true
	}
	p.tree.appendParentWithToken(ForStatement, mark, forTok, hasErr)
	return hasErr
}

func (p *parser) parseBreakStatement() bool {
	mark := len(p.tree.nodes)
	tok := p.advance()
	hasErr := false
	if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(BreakStatement, mark, tok, hasErr)
	return hasErr
}

func (p *parser) parseContinueStatement() bool {
	mark := len(p.tree.nodes)
	tok := p.advance()
	hasErr := false
	if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
	}
	p.tree.appendParentWithToken(ContinueStatement, mark, tok, hasErr)
	return hasErr
}

func (p *parser) parseExpressionStatement() bool {
	mark := len(p.tree.nodes)
	hasErr := p.parseExpression(PrecAssignment)
	if _, ok := p.expect(lexer.Semicolon); !ok {
		hasErr = true
		p.synchronize(statementStarters...)
	}
	p.tree.appendParent(ExpressionStatement, mark, hasErr)
	return hasErr
}

// parseExpression implements Pratt-style precedence climbing: parse
// one unary/postfix operand, then keep folding in infix operators
// whose precedence is at least minPrec.
func (p *parser) parseExpression(minPrec Precedence) bool {
	start := len(p.tree.nodes)
	hasErr := p.parseUnary()
	for {
		kind := p.currentKind()
		prec := getPrecedence(kind)
		if prec == PrecNone || prec < minPrec || prec == PrecCall {
			break
		}
		opTok := p.advance()
		nextMinPrec := prec + 1
		if isRightAssociative(kind) {
			nextMinPrec = prec
		}
		if p.parseExpression(nextMinPrec) {
			hasErr = true
		}
		nodeKind := BinaryExpression
		if kind == lexer.Assign {
			nodeKind = AssignExpression
		}
		p.tree.appendParentWithToken(nodeKind, start, opTok, hasErr)
	}
	return hasErr
}

func (p *parser) parseUnary() bool {
	if p.at(lexer.Bang) || p.at(lexer.Minus) {
		start := len(p.tree.nodes)
		opTok := p.advance()
		hasErr := p.parseUnary()
		p.tree.appendParentWithToken(UnaryExpression, start, opTok, hasErr)
		return hasErr
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() bool {
	start := len(p.tree.nodes)
	hasErr := p.parsePrimary()
	for {
		switch {
		case p.at(lexer.Period):
			dotTok := p.advance()
			if _, ok := p.expect(lexer.Identifier); !ok {
				hasErr = true
			}
			p.tree.appendParentWithToken(MemberExpression, start, dotTok, hasErr)
		case p.at(lexer.LeftParen):
			parenTok := p.advance()
			if p.parseArgumentList() {
				hasErr = true
			}
			if _, ok := p.expect(lexer.RightParen); !ok {
				hasErr = true
			}
			p.tree.appendParentWithToken(CallExpression, start, parenTok, hasErr)
		case p.at(lexer.LeftSquareBracket):
			bracketTok := p.advance()
			if p.parseExpression(PrecAssignment) {
				hasErr = true
			}
			if _, ok := p.expect(lexer.RightSquareBracket); !ok {
				hasErr = true
			}
			p.tree.appendParentWithToken(IndexExpression, start, bracketTok, hasErr)
		default:
			return hasErr
		}
	}
}

func (p *parser) parseArgumentList() bool {
	mark := len(p.tree.nodes)
	hasErr := false
	for !p.at(lexer.RightParen) && !p.atEnd() {
		if p.parseExpression(PrecAssignment) {
			hasErr = true
		}
		if _, ok := p.match(lexer.Comma); !ok {
			break
		}
	}
	p.tree.appendParent(ArgumentList, mark, hasErr)
	return hasErr
}

var literalKinds = map[lexer.TokenKind]bool{
	lexer.IntegerLiteral: true,
	lexer.RealLiteral:    true,
	lexer.StringLiteral:  true,
	lexer.True:           true,
	lexer.False:          true,
}

func (p *parser) parsePrimary() bool {
	switch {
	case literalKinds[p.currentKind()]:
		tok := p.advance()
		p.tree.appendLeaf(Literal, tok, false)
		return false
	case p.at(lexer.Identifier):
		tok := p.advance()
		p.tree.appendLeaf(IdentifierExpression, tok, false)
		return false
	case p.at(lexer.LeftParen):
		start := len(p.tree.nodes)
		parenTok := p.advance()
		hasErr := p.parseExpression(PrecAssignment)
		if _, ok := p.expect(lexer.RightParen); !ok {
			hasErr = true
		}
		p.tree.appendParentWithToken(GroupingExpression, start, parenTok, hasErr)
		return hasErr
	default:
		tok := p.currentHandle()
		diagnostics.Emit(p.emitter, p.buf.TokenAt(tok).Offset, diagnostics.KindExpectedTokenFoundOther, diagnostics.Error,
			"expected an expression, found "+p.currentKind().Name(), nil)
		if !p.atEnd() {
			p.advance()
		}
		p.tree.appendLeaf(Error, tok, true)
		return true
	}
}
