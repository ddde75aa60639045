package parser

import (
	"testing"

	"github.com/brambletree/langfront/internal/diagnostics"
	"github.com/brambletree/langfront/internal/lexer"
)

func findChildOfKind(t *testing.T, tree *ParseTree, parent int, kind ParseNodeKind) int {
	t.Helper()
	for _, c := range tree.Children(parent) {
		if tree.Node(c).Kind == kind {
			return c
		}
	}
	t.Fatalf("node %d has no child of kind %v", parent, kind)
	return -1
}

func parseSource(t *testing.T, src string) (*ParseTree, *diagnostics.CollectingEmitter) {
	t.Helper()
	e := &diagnostics.CollectingEmitter{}
	tokens := lexer.Lex("test.txt", []byte(src), e)
	tree := Parse(tokens, e)
	return tree, e
}

func TestParseTree_SimpleFunction_Shape(t *testing.T) {
	tree, e := parseSource(t, "fn f() {}")
	if len(e.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", e.Diagnostics)
	}
	if !tree.Verify() {
		t.Fatalf("Verify() = false")
	}
	roots := tree.Roots()
	if len(roots) != 1 {
		t.Fatalf("Roots() = %v, want exactly one root", roots)
	}
	root := roots[0]
	if tree.Node(root).Kind != File {
		t.Fatalf("root kind = %v, want File", tree.Node(root).Kind)
	}
	children := tree.Children(root)
	if len(children) != 1 || tree.Node(children[0]).Kind != DeclarationList {
		t.Fatalf("File's child = %v, want a single DeclarationList", children)
	}
	decls := tree.Children(children[0])
	if len(decls) != 1 || tree.Node(decls[0]).Kind != FunctionDeclaration {
		t.Fatalf("DeclarationList's children = %v, want a single FunctionDeclaration", decls)
	}
}

func TestParseTree_Verify_OnVariousPrograms(t *testing.T) {
	programs := []string{
		"fn f() {}",
		"fn add(a: i32, b: i32) -> i32 { return a + b; }",
		"let x = 1 + 2 * 3;",
		"fn f() { if (x) { y(); } else { z(); } }",
		"fn f() { while (x < 10) { x = x + 1; } }",
		"fn f() { for (let i = 0; i < 10; i = i + 1) { g(i); } }",
		"struct Point { x: i32, y: i32 }",
		"import a::b::c;",
		"package main;",
	}
	for _, src := range programs {
		tree, _ := parseSource(t, src)
		if !tree.Verify() {
			t.Errorf("Verify() = false for %q", src)
		}
	}
}

func TestParseTree_Verify_OnMalformedInput(t *testing.T) {
	programs := []string{
		"fn f(",
		"let x = ;",
		"fn f() { return",
		")))",
		"1 + + +",
	}
	for _, src := range programs {
		tree, e := parseSource(t, src)
		if !tree.Verify() {
			t.Errorf("Verify() = false for %q", src)
		}
		if len(e.Diagnostics) == 0 {
			t.Errorf("expected diagnostics for %q", src)
		}
		if len(e.Diagnostics) > 0 && !tree.HasErrors() {
			t.Errorf("HasErrors() = false but diagnostics were emitted for %q", src)
		}
	}
}

func TestParseTree_HasErrors_MatchesNodeFlags(t *testing.T) {
	tree, _ := parseSource(t, "fn f() {}")
	found := false
	for i := 0; i < tree.NodeCount(); i++ {
		if tree.Node(i).HasError {
			found = true
		}
	}
	if found != tree.HasErrors() {
		t.Errorf("HasErrors() = %v, but per-node has_error found = %v", tree.HasErrors(), found)
	}
}

func TestParseTree_BinaryExpressionPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3): the BinaryExpression for
	// '+' has two children, the second of which is a '*' expression.
	tree, e := parseSource(t, "fn f() { 1 + 2 * 3; }")
	if len(e.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", e.Diagnostics)
	}
	// File -> DeclarationList -> FunctionDeclaration -> Block -> StatementList -> ExpressionStatement -> BinaryExpression
	roots := tree.Roots()
	fn := tree.Children(tree.Children(roots[0])[0])[0]
	block := findChildOfKind(t, tree, fn, Block)
	stmtList := tree.Children(block)[0]
	exprStmt := tree.Children(stmtList)[0]
	exprStmtChildren := tree.Children(exprStmt)
	if len(exprStmtChildren) != 1 {
		t.Fatalf("expected one expression under ExpressionStatement, got %v", exprStmtChildren)
	}
	plus := exprStmtChildren[0]
	if tree.Node(plus).Kind != BinaryExpression || tree.Text(plus) != "+" {
		t.Fatalf("top expression = %v %q, want BinaryExpression '+'", tree.Node(plus).Kind, tree.Text(plus))
	}
	plusChildren := tree.Children(plus)
	if len(plusChildren) != 2 {
		t.Fatalf("'+' has %d children, want 2", len(plusChildren))
	}
	star := plusChildren[1]
	if tree.Node(star).Kind != BinaryExpression || tree.Text(star) != "*" {
		t.Fatalf("right operand = %v %q, want BinaryExpression '*'", tree.Node(star).Kind, tree.Text(star))
	}
}

func TestParseTree_Postorder_CoversEveryNodeOnce(t *testing.T) {
	tree, _ := parseSource(t, "fn add(a: i32, b: i32) -> i32 { return a + b; }")
	seen := make([]bool, tree.NodeCount())
	for _, i := range tree.Postorder() {
		if seen[i] {
			t.Fatalf("node %d visited twice", i)
		}
		seen[i] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("node %d never visited by Postorder", i)
		}
	}
}

func TestParseTree_Print_ProducesNonEmptyStableOutput(t *testing.T) {
	tree, _ := parseSource(t, "fn f() {}")
	out1 := tree.Print()
	out2 := tree.Print()
	if out1 == "" {
		t.Fatalf("Print() returned empty output")
	}
	if out1 != out2 {
		t.Errorf("Print() is not stable across calls")
	}
}
