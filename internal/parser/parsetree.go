package parser

import (
	"fmt"
	"strings"

	"github.com/brambletree/langfront/internal/lexer"
)

// ParseNode is one entry of a flat, postorder-encoded parse tree. A
// node's children, and their children in turn, all appear at
// contiguous indices immediately before it; SubtreeSize counts the
// node itself plus every one of those descendants.
type ParseNode struct {
	Kind        ParseNodeKind
	Token       lexer.TokenHandle
	HasToken    bool
	SubtreeSize int
	HasError    bool
}

// ParseTree is the output of parsing one token buffer: a sequence of
// ParseNodes in postorder, plus the buffer they were built from so
// text and diagnostics can still be recovered from a node.
type ParseTree struct {
	tokens    *lexer.TokenizedBuffer
	nodes     []ParseNode
	hasErrors bool
}

func newParseTree(tokens *lexer.TokenizedBuffer) *ParseTree {
	return &ParseTree{tokens: tokens}
}

// HasErrors reports whether any node in the tree has HasError set.
func (t *ParseTree) HasErrors() bool {
	return t.hasErrors
}

// NodeCount returns the number of nodes in the tree.
func (t *ParseTree) NodeCount() int {
	return len(t.nodes)
}

// Node returns the node at index i.
func (t *ParseTree) Node(i int) ParseNode {
	return t.nodes[i]
}

// Tokens returns the token buffer the tree was parsed from.
func (t *ParseTree) Tokens() *lexer.TokenizedBuffer {
	return t.tokens
}

// Text returns the source text spanned by node i's own token, or the
// empty string for nodes that don't correspond to a single token
// (such as list or block nodes built purely from their children).
func (t *ParseTree) Text(i int) string {
	n := t.nodes[i]
	if !n.HasToken {
		return ""
	}
	return t.tokens.Text(n.Token)
}

func (t *ParseTree) appendLeaf(kind ParseNodeKind, tok lexer.TokenHandle, hasError bool) int {
	t.nodes = append(t.nodes, ParseNode{Kind: kind, Token: tok, HasToken: true, SubtreeSize: 1, HasError: hasError})
	if hasError {
		t.hasErrors = true
	}
	return len(t.nodes) - 1
}

// appendParent closes off a production that started at startMark
// (the node count observed before any of its children were parsed):
// everything appended since then becomes this new node's descendants.
func (t *ParseTree) appendParent(kind ParseNodeKind, startMark int, hasError bool) int {
	descendants := len(t.nodes) - startMark
	t.nodes = append(t.nodes, ParseNode{Kind: kind, SubtreeSize: descendants + 1, HasError: hasError})
	if hasError {
		t.hasErrors = true
	}
	return len(t.nodes) - 1
}

// appendParentWithToken is appendParent for productions whose root node
// still has a characteristic token of its own, such as a binary
// expression keeping its operator.
func (t *ParseTree) appendParentWithToken(kind ParseNodeKind, startMark int, tok lexer.TokenHandle, hasError bool) int {
	descendants := len(t.nodes) - startMark
	t.nodes = append(t.nodes, ParseNode{Kind: kind, Token: tok, HasToken: true, SubtreeSize: descendants + 1, HasError: hasError})
	if hasError {
		t.hasErrors = true
	}
	return len(t.nodes) - 1
}

// Postorder returns the indices of every node in the tree, in
// postorder (children before parents, root last).
func (t *ParseTree) Postorder() []int {
	return t.PostorderFrom(len(t.nodes) - 1)
}

// PostorderFrom returns the indices of the subtree rooted at node i,
// in postorder.
func (t *ParseTree) PostorderFrom(i int) []int {
	if i < 0 {
		return nil
	}
	n := t.nodes[i]
	out := make([]int, 0, n.SubtreeSize)
	for j := i - n.SubtreeSize + 1; j <= i; j++ {
		out = append(out, j)
	}
	return out
}

// Children returns the indices of node i's immediate children,
// leftmost first.
func (t *ParseTree) Children(i int) []int {
	n := t.nodes[i]
	floor := i - n.SubtreeSize
	var out []int
	cEnd := i - 1
	for cEnd > floor {
		out = append(out, cEnd)
		cEnd -= t.nodes[cEnd].SubtreeSize
	}
	// Children were discovered right-to-left; restore left-to-right.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// Roots returns the indices of the tree's top-level nodes, leftmost
// first. A well-formed tree built by Parse has exactly one: File.
func (t *ParseTree) Roots() []int {
	n := len(t.nodes)
	var out []int
	cEnd := n - 1
	for cEnd >= 0 {
		out = append(out, cEnd)
		cEnd -= t.nodes[cEnd].SubtreeSize
	}
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// Verify checks the tree's structural invariant: every node's
// subtree, read backwards from the node itself, consists of whole
// child subtrees that exactly cover the span down to the node below
// its lowest descendant, with no overlap and no gap, right up to the
// start of the array.
func (t *ParseTree) Verify() bool {
	cEnd := len(t.nodes) - 1
	for cEnd >= 0 {
		if !t.verifyNode(cEnd) {
			return false
		}
		cEnd -= t.nodes[cEnd].SubtreeSize
	}
	return cEnd == -1
}

// verifyNode checks that node i's own children (as found by the same
// stepping rule Children uses) have subtree sizes that exactly tile
// [i-SubtreeSize+1, i-1], then recurses into each of them.
func (t *ParseTree) verifyNode(i int) bool {
	n := t.nodes[i]
	if n.SubtreeSize < 1 || i-n.SubtreeSize+1 < 0 {
		return false
	}
	floor := i - n.SubtreeSize
	cEnd := i - 1
	for cEnd > floor {
		if !t.verifyNode(cEnd) {
			return false
		}
		cEnd -= t.nodes[cEnd].SubtreeSize
	}
	return cEnd == floor
}

// Print renders the tree as an indented, line-per-node textual dump.
func (t *ParseTree) Print() string {
	var b strings.Builder
	roots := t.Roots()
	for _, r := range roots {
		t.printNode(&b, r, 0)
	}
	return b.String()
}

func (t *ParseTree) printNode(b *strings.Builder, i int, depth int) {
	n := t.nodes[i]
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "{node_index: %d, kind: '%s', text: '%s'", i, n.Kind, t.Text(i))
	if n.HasError {
		b.WriteString(", has_error: yes")
	}
	children := t.Children(i)
	if len(children) > 0 {
		fmt.Fprintf(b, ", subtree_size: %d, children: [\n", n.SubtreeSize)
		for _, c := range children {
			t.printNode(b, c, depth+1)
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("]}\n")
	} else {
		b.WriteString("}\n")
	}
}
