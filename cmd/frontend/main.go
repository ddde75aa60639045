// Command frontend drives the lexer and parser over a source file and
// prints their diagnostics, and optionally the token stream and parse
// tree, to help inspect what the front end produced.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brambletree/langfront/internal/diagnostics"
	"github.com/brambletree/langfront/internal/lexer"
	"github.com/brambletree/langfront/internal/parser"
	"github.com/brambletree/langfront/internal/source"
)

func main() {
	emitTokens := flag.Bool("emit-tokens", false, "print the token stream")
	emitTree := flag.Bool("emit-tree", false, "print the parse tree")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-emit-tokens] [-emit-tree] <source-file>\n", os.Args[0])
		os.Exit(2)
	}
	filename := flag.Arg(0)

	buf, err := source.Load(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	emitter := diagnostics.NewTextEmitter(buf.Filename(), buf.Bytes(), os.Stderr)

	tokens := lexer.Lex(buf.Filename(), buf.Bytes(), emitter)
	if *emitTokens {
		printTokens(tokens)
	}

	tree := parser.Parse(tokens, emitter)
	if *emitTree {
		fmt.Print(tree.Print())
	}

	if emitter.HadErrors() {
		os.Exit(1)
	}
}

func printTokens(tokens *lexer.TokenizedBuffer) {
	for _, h := range tokens.Tokens() {
		fmt.Printf("%s %q\n", tokens.Kind(h), tokens.Text(h))
	}
}
