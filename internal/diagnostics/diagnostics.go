// Package diagnostics defines the sink contract that the lexer and parser
// emit structured, recoverable diagnostics through, plus two concrete
// sinks: one that renders them to an io.Writer and one that collects them
// for tests.
package diagnostics

import (
	"fmt"
	"io"
	"sort"
)

// Severity classifies how serious a diagnostic is. Nothing in the lexer
// or parser changes behavior based on severity; it exists purely for the
// sink to decide how to present a diagnostic.
type Severity int

const (
	// Error indicates the input did not conform to the grammar; the
	// lexer or parser still produced a token or node, possibly a lossy
	// one, so the pipeline can continue.
	Error Severity = iota
	// Warning indicates a diagnostic that does not itself make any
	// token or node invalid.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Kind is a diagnostic's stable short-name, e.g. "syntax-invalid-number".
// These strings are relied on by tests; they must not change once shipped.
type Kind string

// Lexical diagnostic kinds.
const (
	KindInvalidCharacter         Kind = "syntax-invalid-character"
	KindInvalidNumber            Kind = "syntax-invalid-number"
	KindIrregularDigitSeparators Kind = "syntax-irregular-digit-separators"
	KindInvalidString            Kind = "syntax-invalid-string"
	KindMismatchedBracket        Kind = "syntax-mismatched-bracket"
	KindUnterminatedComment      Kind = "syntax-unterminated-comment"
)

// Parse diagnostic kinds.
const (
	KindExpectedTokenFoundOther Kind = "syntax-expected-x-found-y"
)

func (k Kind) String() string {
	return string(k)
}

// Diagnostic is one recoverable finding, keyed to a byte location in the
// buffer that produced it.
type Diagnostic struct {
	Location int // byte offset into the source buffer
	Kind     Kind
	Severity Severity
	Message  string
	Args     map[string]any
}

// Emitter is the contract the lexer and parser are written against:
// emit(location, diagnostic_kind, severity, args...). Implementations
// must not block or panic; emission is fire-and-forget and never
// propagates back into the caller as a Go error.
type Emitter interface {
	Emit(d Diagnostic)
}

// Emit is a convenience constructor-and-emit helper used throughout the
// lexer and parser so call sites read as one expression instead of a
// struct literal followed by a call.
func Emit(e Emitter, location int, kind Kind, severity Severity, message string, args map[string]any) {
	e.Emit(Diagnostic{
		Location: location,
		Kind:     kind,
		Severity: severity,
		Message:  message,
		Args:     args,
	})
}

// TextEmitter renders diagnostics to an io.Writer as they arrive, in the
// GCC/Clang "file:line:column: severity: message" style. It resolves
// line/column from the byte offset lazily, against the source text it was
// constructed with; the lexer and parser never compute line/column
// themselves.
type TextEmitter struct {
	Filename string
	Source   []byte
	Out      io.Writer

	hadErrors bool
}

// NewTextEmitter creates a TextEmitter for the given source.
func NewTextEmitter(filename string, source []byte, out io.Writer) *TextEmitter {
	return &TextEmitter{Filename: filename, Source: source, Out: out}
}

// Emit implements Emitter.
func (e *TextEmitter) Emit(d Diagnostic) {
	if d.Severity == Error {
		e.hadErrors = true
	}
	pos := Locate(e.Source, d.Location)
	fmt.Fprintf(e.Out, "%s:%d:%d: %s: %s [%s]\n",
		e.Filename, pos.Line, pos.Column, d.Severity, d.Message, d.Kind)
}

// HadErrors reports whether any Error-severity diagnostic has been
// emitted so far.
func (e *TextEmitter) HadErrors() bool {
	return e.hadErrors
}

// CollectingEmitter accumulates diagnostics in emission order. It is used
// throughout the test suite so that tests can assert on exact kinds and
// locations without depending on text formatting.
type CollectingEmitter struct {
	Diagnostics []Diagnostic
}

// Emit implements Emitter.
func (e *CollectingEmitter) Emit(d Diagnostic) {
	e.Diagnostics = append(e.Diagnostics, d)
}

// Kinds returns the Kind of every collected diagnostic, in emission
// order, for terse test assertions.
func (e *CollectingEmitter) Kinds() []Kind {
	kinds := make([]Kind, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		kinds[i] = d.Kind
	}
	return kinds
}

// HasKind reports whether any collected diagnostic has the given kind.
func (e *CollectingEmitter) HasKind(k Kind) bool {
	for _, d := range e.Diagnostics {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// SortByLocation orders the collected diagnostics by byte offset, stable
// on emission order for diagnostics at the same location. Tests rely on
// this for a deterministic expected-output comparison, since the lexer
// and parser may emit diagnostics out of byte order (for example, a
// parser diagnostic referring back to an earlier token).
func (e *CollectingEmitter) SortByLocation() {
	sort.SliceStable(e.Diagnostics, func(i, j int) bool {
		return e.Diagnostics[i].Location < e.Diagnostics[j].Location
	})
}
