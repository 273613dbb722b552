// Package turtle binds the generic parser engine to the W3C Turtle grammar,
// translating a successful parse into rdf.Triple values via a Reader.
package turtle

import (
	"errors"

	"github.com/turtlelang/ttl/lexer"
	"github.com/turtlelang/ttl/parser"
	"github.com/turtlelang/ttl/rdf"
)

// Options configures a single ReadAll call.
type Options struct {
	// BaseURI seeds @base before parsing begins; directives in the source
	// text may still override it.
	BaseURI string
	// Validate, when true, aborts the parse at the first error instead of
	// accumulating and continuing.
	Validate bool
	// Emit, if non-nil, is called once per parsed triple, in the order
	// each triples production flushes its queued statements.
	Emit func(rdf.Triple) error
	// Trace, if non-nil, receives a production/event pair on every
	// onStart/onFinish transition.
	Trace func(production, event string)
}

// Reader parses Turtle source into an rdf.Graph. A Reader is stateless
// between calls; each ReadAll builds its own context and grammar.
type Reader struct{}

// NewReader returns a ready-to-use Reader.
func NewReader() *Reader { return &Reader{} }

// ReadAll parses input as a complete Turtle document and returns the
// resulting graph. Errors from the underlying engine are returned
// unwrapped: *parser.ParseErrors for logged parse errors (unlexable input
// included), or a plain error for an invalid escape sequence or an
// undefined prefix, which ends the parse at once. When the error is a
// *parser.ParseErrors from a non-validating parse, the graph holds every
// statement recovered before, between, and after the errors.
func (r *Reader) ReadAll(input string, opts Options) (*rdf.Graph, error) {
	ctx, err := newContext(opts.BaseURI, opts.Emit)
	if err != nil {
		return nil, err
	}

	grammar, err := buildGrammar(ctx)
	if err != nil {
		return nil, err
	}

	debug := opts.Trace
	var dbg parser.Debugger
	if debug != nil {
		dbg = func(production, event string) { debug(production, event) }
	}

	if err := parser.Parse(grammar, input, parser.Options{Validate: opts.Validate, Debug: dbg}); err != nil {
		var perrs *parser.ParseErrors
		if errors.As(err, &perrs) {
			return ctx.graph, err
		}
		return nil, err
	}
	return ctx.graph, nil
}

// NewLexer builds a Lexer over input using the Turtle terminal table,
// independent of the parser and its production handlers. It exists for
// callers that only want to tokenize, such as a --lex-only CLI mode.
func NewLexer(input string) (*lexer.Lexer, error) {
	ctx, err := newContext("", nil)
	if err != nil {
		return nil, err
	}
	grammar, err := buildGrammar(ctx)
	if err != nil {
		return nil, err
	}
	terminals, cfg := grammar.Terminals()
	return lexer.New(input, terminals, cfg)
}
