package parser

import (
	"fmt"
	"strings"

	"github.com/turtlelang/ttl/lexer"
	"github.com/turtlelang/ttl/token"
)

// ConfigError reports a grammar misconfiguration: an empty terminal table,
// or a start production with no branch entries. Fatal; never recovered.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// rootProduction labels errors that belong to no open production, such as
// input left over after the start production has been fully matched.
const rootProduction = "<root>"

// ParseError reports an unexpected token or premature EOF encountered while
// matching a single production. Token is nil for premature EOF.
type ParseError struct {
	Production string
	Token      *token.Token
	Line       int
}

func (e *ParseError) Error() string {
	if e.Token == nil {
		return fmt.Sprintf("parse error in %s at line %d: unexpected end of file", e.Production, e.Line)
	}
	return fmt.Sprintf("parse error in %s at line %d: unexpected token %s", e.Production, e.Line, e.Token)
}

// ParseErrors aggregates every ParseError logged during a non-validating
// parse; the parse runs to completion and reports them as one error.
type ParseErrors struct {
	Errs []*ParseError
}

func (e *ParseErrors) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, pe := range e.Errs {
		msgs[i] = pe.Error()
	}
	return strings.Join(msgs, "; ")
}

func unexpectedTokenError(production string, tok *token.Token) *ParseError {
	return &ParseError{Production: production, Token: tok, Line: tok.Line}
}

func prematureEOFError(production string) *ParseError {
	return &ParseError{Production: production, Token: nil}
}

func trailingTokenError(tok *token.Token) *ParseError {
	return &ParseError{Production: rootProduction, Token: tok, Line: tok.Line}
}

// lexerParseError folds a lexer failure into the parse error log, keeping
// the line the failure actually occurred on rather than wherever the lexer
// cursor ends up after resynchronization.
func lexerParseError(production string, lexErr *lexer.LexerError) *ParseError {
	return &ParseError{
		Production: production,
		Token:      &token.Token{Value: lexErr.OffendingToken, Line: lexErr.Line},
		Line:       lexErr.Line,
	}
}

// internalError reports a disagreement between the branch table and the
// FIRST sets: the driver was handed a token it was promised a rule for, and
// there is none. This is a grammar authoring bug, never an input error.
type internalError struct {
	message string
}

func (e *internalError) Error() string { return e.message }

func internalInvariantError(production string, tok *token.Token) error {
	return &internalError{message: fmt.Sprintf(
		"internal invariant violated: no branch rule for production %q on token %s despite a FIRST-set match",
		production, tok,
	)}
}
