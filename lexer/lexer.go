// Package lexer turns a byte stream into a sequence of typed tokens using a
// configurable, ordered table of regular-expression terminals: each
// candidate pattern is anchored at the cursor and the first registered one
// that matches wins.
package lexer

import (
	"regexp"
	"strings"

	"github.com/turtlelang/ttl/source"
	"github.com/turtlelang/ttl/token"
)

// Terminal describes one lexical rule: a token Kind ("" for an anonymous
// literal terminal), the pattern that recognizes it, and whether matched
// text should be run through Unescape before being emitted. Order of
// registration is match priority.
type Terminal struct {
	Kind     token.Symbol
	Pattern  *regexp.Regexp
	Unescape bool
}

// Config bundles the lexer's whitespace and comment skip patterns.
type Config struct {
	Whitespace *regexp.Regexp
	Comment    *regexp.Regexp
}

// Lexer produces tokens lazily from an input string under a fixed terminal
// table. A Lexer is single-use: there is no rewind, only a new Lexer over
// the same input.
type Lexer struct {
	scanner   *source.Scanner
	terminals []Terminal
	cfg       Config
	line      int
	lookahead *token.Token
	haveLook  bool
	atEOF     bool
}

// New constructs a Lexer. It fails with a *ConfigError if terminals is
// empty.
func New(input string, terminals []Terminal, cfg Config) (*Lexer, error) {
	if len(terminals) == 0 {
		return nil, configErrorf("lexer requires at least one registered terminal")
	}
	return &Lexer{
		scanner:   source.New(input),
		terminals: terminals,
		cfg:       cfg,
		line:      1,
	}, nil
}

// First returns the next token without consuming it. Repeated calls without
// an intervening Shift return the same token (idempotent).
func (l *Lexer) First() (*token.Token, error) {
	if l.haveLook {
		return l.lookahead, nil
	}
	if l.atEOF {
		return nil, nil
	}

	tok, err := l.next()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		l.atEOF = true
		return nil, nil
	}
	l.lookahead = tok
	l.haveLook = true
	return tok, nil
}

// Shift returns the next token and consumes it.
func (l *Lexer) Shift() (*token.Token, error) {
	tok, err := l.First()
	if err != nil {
		return nil, err
	}
	l.haveLook = false
	l.lookahead = nil
	return tok, nil
}

// EachToken calls fn once per remaining token, in order, stopping at EOF or
// at the first error fn returns.
func (l *Lexer) EachToken(fn func(*token.Token) error) error {
	for {
		tok, err := l.Shift()
		if err != nil {
			return err
		}
		if tok == nil {
			return nil
		}
		if err := fn(tok); err != nil {
			return err
		}
	}
}

// Recover skips pattern (if given and it matches), then retries First. On
// failure it advances one byte and retries, guaranteeing forward progress
// so a caller driving recovery in a loop cannot spin forever.
func (l *Lexer) Recover(pattern *regexp.Regexp) (*token.Token, error) {
	l.haveLook = false
	l.lookahead = nil
	l.atEOF = false

	if pattern != nil {
		before := l.scanner.Pos()
		if l.scanner.Skip(pattern) {
			l.countNewlines(l.scanner.Slice(before, l.scanner.Pos()))
		}
	}

	tok, err := l.First()
	if err == nil {
		return tok, nil
	}

	for !l.scanner.AtEOS() {
		before := l.scanner.Pos()
		l.advanceOneByte()
		l.countNewlines(l.scanner.Slice(before, l.scanner.Pos()))
		tok, err = l.First()
		if err == nil {
			return tok, nil
		}
	}

	return nil, err
}

func (l *Lexer) advanceOneByte() {
	if l.scanner.AtEOS() {
		return
	}
	l.scanner.SetPos(l.scanner.Pos() + 1)
}

// Line reports the 1-based line of the lexer's current position, i.e. the
// line the next token (if any) will be reported on.
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) countNewlines(s string) {
	l.line += strings.Count(s, "\n")
}

// next skips whitespace and comments, then tries each terminal in
// registration order at the cursor; the first match wins.
func (l *Lexer) next() (*token.Token, error) {
	for {
		skippedWS := l.skip(l.cfg.Whitespace)
		skippedComment := l.skip(l.cfg.Comment)
		if !skippedWS && !skippedComment {
			break
		}
	}

	if l.scanner.AtEOS() {
		return nil, nil
	}

	startLine := l.line
	for _, term := range l.terminals {
		if term.Pattern == nil {
			continue
		}
		matched, ok := l.scanner.Scan(term.Pattern)
		if !ok {
			continue
		}
		l.countNewlines(matched)

		value := matched
		if term.Unescape {
			var err error
			value, err = Unescape(matched)
			if err != nil {
				return nil, err
			}
		}

		return &token.Token{Kind: term.Kind, Value: value, Line: startLine}, nil
	}

	return nil, l.lexError(startLine)
}

func (l *Lexer) skip(re *regexp.Regexp) bool {
	if re == nil {
		return false
	}
	before := l.scanner.Pos()
	if !l.scanner.Skip(re) {
		return false
	}
	l.countNewlines(l.scanner.Slice(before, l.scanner.Pos()))
	return true
}

var wordBoundary = regexp.MustCompile(`\s`)

func (l *Lexer) lexError(line int) *LexerError {
	rest := l.scanner.Rest()
	offending := rest
	if loc := wordBoundary.FindStringIndex(rest); loc != nil {
		offending = rest[:loc[0]]
	}
	if offending == "" {
		offending = rest
	}
	return &LexerError{
		Snippet:        truncate(rest, 100),
		OffendingToken: truncate(offending, 100),
		Line:           line,
	}
}
