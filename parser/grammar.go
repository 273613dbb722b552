// Package parser implements a table-driven LL(1) parsing engine: a fixed
// BRANCH/FIRST/FOLLOW table drives a production stack, with panic-mode
// recovery when a token falls outside a production's expected set. The
// engine is grammar-agnostic; a binding package (e.g. turtle) supplies the
// actual table and the handlers that turn matched productions into data.
package parser

import (
	"regexp"

	"github.com/turtlelang/ttl/lexer"
	"github.com/turtlelang/ttl/token"
)

// ElemKind distinguishes the three kinds of symbol a production rule can
// contain.
type ElemKind int

const (
	NonTermElem ElemKind = iota
	TermElem
	LiteralElem
)

// Elem is one symbol in a production's right-hand side.
type Elem struct {
	Kind ElemKind
	Name string
}

// NT references a nonterminal production by name.
func NT(name string) Elem { return Elem{Kind: NonTermElem, Name: name} }

// T references a named terminal by its token kind.
func T(kind token.Symbol) Elem { return Elem{Kind: TermElem, Name: string(kind)} }

// Lit references an anonymous literal terminal by its exact text.
func Lit(text string) Elem { return Elem{Kind: LiteralElem, Name: text} }

// EpsilonKey is the branch-table key for a production's empty alternative.
// Grammar bindings register it via GrammarBuilder.Branch to mark a
// nonterminal nullable.
const EpsilonKey = "ε"

// Phase identifies whether a ProductionHandler is firing at production entry
// or production exit.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseFinish
)

// ProdData is the heterogeneous accumulator threaded through a single
// production's lifetime; at PhaseFinish a handler typically folds current
// into parent.
type ProdData map[string]interface{}

// ProductionHandler is invoked at a production's start and finish.
type ProductionHandler func(phase Phase, parent, current ProdData) error

// TerminalCallback is invoked once per matched token, keyed by the token's
// Kind. The callback registered under the empty Symbol is the catch-all for
// every anonymous literal terminal.
type TerminalCallback func(production, value string, data ProdData) error

// Grammar is the frozen, validated table a Parser drives against. Build one
// with GrammarBuilder.
type Grammar struct {
	start        string
	terminals    []lexer.Terminal
	lexCfg       lexer.Config
	prodHandlers map[string]ProductionHandler
	prodRecover  map[string]*regexp.Regexp
	termHandlers map[token.Symbol]TerminalCallback
	branch       map[string]map[string][]Elem
	first        map[string]map[string]bool
	follow       map[string]map[string]bool
}

// Terminals returns the lexical terminal table and whitespace/comment
// config this grammar was built with, so a caller can drive a bare Lexer
// (e.g. for a --lex-only mode) without constructing a full parse.
func (g *Grammar) Terminals() ([]lexer.Terminal, lexer.Config) {
	return g.terminals, g.lexCfg
}

func (g *Grammar) nullable(nt string) bool {
	_, ok := g.branch[nt][EpsilonKey]
	return ok
}

func (g *Grammar) rule(nt, repr string) ([]Elem, bool) {
	rule, ok := g.branch[nt][repr]
	return rule, ok
}

// GrammarBuilder assembles a Grammar's terminal table, production rules,
// and FIRST/FOLLOW sets. The tables a grammar needs are known statically,
// so registration happens once on a builder and Build freezes the result;
// no process-wide mutable registry is involved.
type GrammarBuilder struct {
	terminals    []lexer.Terminal
	lexCfg       lexer.Config
	prodHandlers map[string]ProductionHandler
	prodRecover  map[string]*regexp.Regexp
	termHandlers map[token.Symbol]TerminalCallback
	branch       map[string]map[string][]Elem
	first        map[string]map[string]bool
	follow       map[string]map[string]bool
}

// NewGrammarBuilder starts a builder with the given whitespace/comment skip
// patterns (either may be nil to disable that kind of skipping).
func NewGrammarBuilder(whitespace, comment *regexp.Regexp) *GrammarBuilder {
	return &GrammarBuilder{
		lexCfg:       lexer.Config{Whitespace: whitespace, Comment: comment},
		prodHandlers: map[string]ProductionHandler{},
		prodRecover:  map[string]*regexp.Regexp{},
		termHandlers: map[token.Symbol]TerminalCallback{},
		branch:       map[string]map[string][]Elem{},
		first:        map[string]map[string]bool{},
		follow:       map[string]map[string]bool{},
	}
}

// Terminal registers one lexical rule and, optionally, the callback fired
// once per token of that kind. Passing the same kind multiple times (e.g.
// several distinct literal patterns all under Kind "") is expected: each
// call adds another lexer.Terminal, but they share one callback.
func (b *GrammarBuilder) Terminal(kind token.Symbol, pattern *regexp.Regexp, unescape bool, handler TerminalCallback) *GrammarBuilder {
	b.terminals = append(b.terminals, lexer.Terminal{Kind: kind, Pattern: pattern, Unescape: unescape})
	if handler != nil {
		b.termHandlers[kind] = handler
	}
	return b
}

// Production registers a nonterminal's start/finish handler and, optionally,
// the pattern skip_until_valid should discard before resuming once this
// production is the recovery target.
func (b *GrammarBuilder) Production(name string, handler ProductionHandler, recoverTo *regexp.Regexp) *GrammarBuilder {
	if handler != nil {
		b.prodHandlers[name] = handler
	}
	if recoverTo != nil {
		b.prodRecover[name] = recoverTo
	}
	return b
}

// Branch registers one or more of nonterm's alternatives, keyed by the
// token.Repr() (or "$<kind>"/":<text>" literal) of the lookahead that
// selects them. Use EpsilonKey ("ε") for nonterm's empty alternative.
func (b *GrammarBuilder) Branch(nonterm string, rules map[string][]Elem) *GrammarBuilder {
	m, ok := b.branch[nonterm]
	if !ok {
		m = map[string][]Elem{}
		b.branch[nonterm] = m
	}
	for k, v := range rules {
		m[k] = v
	}
	return b
}

// First declares members of nonterm's FIRST set by token repr.
func (b *GrammarBuilder) First(nonterm string, reprs ...string) *GrammarBuilder {
	m, ok := b.first[nonterm]
	if !ok {
		m = map[string]bool{}
		b.first[nonterm] = m
	}
	for _, r := range reprs {
		m[r] = true
	}
	return b
}

// Follow declares members of nonterm's FOLLOW set by token repr.
func (b *GrammarBuilder) Follow(nonterm string, reprs ...string) *GrammarBuilder {
	m, ok := b.follow[nonterm]
	if !ok {
		m = map[string]bool{}
		b.follow[nonterm] = m
	}
	for _, r := range reprs {
		m[r] = true
	}
	return b
}

// Build validates the accumulated tables and freezes them into a Grammar.
func (b *GrammarBuilder) Build(start string) (*Grammar, error) {
	if len(b.terminals) == 0 {
		return nil, configErrorf("grammar requires at least one registered terminal")
	}
	if _, ok := b.branch[start]; !ok {
		return nil, configErrorf("start production %q has no branch entries", start)
	}
	return &Grammar{
		start:        start,
		terminals:    b.terminals,
		lexCfg:       b.lexCfg,
		prodHandlers: b.prodHandlers,
		prodRecover:  b.prodRecover,
		termHandlers: b.termHandlers,
		branch:       b.branch,
		first:        b.first,
		follow:       b.follow,
	}, nil
}
