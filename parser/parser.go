package parser

import (
	"errors"

	"github.com/turtlelang/ttl/lexer"
	"github.com/turtlelang/ttl/token"
)

// Debugger receives a (production, event) pair on every onStart/onFinish
// transition, for callers that want a parse trace.
type Debugger func(production, event string)

// Options configures a single Parse call.
type Options struct {
	// Validate stops at the first error instead of accumulating errors and
	// continuing past them.
	Validate bool
	Debug    Debugger
	// Progress, if non-nil, is invoked with the source line of every token
	// the parser consumes.
	Progress func(line int)
}

// frame is one entry in the production stack. opened records whether the
// frame's start hook has fired; it fires exactly once per frame even when
// error recovery restarts rule selection.
type frame struct {
	production string
	terms      []Elem
	termsSet   bool
	opened     bool
}

// parser drives a Grammar over a Lexer. Construct one via Parse.
type parser struct {
	grammar    *Grammar
	lex        *lexer.Lexer
	todo       []frame
	data       []ProdData
	errs       []*ParseError
	validate   bool
	recovering bool
	debug      Debugger
	progress   func(line int)
}

// Parse runs grammar over input from its start production to completion,
// firing production and terminal handlers as it goes. It returns nil on a
// clean parse, *ParseErrors if one or more errors were logged (a
// *lexer.LexerError met mid-parse is logged there, not returned), a
// *ConfigError if the lexer cannot be built, an internal error if the branch
// table and FIRST sets disagree, and otherwise returns unchanged any error a
// handler returns or any lexer failure that is not a *lexer.LexerError
// (such as an invalid escape sequence).
func Parse(grammar *Grammar, input string, opts Options) error {
	lex, err := lexer.New(input, grammar.terminals, grammar.lexCfg)
	if err != nil {
		return err
	}

	p := &parser{
		grammar:  grammar,
		lex:      lex,
		validate: opts.Validate,
		debug:    opts.Debug,
		progress: opts.Progress,
		todo:     []frame{{production: grammar.start}},
		data:     []ProdData{{}},
	}
	return p.run()
}

func (p *parser) run() error {
	for len(p.todo) > 0 {
		top := &p.todo[len(p.todo)-1]

		if p.recovering {
			if err := p.unwindStep(top); err != nil {
				return err
			}
			continue
		}

		if !top.termsSet {
			if !top.opened {
				if err := p.onStart(top.production); err != nil {
					return err
				}
				top.opened = true
			}

			tok, err := p.skipUntilValid(top.production, false)
			if err != nil {
				return err
			}
			if p.recovering {
				continue
			}
			if tok == nil {
				// EOF. Unwind every open frame; any error worth reporting
				// was logged on the way here.
				return p.unwindAll()
			}

			repr := tok.Repr()
			rule, ok := p.grammar.rule(top.production, repr)
			if !ok && p.grammar.nullable(top.production) {
				rule, ok = nil, true
			}
			if !ok {
				return internalInvariantError(top.production, tok)
			}
			top.terms = rule
			top.termsSet = true
		}

		if len(top.terms) == 0 {
			if err := p.closeTop(); err != nil {
				return err
			}
			continue
		}

		elem := top.terms[0]
		if elem.Kind == NonTermElem {
			top.terms = top.terms[1:]
			p.pushFrame(elem.Name)
			continue
		}

		tok, err := p.lex.First()
		if err != nil && !isLexerError(err) {
			return err
		}
		if err == nil && tok != nil && p.accepts(elem, tok) {
			if _, err := p.lex.Shift(); err != nil {
				return err
			}
			top.terms = top.terms[1:]
			if p.progress != nil {
				p.progress(tok.Line)
			}
			if err := p.onToken(top.production, elem, tok); err != nil {
				return err
			}
			continue
		}
		if err == nil && tok == nil {
			p.logError(prematureEOFError(top.production))
			if p.validate {
				return &ParseErrors{Errs: p.errs}
			}
			return p.unwindAll()
		}

		// Lookahead doesn't match the terminal this rule expects next (or
		// the lexer failed at this position): re-enter recovery from the
		// current production's standpoint.
		if _, err := p.skipUntilValid(top.production, true); err != nil {
			return err
		}
		if p.recovering {
			continue
		}
		// Resynchronized back into this production's own FIRST set: restart
		// rule selection for it from scratch.
		top.terms, top.termsSet = nil, false
	}

	return p.finishAfterEOF()
}

// unwindStep pops or resumes the top frame while the recovering flag is set:
// a lookahead back in the frame's FIRST set restarts that production, one in
// its FOLLOW set aborts it and lets the parent resume its residual terms,
// and anything else keeps popping.
func (p *parser) unwindStep(top *frame) error {
	tok, err := p.lex.First()
	if err != nil {
		if !isLexerError(err) {
			return err
		}
		tok, err = p.lex.Recover(nil)
		if err != nil {
			return err
		}
	}
	if tok == nil {
		return p.unwindAll()
	}

	repr := tok.Repr()
	if p.grammar.first[top.production][repr] {
		p.recovering = false
		top.terms, top.termsSet = nil, false
		return nil
	}
	if p.grammar.follow[top.production][repr] {
		p.recovering = false
		return p.closeTop()
	}
	return p.closeTop()
}

// skipUntilValid peeks the lookahead and decides whether the given
// production can proceed. When force is false and the token belongs to the
// production's FIRST set (or the production is nullable), the token is
// returned unconsumed and no error is logged. Otherwise a ParseError is
// logged (an unexpected token, or a lexer failure at this position) and the
// parser enters panic mode: tokens are discarded until one resynchronizes
// into the production's FIRST set (the recovering flag clears, the caller
// may resume this production) or into the FOLLOW union of every open frame
// (the flag stays set and the driver pops frames via unwindStep).
func (p *parser) skipUntilValid(production string, force bool) (*token.Token, error) {
	tok, err := p.lex.First()
	switch {
	case err != nil:
		lexErr, ok := asLexerError(err)
		if !ok {
			return nil, err
		}
		p.logError(lexerParseError(production, lexErr))
	case tok == nil:
		return nil, nil
	default:
		if !force {
			repr := tok.Repr()
			if p.grammar.nullable(production) || p.grammar.first[production][repr] {
				return tok, nil
			}
		}
		p.logError(unexpectedTokenError(production, tok))
	}

	if p.validate {
		return nil, &ParseErrors{Errs: p.errs}
	}

	p.recovering = true
	follow := p.followUnion()
	recoverTo := p.grammar.prodRecover[production]

	for {
		tok, err = p.lex.Recover(recoverTo)
		recoverTo = nil // only discard the lead-in pattern once
		if err != nil || tok == nil {
			return nil, err
		}

		repr := tok.Repr()
		if p.grammar.first[production][repr] {
			p.recovering = false
			return tok, nil
		}
		if follow[repr] {
			return tok, nil
		}

		if _, err := p.lex.Shift(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) followUnion() map[string]bool {
	union := map[string]bool{}
	for _, f := range p.todo {
		for repr := range p.grammar.follow[f.production] {
			union[repr] = true
		}
	}
	return union
}

func (p *parser) accepts(elem Elem, tok *token.Token) bool {
	switch elem.Kind {
	case TermElem:
		return tok.Kind == token.Symbol(elem.Name)
	case LiteralElem:
		return tok.Kind == "" && tok.Value == elem.Name
	default:
		return false
	}
}

func (p *parser) pushFrame(production string) {
	p.todo = append(p.todo, frame{production: production})
}

func (p *parser) onStart(production string) error {
	handler := p.grammar.prodHandlers[production]
	parent := p.data[len(p.data)-1]
	current := ProdData{}
	if handler != nil {
		if err := handler(PhaseStart, parent, current); err != nil {
			return err
		}
	}
	p.data = append(p.data, current)
	if p.debug != nil {
		p.debug(production, "start")
	}
	return nil
}

func (p *parser) closeTop() error {
	top := p.todo[len(p.todo)-1]
	p.todo = p.todo[:len(p.todo)-1]
	if !top.opened {
		return nil
	}

	current := p.data[len(p.data)-1]
	p.data = p.data[:len(p.data)-1]
	parent := p.data[len(p.data)-1]

	handler := p.grammar.prodHandlers[top.production]
	if handler != nil {
		if err := handler(PhaseFinish, parent, current); err != nil {
			return err
		}
	}
	if p.debug != nil {
		p.debug(top.production, "finish")
	}
	return nil
}

func (p *parser) onToken(production string, elem Elem, tok *token.Token) error {
	var kind token.Symbol
	if elem.Kind == TermElem {
		kind = token.Symbol(elem.Name)
	}
	handler := p.grammar.termHandlers[kind]
	if handler == nil {
		return nil
	}
	return handler(production, tok.Value, p.data[len(p.data)-1])
}

func (p *parser) unwindAll() error {
	for len(p.todo) > 0 {
		if err := p.closeTop(); err != nil {
			return err
		}
	}
	return p.finish()
}

func (p *parser) finishAfterEOF() error {
	tok, err := p.lex.First()
	if err != nil {
		if lexErr, ok := asLexerError(err); ok {
			p.logError(lexerParseError(rootProduction, lexErr))
			return p.finish()
		}
		return err
	}
	if tok != nil {
		p.logError(trailingTokenError(tok))
	}
	return p.finish()
}

func (p *parser) finish() error {
	if len(p.errs) > 0 {
		return &ParseErrors{Errs: p.errs}
	}
	return nil
}

func (p *parser) logError(err *ParseError) {
	p.errs = append(p.errs, err)
}

func asLexerError(err error) (*lexer.LexerError, bool) {
	var lexErr *lexer.LexerError
	if errors.As(err, &lexErr) {
		return lexErr, true
	}
	return nil, false
}

func isLexerError(err error) bool {
	_, ok := asLexerError(err)
	return ok
}
