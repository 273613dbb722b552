package turtle

import (
	"github.com/turtlelang/ttl/parser"
	"github.com/turtlelang/ttl/token"
)

// Production names. Kept as constants so a typo in a handler's production
// check fails at compile time rather than silently mismatching a branch
// entry.
const (
	prodTurtleDoc        = "turtleDoc"
	prodStatementList    = "statementList"
	prodStatement        = "statement"
	prodDirective        = "directive"
	prodPrefixID         = "prefixID"
	prodBase             = "base"
	prodSparqlPrefix     = "sparqlPrefix"
	prodSparqlBase       = "sparqlBase"
	prodTriples          = "triples"
	prodPOL              = "predicateObjectList"
	prodPOLTail          = "predicateObjectListTail"
	prodPOLOpt           = "predicateObjectListOpt"
	prodObjectList       = "objectList"
	prodObjectListTail   = "objectListTail"
	prodVerb             = "verb"
	prodSubject          = "subject"
	prodPredicate        = "predicate"
	prodObject           = "object"
	prodLiteral          = "literal"
	prodLiteralSuffix    = "literalSuffix"
	prodBlankNodePropL   = "blankNodePropertyList"
	prodCollection       = "collection"
	prodCollectionItems  = "collectionItems"
	prodBlankNode        = "blankNode"
	prodIRI              = "iri"
)

func reprs(kinds ...token.Symbol) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = token.KindRepr(k)
	}
	return out
}

var (
	iriFirst       = reprs(IRIREF, PNAME_LN, PNAME_NS)
	blankNodeFirst = reprs(BLANK_NODE_L, ANON)
	numericFirst   = reprs(INTEGER, DECIMAL, DOUBLE)
	stringFirst    = reprs(STR_QUOTE, STR_SQUOTE, STR_LQUOTE, STR_LSQUOTE)
	collFirst      = []string{token.LiteralRepr("(")}
	bnplFirst      = []string{token.LiteralRepr("[")}
	boolFirst      = []string{token.LiteralRepr("true"), token.LiteralRepr("false")}
)

func concat(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// buildGrammar assembles the Turtle grammar bound to ctx: every terminal
// callback and production handler closes over ctx so matched tokens and
// completed productions mutate ctx.graph/ctx.prefixes/ctx.base directly.
func buildGrammar(ctx *context) (*parser.Grammar, error) {
	gb := parser.NewGrammarBuilder(reWhitespace, reComment)

	registerTerminals(gb, ctx)
	registerTurtleDoc(gb)
	registerDirectives(gb, ctx)
	registerTriples(gb, ctx)
	registerPredicateObjectList(gb)
	registerObjectList(gb)
	registerVerbSubjectPredicateObject(gb, ctx)
	registerLiteral(gb, ctx)
	registerBlankNodePropertyList(gb, ctx)
	registerCollection(gb, ctx)
	registerBlankNode(gb, ctx)
	registerIRI(gb, ctx)

	return gb.Build(prodTurtleDoc)
}

func registerTerminals(gb *parser.GrammarBuilder, ctx *context) {
	// The four string-literal terminals and IRIREF are the only ones whose
	// matched text carries escapes; the surrounding quote delimiters are
	// plain ASCII and pass through Unescape untouched, so stripQuotes still
	// finds them at fixed offsets afterwards.
	gb.Terminal(STR_LQUOTE, reStringLongQuote, true, stringTerminalHandler(ctx, 3))
	gb.Terminal(STR_LSQUOTE, reStringLongSingleQuote, true, stringTerminalHandler(ctx, 3))
	gb.Terminal(STR_QUOTE, reStringQuote, true, stringTerminalHandler(ctx, 1))
	gb.Terminal(STR_SQUOTE, reStringSingleQuote, true, stringTerminalHandler(ctx, 1))

	gb.Terminal(IRIREF, reIRIREF, true, iriTokenHandler(ctx))
	gb.Terminal(PNAME_LN, rePNAME_LN, false, prefixedNameHandler(ctx))
	gb.Terminal(PNAME_NS, rePNAME_NS, false, prefixedNameHandler(ctx))
	gb.Terminal(BLANK_NODE_L, reBLANK_NODE_LABEL, false, blankNodeTokenHandler(ctx))
	gb.Terminal(ANON, reANON, false, blankNodeTokenHandler(ctx))

	gb.Terminal(DOUBLE, reDOUBLE, false, numericHandler(ctx))
	gb.Terminal(DECIMAL, reDECIMAL, false, numericHandler(ctx))
	gb.Terminal(INTEGER, reINTEGER, false, numericHandler(ctx))

	gb.Terminal("", litPattern("@prefix"), false, nil)
	gb.Terminal("", litPattern("@base"), false, nil)
	gb.Terminal(LANGTAG, reLANGTAG, false, langtagHandler(ctx))

	// true/false/a are all anonymous (Kind "") literal terminals, so they
	// share the single catch-all callback slot; one handler dispatching on
	// (production, value) covers every anonymous terminal that needs a
	// semantic action.
	gb.Terminal("", reTrue, false, anonTerminalHandler(ctx))
	gb.Terminal("", reFalse, false, anonTerminalHandler(ctx))

	gb.Terminal(PREFIX_KW, rePREFIX_KW, false, nil)
	gb.Terminal(BASE_KW, reBASE_KW, false, nil)

	gb.Terminal("", litPattern("a"), false, anonTerminalHandler(ctx))
	for _, p := range []string{".", ",", ";", "[", "]", "(", ")", "^^"} {
		gb.Terminal("", litPattern(p), false, nil)
	}
}

var directiveFirst = []string{
	token.LiteralRepr("@prefix"), token.LiteralRepr("@base"),
	token.KindRepr(PREFIX_KW), token.KindRepr(BASE_KW),
}

var triplesFirst = concat(iriFirst, blankNodeFirst, collFirst, bnplFirst)

var statementFirst = concat(directiveFirst, triplesFirst)

func registerTurtleDoc(gb *parser.GrammarBuilder) {
	// turtleDoc has exactly one rule; the epsilon entry lets an empty (or
	// purely whitespace/comment) document close the root frame immediately
	// instead of requiring at least one statement.
	gb.Branch(prodTurtleDoc, map[string][]parser.Elem{parser.EpsilonKey: nil})
	for _, r := range statementFirst {
		gb.Branch(prodTurtleDoc, map[string][]parser.Elem{r: {parser.NT(prodStatementList)}})
	}
	gb.First(prodTurtleDoc, statementFirst...)

	gb.Branch(prodStatementList, map[string][]parser.Elem{parser.EpsilonKey: nil})
	for _, r := range statementFirst {
		gb.Branch(prodStatementList, map[string][]parser.Elem{r: {parser.NT(prodStatement), parser.NT(prodStatementList)}})
	}
	gb.First(prodStatementList, statementFirst...)
	gb.Follow(prodStatementList) // FOLLOW is EOF only; nothing else ever follows it

	for _, r := range directiveFirst {
		gb.Branch(prodStatement, map[string][]parser.Elem{r: {parser.NT(prodDirective)}})
	}
	for _, r := range triplesFirst {
		gb.Branch(prodStatement, map[string][]parser.Elem{r: {parser.NT(prodTriples), parser.Lit(".")}})
	}
	gb.First(prodStatement, statementFirst...)
	gb.Follow(prodStatement, statementFirst...)
}

func registerDirectives(gb *parser.GrammarBuilder, ctx *context) {
	gb.Branch(prodDirective, map[string][]parser.Elem{
		token.LiteralRepr("@prefix"): {parser.NT(prodPrefixID)},
		token.LiteralRepr("@base"):   {parser.NT(prodBase)},
		token.KindRepr(PREFIX_KW):    {parser.NT(prodSparqlPrefix)},
		token.KindRepr(BASE_KW):      {parser.NT(prodSparqlBase)},
	})
	gb.First(prodDirective, token.LiteralRepr("@prefix"), token.LiteralRepr("@base"), token.KindRepr(PREFIX_KW), token.KindRepr(BASE_KW))

	gb.Branch(prodPrefixID, map[string][]parser.Elem{
		token.LiteralRepr("@prefix"): {parser.Lit("@prefix"), parser.T(PNAME_NS), parser.T(IRIREF), parser.Lit(".")},
	})
	gb.First(prodPrefixID, token.LiteralRepr("@prefix"))
	gb.Production(prodPrefixID, func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		prefix, _ := current["prefix"].(string)
		iri, _ := current["iri"].(string)
		ctx.prefixes[prefix] = ctx.resolve(iri)
		return nil
	}, nil)

	gb.Branch(prodBase, map[string][]parser.Elem{
		token.LiteralRepr("@base"): {parser.Lit("@base"), parser.T(IRIREF), parser.Lit(".")},
	})
	gb.First(prodBase, token.LiteralRepr("@base"))
	gb.Production(prodBase, func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		iri, _ := current["iri"].(string)
		return ctx.setBase(iri)
	}, nil)

	gb.Branch(prodSparqlPrefix, map[string][]parser.Elem{
		token.KindRepr(PREFIX_KW): {parser.T(PREFIX_KW), parser.T(PNAME_NS), parser.T(IRIREF)},
	})
	gb.First(prodSparqlPrefix, token.KindRepr(PREFIX_KW))
	gb.Production(prodSparqlPrefix, func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		prefix, _ := current["prefix"].(string)
		iri, _ := current["iri"].(string)
		ctx.prefixes[prefix] = ctx.resolve(iri)
		return nil
	}, nil)

	gb.Branch(prodSparqlBase, map[string][]parser.Elem{
		token.KindRepr(BASE_KW): {parser.T(BASE_KW), parser.T(IRIREF)},
	})
	gb.First(prodSparqlBase, token.KindRepr(BASE_KW))
	gb.Production(prodSparqlBase, func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		iri, _ := current["iri"].(string)
		return ctx.setBase(iri)
	}, nil)
}
