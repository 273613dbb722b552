package turtle

import (
	"github.com/turtlelang/ttl/parser"
	"github.com/turtlelang/ttl/rdf"
	"github.com/turtlelang/ttl/token"
)

// This file wires the remaining Turtle productions: triples and everything
// beneath it (predicateObjectList, objectList, verb/subject/predicate/
// object, literal, blankNodePropertyList, collection). Each production's
// handler threads RDF state through the parent/current ProdData maps the
// engine hands it at onStart/onFinish, following the key convention:
//
//   - "subject"  — the resolved subject Term, propagated downward from
//     triples through predicateObjectList/Tail/Opt and objectList/Tail.
//   - "predicate" — the resolved predicate Term, set by verb and read by
//     the objectList it introduces.
//   - "term"     — the generic "value this production produced", bubbled
//     upward by every leaf/wrapper production (iri, blankNode, literal,
//     collection, blankNodePropertyList, predicate) into its caller's
//     current map.
//
// blankNodePropertyList is the one production that writes both "subject"
// and "term" at finish, since the grammar uses it in two different roles
// (triples' alternate subject form, and as an ordinary object).

// bubbleTerm is the generic finish handler for productions that merely wrap
// a single child and forward whatever Term it produced.
func bubbleTerm(phase parser.Phase, parent, current parser.ProdData) error {
	if phase != parser.PhaseFinish {
		return nil
	}
	if t, ok := current["term"]; ok {
		parent["term"] = t
	}
	return nil
}

func propagateSubject(phase parser.Phase, parent, current parser.ProdData) error {
	if phase != parser.PhaseStart {
		return nil
	}
	current["subject"] = parent["subject"]
	return nil
}

func propagateSubjectAndPredicate(phase parser.Phase, parent, current parser.ProdData) error {
	if phase != parser.PhaseStart {
		return nil
	}
	current["subject"] = parent["subject"]
	current["predicate"] = parent["predicate"]
	return nil
}

// registerTriples wires triples, the production whose onFinish flushes
// every statement queued while parsing its subject/predicateObjectList
// subtree.
func registerTriples(gb *parser.GrammarBuilder, ctx *context) {
	gb.Branch(prodTriples, map[string][]parser.Elem{})
	for _, r := range concat(iriFirst, blankNodeFirst, collFirst) {
		gb.Branch(prodTriples, map[string][]parser.Elem{r: {parser.NT(prodSubject), parser.NT(prodPOL)}})
	}
	for _, r := range bnplFirst {
		gb.Branch(prodTriples, map[string][]parser.Elem{r: {parser.NT(prodBlankNodePropL), parser.NT(prodPOLOpt)}})
	}
	gb.First(prodTriples, triplesFirst...)
	gb.Follow(prodTriples, token.LiteralRepr("."))
	gb.Production(prodTriples, triplesHandler(ctx), nil)
}

func triplesHandler(ctx *context) parser.ProductionHandler {
	return func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		return ctx.flushPending()
	}
}

// registerPredicateObjectList wires predicateObjectList/Tail/Opt: the
// "verb objectList (';' (verb objectList)?)*" loop, restructured for LL(1)
// as POL -> verb objectList POLTail, POLTail -> ε | ';' POLOpt,
// POLOpt -> ε | verb objectList POLTail.
func registerPredicateObjectList(gb *parser.GrammarBuilder) {
	verbFirst := concat(iriFirst, []string{token.LiteralRepr("a")})
	polFollow := []string{token.LiteralRepr("."), token.LiteralRepr("]")}

	for _, r := range verbFirst {
		gb.Branch(prodPOL, map[string][]parser.Elem{r: {parser.NT(prodVerb), parser.NT(prodObjectList), parser.NT(prodPOLTail)}})
	}
	gb.First(prodPOL, verbFirst...)
	gb.Follow(prodPOL, polFollow...)
	gb.Production(prodPOL, propagateSubject, nil)

	gb.Branch(prodPOLTail, map[string][]parser.Elem{parser.EpsilonKey: nil})
	gb.Branch(prodPOLTail, map[string][]parser.Elem{token.LiteralRepr(";"): {parser.Lit(";"), parser.NT(prodPOLOpt)}})
	gb.First(prodPOLTail, token.LiteralRepr(";"))
	gb.Follow(prodPOLTail, polFollow...)
	gb.Production(prodPOLTail, propagateSubject, nil)

	gb.Branch(prodPOLOpt, map[string][]parser.Elem{parser.EpsilonKey: nil})
	for _, r := range verbFirst {
		gb.Branch(prodPOLOpt, map[string][]parser.Elem{r: {parser.NT(prodVerb), parser.NT(prodObjectList), parser.NT(prodPOLTail)}})
	}
	gb.First(prodPOLOpt, verbFirst...)
	gb.Follow(prodPOLOpt, polFollow...)
	gb.Production(prodPOLOpt, propagateSubject, nil)
}

// registerObjectList wires objectList -> object objectListTail,
// objectListTail -> ε | ',' object objectListTail.
func registerObjectList(gb *parser.GrammarBuilder) {
	objectFirst := concat(iriFirst, blankNodeFirst, collFirst, bnplFirst, stringFirst, numericFirst, boolFirst)
	olFollow := []string{token.LiteralRepr("."), token.LiteralRepr(";"), token.LiteralRepr("]")}

	for _, r := range objectFirst {
		gb.Branch(prodObjectList, map[string][]parser.Elem{r: {parser.NT(prodObject), parser.NT(prodObjectListTail)}})
	}
	gb.First(prodObjectList, objectFirst...)
	gb.Follow(prodObjectList, olFollow...)
	gb.Production(prodObjectList, propagateSubjectAndPredicate, nil)

	gb.Branch(prodObjectListTail, map[string][]parser.Elem{parser.EpsilonKey: nil})
	gb.Branch(prodObjectListTail, map[string][]parser.Elem{
		token.LiteralRepr(","): {parser.Lit(","), parser.NT(prodObject), parser.NT(prodObjectListTail)},
	})
	gb.First(prodObjectListTail, token.LiteralRepr(","))
	gb.Follow(prodObjectListTail, olFollow...)
	gb.Production(prodObjectListTail, propagateSubjectAndPredicate, nil)
}

// registerVerbSubjectPredicateObject wires verb, subject, predicate, and
// object: the four small productions that select among iri/blankNode/
// collection/blankNodePropertyList/literal and translate the result into
// either a propagated "subject"/"predicate" or an emitted triple.
func registerVerbSubjectPredicateObject(gb *parser.GrammarBuilder, ctx *context) {
	// verb: predicate | 'a'
	for _, r := range iriFirst {
		gb.Branch(prodVerb, map[string][]parser.Elem{r: {parser.NT(prodPredicate)}})
	}
	gb.Branch(prodVerb, map[string][]parser.Elem{token.LiteralRepr("a"): {parser.Lit("a")}})
	gb.First(prodVerb, concat(iriFirst, []string{token.LiteralRepr("a")})...)
	gb.Follow(prodVerb, concat(stringFirst, numericFirst, boolFirst, iriFirst, blankNodeFirst, collFirst, bnplFirst)...)
	gb.Production(prodVerb, func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		if t, ok := current["term"]; ok {
			parent["predicate"] = t
		}
		return nil
	}, nil)

	// subject: iri | BlankNode | collection
	for _, r := range iriFirst {
		gb.Branch(prodSubject, map[string][]parser.Elem{r: {parser.NT(prodIRI)}})
	}
	for _, r := range blankNodeFirst {
		gb.Branch(prodSubject, map[string][]parser.Elem{r: {parser.NT(prodBlankNode)}})
	}
	for _, r := range collFirst {
		gb.Branch(prodSubject, map[string][]parser.Elem{r: {parser.NT(prodCollection)}})
	}
	gb.First(prodSubject, concat(iriFirst, blankNodeFirst, collFirst)...)
	gb.Follow(prodSubject, concat(iriFirst, []string{token.LiteralRepr("a")})...)
	gb.Production(prodSubject, func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		if t, ok := current["term"]; ok {
			parent["subject"] = t
		}
		return nil
	}, nil)

	// predicate: iri
	for _, r := range iriFirst {
		gb.Branch(prodPredicate, map[string][]parser.Elem{r: {parser.NT(prodIRI)}})
	}
	gb.First(prodPredicate, iriFirst...)
	gb.Follow(prodPredicate, concat(stringFirst, numericFirst, boolFirst, iriFirst, blankNodeFirst, collFirst, bnplFirst)...)
	gb.Production(prodPredicate, bubbleTerm, nil)

	// object: iri | BlankNode | collection | blankNodePropertyList | literal
	objectFollow := []string{token.LiteralRepr(","), token.LiteralRepr(";"), token.LiteralRepr("."), token.LiteralRepr("]"), token.LiteralRepr(")")}
	objectFollow = concat(objectFollow, iriFirst, blankNodeFirst, collFirst, bnplFirst, stringFirst, numericFirst, boolFirst)
	for _, r := range iriFirst {
		gb.Branch(prodObject, map[string][]parser.Elem{r: {parser.NT(prodIRI)}})
	}
	for _, r := range blankNodeFirst {
		gb.Branch(prodObject, map[string][]parser.Elem{r: {parser.NT(prodBlankNode)}})
	}
	for _, r := range collFirst {
		gb.Branch(prodObject, map[string][]parser.Elem{r: {parser.NT(prodCollection)}})
	}
	for _, r := range bnplFirst {
		gb.Branch(prodObject, map[string][]parser.Elem{r: {parser.NT(prodBlankNodePropL)}})
	}
	for _, r := range concat(stringFirst, numericFirst, boolFirst) {
		gb.Branch(prodObject, map[string][]parser.Elem{r: {parser.NT(prodLiteral)}})
	}
	gb.First(prodObject, concat(iriFirst, blankNodeFirst, collFirst, bnplFirst, stringFirst, numericFirst, boolFirst)...)
	gb.Follow(prodObject, objectFollow...)
	gb.Production(prodObject, objectHandler(ctx), nil)
}

// objectHandler implements object's dual role: an ordinary
// subject/predicate/object triple when parsed under objectList, or one
// rdf:first cell when parsed under collectionItems (marked via the
// "inCollection" key its parent set).
func objectHandler(ctx *context) parser.ProductionHandler {
	return func(phase parser.Phase, parent, current parser.ProdData) error {
		switch phase {
		case parser.PhaseStart:
			inColl, _ := parent["inCollection"].(bool)
			if !inColl {
				return nil
			}
			cell := ctx.newBlankNode()
			current["listCell"] = cell
			if prev, ok := parent["prevCell"].(rdf.Term); ok {
				ctx.queueTriple(rdf.Triple{Subject: prev, Predicate: rdf.NewIRI(rdf.RDFRest), Object: cell})
			} else {
				parent["headCell"] = cell
			}
			parent["prevCell"] = cell
			return nil

		case parser.PhaseFinish:
			// After error recovery the object may have produced no term;
			// emit nothing rather than a statement with a hole in it.
			term, ok := current["term"].(rdf.Term)
			if !ok {
				return nil
			}
			if cell, ok := current["listCell"].(rdf.Term); ok {
				ctx.queueTriple(rdf.Triple{Subject: cell, Predicate: rdf.NewIRI(rdf.RDFFirst), Object: term})
				return nil
			}
			subj, okS := parent["subject"].(rdf.Term)
			pred, okP := parent["predicate"].(rdf.Term)
			if !okS || !okP {
				return nil
			}
			ctx.queueTriple(rdf.Triple{Subject: subj, Predicate: pred, Object: term})
			return nil
		}
		return nil
	}
}

// registerLiteral wires literal -> String literalSuffix | NumericLiteral |
// BooleanLiteral, and literalSuffix -> ε | LANGTAG | '^^' iri.
func registerLiteral(gb *parser.GrammarBuilder, ctx *context) {
	literalFollow := []string{token.LiteralRepr(","), token.LiteralRepr(";"), token.LiteralRepr("."), token.LiteralRepr("]"), token.LiteralRepr(")")}

	for _, r := range stringFirst {
		var sym token.Symbol
		switch r {
		case token.KindRepr(STR_QUOTE):
			sym = STR_QUOTE
		case token.KindRepr(STR_SQUOTE):
			sym = STR_SQUOTE
		case token.KindRepr(STR_LQUOTE):
			sym = STR_LQUOTE
		case token.KindRepr(STR_LSQUOTE):
			sym = STR_LSQUOTE
		}
		gb.Branch(prodLiteral, map[string][]parser.Elem{r: {parser.T(sym), parser.NT(prodLiteralSuffix)}})
	}
	for _, r := range numericFirst {
		var sym token.Symbol
		switch r {
		case token.KindRepr(INTEGER):
			sym = INTEGER
		case token.KindRepr(DECIMAL):
			sym = DECIMAL
		case token.KindRepr(DOUBLE):
			sym = DOUBLE
		}
		gb.Branch(prodLiteral, map[string][]parser.Elem{r: {parser.T(sym)}})
	}
	gb.Branch(prodLiteral, map[string][]parser.Elem{token.LiteralRepr("true"): {parser.Lit("true")}})
	gb.Branch(prodLiteral, map[string][]parser.Elem{token.LiteralRepr("false"): {parser.Lit("false")}})
	gb.First(prodLiteral, concat(stringFirst, numericFirst, boolFirst)...)
	gb.Follow(prodLiteral, literalFollow...)
	gb.Production(prodLiteral, func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		if t, ok := current["term"]; ok {
			// numeric/boolean terminals set "term" directly.
			parent["term"] = t
			return nil
		}
		s, _ := current["string"].(string)
		lang, _ := current["lang"].(string)
		dt, _ := current["datatype"].(string)
		parent["term"] = rdf.NewLiteral(s, dt, lang)
		return nil
	}, nil)

	literalSuffixFirst := []string{token.KindRepr(LANGTAG), token.LiteralRepr("^^")}
	gb.Branch(prodLiteralSuffix, map[string][]parser.Elem{parser.EpsilonKey: nil})
	gb.Branch(prodLiteralSuffix, map[string][]parser.Elem{token.KindRepr(LANGTAG): {parser.T(LANGTAG)}})
	gb.Branch(prodLiteralSuffix, map[string][]parser.Elem{token.LiteralRepr("^^"): {parser.Lit("^^"), parser.NT(prodIRI)}})
	gb.First(prodLiteralSuffix, literalSuffixFirst...)
	gb.Follow(prodLiteralSuffix, literalFollow...)
	gb.Production(prodLiteralSuffix, func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		if lang, ok := current["lang"].(string); ok {
			parent["lang"] = lang
		}
		if t, ok := current["term"].(rdf.Term); ok {
			parent["datatype"] = t.Value
		}
		return nil
	}, nil)
}

// registerBlankNodePropertyList wires '[' predicateObjectList ']', which
// allocates a fresh blank node and reuses it as the subject of its own
// inner predicateObjectList.
func registerBlankNodePropertyList(gb *parser.GrammarBuilder, ctx *context) {
	gb.Branch(prodBlankNodePropL, map[string][]parser.Elem{
		token.LiteralRepr("["): {parser.Lit("["), parser.NT(prodPOL), parser.Lit("]")},
	})
	gb.First(prodBlankNodePropL, token.LiteralRepr("["))
	gb.Follow(prodBlankNodePropL, concat(
		[]string{token.LiteralRepr(","), token.LiteralRepr(";"), token.LiteralRepr("."), token.LiteralRepr("]"), token.LiteralRepr(")")},
		iriFirst, []string{token.LiteralRepr("a")},
	)...)
	gb.Production(prodBlankNodePropL, func(phase parser.Phase, parent, current parser.ProdData) error {
		switch phase {
		case parser.PhaseStart:
			current["subject"] = ctx.newBlankNode()
		case parser.PhaseFinish:
			term := current["subject"]
			parent["term"] = term
			parent["subject"] = term
		}
		return nil
	}, nil)
}

// registerCollection wires '(' collectionItems ')' and the collectionItems
// loop that builds the rdf:first/rdf:rest chain terminated by rdf:nil.
func registerCollection(gb *parser.GrammarBuilder, ctx *context) {
	objectFirst := concat(iriFirst, blankNodeFirst, collFirst, bnplFirst, stringFirst, numericFirst, boolFirst)

	gb.Branch(prodCollection, map[string][]parser.Elem{
		token.LiteralRepr("("): {parser.Lit("("), parser.NT(prodCollectionItems), parser.Lit(")")},
	})
	gb.First(prodCollection, token.LiteralRepr("("))
	gb.Follow(prodCollection, concat(
		[]string{token.LiteralRepr(","), token.LiteralRepr(";"), token.LiteralRepr("."), token.LiteralRepr("]"), token.LiteralRepr(")")},
		iriFirst, []string{token.LiteralRepr("a")},
	)...)
	gb.Production(prodCollection, func(phase parser.Phase, parent, current parser.ProdData) error {
		if phase != parser.PhaseFinish {
			return nil
		}
		head, ok := current["headCell"].(rdf.Term)
		if !ok {
			head = rdf.NewIRI(rdf.RDFNil)
		} else if prev, ok := current["prevCell"].(rdf.Term); ok {
			ctx.queueTriple(rdf.Triple{Subject: prev, Predicate: rdf.NewIRI(rdf.RDFRest), Object: rdf.NewIRI(rdf.RDFNil)})
		}
		parent["term"] = head
		return nil
	}, nil)

	gb.Branch(prodCollectionItems, map[string][]parser.Elem{parser.EpsilonKey: nil})
	for _, r := range objectFirst {
		gb.Branch(prodCollectionItems, map[string][]parser.Elem{r: {parser.NT(prodObject), parser.NT(prodCollectionItems)}})
	}
	gb.First(prodCollectionItems, objectFirst...)
	gb.Follow(prodCollectionItems, token.LiteralRepr(")"))
	gb.Production(prodCollectionItems, func(phase parser.Phase, parent, current parser.ProdData) error {
		switch phase {
		case parser.PhaseStart:
			current["inCollection"] = true
			if pc, ok := parent["prevCell"].(rdf.Term); ok {
				current["prevCell"] = pc
			}
		case parser.PhaseFinish:
			if pc, ok := current["prevCell"].(rdf.Term); ok {
				parent["prevCell"] = pc
			}
			if hc, ok := current["headCell"].(rdf.Term); ok {
				parent["headCell"] = hc
			}
		}
		return nil
	}, nil)
}

// registerBlankNode wires blankNode -> BLANK_NODE_LABEL | ANON.
func registerBlankNode(gb *parser.GrammarBuilder, ctx *context) {
	gb.Branch(prodBlankNode, map[string][]parser.Elem{
		token.KindRepr(BLANK_NODE_L): {parser.T(BLANK_NODE_L)},
		token.KindRepr(ANON):         {parser.T(ANON)},
	})
	gb.First(prodBlankNode, blankNodeFirst...)
	gb.Follow(prodBlankNode, concat(
		[]string{token.LiteralRepr(","), token.LiteralRepr(";"), token.LiteralRepr("."), token.LiteralRepr("]"), token.LiteralRepr(")")},
		iriFirst, []string{token.LiteralRepr("a")},
	)...)
	gb.Production(prodBlankNode, bubbleTerm, nil)
}

// registerIRI wires iri -> IRIREF | PNAME_LN | PNAME_NS.
func registerIRI(gb *parser.GrammarBuilder, ctx *context) {
	gb.Branch(prodIRI, map[string][]parser.Elem{
		token.KindRepr(IRIREF):   {parser.T(IRIREF)},
		token.KindRepr(PNAME_LN): {parser.T(PNAME_LN)},
		token.KindRepr(PNAME_NS): {parser.T(PNAME_NS)},
	})
	gb.First(prodIRI, iriFirst...)
	gb.Follow(prodIRI, concat(
		[]string{token.LiteralRepr("."), token.KindRepr(LANGTAG), token.LiteralRepr("^^"),
			token.LiteralRepr(","), token.LiteralRepr(";"), token.LiteralRepr("]"), token.LiteralRepr(")")},
		iriFirst, []string{token.LiteralRepr("a")},
	)...)
	gb.Production(prodIRI, bubbleTerm, nil)
}
