package turtle

import (
	"strings"

	"github.com/turtlelang/ttl/parser"
	"github.com/turtlelang/ttl/rdf"
)

// Every handler below closes over ctx so it can resolve prefixes/base and
// synthesize blank nodes; the production name argument lets the handful of
// terminals that appear in more than one production (IRIREF, PNAME_LN/NS)
// route their result to the right ProdData key.

func stringTerminalHandler(ctx *context, quoteLen int) parser.TerminalCallback {
	return func(production, value string, data parser.ProdData) error {
		if production == prodLiteral {
			data["string"] = stripQuotes(value, quoteLen)
		}
		return nil
	}
}

func iriTokenHandler(ctx *context) parser.TerminalCallback {
	return func(production, value string, data parser.ProdData) error {
		raw := value
		if len(raw) >= 2 && raw[0] == '<' && raw[len(raw)-1] == '>' {
			raw = raw[1 : len(raw)-1]
		}
		if production == prodIRI {
			data["term"] = rdf.NewIRI(ctx.resolve(raw))
			return nil
		}
		data["iri"] = raw
		return nil
	}
}

func prefixedNameHandler(ctx *context) parser.TerminalCallback {
	return func(production, value string, data parser.ProdData) error {
		switch production {
		case prodIRI:
			term, err := ctx.expandPrefixed(value)
			if err != nil {
				return err
			}
			data["term"] = term
		case prodPrefixID, prodSparqlPrefix:
			colon := indexOfColon(value)
			data["prefix"] = value[:colon]
		}
		return nil
	}
}

func blankNodeTokenHandler(ctx *context) parser.TerminalCallback {
	return func(production, value string, data parser.ProdData) error {
		if production != prodBlankNode {
			return nil
		}
		if len(value) >= 2 && value[0] == '_' && value[1] == ':' {
			data["term"] = rdf.NewBlankNode(value[2:])
			return nil
		}
		data["term"] = ctx.newBlankNode() // ANON
		return nil
	}
}

func numericHandler(ctx *context) parser.TerminalCallback {
	return func(production, value string, data parser.ProdData) error {
		if production != prodLiteral {
			return nil
		}
		dt := rdf.XSDInteger
		switch {
		case strings.ContainsAny(value, "eE"):
			dt = rdf.XSDDouble
		case strings.Contains(value, "."):
			dt = rdf.XSDDecimal
		}
		data["term"] = rdf.NewLiteral(value, dt, "")
		return nil
	}
}

// anonTerminalHandler is the single catch-all callback for every anonymous
// (Kind "") literal terminal. It dispatches on (production, value) since
// several distinct literal texts ("a", "true", "false") carry RDF meaning
// while the rest (".", ",", "[", etc.) are pure grammar punctuation needing
// no action here.
func anonTerminalHandler(ctx *context) parser.TerminalCallback {
	return func(production, value string, data parser.ProdData) error {
		switch {
		case production == prodVerb && value == "a":
			data["term"] = rdf.NewIRI(rdf.RDFType)
		case production == prodLiteral && (value == "true" || value == "false"):
			data["term"] = rdf.NewLiteral(value, rdf.XSDBoolean, "")
		}
		return nil
	}
}

func langtagHandler(ctx *context) parser.TerminalCallback {
	return func(production, value string, data parser.ProdData) error {
		if production != prodLiteralSuffix {
			return nil
		}
		data["lang"] = strings.TrimPrefix(value, "@")
		return nil
	}
}
