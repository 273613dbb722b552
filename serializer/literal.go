package serializer

import (
	"strings"

	"github.com/turtlelang/ttl/rdf"
)

// formatLiteral renders term's lexical form: boolean/integer/decimal are
// emitted bare, double lowercases its exponent marker, and everything else
// is a quoted string with an optional @lang/^^datatype suffix.
func (w *Writer) formatLiteral(term rdf.Term) string {
	lexical := term.Value
	if w.opts.Canonicalize {
		lexical = canonicalizeNumeric(term.Datatype, lexical)
	}

	switch term.Datatype {
	case xsdBoolean, xsdInteger, xsdDecimal:
		return lexical
	case xsdDouble:
		return strings.ToLower(lexical)
	}

	quoted := quoteLiteralValue(lexical)
	if term.Lang != "" {
		return quoted + "@" + term.Lang
	}
	if term.Datatype != "" && term.Datatype != rdf.XSDString {
		return quoted + "^^" + w.formatDatatypeIRI(term.Datatype)
	}
	return quoted
}

func (w *Writer) formatDatatypeIRI(iri string) string {
	if qn, ok := w.qname(rdf.NewIRI(iri)); ok {
		return qn
	}
	return "<" + iri + ">"
}

// canonicalizeNumeric strips a redundant leading "+" and leading zeros
// from integers and lowercases the exponent marker on doubles. Decimal
// lexical forms are left as-is, including a leading "+" or a missing digit
// before the dot.
func canonicalizeNumeric(datatype, lexical string) string {
	switch datatype {
	case xsdInteger:
		return canonicalizeInteger(lexical)
	case xsdDouble:
		return strings.ToLower(lexical)
	default:
		return lexical
	}
}

func canonicalizeInteger(lexical string) string {
	neg := strings.HasPrefix(lexical, "-")
	digits := strings.TrimPrefix(strings.TrimPrefix(lexical, "+"), "-")
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	if neg && digits != "0" {
		return "-" + digits
	}
	return digits
}

// quoteLiteralValue picks between the short single-quoted form and the
// long triple-quoted form based on whether value contains a raw tab,
// newline, or carriage return.
func quoteLiteralValue(value string) string {
	if strings.ContainsAny(value, "\t\n\r") {
		return `"""` + escapeQuoted(value) + `"""`
	}
	return `"` + escapeQuoted(value) + `"`
}

// escapeQuoted backslash-escapes a literal backslash or double quote.
// Escaping every quote (not only runs of three inside a long literal)
// occasionally escapes one that strictly didn't need it, but the result
// is always valid Turtle in both quoting forms.
func escapeQuoted(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
