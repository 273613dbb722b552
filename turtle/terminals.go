// Package turtle binds the Turtle/SPARQL-style RDF text grammar to the
// parser engine: terminal patterns, production rules, FIRST/FOLLOW sets,
// and the handlers that turn a parse into rdf.Triple values. Terminal
// character classes follow the W3C Turtle grammar's PN_CHARS_BASE/PN_CHARS/
// PN_LOCAL productions.
package turtle

import "regexp"

const (
	pnCharsBase = `A-Za-z` +
		`\x{00C0}-\x{00D6}\x{00D8}-\x{00F6}\x{00F8}-\x{02FF}` +
		`\x{0370}-\x{037D}\x{037F}-\x{1FFF}\x{200C}-\x{200D}` +
		`\x{2070}-\x{218F}\x{2C00}-\x{2FEF}\x{3001}-\x{D7FF}` +
		`\x{F900}-\x{FDCF}\x{FDF0}-\x{FFFD}\x{10000}-\x{EFFFF}`

	pnCharsU = pnCharsBase + `_`
	pnChars  = pnCharsU + `\-0-9\x{00B7}\x{0300}-\x{036F}\x{203F}-\x{2040}`

	plx = `%[0-9A-Fa-f]{2}|\\[_~.\-!$&'()*+,;=/?#@%]`

	pnLocalHead = `[` + pnCharsU + `:0-9]|` + plx
	pnLocalMid  = `[` + pnChars + `.:]|` + plx
	pnLocalTail = `[` + pnChars + `:]|` + plx

	pnPrefix = `[` + pnCharsBase + `](?:[` + pnChars + `.]*[` + pnChars + `])?`
	pnLocal  = `(?:` + pnLocalHead + `)(?:(?:` + pnLocalMid + `)*(?:` + pnLocalTail + `))?`

	iriChar = `[^\x00-\x20<>"{}|^` + "`" + `\\]`
	uchar   = `\\u[0-9A-Fa-f]{4}|\\U[0-9A-Fa-f]{8}`

	echarClass = `[tbnrf"'\\]`
)

var (
	reWhitespace = regexp.MustCompile(`[ \t\r\n]+`)
	reComment    = regexp.MustCompile(`#[^\r\n]*`)

	reIRIREF = regexp.MustCompile(`<(?:` + iriChar + `|` + uchar + `)*>`)

	rePNAME_NS = regexp.MustCompile(`(?:` + pnPrefix + `)?:`)
	rePNAME_LN = regexp.MustCompile(`(?:` + pnPrefix + `)?:(?:` + pnLocal + `)`)

	reBLANK_NODE_LABEL = regexp.MustCompile(`_:(?:[` + pnCharsU + `0-9])(?:(?:[` + pnChars + `.])*[` + pnChars + `])?`)

	reLANGTAG = regexp.MustCompile(`@[A-Za-z]+(?:-[A-Za-z0-9]+)*`)

	reDOUBLE  = regexp.MustCompile(`[+\-]?(?:[0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)[eE][+\-]?[0-9]+`)
	reDECIMAL = regexp.MustCompile(`[+\-]?[0-9]*\.[0-9]+`)
	reINTEGER = regexp.MustCompile(`[+\-]?[0-9]+`)

	reStringLongQuote       = regexp.MustCompile(`"""(?:(?:""?)?(?:[^"\\]|\\.))*"""`)
	reStringLongSingleQuote = regexp.MustCompile(`'''(?:(?:''?)?(?:[^'\\]|\\.))*'''`)
	reStringQuote           = regexp.MustCompile(`"(?:[^"\\\r\n]|\\.)*"`)
	reStringSingleQuote     = regexp.MustCompile(`'(?:[^'\\\r\n]|\\.)*'`)

	reANON = regexp.MustCompile(`\[[ \t\r\n]*\]`)

	rePREFIX_KW = regexp.MustCompile(`(?i)prefix`)
	reBASE_KW   = regexp.MustCompile(`(?i)base`)

	reTrue  = regexp.MustCompile(`true`)
	reFalse = regexp.MustCompile(`false`)
)

// litPattern compiles an exact-text pattern for an anonymous literal
// terminal (punctuation or reserved keyword spelled out verbatim).
func litPattern(text string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(text))
}

// stripQuotes removes the N leading/trailing quote characters a matched
// string literal was delimited by (1 for short forms, 3 for long forms).
// The lexer has already run the matched text through Unescape, so the
// result is the literal's final lexical form.
func stripQuotes(s string, n int) string {
	return s[n : len(s)-n]
}
