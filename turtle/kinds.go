package turtle

import "github.com/turtlelang/ttl/token"

// Named token kinds. Punctuation and keyword terminals that don't need a
// dedicated kind (".", ",", ";", "[", "]", "(", ")", "^^", "a", "@prefix",
// "@base", "true", "false") are registered as anonymous (Kind "") literal
// terminals instead and match by exact text.
const (
	IRIREF       token.Symbol = "IRIREF"
	PNAME_NS     token.Symbol = "PNAME_NS"
	PNAME_LN     token.Symbol = "PNAME_LN"
	BLANK_NODE_L token.Symbol = "BLANK_NODE_LABEL"
	LANGTAG      token.Symbol = "LANGTAG"
	INTEGER      token.Symbol = "INTEGER"
	DECIMAL      token.Symbol = "DECIMAL"
	DOUBLE       token.Symbol = "DOUBLE"
	ANON         token.Symbol = "ANON"
	STR_QUOTE    token.Symbol = "STRING_LITERAL_QUOTE"
	STR_SQUOTE   token.Symbol = "STRING_LITERAL_SINGLE_QUOTE"
	STR_LQUOTE   token.Symbol = "STRING_LITERAL_LONG_QUOTE"
	STR_LSQUOTE  token.Symbol = "STRING_LITERAL_LONG_SINGLE_QUOTE"
	PREFIX_KW    token.Symbol = "PREFIX"
	BASE_KW      token.Symbol = "BASE"
)
