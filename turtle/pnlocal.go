package turtle

import "strings"

// unescapePNLocal removes the backslash from PN_LOCAL_ESC escapes
// (\_ \~ \. \- \! \$ \& \' \( \) \* \+ \, \; \= \/ \? \# \@ \%); percent
// escapes (%XX) are left as-is since they are valid IRI content verbatim.
func unescapePNLocal(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(s[i])
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
