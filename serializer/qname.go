package serializer

import (
	"regexp"
	"strings"

	"github.com/turtlelang/ttl/rdf"
)

// qnameLocalRe approximates the Turtle PN_LOCAL grammar closely enough for
// QName validation on ordinary ASCII vocabularies: an identifier-like run
// of letters, digits, underscore, hyphen, or dot, not ending in a dot. Full
// PN_LOCAL's Unicode PN_CHARS ranges and percent-escape handling live in
// the turtle package's lexical grammar; duplicating that here would couple
// the writer to the reader's lexical details for no behavioral benefit,
// since an invalid-as-QName local name simply falls back to a full <IRI>.
var qnameLocalRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

func isValidQNameLocal(local string) bool {
	if local == "" {
		return false
	}
	if strings.HasSuffix(local, ".") {
		return false
	}
	return qnameLocalRe.MatchString(local)
}

// qname computes and caches the QName form of term: blank nodes always
// resolve to their "_:id" form; URIs are matched against the longest
// registered prefix namespace they start with, falling back to
// standard-vocabulary auto-discovery, and finally to "no QName" (meaning
// the caller must emit a full <IRI>).
func (w *Writer) qname(term rdf.Term) (string, bool) {
	if term.IsBlankNode() {
		return "_:" + term.Value, true
	}
	if !term.IsIRI() {
		return "", false
	}

	if cached, ok := w.uriToQName[term.Value]; ok {
		return cached, cached != ""
	}

	if qn, ok := w.matchRegisteredPrefix(term.Value); ok {
		w.uriToQName[term.Value] = qn
		return qn, true
	}

	if w.opts.StandardPrefixes {
		if qn, ok := w.discoverStandardPrefix(term.Value); ok {
			w.uriToQName[term.Value] = qn
			return qn, true
		}
	}

	w.uriToQName[term.Value] = ""
	return "", false
}

func (w *Writer) matchRegisteredPrefix(uri string) (string, bool) {
	bestPrefix, bestNS := "", ""
	for prefix, ns := range w.prefixes {
		if ns == "" || !strings.HasPrefix(uri, ns) {
			continue
		}
		if len(ns) > len(bestNS) {
			bestPrefix, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return "", false
	}
	local := uri[len(bestNS):]
	if !isValidQNameLocal(local) {
		return "", false
	}
	w.usedPrefixes[bestPrefix] = bestNS
	w.uriToPrefix[uri] = bestPrefix
	if bestPrefix == "" {
		return ":" + local, true
	}
	return bestPrefix + ":" + local, true
}

func (w *Writer) discoverStandardPrefix(uri string) (string, bool) {
	for _, v := range standardVocab {
		if !strings.HasPrefix(uri, v.namespace) {
			continue
		}
		local := uri[len(v.namespace):]
		if !isValidQNameLocal(local) {
			return "", false
		}
		if existingNS, ok := w.prefixes[v.prefix]; ok && existingNS != v.namespace {
			// The short name is already bound to something else; don't
			// clobber a user-configured prefix.
			continue
		}
		w.prefixes[v.prefix] = v.namespace
		w.usedPrefixes[v.prefix] = v.namespace
		w.uriToPrefix[uri] = v.prefix
		return v.prefix + ":" + local, true
	}
	return "", false
}
