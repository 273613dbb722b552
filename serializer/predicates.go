package serializer

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/turtlelang/ttl/rdf"
)

var containerMembershipRe = regexp.MustCompile(`^http://www\.w3\.org/1999/02/22-rdf-syntax-ns#_([1-9][0-9]*)$`)

// sortProperties orders a subject's predicates for emission: rdf:type (as
// "a") and then the rest of preferredPredicateOrder come first, rdf:_N
// container membership predicates sort numerically, and everything
// remaining sorts lexicographically by IRI. Cells of a well-formed
// collection normally never reach this point (the list path renders them
// as "( ... )" and marks them serialized); when a first/rest-carrying node
// does land here — a shared, cyclic, or otherwise malformed chain — its
// rdf:first/rdf:rest are emitted like any other predicate so no statement
// is lost.
func sortProperties(props *subjectProps) []rdf.Term {
	preferredRank := map[string]int{}
	for i, uri := range preferredPredicateOrder {
		preferredRank[uri] = i
	}

	preds := make([]rdf.Term, 0, len(props.order))
	preds = append(preds, props.order...)

	sort.SliceStable(preds, func(i, j int) bool {
		a, b := preds[i], preds[j]
		ar, aok := preferredRank[a.Value]
		br, bok := preferredRank[b.Value]
		if aok && bok {
			return ar < br
		}
		if aok != bok {
			return aok
		}
		an, aIsContainer := containerIndex(a.Value)
		bn, bIsContainer := containerIndex(b.Value)
		if aIsContainer && bIsContainer {
			return an < bn
		}
		if aIsContainer != bIsContainer {
			return aIsContainer
		}
		return a.Value < b.Value
	})
	return preds
}

func containerIndex(uri string) (int, bool) {
	m := containerMembershipRe.FindStringSubmatch(uri)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
