package serializer

import "github.com/turtlelang/ttl/rdf"

// isValidList reports whether node heads a well-formed RDF collection:
// either node is rdf:nil, or every node in the rdf:rest chain carries
// exactly one rdf:first and one rdf:rest and no other predicate, ending at
// rdf:nil. A cycle or a dangling chain (neither nil nor first/rest-shaped)
// makes it invalid, at which point the writer falls back to ordinary
// blank-node property-list emission for node.
func (w *Writer) isValidList(node rdf.Term) bool {
	nilTerm := rdf.NewIRI(rdfNil)
	firstPred := rdf.NewIRI(rdfFirst)
	restPred := rdf.NewIRI(rdfRest)

	visited := map[rdf.Term]bool{}
	cur := node
	for {
		if cur == nilTerm {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true

		sp, ok := w.bySubject[cur]
		if !ok || len(sp.order) != 2 {
			return false
		}
		firsts, rests := sp.objs[firstPred], sp.objs[restPred]
		if len(firsts) != 1 || len(rests) != 1 {
			return false
		}
		cur = rests[0]
	}
}

// listItems returns the ordered rdf:first values of the collection headed
// by node. Callers must have already confirmed isValidList(node).
func (w *Writer) listItems(node rdf.Term) []rdf.Term {
	nilTerm := rdf.NewIRI(rdfNil)
	firstPred := rdf.NewIRI(rdfFirst)
	restPred := rdf.NewIRI(rdfRest)

	var items []rdf.Term
	cur := node
	for cur != nilTerm {
		sp := w.bySubject[cur]
		items = append(items, sp.objs[firstPred][0])
		cur = sp.objs[restPred][0]
	}
	return items
}
