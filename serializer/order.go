package serializer

import (
	"sort"

	"github.com/turtlelang/ttl/rdf"
)

// topClasses are the rdf:type objects whose instances are promoted ahead
// of the remaining subjects. rdfs:Class is the sole member; class
// definitions read best at the top of a document and nothing else needs
// the same treatment.
var topClasses = []string{rdfsClass}

// orderedSubjects decides top-level emission order: the base subject (if
// any) first, then class definitions sorted by IRI, then everything else
// with named nodes before blank nodes, fewer-referenced subjects first,
// ties broken lexicographically.
func (w *Writer) orderedSubjects() []rdf.Term {
	remaining := map[rdf.Term]bool{}
	for s := range w.subjects {
		remaining[s] = true
	}

	var ordered []rdf.Term

	if w.opts.BaseURI != "" {
		base := rdf.NewIRI(w.opts.BaseURI)
		if remaining[base] {
			ordered = append(ordered, base)
			delete(remaining, base)
		}
	}

	for _, class := range topClasses {
		instances := w.instancesOf(class, remaining)
		sort.Slice(instances, func(i, j int) bool { return instances[i].Value < instances[j].Value })
		for _, s := range instances {
			ordered = append(ordered, s)
			delete(remaining, s)
		}
	}

	var rest []rdf.Term
	for s := range remaining {
		rest = append(rest, s)
	}
	sort.Slice(rest, func(i, j int) bool {
		a, b := rest[i], rest[j]
		ai, bi := blankRank(a), blankRank(b)
		if ai != bi {
			return ai < bi
		}
		ra, rb := w.references[a], w.references[b]
		if ra != rb {
			return ra < rb
		}
		return a.Value < b.Value
	})
	ordered = append(ordered, rest...)

	return ordered
}

func blankRank(t rdf.Term) int {
	if t.IsBlankNode() {
		return 1
	}
	return 0
}

func (w *Writer) instancesOf(classURI string, candidates map[rdf.Term]bool) []rdf.Term {
	class := rdf.NewIRI(classURI)
	typePred := rdf.NewIRI(rdfType)
	seen := map[rdf.Term]bool{}
	var out []rdf.Term
	for s := range candidates {
		sp, ok := w.bySubject[s]
		if !ok {
			continue
		}
		for _, o := range sp.objs[typePred] {
			if o == class && !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
