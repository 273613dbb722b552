package serializer

import "github.com/turtlelang/ttl/rdf"

// subjectProps is one subject's predicate -> ordered object list view of
// the buffered graph.
type subjectProps struct {
	order []rdf.Term          // predicates in first-occurrence order
	objs  map[rdf.Term][]rdf.Term
}

func newSubjectProps() *subjectProps {
	return &subjectProps{objs: map[rdf.Term][]rdf.Term{}}
}

func (sp *subjectProps) add(pred, obj rdf.Term) {
	if _, ok := sp.objs[pred]; !ok {
		sp.order = append(sp.order, pred)
	}
	sp.objs[pred] = append(sp.objs[pred], obj)
}

// preprocess rebuilds every derived structure the writer needs from the
// currently buffered triples: reference counts, the subject set, and the
// per-subject predicate/object view the emission pass walks.
func (w *Writer) preprocess() error {
	w.references = map[rdf.Term]int{}
	w.subjects = map[rdf.Term]bool{}
	w.bySubject = map[rdf.Term]*subjectProps{}
	w.subjectOrder = nil
	w.serialized = map[rdf.Term]bool{}

	for _, t := range w.triples {
		w.references[t.Object]++
		w.references[t.Predicate]++
		if !w.subjects[t.Subject] {
			w.subjects[t.Subject] = true
			w.subjectOrder = append(w.subjectOrder, t.Subject)
		}

		sp, ok := w.bySubject[t.Subject]
		if !ok {
			sp = newSubjectProps()
			w.bySubject[t.Subject] = sp
		}
		sp.add(t.Predicate, t.Object)

		if err := w.validateTerm(t.Subject); err != nil {
			return err
		}
		if err := w.validateTerm(t.Predicate); err != nil {
			return err
		}
		if err := w.validateTerm(t.Object); err != nil {
			return err
		}
		if t.Object.IsLiteral() && t.Object.Datatype != "" {
			if err := w.validateTerm(rdf.NewIRI(t.Object.Datatype)); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateTerm rejects a term that claims to be an IRI but carries no URI
// text; it leaves actual QName resolution to the emission pass, where
// usedPrefixes tracking needs to reflect terms that were really written.
func (w *Writer) validateTerm(term rdf.Term) error {
	if term.IsIRI() && term.Value == "" {
		return writerErrorf("cannot serialize an empty IRI")
	}
	return nil
}
