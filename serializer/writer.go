package serializer

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/turtlelang/ttl/rdf"
)

// Writer accumulates triples and serializes them to Turtle text in one
// pass, buffering the rendered body so that prefix usage discovered while
// rendering it can be declared in a preamble written before the body.
type Writer struct {
	out  io.Writer
	opts Options

	prefixes     map[string]string
	usedPrefixes map[string]string
	uriToPrefix  map[string]string
	uriToQName   map[string]string

	triples []rdf.Triple

	references   map[rdf.Term]int
	subjects     map[rdf.Term]bool
	bySubject    map[rdf.Term]*subjectProps
	subjectOrder []rdf.Term
	serialized   map[rdf.Term]bool

	written int
}

// NewWriter returns a Writer that renders to out under opts.
func NewWriter(out io.Writer, opts Options) *Writer {
	prefixes := map[string]string{}
	for p, ns := range opts.Prefixes {
		prefixes[p] = ns
	}
	if opts.DefaultNamespace != "" {
		prefixes[""] = opts.DefaultNamespace
	}
	return &Writer{
		out:          out,
		opts:         opts,
		prefixes:     prefixes,
		usedPrefixes: map[string]string{},
		uriToPrefix:  map[string]string{},
		uriToQName:   map[string]string{},
	}
}

// WriteTriple buffers one triple for later serialization.
func (w *Writer) WriteTriple(s, p, o rdf.Term) {
	w.triples = append(w.triples, rdf.Triple{Subject: s, Predicate: p, Object: o})
}

// WriteStatement buffers one triple for later serialization.
func (w *Writer) WriteStatement(t rdf.Triple) {
	w.triples = append(w.triples, t)
}

// WriteGraph buffers every triple of g, in g's own insertion order.
func (w *Writer) WriteGraph(g *rdf.Graph) {
	w.triples = append(w.triples, g.Triples()...)
}

// Written reports the total number of bytes committed by every
// WriteEpilogue call so far.
func (w *Writer) Written() int { return w.written }

// WriteEpilogue renders every buffered triple to Turtle text and commits
// the result to out in a single Write, returning the number of bytes
// written. It is the point at which preprocess, subject ordering, and
// prefix/QName discovery all happen; calling it more than once re-derives
// everything from the currently buffered triples.
func (w *Writer) WriteEpilogue() (int, error) {
	if err := w.preprocess(); err != nil {
		return 0, err
	}

	var body bytes.Buffer
	for _, s := range w.orderedSubjects() {
		if w.serialized[s] {
			continue
		}
		if err := w.statement(&body, s); err != nil {
			return 0, err
		}
	}

	var out bytes.Buffer
	w.writePreamble(&out)
	out.Write(body.Bytes())

	n, err := w.out.Write(out.Bytes())
	w.written += n
	return n, err
}

func (w *Writer) writePreamble(out *bytes.Buffer) {
	if w.opts.BaseURI != "" {
		fmt.Fprintf(out, "@base <%s> .\n", w.opts.BaseURI)
	}

	var names []string
	for p := range w.usedPrefixes {
		names = append(names, p)
	}
	sort.Strings(names)
	for _, p := range names {
		fmt.Fprintf(out, "@prefix %s: <%s> .\n", p, w.usedPrefixes[p])
	}

	if w.opts.BaseURI != "" || len(names) > 0 {
		out.WriteString("\n")
	}
}

// statement renders subj's top-level block. An unreferenced blank subject
// that is not a collection head renders anonymously as "[ ... ] ." since no
// other statement will ever need its label; everything else renders as
// "subject predicates ." with the subject's QName, relativized reference,
// or full IRI.
func (w *Writer) statement(out *bytes.Buffer, subj rdf.Term) error {
	w.serialized[subj] = true
	sp, ok := w.bySubject[subj]
	if !ok {
		return nil
	}

	if subj.IsBlankNode() && w.references[subj] == 0 && !w.isValidList(subj) {
		out.WriteString("[")
		if err := w.predicateBlock(out, sp, 1, " ;\n    "); err != nil {
			return err
		}
		out.WriteString(" ] .\n\n")
		return nil
	}

	out.WriteString(w.termText(subj))
	if err := w.predicateBlock(out, sp, 0, " ;\n    "); err != nil {
		return err
	}
	out.WriteString(" .\n\n")
	return nil
}

// predicateBlock renders sp's sorted predicate list, separating predicates
// with sep and objects with " , ". Objects recurse through path at the
// given depth.
func (w *Writer) predicateBlock(out *bytes.Buffer, sp *subjectProps, depth int, sep string) error {
	for i, pred := range sortProperties(sp) {
		if i == 0 {
			out.WriteString(" ")
		} else {
			out.WriteString(sep)
		}
		out.WriteString(w.predicateText(pred))

		for j, obj := range sp.objs[pred] {
			if j == 0 {
				out.WriteString(" ")
			} else {
				out.WriteString(" , ")
			}
			if err := w.path(out, obj, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// path writes node's text in object position at nesting depth. A blank
// node is inlined as a collection "( ... )" or property list "[ ... ]"
// when it is referenced at most once elsewhere in the graph and the
// configured nesting depth hasn't been reached; otherwise it is written as
// a "_:label" reference and left to pick up its own top-level statement.
func (w *Writer) path(out *bytes.Buffer, node rdf.Term, depth int) error {
	switch node.Kind {
	case rdf.Literal:
		out.WriteString(w.formatLiteral(node))
		return nil
	case rdf.IRI:
		out.WriteString(w.termText(node))
		return nil
	}

	if w.serialized[node] || w.references[node] > 1 || depth >= w.opts.maxDepth() {
		out.WriteString("_:" + node.Value)
		return nil
	}

	if w.isValidList(node) {
		items := w.listItems(node)
		out.WriteString("(")
		for _, item := range items {
			out.WriteString(" ")
			if err := w.path(out, item, depth+1); err != nil {
				return err
			}
		}
		out.WriteString(" )")
		w.markListSerialized(node)
		return nil
	}

	sp, ok := w.bySubject[node]
	w.serialized[node] = true
	if !ok {
		out.WriteString("[]")
		return nil
	}

	out.WriteString("[")
	if err := w.predicateBlock(out, sp, depth+1, " ; "); err != nil {
		return err
	}
	out.WriteString(" ]")
	return nil
}

// markListSerialized flags every cell of the collection headed at node so
// the top-level statement loop never gives one of them its own block once
// the whole list has been rendered as "( ... )".
func (w *Writer) markListSerialized(node rdf.Term) {
	nilTerm := rdf.NewIRI(rdfNil)
	restPred := rdf.NewIRI(rdfRest)
	cur := node
	for cur != nilTerm {
		w.serialized[cur] = true
		sp := w.bySubject[cur]
		cur = sp.objs[restPred][0]
	}
}

func (w *Writer) termText(term rdf.Term) string {
	if qn, ok := w.qname(term); ok {
		return qn
	}
	if term.IsIRI() && w.opts.BaseURI != "" && strings.HasPrefix(term.Value, w.opts.BaseURI) {
		return "<" + term.Value[len(w.opts.BaseURI):] + ">"
	}
	return "<" + term.Value + ">"
}

func (w *Writer) predicateText(pred rdf.Term) string {
	if pred.Value == rdfType {
		return "a"
	}
	return w.termText(pred)
}
