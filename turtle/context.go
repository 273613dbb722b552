package turtle

import (
	"fmt"
	"net/url"

	"github.com/turtlelang/ttl/rdf"
)

// context holds the mutable state a single Reader.ReadAll parse accumulates:
// the graph being built, the current @base, the prefix table, and the
// counter backing synthesized blank node labels (collections and blank node
// property lists both need fresh labels the source text never mentioned).
type context struct {
	graph    *rdf.Graph
	base     *url.URL
	prefixes map[string]string
	blankSeq int

	// emit is invoked once per completed triple, in the order a triples
	// production flushes them.
	emit func(rdf.Triple) error

	// pending accumulates triples produced while parsing the body of one
	// triples production (including nested collection/blankNodePropertyList
	// statements) until that production's onFinish flushes them together.
	pending []rdf.Triple
}

func newContext(baseIRI string, emit func(rdf.Triple) error) (*context, error) {
	var base *url.URL
	if baseIRI != "" {
		u, err := url.Parse(baseIRI)
		if err != nil {
			return nil, fmt.Errorf("invalid base IRI %q: %w", baseIRI, err)
		}
		base = u
	}
	return &context{
		graph:    rdf.NewGraph(),
		base:     base,
		prefixes: map[string]string{},
		emit:     emit,
	}, nil
}

// queueTriple buffers a triple produced anywhere within the current triples
// production's subtree (a direct statement, or one synthesized for a
// collection/blankNodePropertyList) until the enclosing triples production
// finishes.
func (c *context) queueTriple(t rdf.Triple) {
	c.pending = append(c.pending, t)
}

// flushPending commits every buffered triple to the graph and, if an emit
// callback was supplied, invokes it once per triple in queued order.
func (c *context) flushPending() error {
	for _, t := range c.pending {
		c.graph.Insert(t)
		if c.emit != nil {
			if err := c.emit(t); err != nil {
				return err
			}
		}
	}
	c.pending = c.pending[:0]
	return nil
}

// resolve turns a (possibly relative) IRI reference from the source text
// into an absolute IRI string, relative to the current @base.
func (c *context) resolve(ref string) string {
	if c.base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.base.ResolveReference(u).String()
}

// setBase updates @base/BASE to a (possibly relative, resolved against the
// old base) IRI.
func (c *context) setBase(ref string) error {
	resolved := c.resolve(ref)
	u, err := url.Parse(resolved)
	if err != nil {
		return fmt.Errorf("invalid base IRI %q: %w", resolved, err)
	}
	c.base = u
	return nil
}

// expandPrefixed resolves a PNAME_NS or PNAME_LN token's text ("prefix:local",
// "prefix:", or ":local") against the current prefix table.
func (c *context) expandPrefixed(text string) (rdf.Term, error) {
	colon := indexOfColon(text)
	prefix, local := text[:colon], text[colon+1:]
	ns, ok := c.prefixes[prefix]
	if !ok {
		return rdf.Term{}, fmt.Errorf("undefined prefix %q", prefix)
	}
	return rdf.NewIRI(ns + unescapePNLocal(local)), nil
}

func indexOfColon(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return i
		}
	}
	return -1
}

func (c *context) newBlankNode() rdf.Term {
	c.blankSeq++
	return rdf.NewBlankNode(fmt.Sprintf("ttl%d", c.blankSeq))
}
