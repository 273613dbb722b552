package serializer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtlelang/ttl/rdf"
)

func TestWriteEpilogueEmitsSimpleTriple(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI("http://example.org/knows"),
		rdf.NewIRI("http://example.org/bob"),
	)

	n, err := w.WriteEpilogue()
	require.NoError(err)
	require.Equal(n, buf.Len())

	out := buf.String()
	assert.Contains(out, "@prefix ex: <http://example.org/> .")
	assert.Contains(out, "ex:alice ex:knows ex:bob .")
}

func TestWriteEpilogueOnlyDeclaresUsedPrefixes(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{
		"ex":     "http://example.org/",
		"unused": "http://unused.example/",
	}})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI("http://example.org/knows"),
		rdf.NewIRI("http://example.org/bob"),
	)

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.Contains(out, "@prefix ex:")
	assert.NotContains(out, "unused")
}

func TestWriteEpilogueUsesAForRDFType(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI(rdf.RDFType),
		rdf.NewIRI("http://example.org/Person"),
	)

	_, err := w.WriteEpilogue()
	require.NoError(err)
	assert.Contains(buf.String(), "ex:alice a ex:Person .")
}

func TestWriteEpilogueGroupsPredicateObjectListsForSameSubject(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	subj := rdf.NewIRI("http://example.org/alice")
	w.WriteTriple(subj, rdf.NewIRI("http://example.org/knows"), rdf.NewIRI("http://example.org/bob"))
	w.WriteTriple(subj, rdf.NewIRI("http://example.org/age"), rdf.NewLiteral("30", rdf.XSDInteger, ""))

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.Equal(1, strings.Count(out, "ex:alice"), "subject should only be written once, via ; grouping")
	assert.Contains(out, " ;\n")
}

func TestWriteEpilogueInlinesSingleReferenceBlankNode(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	bnode := rdf.NewBlankNode("b1")
	w.WriteTriple(rdf.NewIRI("http://example.org/alice"), rdf.NewIRI("http://example.org/knows"), bnode)
	w.WriteTriple(bnode, rdf.NewIRI("http://example.org/name"), rdf.NewLiteral("Bob", "", ""))

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.Contains(out, "[ ex:name \"Bob\" ]")
	assert.NotContains(out, "_:b1")
}

func TestWriteEpilogueDoesNotInlineSharedBlankNode(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	bnode := rdf.NewBlankNode("b1")
	w.WriteTriple(rdf.NewIRI("http://example.org/alice"), rdf.NewIRI("http://example.org/knows"), bnode)
	w.WriteTriple(rdf.NewIRI("http://example.org/carol"), rdf.NewIRI("http://example.org/knows"), bnode)
	w.WriteTriple(bnode, rdf.NewIRI("http://example.org/name"), rdf.NewLiteral("Bob", "", ""))

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.Equal(3, strings.Count(out, "_:b1"), "referenced from alice, from carol, and its own top-level statement")
	assert.Contains(out, "_:b1 ex:name \"Bob\" .")
}

func TestWriteEpilogueRendersValidListAsCollection(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})

	head := rdf.NewBlankNode("c1")
	tail := rdf.NewBlankNode("c2")
	w.WriteTriple(rdf.NewIRI("http://example.org/alice"), rdf.NewIRI("http://example.org/likes"), head)
	w.WriteTriple(head, rdf.NewIRI(rdf.RDFFirst), rdf.NewIRI("http://example.org/a"))
	w.WriteTriple(head, rdf.NewIRI(rdf.RDFRest), tail)
	w.WriteTriple(tail, rdf.NewIRI(rdf.RDFFirst), rdf.NewIRI("http://example.org/b"))
	w.WriteTriple(tail, rdf.NewIRI(rdf.RDFRest), rdf.NewIRI(rdf.RDFNil))

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.Contains(out, "( ex:a ex:b )")
	assert.NotContains(out, "_:c1")
	assert.NotContains(out, "rdf:first")
}

func TestWriteEpilogueRejectsEmptyIRI(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{})
	w.WriteTriple(rdf.NewIRI("http://example.org/alice"), rdf.NewIRI("http://example.org/knows"), rdf.NewIRI(""))

	_, err := w.WriteEpilogue()
	require.Error(err)
	var werr *WriterError
	require.ErrorAs(err, &werr)
}

func TestWriteEpilogueQuotesLiteralWithEscapes(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI("http://example.org/quote"),
		rdf.NewLiteral(`she said "hi"`, "", ""),
	)

	_, err := w.WriteEpilogue()
	require.NoError(err)
	assert.Contains(buf.String(), `"she said \"hi\""`)
}

func TestWriteEpilogueUsesTripleQuotesForEmbeddedNewline(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI("http://example.org/bio"),
		rdf.NewLiteral("line one\nline two", "", ""),
	)

	_, err := w.WriteEpilogue()
	require.NoError(err)
	assert.Contains(buf.String(), "\"\"\"line one\nline two\"\"\"")
}

func TestWriteEpilogueLanguageTaggedLiteral(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI("http://example.org/name"),
		rdf.NewLiteral("Alice", "", "en"),
	)

	_, err := w.WriteEpilogue()
	require.NoError(err)
	assert.Contains(buf.String(), `"Alice"@en`)
}

func TestWriteEpilogueBareNumericAndBooleanLiterals(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	subj := rdf.NewIRI("http://example.org/alice")
	w.WriteTriple(subj, rdf.NewIRI("http://example.org/age"), rdf.NewLiteral("30", rdf.XSDInteger, ""))
	w.WriteTriple(subj, rdf.NewIRI("http://example.org/active"), rdf.NewLiteral("true", rdf.XSDBoolean, ""))

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.Contains(out, "ex:age 30")
	assert.Contains(out, "ex:active true")
	assert.NotContains(out, `"30"`)
}

func TestWriteEpilogueCanonicalizesLeadingZeroInteger(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}, Canonicalize: true})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI("http://example.org/age"),
		rdf.NewLiteral("007", rdf.XSDInteger, ""),
	)

	_, err := w.WriteEpilogue()
	require.NoError(err)
	assert.Contains(buf.String(), "ex:age 7 .")
}

func TestWriteEpilogueBaseURIPreamble(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{BaseURI: "http://example.org/"})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI("http://example.org/knows"),
		rdf.NewIRI("http://example.org/bob"),
	)

	_, err := w.WriteEpilogue()
	require.NoError(err)
	assert.True(strings.HasPrefix(buf.String(), "@base <http://example.org/> ."))
}

func TestWriteEpilogueStandardPrefixDiscovery(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{StandardPrefixes: true})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI(rdf.RDFType),
		rdf.NewIRI("http://xmlns.com/foaf/0.1/Person"),
	)

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.Contains(out, "@prefix foaf: <http://xmlns.com/foaf/0.1/> .")
	assert.Contains(out, "foaf:Person")
}

func TestWriteEpilogueAnonymousBlankSubjectBlock(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// A blank subject nothing references serializes as "[ ... ] ." with no
	// label at all.
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	bnode := rdf.NewBlankNode("anon")
	w.WriteTriple(bnode, rdf.NewIRI("http://example.org/name"), rdf.NewLiteral("Anon", "", ""))
	w.WriteTriple(bnode, rdf.NewIRI("http://example.org/age"), rdf.NewLiteral("5", rdf.XSDInteger, ""))

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.NotContains(out, "_:anon")
	assert.True(strings.HasPrefix(out, "@prefix"), out)
	assert.Contains(out, "[ ex:age 5 ;\n    ex:name \"Anon\" ] .")
}

func TestWriteEpilogueMaxDepthCutsInlining(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{
		Prefixes: map[string]string{"ex": "http://example.org/"},
		MaxDepth: 2,
	})
	b1, b2, b3 := rdf.NewBlankNode("b1"), rdf.NewBlankNode("b2"), rdf.NewBlankNode("b3")
	w.WriteTriple(rdf.NewIRI("http://example.org/alice"), rdf.NewIRI("http://example.org/p"), b1)
	w.WriteTriple(b1, rdf.NewIRI("http://example.org/p"), b2)
	w.WriteTriple(b2, rdf.NewIRI("http://example.org/p"), b3)
	w.WriteTriple(b3, rdf.NewIRI("http://example.org/name"), rdf.NewLiteral("deep", "", ""))

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.NotContains(out, "_:b1")
	assert.NotContains(out, "_:b2")
	assert.Equal(2, strings.Count(out, "_:b3"), "b3 is past the depth cutoff: one reference plus its own statement")
	assert.Contains(out, "_:b3 ex:name \"deep\" .")
}

func TestWriteEpilogueRelativizesAgainstBaseURI(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{BaseURI: "http://example.org/"})
	w.WriteTriple(
		rdf.NewIRI("http://example.org/alice"),
		rdf.NewIRI("http://example.org/knows"),
		rdf.NewIRI("http://other.example/bob"),
	)

	_, err := w.WriteEpilogue()
	require.NoError(err)

	out := buf.String()
	assert.Contains(out, "<alice> <knows> <http://other.example/bob> .")
}

func TestWriteGraphCopiesTriplesFromGraph(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	g := rdf.NewGraph()
	g.Insert(rdf.Triple{
		Subject:   rdf.NewIRI("http://example.org/alice"),
		Predicate: rdf.NewIRI("http://example.org/knows"),
		Object:    rdf.NewIRI("http://example.org/bob"),
	})

	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Prefixes: map[string]string{"ex": "http://example.org/"}})
	w.WriteGraph(g)

	_, err := w.WriteEpilogue()
	require.NoError(err)
	assert.Contains(buf.String(), "ex:alice ex:knows ex:bob .")
}
