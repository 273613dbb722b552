package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphInsertPreservesOrderAndDuplicates(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	t1 := Triple{Subject: NewIRI("s1"), Predicate: NewIRI("p"), Object: NewIRI("o1")}
	t2 := Triple{Subject: NewIRI("s2"), Predicate: NewIRI("p"), Object: NewIRI("o2")}
	g.Insert(t1)
	g.Insert(t2)
	g.Insert(t1)

	assert.Equal(3, g.Len())
	assert.Equal([]Triple{t1, t2, t1}, g.Triples())
}

func TestGraphQueryFiltersByPattern(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	alice := NewIRI("http://example.org/alice")
	bob := NewIRI("http://example.org/bob")
	carol := NewIRI("http://example.org/carol")
	knows := NewIRI("http://example.org/knows")
	likes := NewIRI("http://example.org/likes")

	g.Insert(Triple{Subject: alice, Predicate: knows, Object: bob})
	g.Insert(Triple{Subject: alice, Predicate: likes, Object: carol})
	g.Insert(Triple{Subject: bob, Predicate: knows, Object: carol})

	bySubject := g.Query(&alice, nil, nil)
	assert.Len(bySubject, 2)

	byPredicate := g.Query(nil, &knows, nil)
	assert.Len(byPredicate, 2)

	exact := g.Query(&alice, &knows, &bob)
	assert.Len(exact, 1)

	none := g.Query(&carol, nil, nil)
	assert.Empty(none)
}

func TestGraphRefCountsCountObjectOccurrences(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	shared := NewBlankNode("b1")
	g.Insert(Triple{Subject: NewIRI("s1"), Predicate: NewIRI("p"), Object: shared})
	g.Insert(Triple{Subject: NewIRI("s2"), Predicate: NewIRI("p"), Object: shared})
	g.Insert(Triple{Subject: NewIRI("s3"), Predicate: NewIRI("p"), Object: NewIRI("o")})

	counts := g.RefCounts()
	assert.Equal(2, counts[shared])
	assert.Equal(1, counts[NewIRI("o")])
}

func TestGraphSubjectsReturnsFirstOccurrenceOrder(t *testing.T) {
	assert := assert.New(t)

	g := NewGraph()
	s1, s2 := NewIRI("s1"), NewIRI("s2")
	g.Insert(Triple{Subject: s1, Predicate: NewIRI("p"), Object: NewIRI("o1")})
	g.Insert(Triple{Subject: s2, Predicate: NewIRI("p"), Object: NewIRI("o2")})
	g.Insert(Triple{Subject: s1, Predicate: NewIRI("p"), Object: NewIRI("o3")})

	assert.Equal([]Term{s1, s2}, g.Subjects())
}

func TestNewLiteralDefaultsAndLangImpliesRDFLangString(t *testing.T) {
	assert := assert.New(t)

	plain := NewLiteral("hi", "", "")
	assert.Equal(XSDString, plain.Datatype)

	tagged := NewLiteral("hi", XSDString, "en")
	assert.Equal(RDFLangString, tagged.Datatype)
	assert.Equal("en", tagged.Lang)
}
