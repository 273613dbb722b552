package serializer

// standardVocab lists the namespaces StandardPrefixes discovery searches,
// in preference order (earlier entries win on overlap).
var standardVocab = []struct {
	namespace string
	prefix    string
}{
	{"http://www.w3.org/1999/02/22-rdf-syntax-ns#", "rdf"},
	{"http://www.w3.org/2000/01/rdf-schema#", "rdfs"},
	{"http://www.w3.org/2001/XMLSchema#", "xsd"},
	{"http://purl.org/dc/elements/1.1/", "dc"},
	{"http://xmlns.com/foaf/0.1/", "foaf"},
	{"http://www.w3.org/2002/07/owl#", "owl"},
}

const (
	rdfNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xsdNS  = "http://www.w3.org/2001/XMLSchema#"
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"

	rdfType  = rdfNS + "type"
	rdfFirst = rdfNS + "first"
	rdfRest  = rdfNS + "rest"
	rdfNil   = rdfNS + "nil"

	xsdBoolean = xsdNS + "boolean"
	xsdInteger = xsdNS + "integer"
	xsdDecimal = xsdNS + "decimal"
	xsdDouble  = xsdNS + "double"

	rdfsClass = rdfsNS + "Class"
	rdfsLabel = rdfsNS + "label"
	dcTitle   = "http://purl.org/dc/elements/1.1/title"
)

// preferredPredicateOrder is the fixed ordering sortProperties applies
// before falling back to lexicographic order.
var preferredPredicateOrder = []string{rdfType, rdfsLabel, dcTitle}
