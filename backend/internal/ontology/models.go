package ontology

import (
	"slices"
	"strings"
)

// Namespaces the loader resolves element and attribute names against.
const (
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceOWL = "http://www.w3.org/2002/07/owl#"
)

// Declared types that classify an individual.
const (
	TypeGame     = "Game"
	TypeGenre    = "Genre"
	TypeMechanic = "Mechanic"
)

// RelationLabel names a directed edge from a game to another individual.
type RelationLabel string

const (
	HasGenre    RelationLabel = "has_genre"
	HasMechanic RelationLabel = "has_mechanic"
	DesignedBy  RelationLabel = "designed_by"
)

// relationElements maps document element local names to relation labels.
var relationElements = map[string]RelationLabel{
	"hasGenre":    HasGenre,
	"hasMechanic": HasMechanic,
	"designedBy":  DesignedBy,
}

// Relation is one outgoing edge of an individual, target already reduced to a local id.
type Relation struct {
	Label  RelationLabel `json:"label"`
	Target string        `json:"target"`
}

// Individual is a named individual as declared in the document.
type Individual struct {
	ID        string     `json:"id"`
	Types     []string   `json:"types"`
	Relations []Relation `json:"relations"`
}

// HasType reports whether the individual declares the given type local name.
func (i Individual) HasType(name string) bool {
	return slices.Contains(i.Types, name)
}

// Ontology is the raw loader output: individuals in document order.
type Ontology struct {
	Source      string       `json:"source,omitempty"`
	Individuals []Individual `json:"individuals"`
}

// LocalName strips a URI down to the fragment after the last '#', or when
// there is none, the segment after the last '/'.
func LocalName(uri string) string {
	if i := strings.LastIndexByte(uri, '#'); i >= 0 {
		return uri[i+1:]
	}
	return uri[strings.LastIndexByte(uri, '/')+1:]
}
