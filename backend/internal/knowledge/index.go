package knowledge

import (
	"slices"

	"boardgame-advisor/backend/internal/ontology"
)

// Index is the frozen fact base. It is never mutated after NewIndex returns
// and every accessor hands out copies, so it can be read from any number of
// goroutines without locking.
type Index struct {
	order     []string // game ids, first declaration order
	games     map[string]GameFacts
	genres    map[string]struct{}
	mechanics map[string]struct{}
	designers []string // designed_by targets, first seen order
}

// indexBuilder accumulates facts during the single pass over the ontology.
type indexBuilder struct {
	order     []string
	games     map[string]*GameFacts
	genres    map[string]struct{}
	mechanics map[string]struct{}
}

func newIndexBuilder() *indexBuilder {
	return &indexBuilder{
		order:     []string{},
		games:     make(map[string]*GameFacts),
		genres:    make(map[string]struct{}),
		mechanics: make(map[string]struct{}),
	}
}

// add ingests one individual. Once an id is known to be a game, any later
// individual with that id replaces its relation lists.
func (b *indexBuilder) add(ind ontology.Individual) {
	for _, typ := range ind.Types {
		switch typ {
		case ontology.TypeGame:
			if _, ok := b.games[ind.ID]; !ok {
				b.order = append(b.order, ind.ID)
				b.games[ind.ID] = &GameFacts{}
			}
		case ontology.TypeGenre:
			b.genres[ind.ID] = struct{}{}
		case ontology.TypeMechanic:
			b.mechanics[ind.ID] = struct{}{}
		}
	}

	facts, ok := b.games[ind.ID]
	if !ok {
		return
	}
	*facts = GameFacts{Genres: []string{}, Mechanics: []string{}, Designers: []string{}}
	for _, rel := range ind.Relations {
		switch rel.Label {
		case ontology.HasGenre:
			facts.Genres = append(facts.Genres, rel.Target)
		case ontology.HasMechanic:
			facts.Mechanics = append(facts.Mechanics, rel.Target)
		case ontology.DesignedBy:
			facts.Designers = append(facts.Designers, rel.Target)
		}
	}
}

func (b *indexBuilder) freeze() *Index {
	idx := &Index{
		order:     b.order,
		games:     make(map[string]GameFacts, len(b.games)),
		genres:    b.genres,
		mechanics: b.mechanics,
		designers: []string{},
	}

	seen := make(map[string]struct{})
	for _, id := range b.order {
		facts := *b.games[id]
		idx.games[id] = facts
		for _, d := range facts.Designers {
			if _, dup := seen[d]; !dup {
				seen[d] = struct{}{}
				idx.designers = append(idx.designers, d)
			}
		}
	}
	return idx
}

// NewIndex builds the fact index from a parsed ontology.
func NewIndex(ont *ontology.Ontology) *Index {
	b := newIndexBuilder()
	if ont != nil {
		for _, ind := range ont.Individuals {
			b.add(ind)
		}
	}
	return b.freeze()
}

// Games returns every game id in declaration order.
func (idx *Index) Games() []string {
	return slices.Clone(idx.order)
}

// Len returns the number of games.
func (idx *Index) Len() int {
	return len(idx.order)
}

// HasGame reports whether id is a known game.
func (idx *Index) HasGame(id string) bool {
	_, ok := idx.games[id]
	return ok
}

// Facts returns a copy of a game's relation lists. Lists are empty, never
// nil, for known games.
func (idx *Index) Facts(id string) (GameFacts, bool) {
	facts, ok := idx.games[id]
	if !ok {
		return GameFacts{}, false
	}
	return GameFacts{
		Genres:    slices.Clone(facts.Genres),
		Mechanics: slices.Clone(facts.Mechanics),
		Designers: slices.Clone(facts.Designers),
	}, true
}

// Genres returns the ids declared with type Genre, sorted.
func (idx *Index) Genres() []string {
	return sortedKeys(idx.genres)
}

// Mechanics returns the ids declared with type Mechanic, sorted.
func (idx *Index) Mechanics() []string {
	return sortedKeys(idx.mechanics)
}

// Designers returns every designed_by target in first-seen order. Designers
// are never declared by type; they exist by being referenced.
func (idx *Index) Designers() []string {
	return slices.Clone(idx.designers)
}

// filter returns the games whose facts satisfy keep, in declaration order.
// The facts passed to keep are the index's own; keep must not retain them.
func (idx *Index) filter(keep func(GameFacts) bool) []string {
	out := []string{}
	for _, id := range idx.order {
		if keep(idx.games[id]) {
			out = append(out, id)
		}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
