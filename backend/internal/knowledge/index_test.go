package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardgame-advisor/backend/internal/ontology"
)

func TestNewIndex_Nil(t *testing.T) {
	idx := NewIndex(nil)
	assert.Equal(t, 0, idx.Len())
	assert.NotNil(t, idx.Games())
	assert.Empty(t, idx.Genres())
	assert.Empty(t, idx.Designers())
}

func TestIndex_Vocabulary(t *testing.T) {
	idx := NewIndex(&ontology.Ontology{Individuals: []ontology.Individual{
		typed("party", ontology.TypeGenre),
		typed("eurogame", ontology.TypeGenre),
		typed("voting", ontology.TypeMechanic),
		typed("dixit", ontology.TypeGame),
		typed("hybrid", ontology.TypeGenre, ontology.TypeMechanic),
	}})

	assert.Equal(t, []string{"eurogame", "hybrid", "party"}, idx.Genres())
	assert.Equal(t, []string{"hybrid", "voting"}, idx.Mechanics())
	assert.Equal(t, []string{"dixit"}, idx.Games())
	assert.True(t, idx.HasGame("dixit"))
	assert.False(t, idx.HasGame("party"))
}

func TestIndex_DesignersFirstSeen(t *testing.T) {
	idx := NewIndex(&ontology.Ontology{Individuals: []ontology.Individual{
		game("pandemic", nil, nil, "matt_leacock"),
		game("forbidden_island", nil, nil, "matt_leacock"),
		game("azul", nil, nil, "michael_kiesling"),
	}})

	assert.Equal(t, []string{"matt_leacock", "michael_kiesling"}, idx.Designers())
}

func TestIndex_RelationsBeforeGameType(t *testing.T) {
	// types and relations of one individual are ingested together
	idx := NewIndex(&ontology.Ontology{Individuals: []ontology.Individual{{
		ID:        "dominion",
		Types:     []string{"Thing", ontology.TypeGame},
		Relations: []ontology.Relation{{Label: ontology.HasMechanic, Target: "deck_building"}},
	}}})

	facts, ok := idx.Facts("dominion")
	require.True(t, ok)
	assert.Equal(t, []string{"deck_building"}, facts.Mechanics)
}

func TestIndex_FactsAreCopies(t *testing.T) {
	idx := NewIndex(&ontology.Ontology{Individuals: []ontology.Individual{
		game("codenames", []string{"party"}, []string{"hidden_roles"}, "vlaada_chvatil"),
	}})

	facts, ok := idx.Facts("codenames")
	require.True(t, ok)
	facts.Genres[0] = "wargame"
	facts.Designers[0] = "nobody"

	again, _ := idx.Facts("codenames")
	assert.Equal(t, []string{"party"}, again.Genres)
	assert.Equal(t, []string{"vlaada_chvatil"}, again.Designers)

	designers := idx.Designers()
	designers[0] = "nobody"
	assert.Equal(t, []string{"vlaada_chvatil"}, idx.Designers())

	_, ok = idx.Facts("chess")
	assert.False(t, ok)
}
