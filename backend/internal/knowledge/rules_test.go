package knowledge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "boardgame-advisor/backend/pkg/errors"
)

func facts(genres []string, mechanics ...string) GameFacts {
	if genres == nil {
		genres = []string{}
	}
	if mechanics == nil {
		mechanics = []string{}
	}
	return GameFacts{Genres: genres, Mechanics: mechanics, Designers: []string{}}
}

func TestComplexityOf(t *testing.T) {
	tests := []struct {
		name  string
		facts GameFacts
		want  Complexity
	}{
		{"worker placement is heavy", facts(nil, "worker_placement"), ComplexityHeavy},
		{"area control is heavy", facts(nil, "area_control"), ComplexityHeavy},
		{"party is light", facts([]string{"party"}, "voting"), ComplexityLight},
		{"worker placement beats party", facts([]string{"party"}, "worker_placement"), ComplexityHeavy},
		{"area control beats party", facts([]string{"party"}, "area_control"), ComplexityHeavy},
		{"everything else is medium", facts([]string{"eurogame"}, "dice_rolling", "resource_management"), ComplexityMedium},
		{"no relations is medium", facts(nil), ComplexityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComplexityOf(tt.facts)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, Complexities, got)
			// same input, same output
			assert.Equal(t, got, ComplexityOf(tt.facts))
		})
	}
}

func TestIsCooperative(t *testing.T) {
	tests := []struct {
		name  string
		facts GameFacts
		want  bool
	}{
		{"cooperative genre", facts([]string{"cooperative"}, "hand_management"), true},
		{"hidden roles", facts([]string{"party"}, "hidden_roles"), true},
		{"competitive euro", facts([]string{"eurogame"}, "worker_placement"), false},
		{"cooperative as mechanic does not count", facts(nil, "cooperative"), false},
		{"hidden roles as genre does not count", facts([]string{"hidden_roles"}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCooperative(tt.facts))
		})
	}
}

func TestIsGateway(t *testing.T) {
	tests := []struct {
		name  string
		facts GameFacts
		want  bool
	}{
		{"tile placement", facts(nil, "tile_placement"), true},
		{"set collection", facts(nil, "set_collection", "hand_management"), true},
		{"tile placement with area control", facts(nil, "tile_placement", "area_control"), false},
		{"set collection with area control", facts(nil, "area_control", "set_collection"), false},
		{"hand management only", facts([]string{"cooperative"}, "hand_management"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGateway(tt.facts))
		})
	}
}

func TestIsDeepStrategy(t *testing.T) {
	tests := []struct {
		name  string
		facts GameFacts
		want  bool
	}{
		{"worker placement", facts(nil, "worker_placement"), true},
		{"area control", facts(nil, "area_control", "hand_management"), true},
		{"worker placement with dice", facts(nil, "worker_placement", "dice_rolling"), false},
		{"area control with dice", facts(nil, "dice_rolling", "area_control"), false},
		{"dice only", facts(nil, "dice_rolling"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDeepStrategy(tt.facts))
		})
	}
}

func TestParseComplexity(t *testing.T) {
	for _, in := range []string{"light", "Medium", "  HEAVY "} {
		c, err := ParseComplexity(in)
		require.NoError(t, err, in)
		assert.Contains(t, Complexities, c)
	}

	_, err := ParseComplexity("brutal")
	require.Error(t, err)
	var invalid *apperrors.ErrInvalidComplexity
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, "brutal", invalid.Level)
}
