package knowledge

import (
	"slices"
	"strings"

	apperrors "boardgame-advisor/backend/pkg/errors"
)

// Complexity is the derived weight of a game.
type Complexity string

const (
	ComplexityLight  Complexity = "light"
	ComplexityMedium Complexity = "medium"
	ComplexityHeavy  Complexity = "heavy"
)

// Complexities lists every level, lightest first.
var Complexities = []Complexity{ComplexityLight, ComplexityMedium, ComplexityHeavy}

// ParseComplexity validates a user supplied level. Case and surrounding
// whitespace are ignored.
func ParseComplexity(s string) (Complexity, error) {
	c := Complexity(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Complexities, c) {
		return "", apperrors.NewInvalidComplexity(s)
	}
	return c, nil
}

// Well-known genre and mechanic ids.
const (
	GenreParty       = "party"
	GenreCooperative = "cooperative"
	GenreEurogame    = "eurogame"
	GenreDeckBuilder = "deck_builder"

	MechanicWorkerPlacement = "worker_placement"
	MechanicAreaControl     = "area_control"
	MechanicHiddenRoles     = "hidden_roles"
	MechanicTilePlacement   = "tile_placement"
	MechanicSetCollection   = "set_collection"
	MechanicDiceRolling     = "dice_rolling"
)

// GameFacts are the relation lists of one game, in declaration order.
type GameFacts struct {
	Genres    []string
	Mechanics []string
	Designers []string
}

func (f GameFacts) hasGenre(id string) bool    { return slices.Contains(f.Genres, id) }
func (f GameFacts) hasMechanic(id string) bool { return slices.Contains(f.Mechanics, id) }

// ComplexityOf derives a game's complexity. Worker placement and area
// control win over the party genre.
func ComplexityOf(f GameFacts) Complexity {
	if f.hasMechanic(MechanicWorkerPlacement) || f.hasMechanic(MechanicAreaControl) {
		return ComplexityHeavy
	}
	if f.hasGenre(GenreParty) {
		return ComplexityLight
	}
	return ComplexityMedium
}

// IsCooperative: cooperative genre, or hidden roles.
func IsCooperative(f GameFacts) bool {
	return f.hasGenre(GenreCooperative) || f.hasMechanic(MechanicHiddenRoles)
}

// IsGateway: tile placement or set collection, without area control.
func IsGateway(f GameFacts) bool {
	return (f.hasMechanic(MechanicTilePlacement) || f.hasMechanic(MechanicSetCollection)) &&
		!f.hasMechanic(MechanicAreaControl)
}

// IsDeepStrategy: worker placement or area control, without dice rolling.
func IsDeepStrategy(f GameFacts) bool {
	return (f.hasMechanic(MechanicWorkerPlacement) || f.hasMechanic(MechanicAreaControl)) &&
		!f.hasMechanic(MechanicDiceRolling)
}
