package preferences

import "boardgame-advisor/backend/internal/knowledge"

// Preferences is what a user asked for. Genres and mechanics are ordered
// sets: each id appears once, in the order it was first mentioned.
type Preferences struct {
	Genres      []string             `json:"genres"`
	Mechanics   []string             `json:"mechanics"`
	Complexity  knowledge.Complexity `json:"complexity,omitempty"` // empty when unspecified
	Cooperative *bool                `json:"cooperative,omitempty"`
}

// New returns empty preferences with non-nil lists.
func New() Preferences {
	return Preferences{Genres: []string{}, Mechanics: []string{}}
}

// HasTopics reports whether any genre or mechanic was requested.
func (p Preferences) HasTopics() bool {
	return len(p.Genres) > 0 || len(p.Mechanics) > 0
}

// AddGenre appends genre unless it is already present.
func (p *Preferences) AddGenre(genre string) {
	p.Genres = appendUnique(p.Genres, genre)
}

// AddMechanic appends mechanic unless it is already present.
func (p *Preferences) AddMechanic(mechanic string) {
	p.Mechanics = appendUnique(p.Mechanics, mechanic)
}

// SetCooperative records an explicit cooperative or competitive wish.
func (p *Preferences) SetCooperative(v bool) {
	p.Cooperative = &v
}

// WantsCooperative reports whether cooperative play was explicitly asked for.
func (p Preferences) WantsCooperative() bool {
	return p.Cooperative != nil && *p.Cooperative
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
