package preferences

import (
	"strings"

	"boardgame-advisor/backend/internal/knowledge"
)

// Parser extracts Preferences from free text by keyword lookup.
type Parser struct {
	dict *Dictionary
}

// NewParser creates a parser over dict.
func NewParser(dict *Dictionary) *Parser {
	return &Parser{dict: dict}
}

// Parse sanitizes text and matches every dictionary keyword against it as a
// case-insensitive substring. Cooperative cues win over competitive ones.
// Parse does not validate; callers run ValidateInput first.
func (p *Parser) Parse(text string) Preferences {
	prefs := New()
	text = strings.ToLower(Sanitize(text))
	if text == "" {
		return prefs
	}

	for _, e := range p.dict.Genres {
		if strings.Contains(text, e.Keyword) {
			prefs.AddGenre(e.Value)
		}
	}
	for _, e := range p.dict.Mechanics {
		if strings.Contains(text, e.Keyword) {
			prefs.AddMechanic(e.Value)
		}
	}
	for _, e := range p.dict.Complexity {
		if strings.Contains(text, e.Keyword) {
			// validated by ParseDictionary
			prefs.Complexity = knowledge.Complexity(e.Value)
			break
		}
	}

	switch {
	case containsAny(text, p.dict.Cooperative):
		prefs.SetCooperative(true)
	case containsAny(text, p.dict.Competitive):
		prefs.SetCooperative(false)
	}
	return prefs
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
