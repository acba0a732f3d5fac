package preferences

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"boardgame-advisor/backend/internal/knowledge"
	apperrors "boardgame-advisor/backend/pkg/errors"
)

//go:embed dictionary.yaml
var defaultDictionary []byte

// Entry maps a keyword to a knowledge base id.
type Entry struct {
	Keyword string `yaml:"keyword"`
	Value   string `yaml:"value"`
}

// Dictionary holds the keyword tables the parser matches against. It is
// read-only once built.
type Dictionary struct {
	Genres      []Entry  `yaml:"genres"`
	Mechanics   []Entry  `yaml:"mechanics"`
	Complexity  []Entry  `yaml:"complexity"`
	Cooperative []string `yaml:"cooperative"`
	Competitive []string `yaml:"competitive"`
}

var loadDefault = sync.OnceValues(func() (*Dictionary, error) {
	return ParseDictionary(defaultDictionary)
})

// DefaultDictionary returns the embedded dictionary.
func DefaultDictionary() (*Dictionary, error) {
	return loadDefault()
}

// OpenDictionary loads the dictionary at path, or the embedded one when
// path is empty.
func OpenDictionary(path string) (*Dictionary, error) {
	if path == "" {
		return DefaultDictionary()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}
	return ParseDictionary(data)
}

// ParseDictionary decodes and validates a YAML dictionary. Keywords are
// lowercased; complexity values must be light, medium or heavy.
func ParseDictionary(data []byte) (*Dictionary, error) {
	var d Dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, apperrors.NewConfigValidationFailed("dictionary", err.Error())
	}

	for _, table := range []struct {
		name    string
		entries []Entry
	}{{"genres", d.Genres}, {"mechanics", d.Mechanics}, {"complexity", d.Complexity}} {
		for i := range table.entries {
			e := &table.entries[i]
			e.Keyword = strings.ToLower(strings.TrimSpace(e.Keyword))
			if e.Keyword == "" || e.Value == "" {
				return nil, apperrors.NewConfigValidationFailed("dictionary",
					fmt.Sprintf("%s entry %d needs a keyword and a value", table.name, i))
			}
		}
	}

	for i, e := range d.Complexity {
		level, err := knowledge.ParseComplexity(e.Value)
		if err != nil {
			return nil, apperrors.NewConfigValidationFailed("dictionary", err.Error())
		}
		d.Complexity[i].Value = string(level)
	}

	d.Cooperative = lowerAll(d.Cooperative)
	d.Competitive = lowerAll(d.Competitive)
	return &d, nil
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}
