package preferences

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "boardgame-advisor/backend/pkg/errors"
)

// Input length bounds, counted in characters after trimming.
const (
	MinInputLength = 3
	MaxInputLength = 500
)

// \s is ASCII-only in RE2; \p{Z} adds no-break and other Unicode spaces.
var allowedChars = regexp.MustCompile(`^[а-яА-ЯёЁa-zA-Z0-9\s\p{Z},.:;!?\-]+$`)

// ValidateInput checks free-text preferences before parsing. The returned
// *errors.ErrInputInvalid carries a reason fit for the user.
func ValidateInput(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperrors.NewInputInvalid("input must not be empty")
	}

	n := utf8.RuneCountInString(text)
	if n < MinInputLength {
		return apperrors.NewInputInvalid(fmt.Sprintf("input too short (at least %d characters)", MinInputLength))
	}
	if n > MaxInputLength {
		return apperrors.NewInputInvalid(fmt.Sprintf("input too long (at most %d characters)", MaxInputLength))
	}

	if !allowedChars.MatchString(text) {
		return apperrors.NewInputInvalid("input contains unsupported characters")
	}
	return nil
}

// ValidateChoice parses a numbered menu answer within [min, max].
func ValidateChoice(text string, min, max int) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, apperrors.NewInputInvalid("choice must not be empty")
	}

	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, apperrors.NewInputInvalid("enter a number")
		}
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < min || n > max {
		return 0, apperrors.NewInputInvalid(fmt.Sprintf("choose a number from %d to %d", min, max))
	}
	return n, nil
}

// Sanitize trims text, collapses runs of whitespace and truncates it to
// MaxInputLength characters.
func Sanitize(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) > MaxInputLength {
		text = string([]rune(text)[:MaxInputLength])
	}
	return text
}

// HasMeaningfulContent reports whether text has at least two words.
func HasMeaningfulContent(text string) bool {
	return len(strings.Fields(text)) >= 2
}

// Hints lists what valid input looks like.
func Hints() []string {
	return []string{
		fmt.Sprintf("Text length: %d to %d characters", MinInputLength, MaxInputLength),
		"Use Latin or Cyrillic letters",
		"Spaces and punctuation are allowed",
		"Avoid special characters",
	}
}
