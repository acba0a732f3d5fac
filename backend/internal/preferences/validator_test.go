package preferences

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "boardgame-advisor/backend/pkg/errors"
)

func TestValidateInput(t *testing.T) {
	valid := []string{
		"Мне нравятся кооперативные игры",
		"Хочу простые партийные игры",
		"евро игры с рабочими",
		"light co-op games, please!",
		"абв",
		strings.Repeat("я", MaxInputLength),
		"light\u00a0party games",
		"игры\u2003для\u00a0двоих",
	}
	for _, in := range valid {
		assert.NoError(t, ValidateInput(in), "%q should be valid", in)
	}

	invalid := []struct {
		input  string
		reason string
	}{
		{"", "empty"},
		{"  ", "whitespace only"},
		{"ab", "too short"},
		{strings.Repeat("a", MaxInputLength+1), "too long"},
		{"test@#$%", "unsupported characters"},
		{"игры <script>", "unsupported characters"},
	}
	for _, tt := range invalid {
		t.Run(tt.reason, func(t *testing.T) {
			err := ValidateInput(tt.input)
			require.Error(t, err)
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInput))
		})
	}
}

func TestSanitize_UnicodeSpaces(t *testing.T) {
	assert.Equal(t, "light party games", Sanitize("  light\u00a0party\u2003 games "))
}

func TestValidateChoice(t *testing.T) {
	valid := []struct {
		choice   string
		min, max int
		want     int
	}{
		{"1", 1, 4, 1},
		{"3", 1, 4, 3},
		{"2", 1, 3, 2},
		{" 4 ", 1, 4, 4},
	}
	for _, tt := range valid {
		got, err := ValidateChoice(tt.choice, tt.min, tt.max)
		require.NoError(t, err, tt.choice)
		assert.Equal(t, tt.want, got)
	}

	invalid := []struct {
		choice string
		reason string
	}{
		{"", "empty"},
		{"abc", "not a number"},
		{"-1", "sign"},
		{"0", "below range"},
		{"5", "above range"},
		{"99999999999999999999", "overflow"},
	}
	for _, tt := range invalid {
		t.Run(tt.reason, func(t *testing.T) {
			_, err := ValidateChoice(tt.choice, 1, 4)
			require.Error(t, err)
			var invalid *apperrors.ErrInputInvalid
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  text  ", "text"},
		{"multiple   spaces", "multiple spaces"},
		{"  leading and trailing  ", "leading and trailing"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.input))
	}

	long := Sanitize(strings.Repeat("ж", MaxInputLength+20))
	assert.Equal(t, MaxInputLength, utf8.RuneCountInString(long))
	assert.True(t, utf8.ValidString(long))
}

func TestHasMeaningfulContent(t *testing.T) {
	for _, text := range []string{"евро игры", "кооперативные настольные", "простые партийные"} {
		assert.True(t, HasMeaningfulContent(text), text)
	}
	for _, text := range []string{"евро", "игры", "а", "   "} {
		assert.False(t, HasMeaningfulContent(text), text)
	}
}

func TestHints(t *testing.T) {
	hints := Hints()
	require.NotEmpty(t, hints)
	assert.Contains(t, hints[0], "500")
}
