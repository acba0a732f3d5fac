package utils

import (
	"unicode"

	"boardgame-advisor/backend/internal/constants"
)

// LanguageNames maps language codes to display names
var LanguageNames = map[string]string{
	constants.LanguageCodeEnglish: "English",
	constants.LanguageCodeRussian: "Russian",
}

// DetectLanguage guesses the language of a request from its letters.
// Text with more Cyrillic than Latin letters is Russian; anything else,
// including text without letters, is English.
func DetectLanguage(text string) string {
	var cyrillic, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}
	if cyrillic > latin {
		return constants.LanguageCodeRussian
	}
	return constants.LanguageCodeEnglish
}

// GetLanguageName returns the display name for a language code
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[langCode]; ok {
		return name
	}
	return langCode // Return code if name not found
}
