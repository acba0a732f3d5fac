package constants

// Discord constants
const (
	// DiscordMaxMessageLength is the maximum character limit for Discord messages
	DiscordMaxMessageLength = 2000
)

// Recommendation constants
const (
	// DisplayLimit is how many ranked games a reply shows
	DisplayLimit = 5

	// MaxInputAttempts is how many times the dialogue asks for preferences
	// before falling back to DefaultQuery
	MaxInputAttempts = 3

	// DefaultQuery is used when the user never gives valid preferences.
	// It matches no keyword, so recommendations fall back to gateway games.
	DefaultQuery = "popular games"
)

// Language codes
const (
	LanguageCodeEnglish = "en"
	LanguageCodeRussian = "ru"
)
