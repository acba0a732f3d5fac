package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"boardgame-advisor/backend/internal/preferences"
	"boardgame-advisor/backend/internal/recommend"
)

// FormatBold formats text as bold
func FormatBold(text string) string {
	return "**" + text + "**"
}

// FormatInlineCode formats text as inline code
func FormatInlineCode(code string) string {
	return "`" + code + "`"
}

// FormatQuote formats text as a quote
func FormatQuote(text string) string {
	lines := strings.Split(text, "\n")
	quoted := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			quoted = append(quoted, "> "+line)
		} else {
			quoted = append(quoted, "")
		}
	}
	return strings.Join(quoted, "\n")
}

// FormatList formats items as a Discord list
func FormatList(items []string, ordered bool) string {
	var list []string
	for i, item := range items {
		if ordered {
			list = append(list, fmt.Sprintf("%d. %s", i+1, item))
		} else {
			list = append(list, "• "+item)
		}
	}
	return strings.Join(list, "\n")
}

// FormatRecommendations renders a result as one Discord message body.
func FormatRecommendations(result *recommend.Result) string {
	if len(result.Recommendations) == 0 {
		return "I couldn't find any games for that. Try naming a genre or a mechanic."
	}

	var b strings.Builder
	b.WriteString(FormatBold("Recommended games"))
	b.WriteString("\n\n")
	for i, rec := range result.Recommendations {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, FormatBold(rec.Game.ID), strings.Repeat("★", rec.Stars()))
		var details []string
		if len(rec.Game.Genres) > 0 {
			details = append(details, "genres: "+strings.Join(rec.Game.Genres, ", "))
		}
		if len(rec.Game.Mechanics) > 0 {
			details = append(details, "mechanics: "+strings.Join(rec.Game.Mechanics, ", "))
		}
		details = append(details, "complexity: "+FormatInlineCode(string(rec.Game.Complexity)))
		b.WriteString(FormatQuote(strings.Join(details, "\n")))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatHints renders a validation failure together with input hints.
func FormatHints(reason string) string {
	return reason + "\n\n" + FormatList(preferences.Hints(), false)
}

// truncateMessage cuts content to at most max characters, marking the cut.
func truncateMessage(content string, max int) string {
	if utf8.RuneCountInString(content) <= max {
		return content
	}
	runes := []rune(content)
	return string(runes[:max-3]) + "..."
}
