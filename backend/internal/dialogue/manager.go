// Package dialogue runs the interactive console conversation: ask for
// preferences, fill in what is missing with numbered menus, then print the
// ranked recommendations.
package dialogue

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/constants"
	"boardgame-advisor/backend/internal/knowledge"
	"boardgame-advisor/backend/internal/preferences"
	"boardgame-advisor/backend/internal/recommend"
	"boardgame-advisor/backend/pkg/logger"
)

// Manager owns one console session.
type Manager struct {
	engine *recommend.Engine
	parser *preferences.Parser
	in     *bufio.Scanner
	out    io.Writer
	logger *zap.Logger
}

// NewManager creates a dialogue reading answers from in and writing prompts
// to out.
func NewManager(engine *recommend.Engine, parser *preferences.Parser, in io.Reader, out io.Writer) *Manager {
	return &Manager{
		engine: engine,
		parser: parser,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.Named("dialogue"),
	}
}

var complexityChoices = map[int]knowledge.Complexity{
	1: knowledge.ComplexityLight,
	2: knowledge.ComplexityMedium,
	3: knowledge.ComplexityHeavy,
}

var genreChoices = map[int]string{
	1: knowledge.GenreEurogame,
	2: knowledge.GenreParty,
	3: knowledge.GenreCooperative,
	4: knowledge.GenreDeckBuilder,
}

// Run drives the conversation to completion. Closed input is not an error:
// unanswered questions are skipped.
func (m *Manager) Run(ctx context.Context) error {
	sessionID := uuid.New().String()
	log := m.logger.With(zap.String("session_id", sessionID))
	log.Debug("Dialogue started")

	m.println("Board game recommendations")
	m.println("")

	prefs := m.parser.Parse(m.askInitialPreferences())
	m.refine(&prefs)

	games, err := m.engine.Recommend(ctx, prefs)
	if err != nil {
		return fmt.Errorf("failed to recommend games: %w", err)
	}

	if len(games) == 0 {
		m.println("Sorry, no games match your criteria.")
		return m.suggestAlternatives(ctx)
	}

	if err := m.display(ctx, games, prefs); err != nil {
		return err
	}
	log.Debug("Dialogue finished", zap.Int("candidates", len(games)))
	return nil
}

func (m *Manager) askInitialPreferences() string {
	m.println("Tell me what you like to play.")
	m.println("For example: 'I like cooperative games and euros'")
	m.println("or: 'light party games please'")
	m.println("")

	for attempt := 1; attempt <= constants.MaxInputAttempts; attempt++ {
		text, ok := m.ask("Your preferences: ")
		if !ok {
			break
		}

		if err := preferences.ValidateInput(text); err != nil {
			m.println(inputReason(err))
			m.retryHint(attempt)
			continue
		}

		sanitized := preferences.Sanitize(text)
		if !preferences.HasMeaningfulContent(sanitized) {
			m.println("Please describe your preferences in a bit more detail")
			m.retryHint(attempt)
			continue
		}
		return sanitized
	}

	m.println("Too many attempts. Using defaults.")
	return constants.DefaultQuery
}

func (m *Manager) retryHint(attempt int) {
	if attempt < constants.MaxInputAttempts {
		m.println("Try again:")
		m.println("")
	}
}

func (m *Manager) refine(prefs *preferences.Preferences) {
	m.println("")
	m.println("Let's narrow it down...")

	if prefs.Complexity == "" {
		m.println("")
		m.println("Which complexity do you prefer?")
		m.println("1. Light games")
		m.println("2. Medium complexity")
		m.println("3. Heavy games")
		m.println("4. Doesn't matter")

		choice, err := m.choose("Choose (1-4): ", 1, 4)
		if err != nil {
			m.println(inputReason(err) + ", skipping...")
		} else if level, ok := complexityChoices[choice]; ok {
			prefs.Complexity = level
		}
	}

	if prefs.Cooperative == nil {
		m.println("")
		m.println("Do you prefer:")
		m.println("1. Cooperative games (play together)")
		m.println("2. Competitive games (play against each other)")
		m.println("3. Doesn't matter")

		choice, err := m.choose("Choose (1-3): ", 1, 3)
		switch {
		case err != nil:
			m.println(inputReason(err) + ", skipping...")
		case choice == 1:
			prefs.SetCooperative(true)
		case choice == 2:
			prefs.SetCooperative(false)
		}
	}

	if !prefs.HasTopics() {
		m.println("")
		m.println("Pick a genre:")
		m.println("1. Euro (strategy and resources)")
		m.println("2. Party games")
		m.println("3. Cooperative")
		m.println("4. Deck builders")

		choice, err := m.choose("Choose (1-4): ", 1, 4)
		if err != nil {
			m.println(inputReason(err) + ", using popular games...")
			prefs.AddGenre(knowledge.GenreEurogame)
		} else {
			prefs.AddGenre(genreChoices[choice])
		}
	}
}

func (m *Manager) display(ctx context.Context, games []string, prefs preferences.Preferences) error {
	ranked, err := m.engine.Rank(ctx, games, prefs)
	if err != nil {
		return fmt.Errorf("failed to rank games: %w", err)
	}

	m.println("")
	m.println("Recommended games")
	m.println("")

	for i, rec := range ranked[:min(len(ranked), constants.DisplayLimit)] {
		m.printf("%d. %s\n", i+1, strings.ToUpper(rec.Game.ID))
		if len(rec.Game.Genres) > 0 {
			m.printf("   Genres: %s\n", strings.Join(rec.Game.Genres, ", "))
		}
		if len(rec.Game.Mechanics) > 0 {
			m.printf("   Mechanics: %s\n", strings.Join(rec.Game.Mechanics, ", "))
		}
		m.printf("   Complexity: %s\n", rec.Game.Complexity)
		m.printf("   Match: %s\n", strings.Repeat("★", rec.Stars()))
		m.println("")
	}
	return nil
}

func (m *Manager) suggestAlternatives(ctx context.Context) error {
	m.println("")
	m.println("Try different criteria, or have a look at some popular games:")

	gateway, err := m.engine.Alternatives(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch gateway games: %w", err)
	}
	if len(gateway) > 0 {
		m.println("")
		m.println("Popular gateway games:")
		for _, game := range gateway {
			m.printf("  • %s\n", game)
		}
	}
	return nil
}

// ask prints prompt and reads one trimmed line. ok is false once input is
// exhausted.
func (m *Manager) ask(prompt string) (string, bool) {
	m.printf("%s", prompt)
	if !m.in.Scan() {
		m.println("")
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Manager) choose(prompt string, lo, hi int) (int, error) {
	text, _ := m.ask(prompt)
	return preferences.ValidateChoice(text, lo, hi)
}

func (m *Manager) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Manager) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
