// Package recommend turns parsed preferences into a ranked list of games.
package recommend

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/knowledge"
	"boardgame-advisor/backend/internal/metrics"
	"boardgame-advisor/backend/internal/preferences"
	"boardgame-advisor/backend/pkg/logger"
)

// DefaultGatewayLimit is how many gateway games are offered when nothing
// else matches.
const DefaultGatewayLimit = 3

// Scoring weights
const (
	genreWeight      = 2.0
	mechanicWeight   = 1.5
	complexityWeight = 1.0
	maxStars         = 5
)

// Candidate sources recorded in metrics
const (
	SourcePreferences     = "preferences"
	SourceGatewayFallback = "gateway_fallback"
	SourceEmpty           = "empty"
)

// Engine selects and ranks candidate games from a knowledge base.
type Engine struct {
	kb           knowledge.Base
	gatewayLimit int
	logger       *zap.Logger
}

// NewEngine creates an engine. A negative gatewayLimit falls back to
// DefaultGatewayLimit.
func NewEngine(kb knowledge.Base, gatewayLimit int) *Engine {
	if gatewayLimit < 0 {
		gatewayLimit = DefaultGatewayLimit
	}
	return &Engine{
		kb:           kb,
		gatewayLimit: gatewayLimit,
		logger:       logger.Named("recommend"),
	}
}

// Recommendation is one ranked game.
type Recommendation struct {
	Game  *knowledge.GameInfo `json:"game"`
	Score float64             `json:"score"`
}

// Stars maps the score onto a 0..5 rating.
func (r Recommendation) Stars() int {
	return min(int(r.Score), maxStars)
}

// Recommend returns candidate game ids in first-insertion order. Games
// matching any requested genre or mechanic form the pool; a cooperative
// wish and a complexity level then narrow it, or seed it when it is still
// empty. With no candidates at all the first few gateway games are offered.
func (e *Engine) Recommend(ctx context.Context, prefs preferences.Preferences) ([]string, error) {
	candidates := newOrderedSet()

	for _, genre := range prefs.Genres {
		games, err := e.kb.GamesByGenre(ctx, genre)
		if err != nil {
			return nil, err
		}
		candidates.add(games...)
	}
	for _, mechanic := range prefs.Mechanics {
		games, err := e.kb.GamesByMechanic(ctx, mechanic)
		if err != nil {
			return nil, err
		}
		candidates.add(games...)
	}

	if prefs.WantsCooperative() {
		coop, err := e.kb.CooperativeGames(ctx)
		if err != nil {
			return nil, err
		}
		candidates.narrowOrSeed(coop)
	}

	if prefs.Complexity != "" {
		games, err := e.kb.GamesByComplexity(ctx, prefs.Complexity)
		if err != nil {
			return nil, err
		}
		candidates.narrowOrSeed(games)
	}

	source := SourcePreferences
	if candidates.len() == 0 {
		gateway, err := e.kb.GatewayGames(ctx)
		if err != nil {
			return nil, err
		}
		candidates.add(gateway[:min(len(gateway), e.gatewayLimit)]...)
		source = SourceGatewayFallback
		if candidates.len() == 0 {
			source = SourceEmpty
		}
	}

	metrics.RecordRecommendation(source, candidates.len())
	e.logger.Debug("Candidates selected",
		zap.String("source", source),
		zap.Int("count", candidates.len()),
		zap.Strings("genres", prefs.Genres),
		zap.Strings("mechanics", prefs.Mechanics),
	)
	return candidates.items, nil
}

// Rank scores each game against prefs and sorts by descending score. Ties
// keep their input order.
func (e *Engine) Rank(ctx context.Context, games []string, prefs preferences.Preferences) ([]Recommendation, error) {
	ranked := make([]Recommendation, 0, len(games))
	for _, id := range games {
		info, err := e.kb.GameInfo(ctx, id)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, Recommendation{Game: info, Score: Score(info, prefs)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

// Score weighs genre matches at 2, mechanic matches at 1.5 and a matching
// complexity at 1.
func Score(info *knowledge.GameInfo, prefs preferences.Preferences) float64 {
	score := genreWeight * float64(overlap(info.Genres, prefs.Genres))
	score += mechanicWeight * float64(overlap(info.Mechanics, prefs.Mechanics))
	if prefs.Complexity != "" && info.Complexity == prefs.Complexity {
		score += complexityWeight
	}
	return score
}

// overlap counts the distinct values present in both lists.
func overlap(a, b []string) int {
	in := make(map[string]struct{}, len(b))
	for _, v := range b {
		in[v] = struct{}{}
	}
	n := 0
	for _, v := range a {
		if _, ok := in[v]; ok {
			n++
			delete(in, v)
		}
	}
	return n
}

// Alternatives returns the first few gateway games, offered when a search
// comes back empty.
func (e *Engine) Alternatives(ctx context.Context) ([]string, error) {
	gateway, err := e.kb.GatewayGames(ctx)
	if err != nil {
		return nil, err
	}
	return gateway[:min(len(gateway), e.gatewayLimit)], nil
}
