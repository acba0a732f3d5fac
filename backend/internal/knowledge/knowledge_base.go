// Package knowledge holds the board game fact base: an immutable index built
// from the ontology, the classification rules derived from it, and the query
// API the recommendation layer consumes.
//
// Classification is never stored. Every call recomputes it from the game's
// genre and mechanic lists, so results always agree with the relations.
package knowledge

import (
	"context"
	"time"

	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/ontology"
	apperrors "boardgame-advisor/backend/pkg/errors"
)

// Base is the query contract of a knowledge base. The in-memory
// KnowledgeBase implements it, and so does the Neo4j-backed store in the
// graph package. Collections are conceptually sets; implementations return
// them in game declaration order.
type Base interface {
	AllGames(ctx context.Context) ([]string, error)
	GamesByGenre(ctx context.Context, genre string) ([]string, error)
	GamesByMechanic(ctx context.Context, mechanic string) ([]string, error)
	GamesByComplexity(ctx context.Context, level Complexity) ([]string, error)
	CooperativeGames(ctx context.Context) ([]string, error)
	GatewayGames(ctx context.Context) ([]string, error)
	DeepStrategyGames(ctx context.Context) ([]string, error)
	GameInfo(ctx context.Context, gameID string) (*GameInfo, error)
}

// GameInfo is the per-game record used for ranking and display.
type GameInfo struct {
	ID         string     `json:"id"`
	Genres     []string   `json:"genres"`
	Mechanics  []string   `json:"mechanics"`
	Designers  []string   `json:"designers"`
	Complexity Complexity `json:"complexity"`
}

// NewGameInfo assembles the record for a game from its facts.
func NewGameInfo(id string, facts GameFacts) *GameInfo {
	return &GameInfo{
		ID:         id,
		Genres:     facts.Genres,
		Mechanics:  facts.Mechanics,
		Designers:  facts.Designers,
		Complexity: ComplexityOf(facts),
	}
}

// KnowledgeBase answers queries from an in-memory Index.
type KnowledgeBase struct {
	index *Index
}

var _ Base = (*KnowledgeBase)(nil)

// New wraps a built index.
func New(index *Index) *KnowledgeBase {
	return &KnowledgeBase{index: index}
}

// Load reads the ontology at path and builds a knowledge base from it. Any
// failure aborts construction; no partially built base is returned.
func Load(path string, logger *zap.Logger) (*KnowledgeBase, error) {
	start := time.Now()

	ont, err := ontology.Load(path)
	if err != nil {
		return nil, err
	}

	kb := New(NewIndex(ont))
	logger.Info("Knowledge base loaded",
		zap.String("path", path),
		zap.Int("individuals", len(ont.Individuals)),
		zap.Int("games", kb.index.Len()),
		zap.Int("genres", len(kb.index.genres)),
		zap.Int("mechanics", len(kb.index.mechanics)),
		zap.Duration("took", time.Since(start)),
	)
	return kb, nil
}

// Index exposes the underlying read-only index.
func (kb *KnowledgeBase) Index() *Index {
	return kb.index
}

// AllGames returns every game id in declaration order.
func (kb *KnowledgeBase) AllGames(_ context.Context) ([]string, error) {
	return kb.index.Games(), nil
}

// GamesByGenre returns the games whose genre list contains genre.
func (kb *KnowledgeBase) GamesByGenre(_ context.Context, genre string) ([]string, error) {
	return kb.index.filter(func(f GameFacts) bool { return f.hasGenre(genre) }), nil
}

// GamesByMechanic returns the games whose mechanic list contains mechanic.
func (kb *KnowledgeBase) GamesByMechanic(_ context.Context, mechanic string) ([]string, error) {
	return kb.index.filter(func(f GameFacts) bool { return f.hasMechanic(mechanic) }), nil
}

// GamesByComplexity returns the games whose derived complexity equals level.
// An unrecognized level matches nothing.
func (kb *KnowledgeBase) GamesByComplexity(_ context.Context, level Complexity) ([]string, error) {
	return kb.index.filter(func(f GameFacts) bool { return ComplexityOf(f) == level }), nil
}

// CooperativeGames returns the games IsCooperative holds for.
func (kb *KnowledgeBase) CooperativeGames(_ context.Context) ([]string, error) {
	return kb.index.filter(IsCooperative), nil
}

// GatewayGames returns the gateway games in declaration order; callers
// taking the first few rely on that order.
func (kb *KnowledgeBase) GatewayGames(_ context.Context) ([]string, error) {
	return kb.index.filter(IsGateway), nil
}

// DeepStrategyGames returns the games IsDeepStrategy holds for.
func (kb *KnowledgeBase) DeepStrategyGames(_ context.Context) ([]string, error) {
	return kb.index.filter(IsDeepStrategy), nil
}

// GameInfo returns the record for gameID, or *errors.ErrGameNotFound.
func (kb *KnowledgeBase) GameInfo(_ context.Context, gameID string) (*GameInfo, error) {
	facts, err := kb.facts(gameID)
	if err != nil {
		return nil, err
	}
	return NewGameInfo(gameID, facts), nil
}

// Complexity derives the complexity of one game.
func (kb *KnowledgeBase) Complexity(gameID string) (Complexity, error) {
	facts, err := kb.facts(gameID)
	if err != nil {
		return "", err
	}
	return ComplexityOf(facts), nil
}

// IsCooperative reports whether one game is cooperative.
func (kb *KnowledgeBase) IsCooperative(gameID string) (bool, error) {
	return kb.classify(gameID, IsCooperative)
}

// IsGateway reports whether one game is a gateway game.
func (kb *KnowledgeBase) IsGateway(gameID string) (bool, error) {
	return kb.classify(gameID, IsGateway)
}

// IsDeepStrategy reports whether one game is a deep strategy game.
func (kb *KnowledgeBase) IsDeepStrategy(gameID string) (bool, error) {
	return kb.classify(gameID, IsDeepStrategy)
}

func (kb *KnowledgeBase) classify(gameID string, rule func(GameFacts) bool) (bool, error) {
	facts, err := kb.facts(gameID)
	if err != nil {
		return false, err
	}
	return rule(facts), nil
}

func (kb *KnowledgeBase) facts(gameID string) (GameFacts, error) {
	facts, ok := kb.index.Facts(gameID)
	if !ok {
		return GameFacts{}, apperrors.NewGameNotFound(gameID)
	}
	return facts, nil
}
