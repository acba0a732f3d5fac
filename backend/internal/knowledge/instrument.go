package knowledge

import (
	"context"
	"time"

	"boardgame-advisor/backend/internal/metrics"
	apperrors "boardgame-advisor/backend/pkg/errors"
)

// Instrument wraps base so every query is counted and timed in Prometheus.
func Instrument(base Base) Base {
	return &instrumented{next: base}
}

type instrumented struct {
	next Base
}

func observe[T any](op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()

	outcome := metrics.OutcomeOK
	switch {
	case apperrors.IsNotFound(err):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
	}
	metrics.RecordQuery(op, outcome, time.Since(start))
	return v, err
}

func (i *instrumented) AllGames(ctx context.Context) ([]string, error) {
	return observe("all_games", func() ([]string, error) { return i.next.AllGames(ctx) })
}

func (i *instrumented) GamesByGenre(ctx context.Context, genre string) ([]string, error) {
	return observe("games_by_genre", func() ([]string, error) { return i.next.GamesByGenre(ctx, genre) })
}

func (i *instrumented) GamesByMechanic(ctx context.Context, mechanic string) ([]string, error) {
	return observe("games_by_mechanic", func() ([]string, error) { return i.next.GamesByMechanic(ctx, mechanic) })
}

func (i *instrumented) GamesByComplexity(ctx context.Context, level Complexity) ([]string, error) {
	return observe("games_by_complexity", func() ([]string, error) { return i.next.GamesByComplexity(ctx, level) })
}

func (i *instrumented) CooperativeGames(ctx context.Context) ([]string, error) {
	return observe("cooperative_games", func() ([]string, error) { return i.next.CooperativeGames(ctx) })
}

func (i *instrumented) GatewayGames(ctx context.Context) ([]string, error) {
	return observe("gateway_games", func() ([]string, error) { return i.next.GatewayGames(ctx) })
}

func (i *instrumented) DeepStrategyGames(ctx context.Context) ([]string, error) {
	return observe("deep_strategy_games", func() ([]string, error) { return i.next.DeepStrategyGames(ctx) })
}

func (i *instrumented) GameInfo(ctx context.Context, gameID string) (*GameInfo, error) {
	return observe("game_info", func() (*GameInfo, error) { return i.next.GameInfo(ctx, gameID) })
}
