package graph

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/knowledge"
	apperrors "boardgame-advisor/backend/pkg/errors"
	"boardgame-advisor/backend/pkg/logger"
)

// Repository is a knowledge.Base backed by Neo4j. The graph stores only the
// relations; classification is derived in Go with the same rules the
// in-memory base uses, so both backends always agree.
type Repository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

var _ knowledge.Base = (*Repository)(nil)

// NewRepository creates a new graph repository
func NewRepository(driver neo4j.DriverWithContext) *Repository {
	return &Repository{
		driver: driver,
		logger: logger.Named("graph"),
	}
}

// Connect opens a driver for uri and verifies connectivity before returning.
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}
	return driver, nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// Game rows always carry their relation lists in declaration order.
const gameProjection = `
	CALL {
		WITH g
		OPTIONAL MATCH (g)-[r:HAS_GENRE]->(x:Genre)
		WITH r, x ORDER BY r.position
		RETURN collect(x.id) AS genres
	}
	CALL {
		WITH g
		OPTIONAL MATCH (g)-[r:HAS_MECHANIC]->(x:Mechanic)
		WITH r, x ORDER BY r.position
		RETURN collect(x.id) AS mechanics
	}
	CALL {
		WITH g
		OPTIONAL MATCH (g)-[r:DESIGNED_BY]->(x:Designer)
		WITH r, x ORDER BY r.position
		RETURN collect(x.id) AS designers
	}
	RETURN g.id AS id, genres, mechanics, designers
	ORDER BY g.ordinal
`

// AllGames returns every game id in declaration order.
func (r *Repository) AllGames(ctx context.Context) ([]string, error) {
	query := `
		MATCH (g:Game)
		RETURN g.id AS id
		ORDER BY g.ordinal
	`
	return r.gameIDs(ctx, "all_games", query, nil)
}

// GamesByGenre returns the games linked to genre.
func (r *Repository) GamesByGenre(ctx context.Context, genre string) ([]string, error) {
	query := `
		MATCH (g:Game)
		WHERE EXISTS { (g)-[:HAS_GENRE]->(:Genre {id: $genre}) }
		RETURN g.id AS id
		ORDER BY g.ordinal
	`
	return r.gameIDs(ctx, "games_by_genre", query, map[string]interface{}{"genre": genre})
}

// GamesByMechanic returns the games linked to mechanic.
func (r *Repository) GamesByMechanic(ctx context.Context, mechanic string) ([]string, error) {
	query := `
		MATCH (g:Game)
		WHERE EXISTS { (g)-[:HAS_MECHANIC]->(:Mechanic {id: $mechanic}) }
		RETURN g.id AS id
		ORDER BY g.ordinal
	`
	return r.gameIDs(ctx, "games_by_mechanic", query, map[string]interface{}{"mechanic": mechanic})
}

// GamesByComplexity returns the games whose derived complexity equals level.
func (r *Repository) GamesByComplexity(ctx context.Context, level knowledge.Complexity) ([]string, error) {
	return r.classified(ctx, "games_by_complexity", func(f knowledge.GameFacts) bool {
		return knowledge.ComplexityOf(f) == level
	})
}

// CooperativeGames returns the cooperative games.
func (r *Repository) CooperativeGames(ctx context.Context) ([]string, error) {
	return r.classified(ctx, "cooperative_games", knowledge.IsCooperative)
}

// GatewayGames returns the gateway games in declaration order.
func (r *Repository) GatewayGames(ctx context.Context) ([]string, error) {
	return r.classified(ctx, "gateway_games", knowledge.IsGateway)
}

// DeepStrategyGames returns the deep strategy games.
func (r *Repository) DeepStrategyGames(ctx context.Context) ([]string, error) {
	return r.classified(ctx, "deep_strategy_games", knowledge.IsDeepStrategy)
}

// GameInfo fetches one game, or returns *errors.ErrGameNotFound.
func (r *Repository) GameInfo(ctx context.Context, gameID string) (*knowledge.GameInfo, error) {
	rows, err := r.games(ctx, "game_info", "MATCH (g:Game {id: $id})"+gameProjection, map[string]interface{}{"id": gameID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewGameNotFound(gameID)
	}
	return knowledge.NewGameInfo(rows[0].id, rows[0].facts), nil
}

func (r *Repository) classified(ctx context.Context, operation string, keep func(knowledge.GameFacts) bool) ([]string, error) {
	rows, err := r.games(ctx, operation, "MATCH (g:Game)"+gameProjection, nil)
	if err != nil {
		return nil, err
	}
	return filterRows(rows, keep), nil
}

func (r *Repository) games(ctx context.Context, operation, query string, params map[string]interface{}) ([]gameRow, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed(operation, err)
	}

	rows := []gameRow{}
	for result.Next(ctx) {
		rows = append(rows, gameRowFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed(operation, err)
	}

	r.logger.Debug("Games fetched",
		zap.String("operation", operation),
		zap.Int("count", len(rows)),
	)
	return rows, nil
}

func (r *Repository) gameIDs(ctx context.Context, operation, query string, params map[string]interface{}) ([]string, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, apperrors.NewGraphQueryFailed(operation, err)
	}

	ids := []string{}
	for result.Next(ctx) {
		if id := getStringFromRecord(result.Record(), "id"); id != "" {
			ids = append(ids, id)
		}
	}
	if err := result.Err(); err != nil {
		return nil, apperrors.NewGraphQueryFailed(operation, err)
	}
	return ids, nil
}
