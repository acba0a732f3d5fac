package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"boardgame-advisor/backend/internal/knowledge"
	apperrors "boardgame-advisor/backend/pkg/errors"
)

// importConcurrency bounds the number of games written at once.
const importConcurrency = 4

var constraints = []string{
	"CREATE CONSTRAINT game_id_unique IF NOT EXISTS FOR (g:Game) REQUIRE g.id IS UNIQUE",
	"CREATE CONSTRAINT genre_id_unique IF NOT EXISTS FOR (g:Genre) REQUIRE g.id IS UNIQUE",
	"CREATE CONSTRAINT mechanic_id_unique IF NOT EXISTS FOR (m:Mechanic) REQUIRE m.id IS UNIQUE",
	"CREATE CONSTRAINT designer_id_unique IF NOT EXISTS FOR (d:Designer) REQUIRE d.id IS UNIQUE",
}

// EnsureConstraints creates the uniqueness constraints the importer relies on.
func (r *Repository) EnsureConstraints(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return apperrors.NewGraphQueryFailed("ensure_constraints", err)
		}
	}
	return nil
}

// Reset removes every node the importer owns.
func (r *Repository) Reset(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		MATCH (n)
		WHERE n:Game OR n:Genre OR n:Mechanic OR n:Designer
		DETACH DELETE n
	`
	if _, err := session.Run(ctx, query, nil); err != nil {
		return apperrors.NewGraphQueryFailed("reset", err)
	}
	return nil
}

// ImportStats summarizes an import.
type ImportStats struct {
	Games     int
	Genres    int
	Mechanics int
	Took      time.Duration
}

// ImportKnowledgeBase replaces the graph contents with idx. Declared genres
// and mechanics are written first, then games in parallel. Relation targets
// that were never declared still get a node so the relation survives.
func (r *Repository) ImportKnowledgeBase(ctx context.Context, idx *knowledge.Index) (*ImportStats, error) {
	start := time.Now()

	if err := r.Reset(ctx); err != nil {
		return nil, err
	}

	genres, mechanics := idx.Genres(), idx.Mechanics()
	if err := r.writeVocabulary(ctx, genres, mechanics); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)

	for ordinal, id := range idx.Games() {
		facts, _ := idx.Facts(id)
		params := gameParams(id, ordinal, facts)
		g.Go(func() error {
			return r.writeGame(gctx, params)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &ImportStats{
		Games:     idx.Len(),
		Genres:    len(genres),
		Mechanics: len(mechanics),
		Took:      time.Since(start),
	}
	r.logger.Info("Knowledge base imported",
		zap.Int("games", stats.Games),
		zap.Int("genres", stats.Genres),
		zap.Int("mechanics", stats.Mechanics),
		zap.Duration("took", stats.Took),
	)
	return stats, nil
}

func (r *Repository) writeVocabulary(ctx context.Context, genres, mechanics []string) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	query := `
		UNWIND $genres AS genre
		MERGE (:Genre {id: genre})
		WITH count(*) AS ignored
		UNWIND $mechanics AS mechanic
		MERGE (:Mechanic {id: mechanic})
	`
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, query, map[string]interface{}{
			"genres":    genres,
			"mechanics": mechanics,
		})
		return nil, err
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("write_vocabulary", err)
	}
	return nil
}

// Relationship positions keep the declaration order of each list.
const writeGameQuery = `
	MERGE (g:Game {id: $id})
	SET g.ordinal = $ordinal
	FOREACH (i IN range(0, size($genres) - 1) |
		MERGE (x:Genre {id: $genres[i]})
		CREATE (g)-[:HAS_GENRE {position: i}]->(x))
	FOREACH (i IN range(0, size($mechanics) - 1) |
		MERGE (x:Mechanic {id: $mechanics[i]})
		CREATE (g)-[:HAS_MECHANIC {position: i}]->(x))
	FOREACH (i IN range(0, size($designers) - 1) |
		MERGE (x:Designer {id: $designers[i]})
		CREATE (g)-[:DESIGNED_BY {position: i}]->(x))
`

func (r *Repository) writeGame(ctx context.Context, params map[string]interface{}) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, writeGameQuery, params)
		return nil, err
	})
	if err != nil {
		return apperrors.NewGraphQueryFailed("write_game", err)
	}
	return nil
}
