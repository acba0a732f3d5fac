// Package services wires the knowledge base, parser and recommendation
// engine from configuration. Every binary starts here.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/graph"
	"boardgame-advisor/backend/internal/knowledge"
	"boardgame-advisor/backend/internal/metrics"
	"boardgame-advisor/backend/internal/preferences"
	"boardgame-advisor/backend/internal/recommend"
	"boardgame-advisor/backend/pkg/config"
	apperrors "boardgame-advisor/backend/pkg/errors"
)

// connectTimeout bounds the Neo4j connectivity check at startup.
const connectTimeout = 10 * time.Second

const (
	connectAttempts = 2
	connectBackoff  = time.Second
)

// connectGraph is swapped out in tests.
var connectGraph = graph.Connect

// ServiceManager owns the knowledge backend and everything built on it.
type ServiceManager struct {
	Base    knowledge.Base
	Parser  *preferences.Parser
	Engine  *recommend.Engine
	Advisor *recommend.Advisor

	logger *zap.Logger
	driver neo4j.DriverWithContext
	mu     sync.Mutex
	closed bool
}

// NewServiceManager loads the configured knowledge backend and builds the
// recommendation stack over it. Queries are instrumented.
func NewServiceManager(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceManager, error) {
	sm := &ServiceManager{logger: logger}

	dict, err := preferences.OpenDictionary(cfg.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword dictionary: %w", err)
	}

	var base knowledge.Base
	switch cfg.KnowledgeBackend {
	case config.BackendNeo4j:
		base, err = sm.openGraph(ctx, cfg)
	default:
		base, err = sm.openMemory(cfg)
	}
	if err != nil {
		return nil, err
	}

	sm.Base = knowledge.Instrument(base)
	sm.Parser = preferences.NewParser(dict)
	sm.Engine = recommend.NewEngine(sm.Base, cfg.GatewayFallbackLimit)
	sm.Advisor = recommend.NewAdvisor(sm.Parser, sm.Engine, cfg.RecommendationLimit)

	logger.Info("Services initialized", zap.String("backend", cfg.KnowledgeBackend))
	return sm, nil
}

func (sm *ServiceManager) openMemory(cfg *config.Config) (knowledge.Base, error) {
	kb, err := knowledge.Load(cfg.OntologyPath, sm.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	metrics.SetGameCount(kb.Index().Len())
	return kb, nil
}

func (sm *ServiceManager) openGraph(ctx context.Context, cfg *config.Config) (knowledge.Base, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	driver, err := sm.connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sm.driver = driver

	repo := graph.NewRepository(driver)
	games, err := repo.AllGames(ctx)
	if err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to count games: %w", err)
	}
	if len(games) == 0 {
		sm.logger.Warn("Graph holds no games; run the seed script first", zap.String("uri", cfg.Neo4jURI))
	}
	metrics.SetGameCount(len(games))
	return repo, nil
}

// connect dials Neo4j, retrying connectivity failures while attempts and
// the context allow.
func (sm *ServiceManager) connect(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		driver, err := connectGraph(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
		if err == nil {
			return driver, nil
		}
		lastErr = err
		if !apperrors.IsRetryable(err) || attempt == connectAttempts {
			break
		}

		sm.logger.Warn("Neo4j not reachable, retrying",
			zap.String("uri", cfg.Neo4jURI),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(connectBackoff):
		}
	}
	return nil, lastErr
}

// Close releases the Neo4j driver, if one was opened. It is safe to call
// more than once.
func (sm *ServiceManager) Close(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.closed || sm.driver == nil {
		sm.closed = true
		return nil
	}
	sm.closed = true
	return sm.driver.Close(ctx)
}
