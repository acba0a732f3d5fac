package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"boardgame-advisor/backend/internal/graph"
	"boardgame-advisor/backend/internal/knowledge"
	"boardgame-advisor/backend/pkg/config"
	"boardgame-advisor/backend/pkg/logger"
)

// seed replaces the game graph in Neo4j with the contents of the ontology.
func main() {
	ontologyPath := flag.String("ontology", "", "Path to the OWL ontology (defaults to ONTOLOGY_PATH)")
	dryRun := flag.Bool("dry-run", false, "Load and validate the ontology without touching Neo4j")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	path := cfg.OntologyPath
	if *ontologyPath != "" {
		path = *ontologyPath
	}

	kb, err := knowledge.Load(path, log)
	if err != nil {
		log.Fatal("Failed to load ontology", zap.Error(err))
	}
	idx := kb.Index()

	if *dryRun {
		fmt.Printf("Ontology %s: %d games, %d genres, %d mechanics, %d designers\n",
			path, idx.Len(), len(idx.Genres()), len(idx.Mechanics()), len(idx.Designers()))
		return
	}

	if err := cfg.ValidateNeo4j(); err != nil {
		log.Fatal("Neo4j is not configured", zap.Error(err))
	}

	ctx := context.Background()
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		log.Fatal("Failed to connect to Neo4j", zap.Error(err))
	}
	defer driver.Close(context.Background())

	repo := graph.NewRepository(driver)

	log.Info("Creating constraints...")
	if err := repo.EnsureConstraints(ctx); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	log.Info("Importing knowledge base...", zap.String("ontology", path))
	stats, err := repo.ImportKnowledgeBase(ctx, idx)
	if err != nil {
		log.Error("Import failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Database seeding completed",
		zap.Int("games", stats.Games),
		zap.Int("genres", stats.Genres),
		zap.Int("mechanics", stats.Mechanics),
		zap.Duration("took", stats.Took),
	)
	fmt.Printf("Seeded %d games into %s\n", stats.Games, cfg.Neo4jURI)
}
