package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	apperrors "boardgame-advisor/backend/pkg/errors"
)

// Knowledge backends
const (
	BackendMemory = "memory"
	BackendNeo4j  = "neo4j"
)

// Config holds all application configuration
type Config struct {
	// App
	Port     string
	Env      string
	LogLevel string

	// Knowledge base
	OntologyPath     string
	KnowledgeBackend string // memory or neo4j
	DictionaryPath   string // optional YAML keyword dictionary; embedded default when empty

	// Recommendations
	RecommendationLimit  int
	GatewayFallbackLimit int

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Discord
	DiscordBotToken string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  getEnv("ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", ""),
		OntologyPath:         getEnv("ONTOLOGY_PATH", "backend/ontology/boardgames.owl"),
		KnowledgeBackend:     getEnv("KNOWLEDGE_BACKEND", BackendMemory),
		DictionaryPath:       getEnv("DICTIONARY_PATH", ""),
		RecommendationLimit:  getEnvInt("RECOMMENDATION_LIMIT", 5),
		GatewayFallbackLimit: getEnvInt("GATEWAY_FALLBACK_LIMIT", 3),
		Neo4jURI:             getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:            getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:        getEnv("NEO4J_PASSWORD", "password"),
		DiscordBotToken:      getEnv("DISCORD_BOT_TOKEN", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	switch c.KnowledgeBackend {
	case BackendMemory:
		if c.OntologyPath == "" {
			return apperrors.NewConfigMissingRequired("ONTOLOGY_PATH")
		}
	case BackendNeo4j:
		if err := c.ValidateNeo4j(); err != nil {
			return err
		}
	default:
		return apperrors.NewConfigValidationFailed("KNOWLEDGE_BACKEND",
			fmt.Sprintf("must be %q or %q, got %q", BackendMemory, BackendNeo4j, c.KnowledgeBackend))
	}
	if c.RecommendationLimit < 1 {
		return apperrors.NewConfigValidationFailed("RECOMMENDATION_LIMIT", "must be at least 1")
	}
	if c.GatewayFallbackLimit < 0 {
		return apperrors.NewConfigValidationFailed("GATEWAY_FALLBACK_LIMIT", "must not be negative")
	}
	// Discord token is only checked by the bot
	return nil
}

// ValidateNeo4j checks the settings needed to open a Neo4j driver. The
// seeding tool calls it even when the serving backend is memory.
func (c *Config) ValidateNeo4j() error {
	if c.Neo4jURI == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_URI")
	}
	if c.Neo4jUser == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_USER")
	}
	if c.Neo4jPassword == "" {
		return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
