package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	apperrors "soulmate/backend/pkg/errors"
)

const (
	StoreNeo4j  = "neo4j"
	StoreMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Store
	StoreBackend string // neo4j or memory

	// Neo4j
	Neo4jURI       string
	Neo4jUser      string
	Neo4jPassword  string
	Neo4jDatabase  string
	Neo4jTxTimeout time.Duration

	// Circuit breaker around Neo4j transactions
	BreakerFailureThreshold uint32
	BreakerTimeout          time.Duration

	// Matching
	MatchNormalization  float64 // K in matchPercentage = floor(score / K * 100)
	RecommendationLimit int
	MinSharedInterests  int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		StoreBackend:            getEnv("STORE_BACKEND", StoreNeo4j),
		Neo4jURI:                getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:               getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:           getEnv("NEO4J_PASSWORD", "password"),
		Neo4jDatabase:           getEnv("NEO4J_DATABASE", ""),
		Neo4jTxTimeout:          time.Duration(getEnvInt("NEO4J_TX_TIMEOUT_MS", 5000)) * time.Millisecond,
		BreakerFailureThreshold: uint32(getEnvInt("BREAKER_FAILURE_THRESHOLD", 5)),
		BreakerTimeout:          time.Duration(getEnvInt("BREAKER_TIMEOUT_MS", 30000)) * time.Millisecond,
		MatchNormalization:      getEnvFloat("MATCH_NORMALIZATION", 10.0),
		RecommendationLimit:     getEnvInt("RECOMMENDATION_LIMIT", 10),
		MinSharedInterests:      getEnvInt("MIN_SHARED_INTERESTS", 2),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreNeo4j:
		if c.Neo4jURI == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_URI")
		}
		if c.Neo4jUser == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_USER")
		}
		if c.Neo4jPassword == "" {
			return apperrors.NewConfigMissingRequired("NEO4J_PASSWORD")
		}
	case StoreMemory:
	default:
		return apperrors.NewConfigValidationFailed("STORE_BACKEND", fmt.Sprintf("unknown backend %q", c.StoreBackend))
	}
	if c.MatchNormalization <= 0 {
		return apperrors.NewConfigValidationFailed("MATCH_NORMALIZATION", "must be positive")
	}
	if c.RecommendationLimit < 1 {
		return apperrors.NewConfigValidationFailed("RECOMMENDATION_LIMIT", "must be at least 1")
	}
	if c.MinSharedInterests < 1 {
		return apperrors.NewConfigValidationFailed("MIN_SHARED_INTERESTS", "must be at least 1")
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

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var result float64
		if _, err := fmt.Sscanf(value, "%f", &result); err == nil {
			return result
		}
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
