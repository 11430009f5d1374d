package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "soulmate/backend/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("MATCH_NORMALIZATION", "")
	t.Setenv("RECOMMENDATION_LIMIT", "")
	t.Setenv("MIN_SHARED_INTERESTS", "")
	t.Setenv("NEO4J_TX_TIMEOUT_MS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreNeo4j, cfg.StoreBackend)
	assert.Equal(t, 10.0, cfg.MatchNormalization)
	assert.Equal(t, 10, cfg.RecommendationLimit)
	assert.Equal(t, 2, cfg.MinSharedInterests)
	assert.Equal(t, 5*time.Second, cfg.Neo4jTxTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("MATCH_NORMALIZATION", "12.5")
	t.Setenv("RECOMMENDATION_LIMIT", "25")
	t.Setenv("NEO4J_TX_TIMEOUT_MS", "750")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, 12.5, cfg.MatchNormalization)
	assert.Equal(t, 25, cfg.RecommendationLimit)
	assert.Equal(t, 750*time.Millisecond, cfg.Neo4jTxTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StoreBackend:        StoreNeo4j,
			Neo4jURI:            "bolt://localhost:7687",
			Neo4jUser:           "neo4j",
			Neo4jPassword:       "password",
			MatchNormalization:  10,
			RecommendationLimit: 10,
			MinSharedInterests:  2,
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Neo4jURI = ""
	assert.True(t, apperrors.IsErrorType(cfg.Validate(), apperrors.ErrorTypeConfig))

	cfg = valid()
	cfg.StoreBackend = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.StoreBackend = StoreMemory
	cfg.Neo4jURI = ""
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.MatchNormalization = 0
	assert.Error(t, cfg.Validate())
}
