package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"soulmate/backend/internal/api"
	"soulmate/backend/internal/matching"
	"soulmate/backend/pkg/config"
)

func TestOpenStore_Memory(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StoreBackend: config.StoreMemory}

	st, pinger, err := openStore(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer st.Close(ctx)
	assert.Nil(t, pinger)

	engine := matching.NewEngine(st, matching.Options{})
	options, err := engine.QuestionnaireOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, options, 9)
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	st, pinger, err := openStore(ctx, &config.Config{StoreBackend: config.StoreMemory}, zap.NewNop())
	require.NoError(t, err)
	defer st.Close(ctx)
	router := api.NewRouter(api.NewHandler(matching.NewEngine(st, matching.Options{}), pinger, zap.NewNop()))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}
