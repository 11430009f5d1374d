package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"soulmate/backend/internal/api"
	"soulmate/backend/internal/graph"
	"soulmate/backend/internal/matching"
	"soulmate/backend/internal/store"
	"soulmate/backend/internal/store/memory"
	"soulmate/backend/pkg/config"
	"soulmate/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...", zap.String("store", cfg.StoreBackend))

	ctx := context.Background()
	st, pinger, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}
	defer st.Close(context.Background())

	engine := matching.NewEngine(st, matching.Options{
		Normalization:       cfg.MatchNormalization,
		RecommendationLimit: cfg.RecommendationLimit,
		MinSharedInterests:  cfg.MinSharedInterests,
	})
	warnIfCatalogEmpty(ctx, engine, log)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.NewHandler(engine, pinger, log))

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// openStore builds the configured store. The in-memory store is seeded with
// the questionnaire catalog since it starts empty on every run.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Store, api.Pinger, error) {
	if cfg.StoreBackend == config.StoreMemory {
		s := memory.New()
		if err := matching.SeedCatalog(ctx, s); err != nil {
			return nil, nil, err
		}
		log.Warn("Using in-memory store; data is lost on restart")
		return s, nil, nil
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	// Verify Neo4j connection
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	repo := graph.NewRepository(driver, graph.Options{
		Database:                cfg.Neo4jDatabase,
		TxTimeout:               cfg.Neo4jTxTimeout,
		BreakerFailureThreshold: cfg.BreakerFailureThreshold,
		BreakerTimeout:          cfg.BreakerTimeout,
	})
	return repo, repo, nil
}

func warnIfCatalogEmpty(ctx context.Context, engine *matching.Engine, log *zap.Logger) {
	options, err := engine.QuestionnaireOptions(ctx)
	if err != nil {
		log.Warn("Could not read questionnaire catalog", zap.Error(err))
		return
	}
	if len(options) == 0 {
		log.Warn("Questionnaire catalog is empty; run the seed script")
	}
}
