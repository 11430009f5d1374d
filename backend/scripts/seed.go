package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/graph"
	"soulmate/backend/internal/matching"
	"soulmate/backend/pkg/config"
	"soulmate/backend/pkg/logger"
)

func main() {
	reset := flag.Bool("reset", false, "Delete all users and interests before seeding")
	skipConfirm := flag.Bool("y", false, "Skip confirmation prompt for -reset")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	repo := graph.NewRepository(driver, graph.Options{
		Database:  cfg.Neo4jDatabase,
		TxTimeout: cfg.Neo4jTxTimeout,
	})
	defer repo.Close(context.Background())

	if *reset {
		if !*skipConfirm && !confirm(log) {
			log.Info("Aborted.")
			os.Exit(0)
		}
		if err := repo.Reset(ctx); err != nil {
			log.Fatal("Failed to reset database", zap.Error(err))
		}
	}

	log.Info("Creating constraints and indexes...")
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to create schema", zap.Error(err))
	}

	log.Info("Seeding questionnaire catalog...")
	if err := matching.SeedCatalog(ctx, repo); err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}

	total := 0
	for _, def := range catalog.All() {
		n := len(catalog.Options[def.Category])
		total += n
		log.Info("Category seeded",
			zap.String("category", string(def.Category)),
			zap.String("label", def.Label),
			zap.Int("options", n),
		)
	}

	log.Info("Database seeding completed successfully",
		zap.Int("interests", total),
		zap.Int("compatibilities", len(catalog.Compatibilities)),
	)
}

func confirm(log *zap.Logger) bool {
	log.Warn("WARNING: -reset deletes ALL users, likes and matches from Neo4j!")
	log.Warn("This action cannot be undone.")
	// prompt goes to stdout
	fmt.Print("Are you sure you want to continue? (yes/no): ")
	var response string
	fmt.Scanln(&response)
	return response == "yes" || response == "y"
}
