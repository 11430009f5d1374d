package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

var constraints = []string{
	"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
	"CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
	"CREATE CONSTRAINT interest_id_unique IF NOT EXISTS FOR (i:Interest) REQUIRE i.id IS UNIQUE",
}

var indexes = []string{
	"CREATE INDEX interest_category_name IF NOT EXISTS FOR (i:Interest) ON (i.category, i.name)",
	"CREATE INDEX user_profile_complete IF NOT EXISTS FOR (u:User) ON (u.profile_complete)",
	"CREATE INDEX user_created_at IF NOT EXISTS FOR (u:User) ON (u.created_at)",
}

// EnsureSchema creates the uniqueness constraints and lookup indexes. Schema
// statements cannot share a transaction with data writes, so each runs on
// its own.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite, DatabaseName: r.database})
	defer session.Close(ctx)

	for _, stmt := range append(append([]string{}, constraints...), indexes...) {
		result, err := session.Run(ctx, stmt, nil)
		if err == nil {
			_, err = result.Consume(ctx)
		}
		if err != nil {
			return classify("ensure schema", fmt.Errorf("failed to run %q: %w", stmt, err))
		}
	}

	r.logger.Info("Schema ensured",
		zap.Int("constraints", len(constraints)),
		zap.Int("indexes", len(indexes)),
	)
	return nil
}

// Reset deletes every user and interest node with their relationships.
func (r *Repository) Reset(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite, DatabaseName: r.database})
	defer session.Close(ctx)

	query := `
		MATCH (n)
		WHERE n:User OR n:Interest
		DETACH DELETE n
	`

	result, err := session.Run(ctx, query, nil)
	if err == nil {
		_, err = result.Consume(ctx)
	}
	if err != nil {
		return classify("reset", fmt.Errorf("failed to delete all data: %w", err))
	}

	r.logger.Warn("All users and interests deleted")
	return nil
}
