// Package store defines the graph storage contract the matching core runs on.
//
// Implementations own all state. Read and Write each execute a unit of work
// in one transaction; Write is all-or-nothing, so a returned error leaves the
// graph unchanged. Missing nodes are reported as NotFoundError and backend
// failures as StorageError (see pkg/errors).
package store

import (
	"context"

	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
)

// EdgeType is one of the fixed relationship types.
type EdgeType string

const (
	Likes          EdgeType = "LIKES"           // User -> Interest, always created
	CompatibleWith EdgeType = "COMPATIBLE_WITH" // Interest - Interest, symmetric
	Liked          EdgeType = "LIKED"           // User -> User, merged
	Viewed         EdgeType = "VIEWED"          // User -> User, merged
	Match          EdgeType = "MATCH"           // User - User, symmetric, merged
)

// Symmetric reports whether the edge type is matched in both directions.
func (t EdgeType) Symmetric() bool {
	return t == CompatibleWith || t == Match
}

// Merged reports whether creating the edge is create-if-absent.
func (t EdgeType) Merged() bool {
	return t != Likes
}

// UserFlag is a monotonic boolean property on a user node.
type UserFlag string

const (
	ProfileComplete UserFlag = "profile_complete"
	ShowPhoto       UserFlag = "show_photo"
)

// Attributes are edge properties.
type Attributes map[string]any

// ReadTx exposes the lookups and traversals available inside a transaction.
type ReadTx interface {
	FindUser(ctx context.Context, id string) (model.User, error)
	FindInterest(ctx context.Context, category catalog.Category, name string) (model.Interest, error)
	EdgeExists(ctx context.Context, fromID, toID string, edge EdgeType) (bool, error)

	// UserLikes returns the user's LIKES edges ordered by category then name.
	UserLikes(ctx context.Context, userID string) ([]model.Like, error)
	// Candidates returns every other profile-complete user not VIEWED by
	// userID that shares at least minShared interests with them, each with
	// their full interest set. Order is deterministic.
	Candidates(ctx context.Context, userID string, minShared int) ([]model.Candidate, error)
	// CompatiblePairs returns the COMPATIBLE_WITH pairs among interestIDs.
	CompatiblePairs(ctx context.Context, interestIDs []string) ([][2]string, error)
	// MatchedUsers returns the users joined to userID by a MATCH edge.
	MatchedUsers(ctx context.Context, userID string) ([]model.User, error)
	ListInterests(ctx context.Context) ([]model.Interest, error)
}

// WriteTx adds the mutations.
type WriteTx interface {
	ReadTx

	CreateUser(ctx context.Context, user model.User) error
	CreateInterest(ctx context.Context, interest model.Interest) error
	DeleteEdges(ctx context.Context, fromID string, edge EdgeType) error
	CreateEdge(ctx context.Context, fromID, toID string, edge EdgeType, attrs Attributes) error
	SetUserFlag(ctx context.Context, userID string, flag UserFlag) error

	// LockPair takes an exclusive section on the unordered user pair for the
	// rest of the transaction.
	LockPair(ctx context.Context, userA, userB string) error
}

// Store runs units of work against the graph.
type Store interface {
	Read(ctx context.Context, fn func(tx ReadTx) error) error
	Write(ctx context.Context, fn func(tx WriteTx) error) error
	Close(ctx context.Context) error
}
