// Package memory is an in-process graph store: an arena of user and interest
// nodes with adjacency lists per edge type. Writes are serialized behind one
// lock and rolled back from an undo log when the unit of work fails.
package memory

import (
	"context"
	"fmt"
	"sync"

	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
)

type edge struct {
	to    string
	attrs store.Attributes
}

// Store implements store.Store in memory.
type Store struct {
	mu sync.RWMutex

	users         map[string]*model.User
	userOrder     []string
	interests     map[string]model.Interest
	interestOrder []string

	// adjacency[type][from] lists outgoing edges; symmetric types are
	// recorded under both endpoints.
	adjacency map[store.EdgeType]map[string][]edge

	closed bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:     make(map[string]*model.User),
		interests: make(map[string]model.Interest),
		adjacency: make(map[store.EdgeType]map[string][]edge),
	}
}

// Read runs fn under a shared lock.
func (s *Store) Read(ctx context.Context, fn func(tx store.ReadTx) error) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStorage("read", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return apperrors.NewStorage("read", fmt.Errorf("store closed"))
	}
	return fn(&tx{s: s})
}

// Write runs fn under the exclusive lock and undoes every mutation if fn
// returns an error or panics.
func (s *Store) Write(ctx context.Context, fn func(tx store.WriteTx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStorage("write", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return apperrors.NewStorage("write", fmt.Errorf("store closed"))
	}

	t := &tx{s: s, writable: true}
	defer func() {
		if p := recover(); p != nil {
			t.rollback()
			panic(p)
		}
		if err != nil {
			t.rollback()
		}
	}()
	return fn(t)
}

// Close marks the store closed; later units of work fail with StorageError.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// CountEdges returns the number of edges of the given type, counting each
// symmetric edge once.
func (s *Store) CountEdges(edgeType store.EdgeType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, edges := range s.adjacency[edgeType] {
		n += len(edges)
	}
	if edgeType.Symmetric() {
		n /= 2
	}
	return n
}

type tx struct {
	s        *Store
	writable bool
	undo     []func()
}

func (t *tx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *tx) requireWritable(op string) error {
	if !t.writable {
		return apperrors.NewStorage(op, fmt.Errorf("read-only transaction"))
	}
	return nil
}

// Reads

func (t *tx) FindUser(ctx context.Context, id string) (model.User, error) {
	u, ok := t.s.users[id]
	if !ok {
		return model.User{}, apperrors.NewNotFound("user", id)
	}
	return *u, nil
}

func (t *tx) FindInterest(ctx context.Context, category catalog.Category, name string) (model.Interest, error) {
	id := catalog.InterestID(category, name)
	i, ok := t.s.interests[id]
	if !ok {
		return model.Interest{}, apperrors.NewNotFound("interest", id)
	}
	return i, nil
}

func (t *tx) EdgeExists(ctx context.Context, fromID, toID string, edgeType store.EdgeType) (bool, error) {
	return t.s.hasEdge(edgeType, fromID, toID), nil
}

func (t *tx) UserLikes(ctx context.Context, userID string) ([]model.Like, error) {
	if _, ok := t.s.users[userID]; !ok {
		return nil, apperrors.NewNotFound("user", userID)
	}
	edges := t.s.adjacency[store.Likes][userID]
	likes := make([]model.Like, 0, len(edges))
	for _, e := range edges {
		intensity, _ := e.attrs["intensity"].(float64)
		likes = append(likes, model.Like{Interest: t.s.interests[e.to], Intensity: intensity})
	}
	model.SortLikes(likes)
	return likes, nil
}

func (t *tx) Candidates(ctx context.Context, userID string, minShared int) ([]model.Candidate, error) {
	if _, ok := t.s.users[userID]; !ok {
		return nil, apperrors.NewNotFound("user", userID)
	}
	mine := t.s.likedSet(userID)

	var out []model.Candidate
	for _, otherID := range t.s.userOrder {
		other := t.s.users[otherID]
		if otherID == userID || !other.ProfileComplete || t.s.hasEdge(store.Viewed, userID, otherID) {
			continue
		}
		theirs := t.s.likedSet(otherID)
		shared := 0
		for id := range theirs {
			if _, ok := mine[id]; ok {
				shared++
			}
		}
		if shared < minShared {
			continue
		}
		interests := make([]model.Interest, 0, len(theirs))
		for id := range theirs {
			interests = append(interests, t.s.interests[id])
		}
		model.SortInterests(interests)
		out = append(out, model.Candidate{User: *other, Interests: interests})
	}
	return out, nil
}

func (t *tx) CompatiblePairs(ctx context.Context, interestIDs []string) ([][2]string, error) {
	wanted := make(map[string]struct{}, len(interestIDs))
	for _, id := range interestIDs {
		wanted[id] = struct{}{}
	}
	var pairs [][2]string
	for _, id := range t.s.interestOrder {
		if _, ok := wanted[id]; !ok {
			continue
		}
		for _, e := range t.s.adjacency[store.CompatibleWith][id] {
			// each symmetric pair once
			if _, ok := wanted[e.to]; ok && id < e.to {
				pairs = append(pairs, [2]string{id, e.to})
			}
		}
	}
	return pairs, nil
}

func (t *tx) MatchedUsers(ctx context.Context, userID string) ([]model.User, error) {
	if _, ok := t.s.users[userID]; !ok {
		return nil, apperrors.NewNotFound("user", userID)
	}
	edges := t.s.adjacency[store.Match][userID]
	users := make([]model.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, *t.s.users[e.to])
	}
	return users, nil
}

func (t *tx) ListInterests(ctx context.Context) ([]model.Interest, error) {
	out := make([]model.Interest, 0, len(t.s.interestOrder))
	for _, id := range t.s.interestOrder {
		out = append(out, t.s.interests[id])
	}
	model.SortInterests(out)
	return out, nil
}

// Writes

func (t *tx) CreateUser(ctx context.Context, user model.User) error {
	if err := t.requireWritable("create user"); err != nil {
		return err
	}
	if _, exists := t.s.users[user.ID]; exists {
		return apperrors.NewConflict("user", user.ID)
	}
	for _, u := range t.s.users {
		if u.Email == user.Email {
			return apperrors.NewConflict("email", user.Email)
		}
	}
	u := user
	t.s.users[user.ID] = &u
	t.s.userOrder = append(t.s.userOrder, user.ID)
	t.undo = append(t.undo, func() {
		delete(t.s.users, user.ID)
		t.s.userOrder = t.s.userOrder[:len(t.s.userOrder)-1]
	})
	return nil
}

func (t *tx) CreateInterest(ctx context.Context, interest model.Interest) error {
	if err := t.requireWritable("create interest"); err != nil {
		return err
	}
	if interest.ID == "" {
		interest.ID = catalog.InterestID(interest.Category, interest.Name)
	}
	if _, exists := t.s.interests[interest.ID]; exists {
		return nil
	}
	t.s.interests[interest.ID] = interest
	t.s.interestOrder = append(t.s.interestOrder, interest.ID)
	t.undo = append(t.undo, func() {
		delete(t.s.interests, interest.ID)
		t.s.interestOrder = t.s.interestOrder[:len(t.s.interestOrder)-1]
	})
	return nil
}

func (t *tx) DeleteEdges(ctx context.Context, fromID string, edgeType store.EdgeType) error {
	if err := t.requireWritable("delete edges"); err != nil {
		return err
	}
	if edgeType.Symmetric() {
		return apperrors.NewStorage("delete edges", fmt.Errorf("%s edges are never deleted", edgeType))
	}
	byFrom := t.s.adjacency[edgeType]
	prev, ok := byFrom[fromID]
	if !ok {
		return nil
	}
	delete(byFrom, fromID)
	t.undo = append(t.undo, func() { byFrom[fromID] = prev })
	return nil
}

func (t *tx) CreateEdge(ctx context.Context, fromID, toID string, edgeType store.EdgeType, attrs store.Attributes) error {
	if err := t.requireWritable("create edge"); err != nil {
		return err
	}
	if err := t.s.checkEndpoints(edgeType, fromID, toID); err != nil {
		return err
	}
	if edgeType.Merged() && t.s.hasEdge(edgeType, fromID, toID) {
		return nil
	}
	t.appendEdge(edgeType, fromID, edge{to: toID, attrs: attrs})
	if edgeType.Symmetric() {
		t.appendEdge(edgeType, toID, edge{to: fromID, attrs: attrs})
	}
	return nil
}

func (t *tx) appendEdge(edgeType store.EdgeType, from string, e edge) {
	byFrom, ok := t.s.adjacency[edgeType]
	if !ok {
		byFrom = make(map[string][]edge)
		t.s.adjacency[edgeType] = byFrom
	}
	prev := byFrom[from]
	byFrom[from] = append(prev[:len(prev):len(prev)], e)
	t.undo = append(t.undo, func() {
		if len(prev) == 0 {
			delete(byFrom, from)
			return
		}
		byFrom[from] = prev
	})
}

func (t *tx) SetUserFlag(ctx context.Context, userID string, flag store.UserFlag) error {
	if err := t.requireWritable("set user flag"); err != nil {
		return err
	}
	u, ok := t.s.users[userID]
	if !ok {
		return apperrors.NewNotFound("user", userID)
	}
	prev := *u
	switch flag {
	case store.ProfileComplete:
		u.ProfileComplete = true
	case store.ShowPhoto:
		u.ShowPhoto = true
	default:
		return apperrors.NewStorage("set user flag", fmt.Errorf("unknown flag %q", flag))
	}
	t.undo = append(t.undo, func() { *u = prev })
	return nil
}

// LockPair is a no-op: the write lock already serializes every transaction.
func (t *tx) LockPair(ctx context.Context, userA, userB string) error {
	if err := t.requireWritable("lock pair"); err != nil {
		return err
	}
	if _, ok := t.s.users[userA]; !ok {
		return apperrors.NewNotFound("user", userA)
	}
	if _, ok := t.s.users[userB]; !ok {
		return apperrors.NewNotFound("user", userB)
	}
	return nil
}

// Helpers

func (s *Store) hasEdge(edgeType store.EdgeType, fromID, toID string) bool {
	for _, e := range s.adjacency[edgeType][fromID] {
		if e.to == toID {
			return true
		}
	}
	return false
}

func (s *Store) likedSet(userID string) map[string]struct{} {
	edges := s.adjacency[store.Likes][userID]
	set := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		set[e.to] = struct{}{}
	}
	return set
}

func (s *Store) checkEndpoints(edgeType store.EdgeType, fromID, toID string) error {
	switch edgeType {
	case store.Likes:
		if _, ok := s.users[fromID]; !ok {
			return apperrors.NewNotFound("user", fromID)
		}
		if _, ok := s.interests[toID]; !ok {
			return apperrors.NewNotFound("interest", toID)
		}
	case store.CompatibleWith:
		if fromID == toID {
			return apperrors.NewStorage("create edge", fmt.Errorf("interest %s cannot be compatible with itself", fromID))
		}
		if _, ok := s.interests[fromID]; !ok {
			return apperrors.NewNotFound("interest", fromID)
		}
		if _, ok := s.interests[toID]; !ok {
			return apperrors.NewNotFound("interest", toID)
		}
	case store.Liked, store.Viewed, store.Match:
		if _, ok := s.users[fromID]; !ok {
			return apperrors.NewNotFound("user", fromID)
		}
		if _, ok := s.users[toID]; !ok {
			return apperrors.NewNotFound("user", toID)
		}
	default:
		return apperrors.NewStorage("create edge", fmt.Errorf("unknown edge type %q", edgeType))
	}
	return nil
}
