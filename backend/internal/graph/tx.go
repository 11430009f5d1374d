package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
)

// readTx adapts a managed transaction to store.ReadTx.
type readTx struct {
	tx neo4j.ManagedTransaction
}

// writeTx adds the mutations. Only Write hands one out.
type writeTx struct {
	readTx
}

var (
	_ store.ReadTx  = (*readTx)(nil)
	_ store.WriteTx = (*writeTx)(nil)
)

func (t *readTx) collect(ctx context.Context, query string, params map[string]interface{}) ([]*neo4j.Record, error) {
	result, err := t.tx.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return result.Collect(ctx)
}

// userFields projects a user node bound to v.
func userFields(v string) string {
	return strings.ReplaceAll(userReturn, "u.", v+".")
}

// endpointLabels returns the node labels an edge type connects.
func endpointLabels(edgeType store.EdgeType) (from, to string, err error) {
	switch edgeType {
	case store.Likes:
		return "User", "Interest", nil
	case store.CompatibleWith:
		return "Interest", "Interest", nil
	case store.Liked, store.Viewed, store.Match:
		return "User", "User", nil
	}
	return "", "", apperrors.NewStorage("edge", fmt.Errorf("unknown edge type %q", edgeType))
}

// edgePattern renders the relationship part of a pattern, undirected for
// symmetric types.
func edgePattern(variable string, edgeType store.EdgeType) string {
	if edgeType.Symmetric() {
		return fmt.Sprintf("-[%s:%s]-", variable, edgeType)
	}
	return fmt.Sprintf("-[%s:%s]->", variable, edgeType)
}

// ============================================================================
// Reads
// ============================================================================

func (t *readTx) FindUser(ctx context.Context, id string) (model.User, error) {
	query := `MATCH (u:User {id: $id}) RETURN ` + userReturn

	records, err := t.collect(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to find user: %w", err)
	}
	if len(records) == 0 {
		return model.User{}, apperrors.NewNotFound("user", id)
	}
	return userFromRecord(records[0]), nil
}

func (t *readTx) FindInterest(ctx context.Context, category catalog.Category, name string) (model.Interest, error) {
	query := `
		MATCH (i:Interest {category: $category, name: $name})
		RETURN i.id AS id, i.name AS name, i.category AS category
		LIMIT 1
	`

	records, err := t.collect(ctx, query, map[string]interface{}{
		"category": string(category),
		"name":     name,
	})
	if err != nil {
		return model.Interest{}, fmt.Errorf("failed to find interest: %w", err)
	}
	if len(records) == 0 {
		return model.Interest{}, apperrors.NewNotFound("interest", catalog.InterestID(category, name))
	}
	return interestFromRecord(records[0]), nil
}

func (t *readTx) EdgeExists(ctx context.Context, fromID, toID string, edgeType store.EdgeType) (bool, error) {
	fromLabel, toLabel, err := endpointLabels(edgeType)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		MATCH (a:%s {id: $from})%s(b:%s {id: $to})
		RETURN count(r) > 0 AS found
	`, fromLabel, edgePattern("r", edgeType), toLabel)

	records, err := t.collect(ctx, query, map[string]interface{}{"from": fromID, "to": toID})
	if err != nil {
		return false, fmt.Errorf("failed to check %s edge: %w", edgeType, err)
	}
	return len(records) > 0 && getBoolFromRecord(records[0], "found"), nil
}

func (t *readTx) UserLikes(ctx context.Context, userID string) ([]model.Like, error) {
	query := `
		MATCH (u:User {id: $id})
		OPTIONAL MATCH (u)-[r:LIKES]->(i:Interest)
		RETURN i.id AS id, i.name AS name, i.category AS category, r.intensity AS intensity
	`

	records, err := t.collect(ctx, query, map[string]interface{}{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewNotFound("user", userID)
	}

	likes := make([]model.Like, 0, len(records))
	for _, record := range records {
		interest := interestFromRecord(record)
		if interest.ID == "" {
			continue
		}
		likes = append(likes, model.Like{
			Interest:  interest,
			Intensity: getFloat64FromRecord(record, "intensity"),
		})
	}
	model.SortLikes(likes)
	return likes, nil
}

func (t *readTx) Candidates(ctx context.Context, userID string, minShared int) ([]model.Candidate, error) {
	if _, err := t.FindUser(ctx, userID); err != nil {
		return nil, err
	}

	query := `
		MATCH (u:User {id: $id})-[:LIKES]->(i:Interest)<-[:LIKES]-(o:User)
		WHERE o.id <> u.id
		  AND o.profile_complete = true
		  AND NOT EXISTS { (u)-[:VIEWED]->(o) }
		WITH o, count(DISTINCT i) AS shared
		WHERE shared >= $minShared
		MATCH (o)-[:LIKES]->(oi:Interest)
		WITH o, collect(DISTINCT {id: oi.id, name: oi.name, category: oi.category}) AS interests
		RETURN ` + userFields("o") + `, interests
		ORDER BY created_at, id
	`

	records, err := t.collect(ctx, query, map[string]interface{}{
		"id":        userID,
		"minShared": int64(minShared),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(records))
	for _, record := range records {
		interests := interestsFromList(record, "interests")
		model.SortInterests(interests)
		candidates = append(candidates, model.Candidate{
			User:      userFromRecord(record),
			Interests: interests,
		})
	}
	return candidates, nil
}

func (t *readTx) CompatiblePairs(ctx context.Context, interestIDs []string) ([][2]string, error) {
	if len(interestIDs) == 0 {
		return nil, nil
	}
	query := `
		MATCH (a:Interest)-[:COMPATIBLE_WITH]-(b:Interest)
		WHERE a.id IN $ids AND b.id IN $ids AND a.id < b.id
		RETURN DISTINCT a.id AS a, b.id AS b
	`

	records, err := t.collect(ctx, query, map[string]interface{}{"ids": interestIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to load compatibilities: %w", err)
	}

	pairs := make([][2]string, 0, len(records))
	for _, record := range records {
		pairs = append(pairs, [2]string{getStringFromRecord(record, "a"), getStringFromRecord(record, "b")})
	}
	return pairs, nil
}

func (t *readTx) MatchedUsers(ctx context.Context, userID string) ([]model.User, error) {
	if _, err := t.FindUser(ctx, userID); err != nil {
		return nil, err
	}

	query := `
		MATCH (:User {id: $id})-[:MATCH]-(o:User)
		WITH DISTINCT o
		RETURN ` + userFields("o") + `
		ORDER BY name, id
	`

	records, err := t.collect(ctx, query, map[string]interface{}{"id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	users := make([]model.User, 0, len(records))
	for _, record := range records {
		users = append(users, userFromRecord(record))
	}
	return users, nil
}

func (t *readTx) ListInterests(ctx context.Context) ([]model.Interest, error) {
	query := `
		MATCH (i:Interest)
		RETURN i.id AS id, i.name AS name, i.category AS category
	`

	records, err := t.collect(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}

	interests := make([]model.Interest, 0, len(records))
	for _, record := range records {
		interests = append(interests, interestFromRecord(record))
	}
	model.SortInterests(interests)
	return interests, nil
}

// ============================================================================
// Writes
// ============================================================================

func (t *writeTx) CreateUser(ctx context.Context, user model.User) error {
	existing, err := t.collect(ctx, `
		MATCH (e:User)
		WHERE e.id = $id OR e.email = $email
		RETURN e.id AS id
		LIMIT 1
	`, map[string]interface{}{"id": user.ID, "email": user.Email})
	if err != nil {
		return fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	if len(existing) > 0 {
		if getStringFromRecord(existing[0], "id") == user.ID {
			return apperrors.NewConflict("user", user.ID)
		}
		return apperrors.NewConflict("email", user.Email)
	}

	query := `
		CREATE (u:User {
			id: $id,
			name: $name,
			email: $email,
			age: $age,
			description: $description,
			profile_complete: false,
			show_photo: false,
			created_at: datetime($createdAt)
		})
	`

	_, err = t.collect(ctx, query, map[string]interface{}{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"age":         int64(user.Age),
		"description": user.Description,
		"createdAt":   user.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (t *writeTx) CreateInterest(ctx context.Context, interest model.Interest) error {
	def, ok := catalog.Lookup(interest.Category)
	if !ok {
		return apperrors.NewValidation("category", fmt.Sprintf("unknown category %q", interest.Category))
	}

	// labels cannot be parameters; def.Label comes from the fixed catalog
	query := fmt.Sprintf(`
		MERGE (i:Interest {id: $id})
		ON CREATE SET i.name = $name, i.category = $category
		SET i:%s
	`, def.Label)

	_, err := t.collect(ctx, query, map[string]interface{}{
		"id":       interest.ID,
		"name":     interest.Name,
		"category": string(interest.Category),
	})
	if err != nil {
		return fmt.Errorf("failed to create interest: %w", err)
	}
	return nil
}

func (t *writeTx) DeleteEdges(ctx context.Context, fromID string, edgeType store.EdgeType) error {
	if edgeType.Symmetric() {
		return apperrors.NewStorage("delete edges", fmt.Errorf("%s edges are never deleted", edgeType))
	}
	fromLabel, _, err := endpointLabels(edgeType)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		MATCH (:%s {id: $from})%s()
		DELETE r
	`, fromLabel, edgePattern("r", edgeType))

	if _, err := t.collect(ctx, query, map[string]interface{}{"from": fromID}); err != nil {
		return fmt.Errorf("failed to delete %s edges: %w", edgeType, err)
	}
	return nil
}

func (t *writeTx) CreateEdge(ctx context.Context, fromID, toID string, edgeType store.EdgeType, attrs store.Attributes) error {
	fromLabel, toLabel, err := endpointLabels(edgeType)
	if err != nil {
		return err
	}
	if edgeType == store.CompatibleWith && fromID == toID {
		return apperrors.NewStorage("create edge", fmt.Errorf("interest %s cannot be compatible with itself", fromID))
	}
	if err := t.checkEndpoints(ctx, fromLabel, fromID, toLabel, toID); err != nil {
		return err
	}

	if edgeType.Symmetric() && toID < fromID {
		fromID, toID = toID, fromID
	}
	props := map[string]interface{}{}
	for k, v := range attrs {
		props[k] = v
	}

	var write string
	switch {
	case !edgeType.Merged():
		write = fmt.Sprintf("CREATE (a)%s(b) SET r += $props", edgePattern("r", edgeType))
	default:
		write = fmt.Sprintf("MERGE (a)%s(b) ON CREATE SET r += $props, r.created_at = datetime()", edgePattern("r", edgeType))
	}
	query := fmt.Sprintf(`
		MATCH (a:%s {id: $from})
		MATCH (b:%s {id: $to})
		%s
	`, fromLabel, toLabel, write)

	_, err = t.collect(ctx, query, map[string]interface{}{
		"from":  fromID,
		"to":    toID,
		"props": props,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s edge: %w", edgeType, err)
	}
	return nil
}

func (t *writeTx) checkEndpoints(ctx context.Context, fromLabel, fromID, toLabel, toID string) error {
	query := fmt.Sprintf(`
		OPTIONAL MATCH (a:%s {id: $from})
		OPTIONAL MATCH (b:%s {id: $to})
		RETURN a IS NOT NULL AS from_found, b IS NOT NULL AS to_found
	`, fromLabel, toLabel)

	records, err := t.collect(ctx, query, map[string]interface{}{"from": fromID, "to": toID})
	if err != nil {
		return fmt.Errorf("failed to check edge endpoints: %w", err)
	}
	if len(records) == 0 || !getBoolFromRecord(records[0], "from_found") {
		return apperrors.NewNotFound(strings.ToLower(fromLabel), fromID)
	}
	if !getBoolFromRecord(records[0], "to_found") {
		return apperrors.NewNotFound(strings.ToLower(toLabel), toID)
	}
	return nil
}

func (t *writeTx) SetUserFlag(ctx context.Context, userID string, flag store.UserFlag) error {
	if flag != store.ProfileComplete && flag != store.ShowPhoto {
		return apperrors.NewStorage("set user flag", fmt.Errorf("unknown flag %q", flag))
	}
	query := fmt.Sprintf(`
		MATCH (u:User {id: $id})
		SET u.%s = true
		RETURN count(u) AS updated
	`, flag)

	records, err := t.collect(ctx, query, map[string]interface{}{"id": userID})
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", flag, err)
	}
	if len(records) == 0 || getIntFromRecord(records[0], "updated") == 0 {
		return apperrors.NewNotFound("user", userID)
	}
	return nil
}

// LockPair writes a throwaway property on both users in id order, which takes
// their node write locks until the transaction ends.
func (t *writeTx) LockPair(ctx context.Context, userA, userB string) error {
	ids := []string{userA, userB}
	if userB < userA {
		ids[0], ids[1] = userB, userA
	}
	if userA == userB {
		ids = ids[:1]
	}

	query := `
		MATCH (u:User)
		WHERE u.id IN $ids
		WITH u ORDER BY u.id
		SET u._lock = true
		REMOVE u._lock
		RETURN count(u) AS locked
	`

	records, err := t.collect(ctx, query, map[string]interface{}{"ids": ids})
	if err != nil {
		return fmt.Errorf("failed to lock user pair: %w", err)
	}
	if len(records) > 0 && getIntFromRecord(records[0], "locked") == len(ids) {
		return nil
	}
	for _, id := range ids {
		if _, err := t.FindUser(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
