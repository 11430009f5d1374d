package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
)

// ============================================================================
// Helper Functions
// ============================================================================

func getStringFromRecord(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getIntFromRecord(record *neo4j.Record, key string) int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return int(i)
	}
	if i, ok := val.(int); ok {
		return i
	}
	return 0
}

func getFloat64FromRecord(record *neo4j.Record, key string) float64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0.0
	}
	if f, ok := val.(float64); ok {
		return f
	}
	if i, ok := val.(int64); ok {
		return float64(i)
	}
	return 0.0
}

func getBoolFromRecord(record *neo4j.Record, key string) bool {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return false
	}
	b, _ := val.(bool)
	return b
}

// Neo4j datetime values come back as time.Time
func getTimeFromRecord(record *neo4j.Record, key string) time.Time {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return time.Time{}
	}
	if t, ok := val.(time.Time); ok {
		return t.UTC()
	}
	return time.Time{}
}

func getStringFromMap(m map[string]interface{}, key, defaultValue string) string {
	val, ok := m[key]
	if !ok || val == nil {
		return defaultValue
	}
	if str, ok := val.(string); ok {
		return str
	}
	return defaultValue
}

// userReturn is the projection every user query returns.
const userReturn = `
	u.id AS id, u.name AS name, u.email AS email, u.age AS age,
	u.description AS description,
	coalesce(u.profile_complete, false) AS profile_complete,
	coalesce(u.show_photo, false) AS show_photo,
	u.created_at AS created_at`

func userFromRecord(record *neo4j.Record) model.User {
	return model.User{
		ID:              getStringFromRecord(record, "id"),
		Name:            getStringFromRecord(record, "name"),
		Email:           getStringFromRecord(record, "email"),
		Age:             getIntFromRecord(record, "age"),
		Description:     getStringFromRecord(record, "description"),
		ProfileComplete: getBoolFromRecord(record, "profile_complete"),
		ShowPhoto:       getBoolFromRecord(record, "show_photo"),
		CreatedAt:       getTimeFromRecord(record, "created_at"),
	}
}

func interestFromRecord(record *neo4j.Record) model.Interest {
	return model.Interest{
		ID:       getStringFromRecord(record, "id"),
		Name:     getStringFromRecord(record, "name"),
		Category: catalog.Category(getStringFromRecord(record, "category")),
	}
}

// interestsFromList decodes a collected list of {id, name, category} maps.
func interestsFromList(record *neo4j.Record, key string) []model.Interest {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}
	list, ok := val.([]interface{})
	if !ok {
		return nil
	}
	interests := make([]model.Interest, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		id := getStringFromMap(m, "id", "")
		if id == "" {
			continue
		}
		interests = append(interests, model.Interest{
			ID:       id,
			Name:     getStringFromMap(m, "name", ""),
			Category: catalog.Category(getStringFromMap(m, "category", "")),
		})
	}
	return interests
}
