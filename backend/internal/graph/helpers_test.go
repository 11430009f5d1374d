package graph

import (
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
)

func TestUserFromRecord(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	record := &neo4j.Record{
		Keys:   []string{"id", "name", "email", "age", "description", "profile_complete", "show_photo", "created_at"},
		Values: []any{"u1", "Ana", "ana@uvg.edu.gt", int64(22), nil, true, false, created},
	}

	u := userFromRecord(record)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, 22, u.Age)
	assert.Equal(t, "", u.Description)
	assert.True(t, u.ProfileComplete)
	assert.False(t, u.ShowPhoto)
	assert.Equal(t, created, u.CreatedAt)
}

func TestInterestsFromList(t *testing.T) {
	record := &neo4j.Record{
		Keys: []string{"interests"},
		Values: []any{[]any{
			map[string]any{"id": "music:Rock", "name": "Rock", "category": "music"},
			map[string]any{"id": nil, "name": nil, "category": nil}, // empty optional match
			"garbage",
		}},
	}

	got := interestsFromList(record, "interests")
	require.Len(t, got, 1)
	assert.Equal(t, "Rock", got[0].Name)
	assert.Equal(t, catalog.Music, got[0].Category)
}

func TestEdgePattern(t *testing.T) {
	assert.Equal(t, "-[r:LIKED]->", edgePattern("r", store.Liked))
	assert.Equal(t, "-[r:MATCH]-", edgePattern("r", store.Match))
	assert.Equal(t, "-[r:COMPATIBLE_WITH]-", edgePattern("r", store.CompatibleWith))

	from, to, err := endpointLabels(store.Likes)
	require.NoError(t, err)
	assert.Equal(t, "User", from)
	assert.Equal(t, "Interest", to)

	_, _, err = endpointLabels("FOLLOWS")
	assert.True(t, apperrors.IsStorage(err))
}

func TestUserFields(t *testing.T) {
	fields := userFields("o")
	assert.Contains(t, fields, "o.id AS id")
	assert.Contains(t, fields, "coalesce(o.show_photo, false)")
	assert.NotContains(t, fields, "u.")
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify("read", nil))

	nf := apperrors.NewNotFound("user", "u1")
	assert.Same(t, nf, classify("read", nf))

	err := classify("write", gobreaker.ErrOpenState)
	assert.True(t, apperrors.IsStorage(err))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	err = classify("write", &neo4j.Neo4jError{Code: constraintViolation, Msg: "already exists"})
	assert.True(t, apperrors.IsConflict(err))

	err = classify("read", errors.New("connection reset"))
	assert.True(t, apperrors.IsStorage(err))
}

func TestBreaker_DomainErrorsDoNotTrip(t *testing.T) {
	cb := newBreaker(2, time.Minute, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, apperrors.NewNotFound("user", "ghost")
		})
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("connection refused")
		})
	}
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() (interface{}, error) { return nil, nil })
	assert.True(t, apperrors.IsStorage(classify("read", err)))
}
