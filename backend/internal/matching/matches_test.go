package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "soulmate/backend/pkg/errors"
)

func TestMatches(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	a := member(t, e, "Ana", "Rock", "Reading")
	zoe := member(t, e, "Zoe", "Rock", "Reading")
	bruno := member(t, e, "Bruno", "Rock", "Reading")
	carla := member(t, e, "Carla", "Rock", "Reading")

	for _, other := range []string{zoe.ID, bruno.ID} {
		_, err := e.Like(ctx, a.ID, other)
		require.NoError(t, err)
		res, err := e.Like(ctx, other, a.ID)
		require.NoError(t, err)
		require.True(t, res.IsMatch)
	}
	// one-sided
	_, err := e.Like(ctx, carla.ID, a.ID)
	require.NoError(t, err)

	got, err := e.Matches(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bruno", got[0].Name)
	assert.Equal(t, "Zoe", got[1].Name)
	assert.True(t, got[0].ShowPhoto)

	// symmetric from the other side
	got, err = e.Matches(ctx, zoe.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	got, err = e.Matches(ctx, carla.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMatches_Errors(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.Matches(ctx, "")
	assert.True(t, apperrors.IsValidation(err))

	_, err = e.Matches(ctx, "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}
