package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	err := s.Write(context.Background(), func(tx store.WriteTx) error {
		ctx := context.Background()
		for _, name := range []string{"Rock", "Jazz", "Metal"} {
			if err := tx.CreateInterest(ctx, model.Interest{Name: name, Category: catalog.Music}); err != nil {
				return err
			}
		}
		for _, id := range []string{"a", "b"} {
			if err := tx.CreateUser(ctx, model.User{ID: id, Name: id, Email: id + "@example.com"}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	return s
}

func TestWrite_RollsBackOnError(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	rock := catalog.InterestID(catalog.Music, "Rock")
	jazz := catalog.InterestID(catalog.Music, "Jazz")

	require.NoError(t, s.Write(ctx, func(tx store.WriteTx) error {
		return tx.CreateEdge(ctx, "a", rock, store.Likes, store.Attributes{"intensity": 1.0})
	}))

	boom := errors.New("boom")
	err := s.Write(ctx, func(tx store.WriteTx) error {
		if err := tx.DeleteEdges(ctx, "a", store.Likes); err != nil {
			return err
		}
		if err := tx.CreateEdge(ctx, "a", jazz, store.Likes, store.Attributes{"intensity": 1.0}); err != nil {
			return err
		}
		if err := tx.SetUserFlag(ctx, "a", store.ProfileComplete); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.Read(ctx, func(tx store.ReadTx) error {
		likes, err := tx.UserLikes(ctx, "a")
		require.NoError(t, err)
		require.Len(t, likes, 1)
		assert.Equal(t, "Rock", likes[0].Interest.Name)

		u, err := tx.FindUser(ctx, "a")
		require.NoError(t, err)
		assert.False(t, u.ProfileComplete)
		return nil
	}))
}

func TestCreateEdge_MergeSemantics(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Write(ctx, func(tx store.WriteTx) error {
			if err := tx.CreateEdge(ctx, "a", "b", store.Liked, nil); err != nil {
				return err
			}
			return tx.CreateEdge(ctx, "b", "a", store.Match, nil)
		}))
	}
	assert.Equal(t, 1, s.CountEdges(store.Liked))
	assert.Equal(t, 1, s.CountEdges(store.Match))

	require.NoError(t, s.Read(ctx, func(tx store.ReadTx) error {
		ok, _ := tx.EdgeExists(ctx, "a", "b", store.Match)
		assert.True(t, ok, "match is symmetric")
		ok, _ = tx.EdgeExists(ctx, "b", "a", store.Liked)
		assert.False(t, ok, "liked is directed")
		return nil
	}))
}

func TestCreateEdge_LikesAlwaysCreates(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	rock := catalog.InterestID(catalog.Music, "Rock")

	require.NoError(t, s.Write(ctx, func(tx store.WriteTx) error {
		if err := tx.CreateEdge(ctx, "a", rock, store.Likes, nil); err != nil {
			return err
		}
		return tx.CreateEdge(ctx, "a", rock, store.Likes, nil)
	}))
	assert.Equal(t, 2, s.CountEdges(store.Likes))
}

func TestCreateEdge_RejectsSelfCompatibility(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	rock := catalog.InterestID(catalog.Music, "Rock")

	err := s.Write(ctx, func(tx store.WriteTx) error {
		return tx.CreateEdge(ctx, rock, rock, store.CompatibleWith, nil)
	})
	assert.True(t, apperrors.IsStorage(err))
}

func TestCompatiblePairs(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	rock := catalog.InterestID(catalog.Music, "Rock")
	metal := catalog.InterestID(catalog.Music, "Metal")
	jazz := catalog.InterestID(catalog.Music, "Jazz")

	require.NoError(t, s.Write(ctx, func(tx store.WriteTx) error {
		return tx.CreateEdge(ctx, metal, rock, store.CompatibleWith, nil)
	}))

	require.NoError(t, s.Read(ctx, func(tx store.ReadTx) error {
		pairs, err := tx.CompatiblePairs(ctx, []string{rock, metal, jazz})
		require.NoError(t, err)
		require.Len(t, pairs, 1)
		assert.ElementsMatch(t, []string{rock, metal}, pairs[0][:])

		pairs, err = tx.CompatiblePairs(ctx, []string{rock, jazz})
		require.NoError(t, err)
		assert.Empty(t, pairs)
		return nil
	}))
}

func TestNotFound(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.Read(ctx, func(tx store.ReadTx) error {
		_, err := tx.FindUser(ctx, "ghost")
		assert.True(t, apperrors.IsNotFound(err))
		_, err = tx.FindInterest(ctx, catalog.Music, "Polka")
		assert.True(t, apperrors.IsNotFound(err))
		return nil
	}))
}

func TestReadTx_RejectsWrites(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	err := s.Read(ctx, func(rtx store.ReadTx) error {
		wtx, ok := rtx.(store.WriteTx)
		require.True(t, ok)
		return wtx.SetUserFlag(ctx, "a", store.ShowPhoto)
	})
	assert.True(t, apperrors.IsStorage(err))
}

func TestClosed(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	require.NoError(t, s.Close(ctx))

	err := s.Read(ctx, func(tx store.ReadTx) error { return nil })
	assert.True(t, apperrors.IsStorage(err))
}

func TestCreateUser_Conflicts(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	err := s.Write(ctx, func(tx store.WriteTx) error {
		return tx.CreateUser(ctx, model.User{ID: "a", Name: "again", Email: "fresh@example.com"})
	})
	assert.True(t, apperrors.IsConflict(err))

	err = s.Write(ctx, func(tx store.WriteTx) error {
		return tx.CreateUser(ctx, model.User{ID: "z", Name: "z", Email: "a@example.com"})
	})
	assert.True(t, apperrors.IsConflict(err))
}
