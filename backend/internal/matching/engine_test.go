package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store/memory"
	apperrors "soulmate/backend/pkg/errors"
)

func TestRegister(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	u, err := e.Register(ctx, model.Registration{
		Name:  "  Ana  ",
		Email: "Ana@UVG.edu.gt",
		Age:   22,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, "ana@uvg.edu.gt", u.Email)
	assert.False(t, u.ProfileComplete)
	assert.False(t, u.ShowPhoto)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := e.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = e.Register(ctx, model.Registration{Name: "Other", Email: "ana@uvg.edu.gt", Age: 30})
	assert.True(t, apperrors.IsConflict(err), "duplicate email, got %v", err)

	_, err = e.Register(ctx, model.Registration{Name: "Kid", Email: "kid@uvg.edu.gt", Age: 15})
	assert.True(t, apperrors.IsValidation(err))
}

func TestProfile_Errors(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := e.Profile(context.Background(), "")
	assert.True(t, apperrors.IsValidation(err))
	_, err = e.Profile(context.Background(), "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPreferences_EmptyBeforeQuestionnaire(t *testing.T) {
	e, _ := newTestEngine(t)
	u := register(t, e, "Ana")

	prefs, err := e.Preferences(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, prefs)
}

func TestQuestionnaireOptions(t *testing.T) {
	e, _ := newTestEngine(t)

	opts, err := e.QuestionnaireOptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts, len(catalog.All()))
	for c, names := range catalog.Options {
		assert.ElementsMatch(t, names, opts[c], c)
	}
}

func TestSeedCatalog_Idempotent(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	require.NoError(t, SeedCatalog(ctx, s))
	require.NoError(t, SeedCatalog(ctx, s))

	e := NewEngine(s, Options{})
	opts, err := e.QuestionnaireOptions(ctx)
	require.NoError(t, err)
	assert.Len(t, opts[catalog.Music], len(catalog.Options[catalog.Music]))
}

func TestDashboard(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	a := member(t, e, "A", "Rock", "Reading")
	b := member(t, e, "B", "Rock", "Reading")
	c := member(t, e, "C", "Rock", "Reading")

	_, err := e.Like(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = e.Like(ctx, b.ID, a.ID)
	require.NoError(t, err)

	d, err := e.Dashboard(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, d.User.ID)
	assert.True(t, d.User.ShowPhoto)
	assert.Equal(t, []string{c.ID}, recommendedIDs(d.Recommendations))
	require.Len(t, d.Matches, 1)
	assert.Equal(t, b.ID, d.Matches[0].ID)
}

func TestDashboard_IncompleteProfile(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	member(t, e, "B", "Rock", "Reading")
	u := register(t, e, "A")

	d, err := e.Dashboard(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, d.Recommendations)
	assert.Empty(t, d.Matches)

	_, err = e.Dashboard(ctx, "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEngine_ClosedStore(t *testing.T) {
	e, s := newTestEngine(t)
	ctx := context.Background()
	u := member(t, e, "A", "Rock", "Reading")
	require.NoError(t, s.Close(ctx))

	_, err := e.Recommend(ctx, u.ID)
	assert.True(t, apperrors.IsStorage(err))
	assert.True(t, apperrors.IsRetryable(err))
}
