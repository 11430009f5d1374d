package matching

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store/memory"
)

func newTestEngine(t *testing.T) (*Engine, *memory.Store) {
	t.Helper()
	s := memory.New()
	require.NoError(t, SeedCatalog(context.Background(), s))
	return NewEngine(s, Options{}), s
}

func register(t *testing.T, e *Engine, name string) model.User {
	t.Helper()
	u, err := e.Register(context.Background(), model.Registration{
		Name:  name,
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@uvg.edu.gt",
		Age:   21,
	})
	require.NoError(t, err)
	return u
}

// interestCategory maps bare names to their seeded category for compact fixtures.
var interestCategory = map[string]catalog.Category{}

func init() {
	for c, names := range catalog.Options {
		for _, n := range names {
			interestCategory[n] = c
		}
	}
}

func answersFor(names ...string) model.Answers {
	a := model.Answers{}
	for _, n := range names {
		c, ok := interestCategory[n]
		if !ok {
			c = catalog.Music
		}
		a[c] = append(a[c], n)
	}
	return a
}

// member registers a user and records the given interests.
func member(t *testing.T, e *Engine, name string, interests ...string) model.User {
	t.Helper()
	u := register(t, e, name)
	require.NoError(t, e.Record(context.Background(), u.ID, answersFor(interests...)))
	u.ProfileComplete = true
	return u
}

func recommendedIDs(recs []model.Recommendation) []string {
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.User.ID
	}
	return ids
}
