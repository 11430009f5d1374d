package matching

import (
	"context"
	"sort"
	"time"

	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
)

// Matches lists userID's confirmed mutual matches sorted by name, then id.
func (e *Engine) Matches(ctx context.Context, userID string) (profiles []model.MatchProfile, err error) {
	defer func(start time.Time) { observe("matches", start, err) }(time.Now())

	if userID == "" {
		return nil, apperrors.NewValidation("user_id", "required")
	}

	var users []model.User
	err = e.store.Read(ctx, func(tx store.ReadTx) error {
		var err error
		users, err = tx.MatchedUsers(ctx, userID)
		return err
	})
	if err != nil {
		return nil, storageErr("matches", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})

	profiles = make([]model.MatchProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return profiles, nil
}
