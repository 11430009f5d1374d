package matching

import (
	"context"
	"time"

	"go.uber.org/zap"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
)

// LikeIntensity is the weight stored on every recorded LIKES edge.
const LikeIntensity = 1.0

// Record replaces the user's LIKES edges with the given answers and marks the
// profile complete, all in one transaction. Answers are checked against the
// category schema before the store is touched; an unknown interest name fails
// the whole transaction and leaves the previous set in place.
func (e *Engine) Record(ctx context.Context, userID string, answers model.Answers) (err error) {
	defer func(start time.Time) { observe("record", start, err) }(time.Now())

	if userID == "" {
		return apperrors.NewValidation("user_id", "required")
	}
	if err := answers.Validate(); err != nil {
		return err
	}
	refs := answers.Refs()

	err = e.store.Write(ctx, func(tx store.WriteTx) error {
		if _, err := tx.FindUser(ctx, userID); err != nil {
			return err
		}
		if err := tx.DeleteEdges(ctx, userID, store.Likes); err != nil {
			return err
		}
		for _, ref := range refs {
			interest, err := tx.FindInterest(ctx, ref.Category, ref.Name)
			if err != nil {
				return err
			}
			attrs := store.Attributes{"intensity": LikeIntensity, "category": string(ref.Category)}
			if err := tx.CreateEdge(ctx, userID, interest.ID, store.Likes, attrs); err != nil {
				return err
			}
		}
		return tx.SetUserFlag(ctx, userID, store.ProfileComplete)
	})
	if err != nil {
		return storageErr("record", err)
	}

	e.logger.Info("Preferences recorded",
		zap.String("user_id", userID),
		zap.Int("interests", len(refs)),
	)
	return nil
}
