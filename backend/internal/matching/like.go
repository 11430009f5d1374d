package matching

import (
	"context"
	"time"

	"go.uber.org/zap"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
)

// Like records that fromID liked toID and reports whether it completed a
// mutual match.
//
// LIKED and VIEWED are merged, so repeating a like changes nothing and
// returns the same result. When toID already likes fromID, one symmetric
// MATCH edge is merged and show_photo is set on both users. The reciprocity
// check and the conditional writes run in one transaction while holding the
// pair lock, both in process and in the store.
func (e *Engine) Like(ctx context.Context, fromID, toID string) (result model.LikeResult, err error) {
	defer func(start time.Time) { observe("like", start, err) }(time.Now())

	if fromID == "" {
		return model.LikeResult{}, apperrors.NewValidation("user_id", "required")
	}
	if toID == "" {
		return model.LikeResult{}, apperrors.NewValidation("target_id", "required")
	}
	if fromID == toID {
		return model.LikeResult{}, apperrors.NewValidation("target_id", "cannot like yourself")
	}

	release := e.pairs.lock(fromID, toID)
	defer release()

	err = e.store.Write(ctx, func(tx store.WriteTx) error {
		// the store may retry this function on transient errors
		result = model.LikeResult{}

		if err := tx.LockPair(ctx, fromID, toID); err != nil {
			return err
		}
		from, err := tx.FindUser(ctx, fromID)
		if err != nil {
			return err
		}
		if _, err := tx.FindUser(ctx, toID); err != nil {
			return err
		}
		if !from.ProfileComplete {
			return apperrors.NewPrecondition(fromID, "profile must be complete before liking")
		}

		if err := tx.CreateEdge(ctx, fromID, toID, store.Liked, nil); err != nil {
			return err
		}
		if err := tx.CreateEdge(ctx, fromID, toID, store.Viewed, nil); err != nil {
			return err
		}

		reciprocal, err := tx.EdgeExists(ctx, toID, fromID, store.Liked)
		if err != nil || !reciprocal {
			return err
		}

		if err := tx.CreateEdge(ctx, fromID, toID, store.Match, nil); err != nil {
			return err
		}
		if err := tx.SetUserFlag(ctx, fromID, store.ShowPhoto); err != nil {
			return err
		}
		if err := tx.SetUserFlag(ctx, toID, store.ShowPhoto); err != nil {
			return err
		}
		result.IsMatch = true
		return nil
	})
	if err != nil {
		return model.LikeResult{}, storageErr("like", err)
	}

	if result.IsMatch {
		LikesTotal.WithLabelValues("match").Inc()
		e.logger.Info("Mutual match",
			zap.String("user_id", fromID),
			zap.String("target_id", toID),
		)
	} else {
		LikesTotal.WithLabelValues("pending").Inc()
		e.logger.Debug("Like recorded",
			zap.String("user_id", fromID),
			zap.String("target_id", toID),
		)
	}
	return result, nil
}
