package matching

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
)

// Recommend ranks other members for userID. Candidates must have a complete
// profile, must not have been viewed (liked) by userID, and must share at
// least MinSharedInterests identical interests. Results are ordered by score,
// then shared count, then traversal order, and truncated to the limit.
// Recommending never writes.
func (e *Engine) Recommend(ctx context.Context, userID string) (recs []model.Recommendation, err error) {
	defer func(start time.Time) { observe("recommend", start, err) }(time.Now())

	if userID == "" {
		return nil, apperrors.NewValidation("user_id", "required")
	}

	var (
		mine       []model.Interest
		candidates []model.Candidate
		compat     CompatibilitySet
	)
	err = e.store.Read(ctx, func(tx store.ReadTx) error {
		likes, err := tx.UserLikes(ctx, userID)
		if err != nil {
			return err
		}
		mine = make([]model.Interest, 0, len(likes))
		for _, l := range likes {
			mine = append(mine, l.Interest)
		}

		candidates, err = tx.Candidates(ctx, userID, e.opts.MinSharedInterests)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			compat = CompatibilitySet{}
			return nil
		}

		pairs, err := tx.CompatiblePairs(ctx, involvedInterests(mine, candidates))
		if err != nil {
			return err
		}
		compat = NewCompatibilitySet(pairs)
		return nil
	})
	if err != nil {
		return nil, storageErr("recommend", err)
	}

	recs = e.rank(mine, candidates, compat)
	RecommendationResultSize.Observe(float64(len(recs)))
	e.logger.Debug("Recommendations computed",
		zap.String("user_id", userID),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(recs)),
	)
	return recs, nil
}

// rank scores candidates and applies the threshold, ordering and limit.
// The threshold is re-checked here so a store that returns extra candidates
// cannot leak users below it.
func (e *Engine) rank(mine []model.Interest, candidates []model.Candidate, compat CompatibilitySet) []model.Recommendation {
	mineIDs := interestIDs(mine)
	theirs := make(map[string]struct{})

	recs := make([]model.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		clear(theirs)
		for _, i := range c.Interests {
			theirs[i.ID] = struct{}{}
		}

		var common []string
		seenName := make(map[string]struct{})
		for _, i := range mine {
			if _, ok := theirs[i.ID]; !ok {
				continue
			}
			if _, dup := seenName[i.Name]; !dup {
				seenName[i.Name] = struct{}{}
				common = append(common, i.Name)
			}
		}
		shared := countShared(mine, theirs)
		if shared < e.opts.MinSharedInterests {
			continue
		}

		score := e.scorer.Score(mineIDs, interestIDs(c.Interests), compat)
		recs = append(recs, model.Recommendation{
			User:            c.User.Public(),
			SharedInterests: shared,
			CommonInterests: common,
			Score:           score,
			MatchPercentage: e.scorer.Percentage(score),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].SharedInterests > recs[j].SharedInterests
	})

	if len(recs) > e.opts.RecommendationLimit {
		recs = recs[:e.opts.RecommendationLimit]
	}
	return recs
}

func countShared(mine []model.Interest, theirs map[string]struct{}) int {
	n := 0
	for _, i := range mine {
		if _, ok := theirs[i.ID]; ok {
			n++
		}
	}
	return n
}

func interestIDs(interests []model.Interest) []string {
	ids := make([]string, len(interests))
	for i, in := range interests {
		ids[i] = in.ID
	}
	return ids
}

// involvedInterests returns the distinct interest ids held by the subject or
// any candidate.
func involvedInterests(mine []model.Interest, candidates []model.Candidate) []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, i := range mine {
		add(i.ID)
	}
	for _, c := range candidates {
		for _, i := range c.Interests {
			add(i.ID)
		}
	}
	return ids
}
