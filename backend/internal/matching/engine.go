// Package matching is the compatibility matching core: it records a member's
// questionnaire answers as LIKES edges, ranks other members by weighted
// shared-interest overlap, and runs the like -> mutual match transition.
//
// The engine keeps no state between calls beyond per-pair locks; everything
// lives in the injected store.Store.
package matching

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store"
	apperrors "soulmate/backend/pkg/errors"
	"soulmate/backend/pkg/logger"
)

const (
	DefaultRecommendationLimit = 10
	DefaultMinSharedInterests  = 2
)

// Options tunes ranking. Zero fields take the defaults.
type Options struct {
	Normalization       float64
	RecommendationLimit int
	MinSharedInterests  int
}

func (o Options) withDefaults() Options {
	if o.Normalization <= 0 {
		o.Normalization = DefaultNormalization
	}
	if o.RecommendationLimit <= 0 {
		o.RecommendationLimit = DefaultRecommendationLimit
	}
	if o.MinSharedInterests <= 0 {
		o.MinSharedInterests = DefaultMinSharedInterests
	}
	return o
}

// Engine exposes the matching operations over a graph store.
type Engine struct {
	store  store.Store
	scorer Scorer
	opts   Options
	pairs  *pairLocks
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates an engine. The caller owns the store's lifecycle.
func NewEngine(s store.Store, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		store:  s,
		scorer: Scorer{Normalization: opts.Normalization},
		opts:   opts,
		pairs:  newPairLocks(),
		logger: logger.Named("matching"),
		now:    time.Now,
	}
}

// Register creates a user with a fresh id. Both flags start false.
func (e *Engine) Register(ctx context.Context, reg model.Registration) (user model.User, err error) {
	defer func(start time.Time) { observe("register", start, err) }(time.Now())

	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	if err := reg.Validate(); err != nil {
		return model.User{}, err
	}

	user = model.User{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(reg.Name),
		Email:       reg.Email,
		Age:         reg.Age,
		Description: reg.Description,
		CreatedAt:   e.now().UTC(),
	}
	err = e.store.Write(ctx, func(tx store.WriteTx) error {
		return tx.CreateUser(ctx, user)
	})
	if err != nil {
		return model.User{}, storageErr("register", err)
	}

	e.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Profile returns a user by id.
func (e *Engine) Profile(ctx context.Context, userID string) (user model.User, err error) {
	if userID == "" {
		return model.User{}, apperrors.NewValidation("user_id", "required")
	}
	err = e.store.Read(ctx, func(tx store.ReadTx) error {
		user, err = tx.FindUser(ctx, userID)
		return err
	})
	return user, storageErr("profile", err)
}

// Preferences returns the user's current answers as recorded in LIKES edges.
func (e *Engine) Preferences(ctx context.Context, userID string) (model.Answers, error) {
	if userID == "" {
		return nil, apperrors.NewValidation("user_id", "required")
	}
	var likes []model.Like
	err := e.store.Read(ctx, func(tx store.ReadTx) error {
		var err error
		likes, err = tx.UserLikes(ctx, userID)
		return err
	})
	if err != nil {
		return nil, storageErr("preferences", err)
	}
	return model.GroupLikes(likes), nil
}

// QuestionnaireOptions returns the seeded interest names per category.
func (e *Engine) QuestionnaireOptions(ctx context.Context) (map[catalog.Category][]string, error) {
	var interests []model.Interest
	err := e.store.Read(ctx, func(tx store.ReadTx) error {
		var err error
		interests, err = tx.ListInterests(ctx)
		return err
	})
	if err != nil {
		return nil, storageErr("questionnaire options", err)
	}

	out := make(map[catalog.Category][]string, len(catalog.All()))
	for _, i := range interests {
		out[i.Category] = append(out[i.Category], i.Name)
	}
	return out, nil
}

// Dashboard bundles what a member sees after login.
type Dashboard struct {
	User            model.User             `json:"user"`
	Recommendations []model.Recommendation `json:"recommendations"`
	Matches         []model.MatchProfile   `json:"matches"`
}

// Dashboard loads the profile, recommendations and matches concurrently.
// Recommendations are only computed once the profile is complete.
func (e *Engine) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := e.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{User: user, Recommendations: []model.Recommendation{}}
	g, gctx := errgroup.WithContext(ctx)
	if user.ProfileComplete {
		g.Go(func() error {
			recs, err := e.Recommend(gctx, userID)
			d.Recommendations = recs
			return err
		})
	}
	g.Go(func() error {
		matches, err := e.Matches(gctx, userID)
		d.Matches = matches
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

// storageErr leaves typed errors alone and wraps anything else as a
// StorageError.
func storageErr(op string, err error) error {
	if err == nil || apperrors.TypeOf(err) != "" {
		return err
	}
	return apperrors.NewStorage(op, err)
}
