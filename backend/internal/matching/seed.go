package matching

import (
	"context"

	"go.uber.org/zap"
	"soulmate/backend/internal/catalog"
	"soulmate/backend/internal/model"
	"soulmate/backend/internal/store"
	"soulmate/backend/pkg/logger"
)

// SeedCatalog writes the questionnaire interests and their compatibility
// links. Existing interests are kept and links are merged, so it is safe to
// run repeatedly.
func SeedCatalog(ctx context.Context, s store.Store) error {
	err := s.Write(ctx, func(tx store.WriteTx) error {
		for _, def := range catalog.All() {
			for _, name := range catalog.Options[def.Category] {
				interest := model.Interest{
					ID:       catalog.InterestID(def.Category, name),
					Name:     name,
					Category: def.Category,
				}
				if err := tx.CreateInterest(ctx, interest); err != nil {
					return err
				}
			}
		}
		for _, link := range catalog.Compatibilities {
			if err := tx.CreateEdge(ctx, link.A.ID(), link.B.ID(), store.CompatibleWith, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageErr("seed catalog", err)
	}

	logger.Named("matching").Info("Catalog seeded",
		zap.Int("categories", len(catalog.All())),
		zap.Int("compatibilities", len(catalog.Compatibilities)),
	)
	return nil
}
