package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
	"InvestAgent/internal/service/synth"
)

// News serves sentiment-scored mock market news.
type News struct {
	seeder *Seeder
	store  domrepo.Store
}

// NewNews creates the news usecase.
func NewNews(seeder *Seeder, store domrepo.Store) *News {
	return &News{seeder: seeder, store: store}
}

// List returns news newest-first by publish time. With a symbol the scope is
// that asset, otherwise the whole feed; either scope seeds once on first access.
func (n *News) List(ctx context.Context, symbol string, limit int) ([]models.NewsSentiment, error) {
	filter := map[string]any{}

	if symbol != "" {
		asset, err := n.seeder.Asset(ctx, symbol)
		if err != nil {
			return nil, err
		}
		filter["asset_id"] = asset.ID

		exists := func(ctx context.Context) (bool, error) {
			return n.seeder.hasAny(ctx, domrepo.ColNews, filter)
		}
		err = n.seeder.ensure(ctx, "seed:news:"+symbol, exists, func(ctx context.Context, rng *rand.Rand) error {
			return n.seed(ctx, []models.Asset{*asset}, limit, rng)
		})
		if err != nil {
			return nil, err
		}
	} else {
		exists := func(ctx context.Context) (bool, error) {
			return n.seeder.hasAny(ctx, domrepo.ColNews, nil)
		}
		err := n.seeder.ensure(ctx, "seed:news", exists, func(ctx context.Context, rng *rand.Rand) error {
			assets, err := n.seeder.Assets(ctx)
			if err != nil {
				return err
			}
			return n.seed(ctx, assets, limit, rng)
		})
		if err != nil {
			return nil, err
		}
	}

	var items []models.NewsSentiment
	err := n.store.Find(ctx, domrepo.ColNews, filter, &items,
		domrepo.WithSort("published_at", true), domrepo.WithLimit(limit))
	if err != nil {
		return nil, err
	}
	return items, nil
}

// seed materializes as many items as the triggering request asked for.
func (n *News) seed(ctx context.Context, assets []models.Asset, count int, rng *rand.Rand) error {
	items := synth.News(assets, count, time.Now().UTC(), rng)
	for _, item := range items {
		if _, err := n.store.InsertOne(ctx, domrepo.ColNews, item); err != nil {
			return fmt.Errorf("seed news item: %w", err)
		}
	}
	n.seeder.metrics.RecordSeed(domrepo.ColNews, len(items))
	return nil
}
