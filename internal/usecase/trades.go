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

// seedTradeCount is how many mock trades the first list access materializes.
const seedTradeCount = 10

// Trades serves the user's executed-order history.
type Trades struct {
	seeder *Seeder
	store  domrepo.Store
}

// NewTrades creates the trades usecase.
func NewTrades(seeder *Seeder, store domrepo.Store) *Trades {
	return &Trades{seeder: seeder, store: store}
}

// List returns the user's trades newest-first, seeding filled mock market
// orders on first access.
func (t *Trades) List(ctx context.Context, userID string, limit int) ([]models.Trade, error) {
	err := t.seeder.ensureUserScope(ctx, userID, domrepo.ColTrades, func(ctx context.Context, rng *rand.Rand) error {
		assets, err := t.seeder.Assets(ctx)
		if err != nil {
			return err
		}
		seeded := synth.Trades(userID, assets, seedTradeCount, time.Now().UTC(), rng)
		for _, trade := range seeded {
			if _, err := t.store.InsertOne(ctx, domrepo.ColTrades, trade); err != nil {
				return fmt.Errorf("seed trade: %w", err)
			}
		}
		t.seeder.metrics.RecordSeed(domrepo.ColTrades, len(seeded))
		return nil
	})
	if err != nil {
		return nil, err
	}

	var trades []models.Trade
	err = t.store.Find(ctx, domrepo.ColTrades, map[string]any{"user_id": userID}, &trades,
		domrepo.WithSort("created_at", true), domrepo.WithLimit(limit))
	if err != nil {
		return nil, err
	}
	return trades, nil
}
