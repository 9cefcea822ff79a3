package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
	"InvestAgent/internal/service/synth"
	"InvestAgent/pkg/logger"
)

// Portfolio serves portfolio summary, open positions and valuation history,
// materializing the fixed demo data on first access.
type Portfolio struct {
	seeder *Seeder
	store  domrepo.Store
}

// NewPortfolio creates the portfolio usecase.
func NewPortfolio(seeder *Seeder, store domrepo.Store) *Portfolio {
	return &Portfolio{seeder: seeder, store: store}
}

// Summary returns the latest portfolio snapshot, seeding the fixed first
// snapshot when the user has none.
func (p *Portfolio) Summary(ctx context.Context, userID string) (*models.PortfolioSnapshot, error) {
	err := p.seeder.ensureUserScope(ctx, userID, domrepo.ColSnapshots, func(ctx context.Context, _ *rand.Rand) error {
		if _, err := p.store.InsertOne(ctx, domrepo.ColSnapshots, synth.Summary(userID, time.Now().UTC())); err != nil {
			return fmt.Errorf("seed snapshot: %w", err)
		}
		p.seeder.metrics.RecordSeed(domrepo.ColSnapshots, 1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var snapshots []models.PortfolioSnapshot
	err = p.store.Find(ctx, domrepo.ColSnapshots, map[string]any{"user_id": userID}, &snapshots,
		domrepo.WithSort("timestamp", true), domrepo.WithLimit(1))
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, domrepo.ErrNotFound
	}
	return &snapshots[0], nil
}

// Positions returns the user's open positions with their assets joined in,
// seeding the fixed three-position demo portfolio on first access.
func (p *Portfolio) Positions(ctx context.Context, userID string) ([]models.Position, error) {
	err := p.seeder.ensureUserScope(ctx, userID, domrepo.ColPositions, func(ctx context.Context, _ *rand.Rand) error {
		assets := make(map[string]models.Asset, 3)
		for _, symbol := range []string{"AAPL", "MSFT", "BTC"} {
			a, err := p.seeder.Asset(ctx, symbol)
			if err != nil {
				return err
			}
			assets[symbol] = *a
		}

		positions := synth.Positions(userID, assets, time.Now().UTC())
		for _, pos := range positions {
			if _, err := p.store.InsertOne(ctx, domrepo.ColPositions, pos); err != nil {
				return fmt.Errorf("seed position: %w", err)
			}
		}
		p.seeder.metrics.RecordSeed(domrepo.ColPositions, len(positions))
		p.seeder.log.Info("seeded positions", logger.String("user_id", userID), logger.Int("count", len(positions)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	var positions []models.Position
	err = p.store.Find(ctx, domrepo.ColPositions, map[string]any{"user_id": userID}, &positions,
		domrepo.WithSort("created_at", true))
	if err != nil {
		return nil, err
	}

	byID, err := p.seeder.assetsByID(ctx)
	if err != nil {
		return nil, err
	}
	for i := range positions {
		if asset, ok := byID[positions[i].AssetID]; ok {
			positions[i].Asset = &asset
		}
	}
	return positions, nil
}

// History returns the valuation history oldest-first, synthesizing a 30-day
// drifting series when the user has at most the summary singleton stored.
func (p *Portfolio) History(ctx context.Context, userID string) ([]models.PortfolioSnapshot, error) {
	exists := func(ctx context.Context) (bool, error) {
		var probe []models.PortfolioSnapshot
		err := p.store.Find(ctx, domrepo.ColSnapshots, map[string]any{"user_id": userID}, &probe, domrepo.WithLimit(2))
		if err != nil {
			return false, err
		}
		return len(probe) >= 2, nil
	}
	err := p.seeder.ensure(ctx, "seed:"+userID+":history", exists, func(ctx context.Context, rng *rand.Rand) error {
		snapshots := synth.History(userID, time.Now().UTC(), rng)
		for _, snap := range snapshots {
			if _, err := p.store.InsertOne(ctx, domrepo.ColSnapshots, snap); err != nil {
				return fmt.Errorf("seed history snapshot: %w", err)
			}
		}
		p.seeder.metrics.RecordSeed(domrepo.ColSnapshots, len(snapshots))
		return nil
	})
	if err != nil {
		return nil, err
	}

	var snapshots []models.PortfolioSnapshot
	err = p.store.Find(ctx, domrepo.ColSnapshots, map[string]any{"user_id": userID}, &snapshots,
		domrepo.WithSort("timestamp", false))
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
