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

// seedSignalCount is how many signals the first list access materializes.
const seedSignalCount = 10

// Signals serves trading signals: lazily seeded lists and the on-demand
// generator behind the AI endpoint.
type Signals struct {
	seeder    *Seeder
	store     domrepo.Store
	publisher domrepo.Publisher
}

// NewSignals creates the signals usecase.
func NewSignals(seeder *Seeder, store domrepo.Store, publisher domrepo.Publisher) *Signals {
	return &Signals{seeder: seeder, store: store, publisher: publisher}
}

// List returns the user's signals newest-first, seeding a batch on first access.
func (s *Signals) List(ctx context.Context, userID string, activeOnly bool, limit int) ([]models.Signal, error) {
	err := s.seeder.ensureUserScope(ctx, userID, domrepo.ColSignals, func(ctx context.Context, rng *rand.Rand) error {
		assets, err := s.seeder.Assets(ctx)
		if err != nil {
			return err
		}
		seeded := synth.Signals(userID, assets, seedSignalCount, time.Now().UTC(), rng)
		for _, sig := range seeded {
			if _, err := s.store.InsertOne(ctx, domrepo.ColSignals, sig); err != nil {
				return fmt.Errorf("seed signal: %w", err)
			}
		}
		s.seeder.metrics.RecordSeed(domrepo.ColSignals, len(seeded))
		return nil
	})
	if err != nil {
		return nil, err
	}

	filter := map[string]any{"user_id": userID}
	if activeOnly {
		filter["is_active"] = true
	}

	var signals []models.Signal
	err = s.store.Find(ctx, domrepo.ColSignals, filter, &signals,
		domrepo.WithSort("created_at", true), domrepo.WithLimit(limit))
	if err != nil {
		return nil, err
	}
	return signals, nil
}

// Generate produces one fresh buy-weighted signal per requested symbol plus a
// correlated alert, persists both and fans out events. Unlike the lazy lists
// it always generates, regardless of what is already stored.
func (s *Signals) Generate(ctx context.Context, userID string, symbols []string) ([]models.Signal, error) {
	now := time.Now().UTC()
	rng := s.seeder.Rand()

	signals := make([]models.Signal, 0, len(symbols))
	for _, symbol := range symbols {
		asset, err := s.seeder.Asset(ctx, symbol)
		if err != nil {
			return nil, err
		}

		sig := synth.Signal(userID, *asset, true, now, rng)
		if _, err := s.store.InsertOne(ctx, domrepo.ColSignals, sig); err != nil {
			return nil, fmt.Errorf("insert signal: %w", err)
		}

		alert := synth.SignalAlert(sig, symbol, now)
		if _, err := s.store.InsertOne(ctx, domrepo.ColAlerts, alert); err != nil {
			return nil, fmt.Errorf("insert alert: %w", err)
		}

		s.publish(ctx, "signal.generated", symbol, sig)
		s.publish(ctx, "alert.created", symbol, alert)
		signals = append(signals, sig)
	}

	s.seeder.log.Info("generated signals",
		logger.String("user_id", userID), logger.Int("count", len(signals)))
	return signals, nil
}

// publish fans an event out best-effort; a broker outage never fails the request.
func (s *Signals) publish(ctx context.Context, eventType, key string, payload any) {
	err := s.publisher.Publish(ctx, domrepo.Event{Type: eventType, Key: key, Payload: payload})
	if err != nil {
		s.seeder.log.Warn("event publish failed",
			logger.String("type", eventType), logger.Error(err))
	}
}
