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

// Settings serves the per-user risk settings singleton.
type Settings struct {
	seeder *Seeder
	store  domrepo.Store
}

// NewSettings creates the settings usecase.
func NewSettings(seeder *Seeder, store domrepo.Store) *Settings {
	return &Settings{seeder: seeder, store: store}
}

// Risk returns the user's risk settings, seeding the fixed defaults once.
func (s *Settings) Risk(ctx context.Context, userID string) (*models.RiskSettings, error) {
	err := s.seeder.ensureUserScope(ctx, userID, domrepo.ColRiskConfigs, func(ctx context.Context, _ *rand.Rand) error {
		if _, err := s.store.InsertOne(ctx, domrepo.ColRiskConfigs, synth.RiskDefaults(userID, time.Now().UTC())); err != nil {
			return fmt.Errorf("seed risk settings: %w", err)
		}
		s.seeder.metrics.RecordSeed(domrepo.ColRiskConfigs, 1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var settings models.RiskSettings
	if err := s.store.FindOne(ctx, domrepo.ColRiskConfigs, map[string]any{"user_id": userID}, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateRisk replaces the threshold fields of the singleton. Identity and
// timestamps are server-authoritative; client-supplied ids are never trusted.
func (s *Settings) UpdateRisk(ctx context.Context, userID string, req models.RiskSettingsRequest) (*models.RiskSettings, error) {
	current, err := s.Risk(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{
		"max_position_size":  req.MaxPositionSize,
		"max_loss_per_trade": req.MaxLossPerTrade,
		"default_stop_loss":  req.DefaultStopLoss,
		"trailing_stop_loss": req.TrailingStop,
		"updated_at":         time.Now().UTC(),
	}
	if req.TrailingStopPct != nil {
		patch["trailing_stop_pct"] = *req.TrailingStopPct
	}

	if _, err := s.store.UpdateOne(ctx, domrepo.ColRiskConfigs, map[string]any{"_id": current.ID}, patch); err != nil {
		return nil, err
	}

	var settings models.RiskSettings
	if err := s.store.FindOne(ctx, domrepo.ColRiskConfigs, map[string]any{"_id": current.ID}, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
