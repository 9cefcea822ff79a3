package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
)

// Configs manages the user's broker API credential records, one per provider.
type Configs struct {
	store domrepo.Store
}

// NewConfigs creates the trading config usecase.
func NewConfigs(store domrepo.Store) *Configs {
	return &Configs{store: store}
}

// List returns the user's stored provider credentials.
func (c *Configs) List(ctx context.Context, userID string) ([]models.TradingAPIConfig, error) {
	var configs []models.TradingAPIConfig
	err := c.store.Find(ctx, domrepo.ColAPIConfigs, map[string]any{"user_id": userID}, &configs,
		domrepo.WithSort("created_at", true))
	if err != nil {
		return nil, err
	}
	return configs, nil
}

// Upsert stores credentials for a provider, replacing any existing record for
// the same (user, provider) pair.
func (c *Configs) Upsert(ctx context.Context, userID string, req models.TradingConfigRequest) (*models.TradingAPIConfig, error) {
	now := time.Now().UTC()
	filter := map[string]any{"user_id": userID, "provider": req.Provider}

	var existing models.TradingAPIConfig
	err := c.store.FindOne(ctx, domrepo.ColAPIConfigs, filter, &existing)
	switch {
	case err == nil:
		patch := map[string]any{
			"api_key":          req.APIKey,
			"api_secret":       req.APISecret,
			"is_paper_trading": req.IsPaperTrading,
			"updated_at":       now,
		}
		if _, err := c.store.UpdateOne(ctx, domrepo.ColAPIConfigs, map[string]any{"_id": existing.ID}, patch); err != nil {
			return nil, err
		}
		if err := c.store.FindOne(ctx, domrepo.ColAPIConfigs, map[string]any{"_id": existing.ID}, &existing); err != nil {
			return nil, err
		}
		return &existing, nil

	case errors.Is(err, domrepo.ErrNotFound):
		cfg := models.TradingAPIConfig{
			ID:             uuid.NewString(),
			UserID:         userID,
			Provider:       req.Provider,
			APIKey:         req.APIKey,
			APISecret:      req.APISecret,
			IsPaperTrading: req.IsPaperTrading,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := c.store.InsertOne(ctx, domrepo.ColAPIConfigs, cfg); err != nil {
			return nil, err
		}
		return &cfg, nil

	default:
		return nil, err
	}
}

// Delete removes one of the user's credential records. Missing and foreign
// records both surface as ErrNotFound.
func (c *Configs) Delete(ctx context.Context, userID, configID string) error {
	n, err := c.store.DeleteOne(ctx, domrepo.ColAPIConfigs, map[string]any{"_id": configID, "user_id": userID})
	if err != nil {
		return err
	}
	if n == 0 {
		return domrepo.ErrNotFound
	}
	return nil
}
