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

// AIModels serves the fixed model catalog, seeded once globally.
type AIModels struct {
	seeder *Seeder
	store  domrepo.Store
}

// NewAIModels creates the model catalog usecase.
func NewAIModels(seeder *Seeder, store domrepo.Store) *AIModels {
	return &AIModels{seeder: seeder, store: store}
}

// List returns the model catalog, seeding the four fixed entries on first access.
func (a *AIModels) List(ctx context.Context) ([]models.AIModel, error) {
	exists := func(ctx context.Context) (bool, error) {
		return a.seeder.hasAny(ctx, domrepo.ColAIModels, nil)
	}
	err := a.seeder.ensure(ctx, "seed:ai_models", exists, func(ctx context.Context, _ *rand.Rand) error {
		catalog := synth.AIModels(time.Now().UTC())
		for _, model := range catalog {
			if _, err := a.store.InsertOne(ctx, domrepo.ColAIModels, model); err != nil {
				return fmt.Errorf("seed ai model: %w", err)
			}
		}
		a.seeder.metrics.RecordSeed(domrepo.ColAIModels, len(catalog))
		return nil
	})
	if err != nil {
		return nil, err
	}

	var catalog []models.AIModel
	if err := a.store.Find(ctx, domrepo.ColAIModels, nil, &catalog, domrepo.WithSort("name", false)); err != nil {
		return nil, err
	}
	return catalog, nil
}
