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

// seedAlertCount is how many alerts the first list access materializes.
// About half of them start read.
const seedAlertCount = 10

// alertListCap bounds how many alerts a single list call returns.
const alertListCap = 50

// Alerts serves user notifications and their read state.
type Alerts struct {
	seeder *Seeder
	store  domrepo.Store
}

// NewAlerts creates the alerts usecase.
func NewAlerts(seeder *Seeder, store domrepo.Store) *Alerts {
	return &Alerts{seeder: seeder, store: store}
}

// List returns the user's alerts newest-first. First access seeds a batch;
// signal_generated alerts are persisted together with the companion signal
// they were derived from.
func (a *Alerts) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Alert, error) {
	err := a.seeder.ensureUserScope(ctx, userID, domrepo.ColAlerts, func(ctx context.Context, rng *rand.Rand) error {
		assets, err := a.seeder.Assets(ctx)
		if err != nil {
			return err
		}

		batch := synth.Alerts(userID, assets, seedAlertCount, time.Now().UTC(), rng)
		for _, sig := range batch.Signals {
			if _, err := a.store.InsertOne(ctx, domrepo.ColSignals, sig); err != nil {
				return fmt.Errorf("seed companion signal: %w", err)
			}
		}
		for _, alert := range batch.Alerts {
			if _, err := a.store.InsertOne(ctx, domrepo.ColAlerts, alert); err != nil {
				return fmt.Errorf("seed alert: %w", err)
			}
		}
		a.seeder.metrics.RecordSeed(domrepo.ColAlerts, len(batch.Alerts))
		return nil
	})
	if err != nil {
		return nil, err
	}

	filter := map[string]any{"user_id": userID}
	if unreadOnly {
		filter["is_read"] = false
	}

	var alerts []models.Alert
	err = a.store.Find(ctx, domrepo.ColAlerts, filter, &alerts,
		domrepo.WithSort("created_at", true), domrepo.WithLimit(alertListCap))
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// MarkRead flips one of the user's alerts to read. Returns ErrNotFound when
// the alert does not exist or belongs to someone else; the two cases are not
// distinguished.
func (a *Alerts) MarkRead(ctx context.Context, userID, alertID string) error {
	n, err := a.store.UpdateOne(ctx, domrepo.ColAlerts,
		map[string]any{"_id": alertID, "user_id": userID},
		map[string]any{"is_read": true})
	if err != nil {
		return err
	}
	if n == 0 {
		return domrepo.ErrNotFound
	}
	return nil
}
