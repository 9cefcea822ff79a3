package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
	"InvestAgent/internal/service/synth"
	"InvestAgent/pkg/cache"
	"InvestAgent/pkg/logger"
)

// lockPollInterval is how often a loser of the seed lock re-checks whether
// the winner has finished.
const lockPollInterval = 25 * time.Millisecond

// Seeder guards every check-then-seed sequence with a per-scope advisory
// lock so concurrent first requests materialize each scope exactly once.
type Seeder struct {
	store   domrepo.Store
	cache   cache.Service
	log     *logger.Logger
	metrics domrepo.Metrics
	lockTTL time.Duration
	newRand func() *rand.Rand
}

// NewSeeder creates the seeding orchestrator. A lockTTL of 0 defaults to 10s.
func NewSeeder(store domrepo.Store, c cache.Service, log *logger.Logger, metrics domrepo.Metrics, lockTTL time.Duration) *Seeder {
	if lockTTL <= 0 {
		lockTTL = 10 * time.Second
	}
	return &Seeder{
		store:   store,
		cache:   c,
		log:     log,
		metrics: metrics,
		lockTTL: lockTTL,
		newRand: func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) },
	}
}

// Rand returns a fresh random source for one seeding pass.
func (s *Seeder) Rand() *rand.Rand {
	return s.newRand()
}

// hasAny reports whether any document in collection matches the filter.
func (s *Seeder) hasAny(ctx context.Context, collection string, filter map[string]any) (bool, error) {
	var probe []map[string]any
	if err := s.store.Find(ctx, collection, filter, &probe, domrepo.WithLimit(1)); err != nil {
		return false, err
	}
	return len(probe) > 0, nil
}

// ensure seeds a scope at most once. The existence check runs before taking
// the lock and again after, so a loser that waited out a concurrent seeding
// never seeds a second time.
func (s *Seeder) ensure(ctx context.Context, lockKey string, exists func(context.Context) (bool, error), seed func(context.Context, *rand.Rand) error) error {
	ok, err := exists(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	deadline := time.Now().Add(s.lockTTL)
	for {
		acquired, err := s.cache.TryLock(ctx, lockKey, s.lockTTL)
		if err != nil {
			// A broken lock backend degrades to the unguarded path rather
			// than failing reads.
			s.log.Warn("seed lock unavailable", logger.String("key", lockKey), logger.Error(err))
			break
		}
		if acquired {
			defer func() {
				if err := s.cache.Unlock(context.WithoutCancel(ctx), lockKey); err != nil {
					s.log.Warn("seed unlock failed", logger.String("key", lockKey), logger.Error(err))
				}
			}()
			break
		}

		// Someone else is seeding this scope. Wait for their write to land.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockPollInterval):
		}
		if ok, err := exists(ctx); err != nil || ok {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("seed lock %s: timed out waiting for concurrent seeding", lockKey)
		}
	}

	if ok, err := exists(ctx); err != nil || ok {
		return err
	}

	start := time.Now()
	if err := seed(ctx, s.newRand()); err != nil {
		return err
	}
	s.metrics.RecordLatency("seed", time.Since(start).Seconds())
	return nil
}

// EnsureCatalog seeds the fixed asset catalog once, globally.
func (s *Seeder) EnsureCatalog(ctx context.Context) error {
	exists := func(ctx context.Context) (bool, error) {
		return s.hasAny(ctx, domrepo.ColAssets, nil)
	}
	return s.ensure(ctx, "seed:assets", exists, func(ctx context.Context, _ *rand.Rand) error {
		now := time.Now().UTC()
		for _, entry := range synth.Catalog {
			if _, err := s.store.InsertOne(ctx, domrepo.ColAssets, entry.NewAsset(now)); err != nil {
				return fmt.Errorf("seed asset %s: %w", entry.Symbol, err)
			}
		}
		s.metrics.RecordSeed(domrepo.ColAssets, len(synth.Catalog))
		s.log.Info("seeded asset catalog", logger.Int("count", len(synth.Catalog)))
		return nil
	})
}

// Assets returns the full seeded catalog.
func (s *Seeder) Assets(ctx context.Context) ([]models.Asset, error) {
	if err := s.EnsureCatalog(ctx); err != nil {
		return nil, err
	}
	var assets []models.Asset
	if err := s.store.Find(ctx, domrepo.ColAssets, nil, &assets, domrepo.WithSort("symbol", false)); err != nil {
		return nil, err
	}
	return assets, nil
}

// Asset returns the stored asset for symbol, creating it on first reference.
// Symbols outside the fixed catalog become ad-hoc equities.
func (s *Seeder) Asset(ctx context.Context, symbol string) (*models.Asset, error) {
	var asset models.Asset
	err := s.store.FindOne(ctx, domrepo.ColAssets, map[string]any{"symbol": symbol}, &asset)
	if err == nil {
		return &asset, nil
	}
	if !errors.Is(err, domrepo.ErrNotFound) {
		return nil, err
	}

	exists := func(ctx context.Context) (bool, error) {
		return s.hasAny(ctx, domrepo.ColAssets, map[string]any{"symbol": symbol})
	}
	err = s.ensure(ctx, "seed:asset:"+symbol, exists, func(ctx context.Context, _ *rand.Rand) error {
		entry, ok := synth.LookupCatalog(symbol)
		if !ok {
			entry = synth.AdHocEntry(symbol)
		}
		if _, err := s.store.InsertOne(ctx, domrepo.ColAssets, entry.NewAsset(time.Now().UTC())); err != nil {
			return fmt.Errorf("seed asset %s: %w", symbol, err)
		}
		s.metrics.RecordSeed(domrepo.ColAssets, 1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.FindOne(ctx, domrepo.ColAssets, map[string]any{"symbol": symbol}, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// assetsByID loads the referenced assets and maps them by id for joins.
func (s *Seeder) assetsByID(ctx context.Context) (map[string]models.Asset, error) {
	var assets []models.Asset
	if err := s.store.Find(ctx, domrepo.ColAssets, nil, &assets); err != nil {
		return nil, err
	}
	byID := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	return byID, nil
}

// ensureUserScope wraps ensure for the common per-user collections where the
// existence check is "any document owned by the user".
func (s *Seeder) ensureUserScope(ctx context.Context, userID, collection string, seed func(context.Context, *rand.Rand) error) error {
	exists := func(ctx context.Context) (bool, error) {
		return s.hasAny(ctx, collection, map[string]any{"user_id": userID})
	}
	return s.ensure(ctx, "seed:"+userID+":"+collection, exists, seed)
}
