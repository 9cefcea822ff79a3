package usecase

import (
	"context"
	"fmt"
	"time"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
	"InvestAgent/internal/service/synth"
	"InvestAgent/pkg/cache"
	"InvestAgent/pkg/logger"
	"InvestAgent/pkg/util"
)

// streamTick is the wall-clock pace of the live bar stream. Bar timestamps
// still advance by the requested interval; only delivery is compressed.
const streamTick = time.Second

// Market serves the asset catalog, synthesized OHLCV series and the live
// bar stream. Series responses are memoized briefly in the cache.
type Market struct {
	seeder  *Seeder
	store   domrepo.Store
	cache   cache.Service
	dataTTL time.Duration
}

// NewMarket creates the market usecase. A dataTTL of 0 disables memoization.
func NewMarket(seeder *Seeder, store domrepo.Store, c cache.Service, dataTTL time.Duration) *Market {
	return &Market{seeder: seeder, store: store, cache: c, dataTTL: dataTTL}
}

// Assets returns the seeded catalog, optionally filtered by asset class.
func (m *Market) Assets(ctx context.Context, assetType string) ([]models.Asset, error) {
	if err := m.seeder.EnsureCatalog(ctx); err != nil {
		return nil, err
	}

	filter := map[string]any{}
	if assetType != "" {
		filter["asset_type"] = assetType
	}

	var assets []models.Asset
	err := m.store.Find(ctx, domrepo.ColAssets, filter, &assets, domrepo.WithSort("symbol", false))
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// Data synthesizes an OHLCV series for symbol ending now. The catalog is
// seeded first; symbols outside it surface as ErrNotFound.
func (m *Market) Data(ctx context.Context, symbol, interval string, limit int) (*models.MarketData, error) {
	iv := domrepo.NormalizeInterval(interval)

	key := fmt.Sprintf("market:data:%s:%s:%d", symbol, iv, limit)
	if m.dataTTL > 0 {
		var cached models.MarketData
		if err := m.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	asset, err := m.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	end := util.AlignToStep(time.Now().UTC(), iv.Step())
	genStart := time.Now()
	bars := synth.GenerateSeries(synth.BasePrice(asset.AssetType), iv, limit, end, m.seeder.Rand())
	m.seeder.metrics.RecordLatency("generate_series", time.Since(genStart).Seconds())
	m.seeder.metrics.RecordBarsGenerated(symbol, len(bars))

	data := &models.MarketData{Symbol: symbol, Interval: string(iv), Data: bars}
	if m.dataTTL > 0 {
		if err := m.cache.Set(ctx, key, data, m.dataTTL); err != nil {
			m.seeder.log.Warn("market data cache set failed", logger.String("key", key), logger.Error(err))
		}
	}
	return data, nil
}

// Stream emits one freshly synthesized bar per tick until emit fails or the
// context ends. The walk continues from each bar's close.
func (m *Market) Stream(ctx context.Context, symbol, interval string, emit func(models.PriceBar) error) error {
	iv := domrepo.NormalizeInterval(interval)

	asset, err := m.lookup(ctx, symbol)
	if err != nil {
		return err
	}

	rng := m.seeder.Rand()
	price := synth.BasePrice(asset.AssetType)
	ts := time.Now().UTC()

	ticker := time.NewTicker(streamTick)
	defer ticker.Stop()

	for {
		bar := synth.NextBar(price, ts, rng)
		if err := emit(bar); err != nil {
			return err
		}
		m.seeder.metrics.RecordBarsGenerated(symbol, 1)

		price = bar.Close
		ts = ts.Add(iv.Step())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// lookup resolves symbol against the seeded catalog without creating
// ad-hoc assets.
func (m *Market) lookup(ctx context.Context, symbol string) (*models.Asset, error) {
	if err := m.seeder.EnsureCatalog(ctx); err != nil {
		return nil, err
	}
	var asset models.Asset
	if err := m.store.FindOne(ctx, domrepo.ColAssets, map[string]any{"symbol": symbol}, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}
