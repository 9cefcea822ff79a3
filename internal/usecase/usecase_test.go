package usecase

import (
	"context"
	"sync"
	"testing"

	"InvestAgent/internal/domain/models"
	domrepo "InvestAgent/internal/domain/repository"
	internalrepo "InvestAgent/internal/repository"
	"InvestAgent/pkg/cache"
	"InvestAgent/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordSeed(string, int)          {}
func (nopMetrics) RecordAuthFailure(string)        {}
func (nopMetrics) RecordTokenIssued()              {}
func (nopMetrics) RecordBarsGenerated(string, int) {}
func (nopMetrics) RecordLatency(string, float64)   {}

type captureMetrics struct {
	nopMetrics
	mu  sync.Mutex
	ops []string
}

func (m *captureMetrics) RecordLatency(op string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, op)
}

func (m *captureMetrics) observed(op string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.ops {
		if o == op {
			return true
		}
	}
	return false
}

type capturePublisher struct {
	mu     sync.Mutex
	events []domrepo.Event
}

func (p *capturePublisher) Publish(_ context.Context, e domrepo.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) captured() []domrepo.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domrepo.Event(nil), p.events...)
}

func newTestEnv(t *testing.T) (*Seeder, domrepo.Store, cache.Service) {
	t.Helper()

	store := internalrepo.NewMemoryStore(
		internalrepo.WithUniqueIndex(domrepo.ColUsers, "username", "email"),
	)
	c := cache.NewMemoryCache()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewSeeder(store, c, log, nopMetrics{}, 0), store, c
}

func TestPositionsSeedOnce(t *testing.T) {
	seeder, store, _ := newTestEnv(t)
	portfolio := NewPortfolio(seeder, store)
	ctx := context.Background()

	first, err := portfolio.Positions(ctx, "u1")
	if err != nil {
		t.Fatalf("first positions: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected exactly 3 seeded positions, got %d", len(first))
	}

	symbols := map[string]bool{}
	for _, p := range first {
		if p.Asset == nil {
			t.Fatalf("position %s missing joined asset", p.ID)
		}
		symbols[p.Asset.Symbol] = true
	}
	for _, want := range []string{"AAPL", "MSFT", "BTC"} {
		if !symbols[want] {
			t.Fatalf("missing position for %s", want)
		}
	}

	second, err := portfolio.Positions(ctx, "u1")
	if err != nil {
		t.Fatalf("second positions: %v", err)
	}
	if len(second) != 3 {
		t.Fatalf("reseeded: got %d positions on second call", len(second))
	}

	// A different user gets their own seed.
	other, err := portfolio.Positions(ctx, "u2")
	if err != nil {
		t.Fatalf("other user positions: %v", err)
	}
	if len(other) != 3 {
		t.Fatalf("expected 3 positions for second user, got %d", len(other))
	}
}

func TestPositionsConcurrentFirstAccess(t *testing.T) {
	seeder, store, _ := newTestEnv(t)
	portfolio := NewPortfolio(seeder, store)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = portfolio.Positions(ctx, "u1")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: %v", i, err)
		}
	}

	var stored []models.Position
	if err := store.Find(ctx, domrepo.ColPositions, map[string]any{"user_id": "u1"}, &stored); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("concurrent first access seeded %d positions, want 3", len(stored))
	}
}

func TestSummarySeedOnce(t *testing.T) {
	seeder, store, _ := newTestEnv(t)
	portfolio := NewPortfolio(seeder, store)
	ctx := context.Background()

	first, err := portfolio.Summary(ctx, "u1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if first.PortfolioValue != 15000.0 || first.CashBalance != 10000.0 {
		t.Fatalf("unexpected seeded summary: %+v", first)
	}

	second, err := portfolio.Summary(ctx, "u1")
	if err != nil {
		t.Fatalf("second summary: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("summary reseeded: %s vs %s", second.ID, first.ID)
	}
}

func TestHistorySeedsThirtyDaysOldestFirst(t *testing.T) {
	seeder, store, _ := newTestEnv(t)
	portfolio := NewPortfolio(seeder, store)
	ctx := context.Background()

	history, err := portfolio.History(ctx, "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 30 {
		t.Fatalf("expected 30 snapshots, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.Before(history[i-1].Timestamp) {
			t.Fatalf("history not oldest-first at %d", i)
		}
	}

	again, err := portfolio.History(ctx, "u1")
	if err != nil {
		t.Fatalf("second history: %v", err)
	}
	if len(again) != 30 {
		t.Fatalf("history reseeded: got %d", len(again))
	}
}

func TestSignalsListSeedsAndFilters(t *testing.T) {
	seeder, store, _ := newTestEnv(t)
	signals := NewSignals(seeder, store, &capturePublisher{})
	ctx := context.Background()

	list, err := signals.List(ctx, "u1", true, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 10 {
		t.Fatalf("expected 10 seeded signals, got %d", len(list))
	}
	for i, s := range list {
		if !s.IsActive {
			t.Fatalf("active_only returned inactive signal %d", i)
		}
		if i > 0 && list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Fatalf("signals not newest-first at %d", i)
		}
	}

	limited, err := signals.List(ctx, "u1", true, 3)
	if err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if len(limited) != 3 {
		t.Fatalf("limit ignored: got %d", len(limited))
	}
}

func TestGenerateSignalsAlwaysGenerates(t *testing.T) {
	seeder, store, _ := newTestEnv(t)
	pub := &capturePublisher{}
	signals := NewSignals(seeder, store, pub)
	ctx := context.Background()

	first, err := signals.Generate(ctx, "u1", []string{"AAPL", "XYZ"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(first))
	}

	// The unknown symbol is materialized as an ad-hoc asset.
	var adhoc models.Asset
	if err := store.FindOne(ctx, domrepo.ColAssets, map[string]any{"symbol": "XYZ"}, &adhoc); err != nil {
		t.Fatalf("ad-hoc asset: %v", err)
	}

	// One correlated alert per signal.
	var alerts []models.Alert
	if err := store.Find(ctx, domrepo.ColAlerts, map[string]any{"user_id": "u1"}, &alerts); err != nil {
		t.Fatalf("alerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 correlated alerts, got %d", len(alerts))
	}
	for _, a := range alerts {
		if a.AlertType != models.AlertSignalGenerated || a.IsRead {
			t.Fatalf("unexpected alert: %+v", a)
		}
	}

	// Unlike the lazy lists, a second call generates again.
	second, err := signals.Generate(ctx, "u1", []string{"AAPL"})
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(second))
	}

	events := pub.captured()
	if len(events) != 6 {
		t.Fatalf("expected 6 events (2 per signal), got %d", len(events))
	}
}

func TestAlertsSeedAndMarkRead(t *testing.T) {
	seeder, store, _ := newTestEnv(t)
	alerts := NewAlerts(seeder, store)
	ctx := context.Background()

	all, err := alerts.List(ctx, "u1", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 10 {
		t.Fatalf("expected 10 seeded alerts, got %d", len(all))
	}

	unread, err := alerts.List(ctx, "u1", true)
	if err != nil {
		t.Fatalf("unread list: %v", err)
	}
	if len(unread) != 5 {
		t.Fatalf("expected 5 unread alerts, got %d", len(unread))
	}

	// Companion signals of signal_generated alerts were persisted too.
	generated := 0
	for _, a := range all {
		if a.AlertType == models.AlertSignalGenerated {
			generated++
		}
	}
	var companions []models.Signal
	if err := store.Find(ctx, domrepo.ColSignals, map[string]any{"user_id": "u1"}, &companions); err != nil {
		t.Fatalf("companion signals: %v", err)
	}
	if len(companions) != generated {
		t.Fatalf("%d signal_generated alerts but %d stored companions", generated, len(companions))
	}

	if err := alerts.MarkRead(ctx, "u1", unread[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	after, err := alerts.List(ctx, "u1", true)
	if err != nil {
		t.Fatalf("list after read: %v", err)
	}
	if len(after) != 4 {
		t.Fatalf("expected 4 unread after marking one, got %d", len(after))
	}

	if err := alerts.MarkRead(ctx, "u2", unread[0].ID); err != domrepo.ErrNotFound {
		t.Fatalf("foreign mark read: got %v, want ErrNotFound", err)
	}
	if err := alerts.MarkRead(ctx, "u1", "no-such-alert"); err != domrepo.ErrNotFound {
		t.Fatalf("missing mark read: got %v, want ErrNotFound", err)
	}
}

func TestRiskSettingsSingleton(t *testing.T) {
	seeder, store, _ := newTestEnv(t)
	settings := NewSettings(seeder, store)
	ctx := context.Background()

	first, err := settings.Risk(ctx, "u1")
	if err != nil {
		t.Fatalf("risk: %v", err)
	}
	if first.MaxPositionSize != 5.0 || first.MaxLossPerTrade != 1.0 || first.DefaultStopLoss != 2.0 {
		t.Fatalf("unexpected defaults: %+v", first)
	}

	pct := 1.5
	updated, err := settings.UpdateRisk(ctx, "u1", models.RiskSettingsRequest{
		MaxPositionSize: 7.5,
		MaxLossPerTrade: 2.0,
		DefaultStopLoss: 3.0,
		TrailingStop:    true,
		TrailingStopPct: &pct,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != first.ID {
		t.Fatalf("update replaced the singleton: %s vs %s", updated.ID, first.ID)
	}
	if updated.MaxPositionSize != 7.5 || !updated.TrailingStop || updated.TrailingStopPct == nil {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if !updated.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at must be preserved: %v vs %v", updated.CreatedAt, first.CreatedAt)
	}
}

func TestTradingConfigsUpsertAndDelete(t *testing.T) {
	_, store, _ := newTestEnv(t)
	configs := NewConfigs(store)
	ctx := context.Background()

	created, err := configs.Upsert(ctx, "u1", models.TradingConfigRequest{
		Provider: "alpaca", APIKey: "k1", APISecret: "s1", IsPaperTrading: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	replaced, err := configs.Upsert(ctx, "u1", models.TradingConfigRequest{
		Provider: "alpaca", APIKey: "k2", APISecret: "s2",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if replaced.ID != created.ID {
		t.Fatalf("upsert must reuse the record for the same provider: %s vs %s", replaced.ID, created.ID)
	}
	if replaced.APIKey != "k2" {
		t.Fatalf("upsert did not replace credentials: %+v", replaced)
	}

	list, err := configs.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 config, got %d", len(list))
	}

	if err := configs.Delete(ctx, "u2", created.ID); err != domrepo.ErrNotFound {
		t.Fatalf("foreign delete: got %v, want ErrNotFound", err)
	}
	if err := configs.Delete(ctx, "u1", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := configs.Delete(ctx, "u1", created.ID); err != domrepo.ErrNotFound {
		t.Fatalf("double delete: got %v, want ErrNotFound", err)
	}
}

func TestLatencyRecorded(t *testing.T) {
	store := internalrepo.NewMemoryStore()
	c := cache.NewMemoryCache()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	metrics := &captureMetrics{}
	seeder := NewSeeder(store, c, log, metrics, 0)
	ctx := context.Background()

	if _, err := NewPortfolio(seeder, store).Positions(ctx, "u1"); err != nil {
		t.Fatalf("positions: %v", err)
	}
	if !metrics.observed("seed") {
		t.Fatal("seeding pass did not record its latency")
	}

	if _, err := NewMarket(seeder, store, c, 0).Data(ctx, "AAPL", "1d", 10); err != nil {
		t.Fatalf("data: %v", err)
	}
	if !metrics.observed("generate_series") {
		t.Fatal("series generation did not record its latency")
	}
}

func TestAIModelsSeedOnce(t *testing.T) {
	seeder, store, _ := newTestEnv(t)
	aimodels := NewAIModels(seeder, store)
	ctx := context.Background()

	first, err := aimodels.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 models, got %d", len(first))
	}

	second, err := aimodels.List(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(second) != 4 {
		t.Fatalf("model catalog reseeded: got %d", len(second))
	}
}
