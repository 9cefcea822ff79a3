package synth

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"InvestAgent/internal/domain/models"
)

func testAssets() []models.Asset {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assets := make([]models.Asset, 0, len(Catalog))
	for _, e := range Catalog {
		assets = append(assets, e.NewAsset(now))
	}
	return assets
}

func TestPositionsFixedScenario(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	bySymbol := map[string]models.Asset{}
	for _, a := range testAssets() {
		bySymbol[a.Symbol] = a
	}

	positions := Positions("u1", bySymbol, now)
	if len(positions) != 3 {
		t.Fatalf("expected exactly 3 positions, got %d", len(positions))
	}

	byAsset := map[string]models.Position{}
	for _, p := range positions {
		byAsset[p.AssetID] = p
	}

	for _, symbol := range []string{"AAPL", "MSFT"} {
		p, ok := byAsset[bySymbol[symbol].ID]
		if !ok {
			t.Fatalf("missing position for %s", symbol)
		}
		if p.Quantity != 10 || p.AvgEntryPrice != 150.0 || p.CurrentPrice != 165.0 {
			t.Fatalf("%s position has wrong fixed values: %+v", symbol, p)
		}
		if p.Provider != "alpaca" {
			t.Fatalf("%s position provider %q, want alpaca", symbol, p.Provider)
		}
	}

	btc, ok := byAsset[bySymbol["BTC"].ID]
	if !ok {
		t.Fatal("missing BTC position")
	}
	if btc.Quantity != 0.5 || btc.AvgEntryPrice != 30000.0 || btc.CurrentPrice != 32000.0 {
		t.Fatalf("BTC position has wrong fixed values: %+v", btc)
	}
	if btc.Provider != "binance" {
		t.Fatalf("BTC position provider %q, want binance", btc.Provider)
	}
}

func TestSignalFieldInvariants(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(11))
	assets := testAssets()

	for i := 0; i < 200; i++ {
		s := Signal("u1", assets[rng.Intn(len(assets))], i%2 == 0, now, rng)

		if s.Confidence < 0.6 || s.Confidence > 0.95 {
			t.Fatalf("confidence %v out of [0.6, 0.95]", s.Confidence)
		}
		if (s.PriceTarget == nil) != (s.SignalType == models.SignalHold) {
			t.Fatalf("price_target presence mismatch for type %s: %+v", s.SignalType, s)
		}
		if (s.StopLoss != nil) != (s.SignalType == models.SignalBuy) {
			t.Fatalf("stop_loss presence mismatch for type %s: %+v", s.SignalType, s)
		}
		if s.ExpiresAt == nil || !s.ExpiresAt.After(now) {
			t.Fatalf("expiry must be in the future: %+v", s.ExpiresAt)
		}
		if !s.IsActive {
			t.Fatal("generated signals must start active")
		}
	}
}

func TestSignalAlertCorrelation(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(5))
	assets := testAssets()

	for i := 0; i < 50; i++ {
		asset := assets[rng.Intn(len(assets))]
		s := Signal("u1", asset, true, now, rng)
		a := SignalAlert(s, asset.Symbol, now)

		want := fmt.Sprintf("New %s signal generated for %s with %d%% confidence",
			s.SignalType, asset.Symbol, int(s.Confidence*100))
		if a.Message != want {
			t.Fatalf("alert message %q does not embed signal fields, want %q", a.Message, want)
		}
		if a.AssetID != s.AssetID || a.UserID != s.UserID {
			t.Fatalf("alert not linked to its signal: %+v vs %+v", a, s)
		}
		if a.AlertType != models.AlertSignalGenerated || a.IsRead {
			t.Fatalf("unexpected alert shape: %+v", a)
		}
	}
}

func TestAlertsBatchCompanionSignals(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(9))

	batch := Alerts("u1", testAssets(), 10, now, rng)
	if len(batch.Alerts) != 10 {
		t.Fatalf("expected 10 alerts, got %d", len(batch.Alerts))
	}

	generated := 0
	for _, a := range batch.Alerts {
		if a.AlertType == models.AlertSignalGenerated {
			generated++
		}
	}
	if generated != len(batch.Signals) {
		t.Fatalf("%d signal_generated alerts but %d companion signals", generated, len(batch.Signals))
	}

	// Each signal_generated message must match one companion signal exactly.
	for _, a := range batch.Alerts {
		if a.AlertType != models.AlertSignalGenerated {
			continue
		}
		matched := false
		for _, s := range batch.Signals {
			if s.AssetID != a.AssetID {
				continue
			}
			if strings.Contains(a.Message, fmt.Sprintf("New %s signal", s.SignalType)) &&
				strings.Contains(a.Message, fmt.Sprintf("%d%% confidence", int(s.Confidence*100))) {
				matched = true
				break
			}
		}
		if !matched {
			t.Fatalf("alert %q has no companion signal", a.Message)
		}
	}

	read := 0
	for _, a := range batch.Alerts {
		if a.IsRead {
			read++
		}
	}
	if read != 5 {
		t.Fatalf("expected first half of 10 alerts read, got %d", read)
	}
}

func TestNewsHeadlineBuckets(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(13))

	items := News(testAssets(), 100, now, rng)
	if len(items) != 100 {
		t.Fatalf("expected 100 items, got %d", len(items))
	}

	for _, item := range items {
		var want string
		switch {
		case item.SentimentScore > 0.3:
			want = "Surges on Strong Earnings Report"
		case item.SentimentScore > 0:
			want = "Analysts Positive on"
		case item.SentimentScore > -0.3:
			want = "Faces Market Challenges"
		default:
			want = "Drops After Missing Quarterly Expectations"
		}
		if !strings.Contains(item.Title, want) {
			t.Fatalf("score %v produced headline %q, want bucket %q", item.SentimentScore, item.Title, want)
		}
		if item.Importance < 0.3 || item.Importance > 0.9 {
			t.Fatalf("importance %v out of [0.3, 0.9]", item.Importance)
		}
	}
}

func TestHistoryShape(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(17))

	snapshots := History("u1", now, rng)
	if len(snapshots) != 30 {
		t.Fatalf("expected 30 snapshots, got %d", len(snapshots))
	}
	for i := 1; i < len(snapshots); i++ {
		if !snapshots[i].Timestamp.After(snapshots[i-1].Timestamp) {
			t.Fatalf("history must be oldest-first, broke at %d", i)
		}
	}
}

func TestAIModelsCatalog(t *testing.T) {
	catalog := AIModels(time.Now())
	if len(catalog) != 4 {
		t.Fatalf("expected 4 models, got %d", len(catalog))
	}
	types := map[string]bool{}
	for _, m := range catalog {
		if !m.Enabled {
			t.Fatalf("model %s must be enabled", m.Name)
		}
		types[m.ModelType] = true
	}
	for _, want := range []string{"sentiment", "price_prediction", "trend_detection", "hybrid"} {
		if !types[want] {
			t.Fatalf("missing model type %s", want)
		}
	}
}

func TestRiskDefaults(t *testing.T) {
	r := RiskDefaults("u1", time.Now())
	if r.MaxPositionSize != 5.0 || r.MaxLossPerTrade != 1.0 || r.DefaultStopLoss != 2.0 {
		t.Fatalf("unexpected defaults: %+v", r)
	}
	if r.TrailingStop {
		t.Fatal("trailing stop must default off")
	}
}
