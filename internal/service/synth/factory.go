package synth

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"InvestAgent/internal/domain/models"
)

// Fixed enumerations the generators choose from.
var (
	signalTimeframes = []string{"short_term", "medium_term", "long_term"}
	signalModels     = []string{"sentiment_analyzer", "price_predictor", "trend_detector", "hybrid_model"}
	newsSources      = []string{"Bloomberg", "CNBC", "Reuters", "Wall Street Journal", "Financial Times"}
)

// provider returns the mock broker for an asset class.
func provider(assetType string) string {
	if assetType == models.AssetTypeCrypto {
		return "binance"
	}
	return "alpaca"
}

// Positions builds the fixed demo holdings: AAPL, MSFT and BTC with constant
// quantities and prices. Assets must contain entries for those symbols.
func Positions(userID string, assets map[string]models.Asset, now time.Time) []models.Position {
	positions := make([]models.Position, 0, 3)
	for _, symbol := range []string{"AAPL", "MSFT", "BTC"} {
		asset := assets[symbol]
		p := models.Position{
			ID:        uuid.NewString(),
			UserID:    userID,
			AssetID:   asset.ID,
			Provider:  provider(asset.AssetType),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if asset.AssetType == models.AssetTypeCrypto {
			p.Quantity = 0.5
			p.AvgEntryPrice = 30000.0
			p.CurrentPrice = 32000.0
			p.UnrealizedPL = 1000.0
			p.MarketValue = 16000.0
		} else {
			p.Quantity = 10
			p.AvgEntryPrice = 150.0
			p.CurrentPrice = 165.0
			p.UnrealizedPL = 150.0
			p.MarketValue = 1650.0
		}
		positions = append(positions, p)
	}
	return positions
}

// Summary builds the fixed first portfolio snapshot.
func Summary(userID string, now time.Time) models.PortfolioSnapshot {
	return models.PortfolioSnapshot{
		ID:             uuid.NewString(),
		UserID:         userID,
		CashBalance:    10000.0,
		PortfolioValue: 15000.0,
		DayChangePct:   1.2,
		TotalPL:        500.0,
		Timestamp:      now,
	}
}

// History builds 30 daily snapshots of a drifting portfolio value, oldest first.
func History(userID string, now time.Time, rng *rand.Rand) []models.PortfolioSnapshot {
	const days = 30
	const baseValue = 15000.0
	baseDate := now.AddDate(0, 0, -days)

	snapshots := make([]models.PortfolioSnapshot, 0, days)
	for i := 0; i < days; i++ {
		dailyChange := rng.NormFloat64()*0.01 + 0.001
		value := baseValue * (1 + dailyChange*float64(i))
		snapshots = append(snapshots, models.PortfolioSnapshot{
			ID:             uuid.NewString(),
			UserID:         userID,
			CashBalance:    10000.0,
			PortfolioValue: value,
			DayChangePct:   dailyChange * 100,
			TotalPL:        value - baseValue,
			Timestamp:      baseDate.AddDate(0, 0, i),
		})
	}
	return snapshots
}

// Signal builds one signal for an asset. When weighted is true the type
// distribution is biased towards buys (0.5/0.3/0.2); otherwise it is uniform.
// PriceTarget is set unless the type is hold and StopLoss only for buys.
func Signal(userID string, asset models.Asset, weighted bool, now time.Time, rng *rand.Rand) models.Signal {
	var signalType string
	if weighted {
		switch r := rng.Float64(); {
		case r < 0.5:
			signalType = models.SignalBuy
		case r < 0.8:
			signalType = models.SignalSell
		default:
			signalType = models.SignalHold
		}
	} else {
		signalType = []string{models.SignalBuy, models.SignalSell, models.SignalHold}[rng.Intn(3)]
	}

	s := models.Signal{
		ID:         uuid.NewString(),
		UserID:     userID,
		AssetID:    asset.ID,
		SignalType: signalType,
		Confidence: round2(uniform(rng, 0.6, 0.95)),
		Timeframe:  signalTimeframes[rng.Intn(len(signalTimeframes))],
		CreatedBy:  signalModels[rng.Intn(len(signalModels))],
		CreatedAt:  now.Add(-time.Duration(1+rng.Intn(71)) * time.Hour),
		IsActive:   true,
	}
	expires := now.AddDate(0, 0, 1+rng.Intn(6))
	s.ExpiresAt = &expires

	if weighted {
		s.Rationale = fmt.Sprintf("AI analysis detected favorable patterns for a %s signal on %s.", signalType, asset.Symbol)
		s.CreatedAt = now
	} else {
		s.Rationale = fmt.Sprintf("Based on technical analysis and recent %s performance.", asset.Symbol)
	}

	if signalType != models.SignalHold {
		target := round2(uniform(rng, 100, 200))
		s.PriceTarget = &target
	}
	if signalType == models.SignalBuy {
		stop := round2(uniform(rng, 80, 95))
		s.StopLoss = &stop
	}
	return s
}

// Signals builds n uniformly-typed signals over the given assets.
func Signals(userID string, assets []models.Asset, n int, now time.Time, rng *rand.Rand) []models.Signal {
	signals := make([]models.Signal, 0, n)
	for i := 0; i < n; i++ {
		asset := assets[rng.Intn(len(assets))]
		signals = append(signals, Signal(userID, asset, false, now, rng))
	}
	return signals
}

// SignalAlert builds the alert correlated with a generated signal. The message
// embeds the signal's own symbol, type and confidence, never re-rolled values.
func SignalAlert(s models.Signal, symbol string, now time.Time) models.Alert {
	return models.Alert{
		ID:        uuid.NewString(),
		UserID:    s.UserID,
		AssetID:   s.AssetID,
		AlertType: models.AlertSignalGenerated,
		Message:   fmt.Sprintf("New %s signal generated for %s with %d%% confidence", s.SignalType, symbol, int(s.Confidence*100)),
		IsRead:    false,
		CreatedAt: now,
	}
}

// Trades builds n filled mock market orders.
func Trades(userID string, assets []models.Asset, n int, now time.Time, rng *rand.Rand) []models.Trade {
	trades := make([]models.Trade, 0, n)
	for i := 0; i < n; i++ {
		asset := assets[rng.Intn(len(assets))]
		created := now.AddDate(0, 0, -rng.Intn(30))
		trades = append(trades, models.Trade{
			ID:        uuid.NewString(),
			UserID:    userID,
			AssetID:   asset.ID,
			Provider:  provider(asset.AssetType),
			OrderID:   uuid.NewString(),
			Side:      []string{"buy", "sell"}[rng.Intn(2)],
			Quantity:  round2(uniform(rng, 1, 10)),
			Price:     round2(uniform(rng, 100, 200)),
			OrderType: "market",
			Status:    "filled",
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return trades
}

// AlertBatch is the output of the alert builder pipeline: alerts plus the
// companion signals that signal_generated alerts were derived from.
type AlertBatch struct {
	Alerts  []models.Alert
	Signals []models.Signal
}

// Alerts builds n alerts over the given assets. Alerts of type
// signal_generated are derived from a real companion signal so the message
// reflects actual signal fields; the companion signals are returned for
// persistence alongside the alerts. About half the alerts start read.
func Alerts(userID string, assets []models.Asset, n int, now time.Time, rng *rand.Rand) AlertBatch {
	batch := AlertBatch{Alerts: make([]models.Alert, 0, n)}
	alertTypes := []string{models.AlertPriceTarget, models.AlertSignalGenerated, models.AlertTradeExecuted}

	for i := 0; i < n; i++ {
		asset := assets[rng.Intn(len(assets))]
		alertType := alertTypes[rng.Intn(len(alertTypes))]
		created := now.Add(-time.Duration(1+rng.Intn(71)) * time.Hour)

		var message string
		switch alertType {
		case models.AlertPriceTarget:
			message = fmt.Sprintf("%s has reached your price target of $%.2f", asset.Symbol, round2(uniform(rng, 100, 200)))
		case models.AlertSignalGenerated:
			signal := Signal(userID, asset, false, now, rng)
			batch.Signals = append(batch.Signals, signal)
			message = SignalAlert(signal, asset.Symbol, created).Message
		default:
			side := []string{"bought", "sold"}[rng.Intn(2)]
			message = fmt.Sprintf("Successfully %s %.2f %s at $%.2f",
				side, round2(uniform(rng, 1, 10)), asset.Symbol, round2(uniform(rng, 100, 200)))
		}

		batch.Alerts = append(batch.Alerts, models.Alert{
			ID:        uuid.NewString(),
			UserID:    userID,
			AssetID:   asset.ID,
			AlertType: alertType,
			Message:   message,
			IsRead:    i < n/2,
			CreatedAt: created,
		})
	}
	return batch
}

// News builds n sentiment-scored news items for the given assets. Headlines
// are picked from four templates bucketed by the drawn sentiment score.
func News(assets []models.Asset, n int, now time.Time, rng *rand.Rand) []models.NewsSentiment {
	items := make([]models.NewsSentiment, 0, n)
	for i := 0; i < n; i++ {
		asset := assets[rng.Intn(len(assets))]
		sentiment := rng.NormFloat64() * 0.5

		var title string
		switch {
		case sentiment > 0.3:
			title = fmt.Sprintf("%s Surges on Strong Earnings Report", asset.Symbol)
		case sentiment > 0:
			title = fmt.Sprintf("Analysts Positive on %s Future Growth", asset.Symbol)
		case sentiment > -0.3:
			title = fmt.Sprintf("%s Faces Market Challenges Amid Economic Uncertainty", asset.Symbol)
		default:
			title = fmt.Sprintf("%s Drops After Missing Quarterly Expectations", asset.Symbol)
		}

		items = append(items, models.NewsSentiment{
			ID:             uuid.NewString(),
			AssetID:        asset.ID,
			Title:          title,
			Source:         newsSources[rng.Intn(len(newsSources))],
			URL:            "https://example.com/news/" + uuid.NewString(),
			SentimentScore: round2(sentiment),
			Importance:     round2(uniform(rng, 0.3, 0.9)),
			PublishedAt:    now.Add(-time.Duration(1+rng.Intn(71)) * time.Hour),
			AnalyzedAt:     now,
		})
	}
	return items
}

// AIModels builds the fixed model catalog.
func AIModels(now time.Time) []models.AIModel {
	entries := []struct {
		name, description, modelType string
		config                       map[string]any
	}{
		{
			name:        "Sentiment Analyzer",
			description: "Analyzes news and social media for market sentiment",
			modelType:   "sentiment",
			config:      map[string]any{"sources": []string{"news", "twitter", "reddit"}, "update_frequency": "hourly"},
		},
		{
			name:        "Price Predictor",
			description: "Predicts price movements using historical data",
			modelType:   "price_prediction",
			config:      map[string]any{"timeframes": []string{"1h", "1d", "1w"}, "features": []string{"price", "volume", "indicators"}},
		},
		{
			name:        "Trend Detector",
			description: "Identifies market trends using technical analysis",
			modelType:   "trend_detection",
			config:      map[string]any{"indicators": []string{"moving_average", "rsi", "macd"}, "threshold": 0.7},
		},
		{
			name:        "Hybrid Strategy",
			description: "Combines multiple signals for more robust predictions",
			modelType:   "hybrid",
			config:      map[string]any{"models": []string{"sentiment", "price_prediction", "trend_detection"}, "weights": []float64{0.3, 0.4, 0.3}},
		},
	}

	catalog := make([]models.AIModel, 0, len(entries))
	for _, e := range entries {
		catalog = append(catalog, models.AIModel{
			ID:          uuid.NewString(),
			Name:        e.name,
			Description: e.description,
			ModelType:   e.modelType,
			Enabled:     true,
			Config:      e.config,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return catalog
}

// RiskDefaults builds the per-user risk settings singleton with fixed defaults.
func RiskDefaults(userID string, now time.Time) models.RiskSettings {
	return models.RiskSettings{
		ID:              uuid.NewString(),
		UserID:          userID,
		MaxPositionSize: 5.0,
		MaxLossPerTrade: 1.0,
		DefaultStopLoss: 2.0,
		TrailingStop:    false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
