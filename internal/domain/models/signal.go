package models

import "time"

// Signal directions.
const (
	SignalBuy  = "buy"
	SignalSell = "sell"
	SignalHold = "hold"
)

// Signal is a directional trading recommendation attributed to a model.
// PriceTarget is absent iff the type is hold; StopLoss is present only for buys.
type Signal struct {
	ID          string     `bson:"_id" json:"id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	AssetID     string     `bson:"asset_id" json:"asset_id"`
	SignalType  string     `bson:"signal_type" json:"signal_type"`
	Confidence  float64    `bson:"confidence" json:"confidence"`
	PriceTarget *float64   `bson:"price_target,omitempty" json:"price_target,omitempty"`
	StopLoss    *float64   `bson:"stop_loss,omitempty" json:"stop_loss,omitempty"`
	Timeframe   string     `bson:"timeframe" json:"timeframe"`
	Rationale   string     `bson:"rationale" json:"rationale"`
	CreatedBy   string     `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	ExpiresAt   *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	IsActive    bool       `bson:"is_active" json:"is_active"`
}

// Alert kinds.
const (
	AlertPriceTarget     = "price_target"
	AlertSignalGenerated = "signal_generated"
	AlertTradeExecuted   = "trade_executed"
)

// Alert is a user notification. A signal_generated alert embeds the exact
// symbol, type and confidence of the signal it was built from.
type Alert struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	AssetID   string    `bson:"asset_id,omitempty" json:"asset_id,omitempty"`
	AlertType string    `bson:"alert_type" json:"alert_type"`
	Message   string    `bson:"message" json:"message"`
	IsRead    bool      `bson:"is_read" json:"is_read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
