package models

import "time"

// TradingAPIConfig stores broker API credentials, one per (user, provider).
type TradingAPIConfig struct {
	ID             string    `bson:"_id" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	Provider       string    `bson:"provider" json:"provider"`
	APIKey         string    `bson:"api_key" json:"api_key"`
	APISecret      string    `bson:"api_secret" json:"api_secret"`
	IsPaperTrading bool      `bson:"is_paper_trading" json:"is_paper_trading"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Position is an open holding of one asset.
type Position struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	AssetID       string    `bson:"asset_id" json:"asset_id"`
	Provider      string    `bson:"provider" json:"provider"`
	Quantity      float64   `bson:"quantity" json:"quantity"`
	AvgEntryPrice float64   `bson:"avg_entry_price" json:"avg_entry_price"`
	CurrentPrice  float64   `bson:"current_price" json:"current_price"`
	UnrealizedPL  float64   `bson:"unrealized_pl" json:"unrealized_pl"`
	MarketValue   float64   `bson:"market_value" json:"market_value"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`

	// Asset is joined in on reads; not stored with the position.
	Asset *Asset `bson:"-" json:"asset,omitempty"`
}

// Trade is an executed order.
type Trade struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	AssetID   string    `bson:"asset_id" json:"asset_id"`
	Provider  string    `bson:"provider" json:"provider"`
	OrderID   string    `bson:"order_id" json:"order_id"`
	Side      string    `bson:"side" json:"side"`
	Quantity  float64   `bson:"quantity" json:"quantity"`
	Price     float64   `bson:"price" json:"price"`
	OrderType string    `bson:"order_type" json:"order_type"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PortfolioSnapshot is a point-in-time portfolio valuation.
type PortfolioSnapshot struct {
	ID             string    `bson:"_id" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	CashBalance    float64   `bson:"cash_balance" json:"cash_balance"`
	PortfolioValue float64   `bson:"portfolio_value" json:"portfolio_value"`
	DayChangePct   float64   `bson:"day_change_pct" json:"day_change_pct"`
	TotalPL        float64   `bson:"total_pl" json:"total_pl"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
}

// RiskSettings is the per-user singleton of static risk thresholds.
// Percentages are of portfolio value.
type RiskSettings struct {
	ID              string    `bson:"_id" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	MaxPositionSize float64   `bson:"max_position_size" json:"max_position_size"`
	MaxLossPerTrade float64   `bson:"max_loss_per_trade" json:"max_loss_per_trade"`
	DefaultStopLoss float64   `bson:"default_stop_loss" json:"default_stop_loss"`
	TrailingStop    bool      `bson:"trailing_stop_loss" json:"trailing_stop_loss"`
	TrailingStopPct *float64  `bson:"trailing_stop_pct,omitempty" json:"trailing_stop_pct,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// AIModel describes one entry of the fixed model catalog.
type AIModel struct {
	ID          string         `bson:"_id" json:"id"`
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description" json:"description"`
	ModelType   string         `bson:"model_type" json:"model_type"`
	Enabled     bool           `bson:"enabled" json:"enabled"`
	Config      map[string]any `bson:"config" json:"config"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updated_at"`
}
