package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

type RegisterRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=64"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=8,max=128"`
}

type TokenRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type TradingConfigRequest struct {
	Provider       string `json:"provider" validate:"required,oneof=alpaca binance"`
	APIKey         string `json:"api_key" validate:"required"`
	APISecret      string `json:"api_secret" validate:"required"`
	IsPaperTrading bool   `json:"is_paper_trading" default:"true"`
}

type SignalsRequest struct {
	ActiveOnly bool `query:"active_only" default:"true"`
	Limit      int  `query:"limit" default:"20" validate:"gte=1,lte=100"`
}

type TradesRequest struct {
	Limit int `query:"limit" default:"20" validate:"gte=1,lte=100"`
}

type AlertsRequest struct {
	UnreadOnly bool `query:"unread_only"`
}

type RiskSettingsRequest struct {
	MaxPositionSize float64  `json:"max_position_size" validate:"gt=0,lte=100"`
	MaxLossPerTrade float64  `json:"max_loss_per_trade" validate:"gt=0,lte=100"`
	DefaultStopLoss float64  `json:"default_stop_loss" validate:"gt=0,lte=100"`
	TrailingStop    bool     `json:"trailing_stop_loss"`
	TrailingStopPct *float64 `json:"trailing_stop_pct,omitempty" validate:"omitempty,gt=0,lte=100"`
}

type GenerateSignalsRequest struct {
	Symbols []string `json:"symbols" validate:"required,min=1,max=20,dive,required"`
}

type AssetsRequest struct {
	AssetType string `query:"asset_type" validate:"omitempty,oneof=stock crypto"`
}

type MarketDataRequest struct {
	Interval string `query:"interval" default:"1d" validate:"oneof=1m 5m 15m 1h 4h 1d"`
	Limit    int    `query:"limit" default:"30" validate:"gte=1,lte=1000"`
}

type NewsRequest struct {
	Symbol string `query:"symbol"`
	Limit  int    `query:"limit" default:"20" validate:"gte=1,lte=100"`
}
