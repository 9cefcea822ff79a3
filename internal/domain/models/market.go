package models

import "time"

// PriceBar is a single OHLCV bar of a synthesized series.
// Invariant: low <= min(open, close) <= max(open, close) <= high, low > 0.
type PriceBar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// MarketData wraps a bar series for one symbol, oldest bar first.
type MarketData struct {
	Symbol   string     `json:"symbol"`
	Interval string     `json:"interval"`
	Data     []PriceBar `json:"data"`
}
