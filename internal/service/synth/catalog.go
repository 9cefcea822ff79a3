package synth

import (
	"time"

	"github.com/google/uuid"

	"InvestAgent/internal/domain/models"
)

// CatalogEntry is one reference asset of the fixed demo catalog.
type CatalogEntry struct {
	Symbol    string
	Name      string
	AssetType string
	Exchange  string
}

// Catalog is the fixed reference catalog every generator samples from.
var Catalog = []CatalogEntry{
	{Symbol: "AAPL", Name: "Apple Inc.", AssetType: models.AssetTypeStock, Exchange: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", AssetType: models.AssetTypeStock, Exchange: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", AssetType: models.AssetTypeStock, Exchange: "NASDAQ"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", AssetType: models.AssetTypeStock, Exchange: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla, Inc.", AssetType: models.AssetTypeStock, Exchange: "NASDAQ"},
	{Symbol: "BTC", Name: "Bitcoin", AssetType: models.AssetTypeCrypto, Exchange: "Binance"},
	{Symbol: "ETH", Name: "Ethereum", AssetType: models.AssetTypeCrypto, Exchange: "Binance"},
	{Symbol: "SOL", Name: "Solana", AssetType: models.AssetTypeCrypto, Exchange: "Binance"},
	{Symbol: "AVAX", Name: "Avalanche", AssetType: models.AssetTypeCrypto, Exchange: "Binance"},
	{Symbol: "DOGE", Name: "Dogecoin", AssetType: models.AssetTypeCrypto, Exchange: "Binance"},
}

// LookupCatalog returns the catalog entry for symbol, if present.
func LookupCatalog(symbol string) (CatalogEntry, bool) {
	for _, e := range Catalog {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// NewAsset materializes a catalog entry as a stored asset record.
func (e CatalogEntry) NewAsset(now time.Time) models.Asset {
	return models.Asset{
		ID:        uuid.NewString(),
		Symbol:    e.Symbol,
		Name:      e.Name,
		AssetType: e.AssetType,
		Exchange:  e.Exchange,
		CreatedAt: now,
	}
}

// AdHocEntry builds a catalog entry for a symbol outside the fixed catalog.
// Unknown symbols default to NASDAQ equities.
func AdHocEntry(symbol string) CatalogEntry {
	return CatalogEntry{
		Symbol:    symbol,
		Name:      symbol + " Asset",
		AssetType: models.AssetTypeStock,
		Exchange:  "NASDAQ",
	}
}

// BasePrice returns the walk origin for an asset class: equities start at 150,
// crypto at 30000.
func BasePrice(assetType string) float64 {
	if assetType == models.AssetTypeCrypto {
		return 30000.0
	}
	return 150.0
}
