package models

import "time"

// Asset classes supported by the catalog.
const (
	AssetTypeStock  = "stock"
	AssetTypeCrypto = "crypto"
)

// Asset is shared read-only reference data, created on first use and never updated.
type Asset struct {
	ID        string    `bson:"_id" json:"id"`
	Symbol    string    `bson:"symbol" json:"symbol"`
	Name      string    `bson:"name" json:"name"`
	AssetType string    `bson:"asset_type" json:"asset_type"`
	Exchange  string    `bson:"exchange" json:"exchange,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
