package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by FindOne when no document matches the filter.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateKey is returned by InsertOne when a unique index rejects the document.
var ErrDuplicateKey = errors.New("duplicate key")

// Collections used by the document store.
const (
	ColUsers       = "users"
	ColAPIConfigs  = "api_configs"
	ColAssets      = "assets"
	ColPositions   = "positions"
	ColTrades      = "trades"
	ColSignals     = "signals"
	ColAlerts      = "alerts"
	ColSnapshots   = "portfolio_snapshots"
	ColRiskConfigs = "risk_settings"
	ColAIModels    = "ai_models"
	ColNews        = "news"
)

// FindOptions controls ordering and result size of Find.
type FindOptions struct {
	SortField string
	SortDesc  bool
	Limit     int
}

// FindOption configures a Find call.
type FindOption func(*FindOptions)

// WithSort orders results by field, newest-first when desc is true.
func WithSort(field string, desc bool) FindOption {
	return func(o *FindOptions) {
		o.SortField = field
		o.SortDesc = desc
	}
}

// WithLimit caps the number of returned documents.
func WithLimit(n int) FindOption {
	return func(o *FindOptions) {
		o.Limit = n
	}
}

// Store is the minimal document persistence contract the core depends on.
// Filters are flat field-equality maps; documents are bson-taggable records.
type Store interface {
	Find(ctx context.Context, collection string, filter map[string]any, dest any, opts ...FindOption) error
	FindOne(ctx context.Context, collection string, filter map[string]any, dest any) error
	InsertOne(ctx context.Context, collection string, doc any) (string, error)
	// UpdateOne applies patch as field sets to the first matching document and
	// reports how many documents matched.
	UpdateOne(ctx context.Context, collection string, filter map[string]any, patch map[string]any) (int64, error)
	DeleteOne(ctx context.Context, collection string, filter map[string]any) (int64, error)
	Health(ctx context.Context) error
	Close(ctx context.Context) error
}

// Event is a domain notification published for external consumers.
type Event struct {
	Type    string `json:"type"`
	Key     string `json:"key"`
	Payload any    `json:"payload"`
}

// Publisher fans domain events out to an external broker.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Metrics records operational counters for the API.
type Metrics interface {
	RecordSeed(collection string, count int)
	RecordAuthFailure(kind string)
	RecordTokenIssued()
	RecordBarsGenerated(symbol string, count int)
	RecordLatency(op string, seconds float64)
}
