package models

import "time"

// NewsSentiment is an analyzed news item for one asset.
// SentimentScore is in [-1, 1], Importance in [0, 1].
type NewsSentiment struct {
	ID             string    `bson:"_id" json:"id"`
	AssetID        string    `bson:"asset_id" json:"asset_id"`
	Title          string    `bson:"title" json:"title"`
	Source         string    `bson:"source" json:"source"`
	URL            string    `bson:"url" json:"url"`
	SentimentScore float64   `bson:"sentiment_score" json:"sentiment_score"`
	Importance     float64   `bson:"importance" json:"importance"`
	PublishedAt    time.Time `bson:"published_at" json:"published_at"`
	AnalyzedAt     time.Time `bson:"analyzed_at" json:"analyzed_at"`
}
