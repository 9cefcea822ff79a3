package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domrepo "InvestAgent/internal/domain/repository"
	pkgmongo "InvestAgent/pkg/mongo"
)

// MongoStore implements the document Store on MongoDB.
type MongoStore struct {
	client *pkgmongo.Client
	db     *mongo.Database
}

// NewMongoStore creates MongoDB-backed storage.
func NewMongoStore(client *pkgmongo.Client) domrepo.Store {
	return &MongoStore{client: client, db: client.DB()}
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter map[string]any, dest any, opts ...domrepo.FindOption) error {
	fo := &domrepo.FindOptions{}
	for _, opt := range opts {
		opt(fo)
	}

	mopts := options.Find()
	if fo.SortField != "" {
		order := 1
		if fo.SortDesc {
			order = -1
		}
		mopts.SetSort(bson.D{{Key: fo.SortField, Value: order}})
	}
	if fo.Limit > 0 {
		mopts.SetLimit(int64(fo.Limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, toBSON(filter), mopts)
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, dest); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, filter map[string]any, dest any) error {
	err := s.db.Collection(collection).FindOne(ctx, toBSON(filter)).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domrepo.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find one %s: %w", collection, err)
	}
	return nil
}

func (s *MongoStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domrepo.ErrDuplicateKey
		}
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	if id, ok := res.InsertedID.(string); ok {
		return id, nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (s *MongoStore) UpdateOne(ctx context.Context, collection string, filter map[string]any, patch map[string]any) (int64, error) {
	res, err := s.db.Collection(collection).UpdateOne(ctx, toBSON(filter), bson.M{"$set": toBSON(patch)})
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", collection, err)
	}
	// Matched, not modified: a no-op patch on an existing document still counts.
	return res.MatchedCount, nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, collection string, filter map[string]any) (int64, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, toBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func toBSON(m map[string]any) bson.M {
	out := make(bson.M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
