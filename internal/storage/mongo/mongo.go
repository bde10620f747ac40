package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	SitesCollection = "sites"
	HitsCollection  = "hits"
)

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

var indexSpecs = []indexSpec{
	{SitesCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}},
	{HitsCollection, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}},
	{HitsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "siteId", Value: 1}, {Key: "ts", Value: 1}},
	}},
	{HitsCollection, mongo.IndexModel{
		Keys: bson.D{{Key: "siteId", Value: 1}, {Key: "type", Value: 1}, {Key: "ts", Value: 1}},
	}},
}

// EnsureIndexes creates the indexes both collections rely on. A failure is
// logged and the remaining indexes are still attempted. It returns the number
// of indexes that could not be created.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) int {
	failed := 0
	for _, spec := range indexSpecs {
		name, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model)
		if err != nil {
			failed++
			log.Warn("index creation failed, continuing without it",
				zap.String("collection", spec.collection),
				zap.Error(err),
			)
			continue
		}
		log.Debug("index ready", zap.String("collection", spec.collection), zap.String("index", name))
	}
	return failed
}
