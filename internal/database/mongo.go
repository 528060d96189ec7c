package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a MongoDB client and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	closeFn := func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = client.Disconnect(shutdownCtx)
	}

	return client.Database(dbName), closeFn, nil
}

// EnsureIndexes creates the indexes the route queries depend on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"organizations": {
			{Keys: bson.D{{Key: "name", Value: 1}, {Key: "type", Value: 1}}},
		},
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "organization", Value: 1}, {Key: "role", Value: 1}}},
		},
		"projects": {
			{Keys: bson.D{{Key: "organization", Value: 1}, {Key: "status", Value: 1}}},
		},
		"monitoringupdates": {
			{Keys: bson.D{{Key: "project", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		"verificationreports": {
			{Keys: bson.D{{Key: "project", Value: 1}, {Key: "monitoringStartPeriod", Value: 1}, {Key: "monitoringEndPeriod", Value: 1}}},
		},
		"carboncreditnfts": {
			{Keys: bson.D{{Key: "contractAddress", Value: 1}, {Key: "tokenId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "project", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
