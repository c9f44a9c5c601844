// Package mongo implements the record-store adapter on MongoDB.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 5 * time.Second

// DB wraps a mongo client and database handle. The repositories hang off
// it so wiring in main stays a single Open call.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to MongoDB, pings, and ensures the unique indexes the
// user collection relies on. A failure here is fatal to the caller.
func Open(uri, database string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	d := &DB{client: client, db: client.Database(database)}
	if err := d.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return d, nil
}

// Close disconnects the underlying client.
func (d *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return d.client.Disconnect(ctx)
}

func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
