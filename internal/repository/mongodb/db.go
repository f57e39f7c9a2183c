// Package mongodb contains MongoDB implementations of repository interfaces.
package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DB bundles the collections used by the repositories.
type DB struct {
	client   *mongo.Client
	Notes    *mongo.Collection
	Versions *mongo.Collection
	Tasks    *mongo.Collection
	Users    *mongo.Collection
	Limiter  *mongo.Collection
}

// New connects to MongoDB and resolves the working collections.
func New(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	d := client.Database(database)
	return &DB{
		client:   client,
		Notes:    d.Collection("notes"),
		Versions: d.Collection("note_versions"),
		Tasks:    d.Collection("tasks"),
		Users:    d.Collection("users"),
		Limiter:  d.Collection("auth_limiter"),
	}, nil
}

// Close disconnects the underlying client.
func (db *DB) Close(ctx context.Context) error { return db.client.Disconnect(ctx) }

// EnsureIndexes creates the indexes the repositories rely on. Runs on startup,
// the way SQL backends run migrations.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	_, err := db.Notes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_deleted", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = db.Versions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "note_id", Value: 1}, {Key: "version", Value: -1}},
	})
	if err != nil {
		return err
	}
	_, err = db.Tasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_deleted", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = db.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
