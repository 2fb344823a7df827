package database

import (
	"context"
	"fmt"
	"time"

	"github.com/wordbridge/core/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	CollUsers        = "users"
	CollTranslations = "saved_translations"
)

// DB bundles the Mongo client and the application database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a MongoDB connection, verifies it, and ensures indexes.
func Connect(cfg *config.AppConfig) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	d := &DB{client: client, db: client.Database(cfg.MongoDatabase)}
	if err := d.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return d, nil
}

// Users returns the users collection.
func (d *DB) Users() *mongo.Collection { return d.db.Collection(CollUsers) }

// Translations returns the saved-translations collection.
func (d *DB) Translations() *mongo.Collection { return d.db.Collection(CollTranslations) }

// Close disconnects from MongoDB.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// ensureIndexes creates the indexes the modules rely on. The unique
// compound index on the natural key makes lookup-or-create safe under
// concurrent requests for the same new word.
func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = d.Translations().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "word", Value: 1},
				{Key: "srcLang", Value: 1},
				{Key: "targetLang", Value: 1},
				{Key: "userId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "word", Value: "text"}},
		},
	})
	return err
}
