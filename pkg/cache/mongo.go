package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions configures a MongoCache.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string // defaults to "cache"
}

// MongoCache stores entries as documents. A TTL index on expires_at lets
// the server purge expired entries; Get also checks expiry because the
// purge runs only periodically.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoEntry is the stored document.
type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to MongoDB and ensures the TTL index exists.
func NewMongoCache(ctx context.Context, opts MongoOptions) (Cache, error) {
	if opts.URI == "" {
		return nil, fmt.Errorf("mongo: uri is required")
	}
	if opts.Database == "" {
		return nil, fmt.Errorf("mongo: database is required")
	}
	if opts.Collection == "" {
		opts.Collection = "cache"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	err = RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return Retryable(fmt.Errorf("%w: %v", ErrUnavailable, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo create index: %w", err)
	}

	return &MongoCache{client: client, coll: coll}, nil
}

// Get retrieves a value from MongoDB.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo get: %w", err)
	}
	if entry.expired(time.Now()) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set upserts a value in MongoDB.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := newMongoEntry(key, data, ttl, time.Now())
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set: %w", err)
	}
	return nil
}

// Delete removes a value from MongoDB.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

// Clear removes every document from the cache collection.
func (c *MongoCache) Clear(ctx context.Context) error {
	if _, err := c.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo clear: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func newMongoEntry(key string, data []byte, ttl time.Duration, now time.Time) mongoEntry {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		expires := now.Add(ttl).UTC()
		entry.ExpiresAt = &expires
	}
	return entry
}

func (e mongoEntry) expired(now time.Time) bool {
	return e.ExpiresAt != nil && now.After(*e.ExpiresAt)
}

// Ensure MongoCache implements Cache and Clearer.
var (
	_ Cache   = (*MongoCache)(nil)
	_ Clearer = (*MongoCache)(nil)
)
