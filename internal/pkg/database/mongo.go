package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/perfboard/perfboard/internal/config"
	"github.com/perfboard/perfboard/internal/pkg/logger"
)

// MongoDB wraps a lazily-initialized MongoDB client for the review
// store. The driver maintains its own connection pool, so a single
// long-lived client is shared by all callers; initialization is
// guarded by a mutex so concurrent first use constructs exactly one
// client. Connection failure is reported per operation rather than
// aborting the process: components that do not need the document
// store keep working.
type MongoDB struct {
	cfg config.MongoConfig

	mu      sync.Mutex
	client  *mongo.Client
	indexed bool
}

// NewMongo creates a MongoDB handle. No connection is established
// until the first call to Collection or Ping.
func NewMongo(cfg config.MongoConfig) *MongoDB {
	return &MongoDB{cfg: cfg}
}

// Collection returns the reviews collection, connecting on first use.
// The returned handle is guaranteed to have secondary indexes on
// employee_id (ascending) and review_date (descending).
func (db *MongoDB) Collection(ctx context.Context) (*mongo.Collection, error) {
	client, err := db.connect(ctx)
	if err != nil {
		return nil, err
	}

	coll := client.Database(db.cfg.Database).Collection(db.cfg.Collection)

	db.mu.Lock()
	defer db.mu.Unlock()
	if !db.indexed {
		if err := ensureIndexes(ctx, coll); err != nil {
			// Index creation is a performance concern, not a
			// correctness one; log and continue.
			logger.Warn("failed to create review indexes", zap.Error(err))
		} else {
			db.indexed = true
		}
	}

	return coll, nil
}

// Ping verifies the document store is reachable, connecting if needed
func (db *MongoDB) Ping(ctx context.Context) error {
	client, err := db.connect(ctx)
	if err != nil {
		return err
	}
	return client.Ping(ctx, nil)
}

// Close disconnects the client if one was ever created
func (db *MongoDB) Close(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.client == nil {
		return nil
	}
	err := db.client.Disconnect(ctx)
	db.client = nil
	db.indexed = false
	return err
}

func (db *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.client != nil {
		return db.client, nil
	}

	opts := options.Client().
		ApplyURI(db.cfg.URI).
		SetServerSelectionTimeout(10 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetSocketTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	// Test connection before handing the client out
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", db.cfg.Database),
		zap.String("collection", db.cfg.Collection),
	)

	db.client = client
	return db.client, nil
}

func ensureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}}},
		{Keys: bson.D{{Key: "review_date", Value: -1}}},
	})
	return err
}
