// Package database owns the MongoDB connection and the survey response
// store built on top of it.
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/brandscapers/dropbydrop/config"
	"github.com/brandscapers/dropbydrop/log"
)

var (
	connectOnce sync.Once
	client      *mongo.Client
	clientErr   error
)

// Connect dials MongoDB on first use and reuses the pooled client on every
// later call. The handle is passed explicitly to the store; nothing else
// reaches for it.
func Connect(ctx context.Context, cfg config.Config) (*mongo.Database, error) {
	connectOnce.Do(func() {
		client, clientErr = dial(ctx, cfg)
	})
	if clientErr != nil {
		return nil, clientErr
	}
	return client.Database(cfg.MongoDatabase), nil
}

// Disconnect closes the pooled client, if one was ever opened.
func Disconnect(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Warn("db.disconnect:", err)
	}
}

func dial(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	dialCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	c, err := mongo.Connect(dialCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}
	if err = c.Ping(dialCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("db: ping: %w", err)
	}

	log.Info("Connected to MongoDB database " + cfg.MongoDatabase)
	return c, nil
}
