package database

import (
	"context"
	"fmt"
	"time"

	"github.com/auto-explainer/core/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 3 * time.Second
)

// Client owns the mongo connection and the selected database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect creates the mongo client. The driver dials lazily, so an
// unreachable server does not fail startup; use Ping to check reachability.
func Connect(ctx context.Context, cfg config.DatabaseRuntimeConfig) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return &Client{client: client, db: client.Database(cfg.Name)}, nil
}

// Name returns the database name.
func (c *Client) Name() string { return c.db.Name() }

// Collection returns a handle to the named collection.
func (c *Client) Collection(name string) *mongo.Collection { return c.db.Collection(name) }

// Ping verifies the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.client.Ping(ctx, readpref.Primary())
}

// CollectionNames lists the collections of the selected database.
func (c *Client) CollectionNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return c.db.ListCollectionNames(ctx, bson.D{})
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
