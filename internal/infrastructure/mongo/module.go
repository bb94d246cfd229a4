package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const countersCollection = "counters"

// Config — настройки подключения к MongoDB. Переменные: FINCH_MONGO_*.
type Config struct {
	URI        string `split_words:"true" default:"mongodb://localhost:27017"`
	Database   string `split_words:"true" default:"finch"`
	Collection string `split_words:"true" default:"bitcoin_prices"`
}

// Client — обёртка над mongo.Client.
type Client struct {
	*mongo.Client
	cfg Config
}

// New подключается к MongoDB и проверяет соединение пингом.
func New(ctx context.Context, cfg Config) (*Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Client{Client: client, cfg: cfg}, nil
}

// Coll возвращает коллекцию наблюдений.
func (c *Client) Coll() *mongo.Collection {
	return c.Database(c.cfg.Database).Collection(c.cfg.Collection)
}

func (c *Client) counters() *mongo.Collection {
	return c.Database(c.cfg.Database).Collection(countersCollection)
}

// EnsureIndexes создаёт индекс по timestamp для выборок по диапазону. Повторный вызов безопасен.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	_, err := c.Coll().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_bitcoin_prices_timestamp"),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}
	return nil
}

// Close отключается от MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.Disconnect(ctx)
}
