package initializers

import (
	"context"
	"fmt"
	"time"

	"github.com/Kariqs/agromarket-api/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func ConnectToMongo(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client.Database(cfg.Mongo.Database), nil
}
