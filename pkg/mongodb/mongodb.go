package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/config"
	apperrors "github.com/RashmiFernando/study-sphere/pkg/errors"
)

// Connect opens a client, pings the primary and returns the configured database.
func Connect(cfg *config.MongoConfig, logger *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("mongo connected", zap.String("database", cfg.Database))

	return client, client.Database(cfg.Database), nil
}

// WrapWriteError maps unique index violations onto apperrors.ErrDuplicateKey
// while keeping the driver message for the response details.
func WrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrDuplicateKey, err)
	}
	return err
}
