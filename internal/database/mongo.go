package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/developerzohaib786/redsent-ai/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const defaultConnectTimeout = 10 * time.Second

// Service owns the process-wide mongo client. It is created once in main,
// handed to every repository and closed on shutdown.
type Service struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// New connects to MongoDB and verifies the primary is reachable
func New(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Service, error) {
	if cfg.URL == "" {
		return nil, errors.New("MONGODB_URL is not configured")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultConnectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Info("Connecting to MongoDB", zap.String("database", cfg.Database))

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewFromClient(client, cfg.Database, logger), nil
}

// NewFromClient wraps an already connected client
func NewFromClient(client *mongo.Client, database string, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}
}

// DB returns the application database
func (s *Service) DB() *mongo.Database {
	return s.db
}

// Health pings the primary and reports the outcome
func (s *Service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return map[string]string{
			"status": "down",
			"error":  err.Error(),
		}
	}

	return map[string]string{
		"status":  "up",
		"latency": time.Since(start).String(),
	}
}

// Close disconnects the client
func (s *Service) Close(ctx context.Context) error {
	s.logger.Info("Disconnecting from MongoDB")
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongodb: %w", err)
	}
	return nil
}
