package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const migrationsCollection = "migrations"

// Migration is a single idempotent schema or data change
type Migration struct {
	Version int
	Name    string
	Up      func(ctx context.Context, db *mongo.Database) error
}

type migrationRecord struct {
	Version   int       `bson:"_id"`
	Name      string    `bson:"name"`
	AppliedAt time.Time `bson:"appliedAt"`
}

// Migrations returns the ordered list of migrations known to this build
func Migrations() []Migration {
	return []Migration{
		{Version: 1, Name: "create_users_email_index", Up: createUsersEmailIndex},
		{Version: 2, Name: "create_comments_video_index", Up: createCommentsVideoIndex},
		{Version: 3, Name: "create_refresh_tokens_index", Up: createRefreshTokensIndex},
		{Version: 4, Name: "liked_by_to_string", Up: likedByToString},
	}
}

// RunMigrations executes all pending migrations in version order
func RunMigrations(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return runMigrations(ctx, db, Migrations(), logger)
}

func runMigrations(ctx context.Context, db *mongo.Database, migrations []Migration, logger *zap.Logger) error {
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })

	records := db.Collection(migrationsCollection)
	logger.Info("Checking for pending migrations...", zap.Int("known", len(migrations)))

	for _, m := range migrations {
		err := records.FindOne(ctx, bson.M{"_id": m.Version}).Err()
		if err == nil {
			continue
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("failed to read migration %d: %w", m.Version, err)
		}

		logger.Info("Applying migration", zap.Int("version", m.Version), zap.String("name", m.Name))
		if err := m.Up(ctx, db); err != nil {
			logger.Error("Failed to run migration", zap.Int("version", m.Version), zap.Error(err))
			return fmt.Errorf("failed to run migration %d (%s): %w", m.Version, m.Name, err)
		}

		record := migrationRecord{Version: m.Version, Name: m.Name, AppliedAt: time.Now().UTC()}
		if _, err := records.InsertOne(ctx, record); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}

	logger.Info("Migrations completed successfully")
	return nil
}

func createUsersEmailIndex(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func createCommentsVideoIndex(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("comments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "videoId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}

func createRefreshTokensIndex(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("refresh_tokens").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// likedByToString rewrites likedBy entries stored as ObjectIds into hex strings
// and backfills like fields missing from documents created before likes existed.
func likedByToString(ctx context.Context, db *mongo.Database) error {
	products := db.Collection("products")

	convert := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"likedBy": bson.M{"$map": bson.M{
				"input": "$likedBy",
				"as":    "id",
				"in":    bson.M{"$toString": "$$id"},
			}},
		}}},
	}
	filter := bson.M{"likedBy": bson.M{"$elemMatch": bson.M{"$type": "objectId"}}}
	if _, err := products.UpdateMany(ctx, filter, convert); err != nil {
		return fmt.Errorf("failed to convert likedBy: %w", err)
	}

	backfills := []struct {
		field string
		set   bson.M
	}{
		{"likedBy", bson.M{"likedBy": bson.A{}, "likeCount": 0}},
		{"anonymousLikedBy", bson.M{"anonymousLikedBy": bson.A{}, "anonymousLikeCount": 0}},
	}
	for _, b := range backfills {
		_, err := products.UpdateMany(ctx,
			bson.M{b.field: bson.M{"$exists": false}},
			bson.M{"$set": b.set},
		)
		if err != nil {
			return fmt.Errorf("failed to backfill %s: %w", b.field, err)
		}
	}

	return nil
}
