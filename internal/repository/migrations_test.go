package repository

import (
	"context"
	"testing"

	"github.com/developerzohaib786/redsent-ai/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestMigrations_LikedByToString(t *testing.T) {
	shared := requireDB(t)
	ctx := context.Background()

	db := shared.Client().Database("redsent_migrations_test")
	require.NoError(t, db.Drop(ctx))
	defer func() { _ = db.Drop(ctx) }()

	first, second := primitive.NewObjectID(), primitive.NewObjectID()
	legacy := bson.M{
		"_id":          primitive.NewObjectID(),
		"productTitle": "Legacy product",
		"likeCount":    2,
		"likedBy":      bson.A{first, second},
	}
	bare := bson.M{
		"_id":          primitive.NewObjectID(),
		"productTitle": "Product without likes",
	}
	_, err := db.Collection(productsCollection).InsertMany(ctx, []interface{}{legacy, bare})
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(ctx, db, zap.NewNop()))

	repo := NewProductRepository(db)

	migrated, err := repo.FindByID(ctx, legacy["_id"].(primitive.ObjectID).Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{first.Hex(), second.Hex()}, migrated.LikedBy)
	assert.Equal(t, 2, migrated.LikeCount)

	var raw bson.M
	require.NoError(t, db.Collection(productsCollection).FindOne(ctx, bson.M{"_id": legacy["_id"]}).Decode(&raw))
	assert.Equal(t, bson.A{}, raw["anonymousLikedBy"])
	assert.EqualValues(t, 0, raw["anonymousLikeCount"])

	var rawBare bson.M
	require.NoError(t, db.Collection(productsCollection).FindOne(ctx, bson.M{"_id": bare["_id"]}).Decode(&rawBare))
	assert.Equal(t, bson.A{}, rawBare["likedBy"])
	assert.EqualValues(t, 0, rawBare["likeCount"])
	assert.Equal(t, bson.A{}, rawBare["anonymousLikedBy"])
	assert.EqualValues(t, 0, rawBare["anonymousLikeCount"])

	// A second run, and a direct re-application of the data migration, leave documents untouched.
	require.NoError(t, database.RunMigrations(ctx, db, zap.NewNop()))
	for _, m := range database.Migrations() {
		if m.Name == "liked_by_to_string" {
			require.NoError(t, m.Up(ctx, db))
		}
	}

	var again bson.M
	require.NoError(t, db.Collection(productsCollection).FindOne(ctx, bson.M{"_id": legacy["_id"]}).Decode(&again))
	assert.Equal(t, raw, again)

	applied, err := db.Collection("migrations").CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, len(database.Migrations()), applied)
}
