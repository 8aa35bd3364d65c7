package repository

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	productsCollection      = "products"
	usersCollection         = "users"
	commentsCollection      = "comments"
	refreshTokensCollection = "refresh_tokens"
)

// parseID converts a hex id into an ObjectID, returning invalid when it is malformed
func parseID(id string, invalid error) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, invalid
	}
	return oid, nil
}
