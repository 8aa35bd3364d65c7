package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a visitor review on a product post. Comments are never mutated.
type Comment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VideoID   primitive.ObjectID `json:"videoId" bson:"videoId"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Review    string             `json:"review" bson:"review"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
