package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Confession is authored under an anonymous handle. The real user id is kept
// for ownership and the interaction ledger but never serialized.
type Confession struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AnonymousID string             `bson:"anonymousID" json:"anonymousID"`
	UserID      primitive.ObjectID `bson:"user" json:"-"`
	Content     string             `bson:"content" json:"content"`
	Images      []string           `bson:"images" json:"images"`

	InteractionSets `bson:",inline"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	IsLiked    bool `bson:"-" json:"isLiked"`
	IsSaved    bool `bson:"-" json:"isSaved"`
	IsReposted bool `bson:"-" json:"isReposted"`
}
