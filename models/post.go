package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InteractionSets holds the per-target membership sets that are the
// authoritative record of who liked/reposted/saved a target. Viewer-relative
// flags are derived from these at read time.
type InteractionSets struct {
	LikedBy    []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	RepostedBy []primitive.ObjectID `bson:"repostedBy" json:"repostedBy"`
	SavedBy    []primitive.ObjectID `bson:"savedBy" json:"savedBy"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	UserID    primitive.ObjectID `bson:"user" json:"-"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	User *PublicUser `bson:"-" json:"user,omitempty"`
}

type Post struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID  primitive.ObjectID `bson:"user" json:"-"`
	Content string             `bson:"content" json:"content"`
	Images  []string           `bson:"images" json:"images"`

	InteractionSets `bson:",inline"`

	Comments []Comment `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// Output-only fields, stamped by the annotation pass. FeedID is the display
	// key (composite for synthetic repost entries); TargetID is always the hex
	// id of the underlying interaction target.
	FeedID         string      `bson:"-" json:"_id"`
	TargetID       string      `bson:"-" json:"postId"`
	User           *PublicUser `bson:"-" json:"user,omitempty"`
	RepostedByUser *PublicUser `bson:"-" json:"repostedByUser,omitempty"`
	IsLiked        bool        `bson:"-" json:"isLiked"`
	IsSaved        bool        `bson:"-" json:"isSaved"`
	IsReposted     bool        `bson:"-" json:"isReposted"`
}

// Clone returns a shallow copy for synthetic feed entries: content, images and
// interaction sets are shared with the original, output fields are restamped
// by the caller.
func (p *Post) Clone() *Post {
	cp := *p
	return &cp
}
