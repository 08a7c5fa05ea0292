package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultAvatar = "https://dummyimage.com/300x300/000/fff.png&text=Add+Profile+Picture"

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string             `bson:"fullName" json:"fullName"`
	Username    string             `bson:"username" json:"username"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	Bio         string             `bson:"bio" json:"bio"`
	Email       string             `bson:"email" json:"email"`
	Department  string             `bson:"department" json:"department"`
	YearOfStudy string             `bson:"yearOfStudy" json:"yearOfStudy"`

	// Denormalized counters, always recomputed from the set sizes below.
	PostsCount     int `bson:"postsCount" json:"postsCount"`
	FollowersCount int `bson:"followersCount" json:"followersCount"`
	FollowingCount int `bson:"followingCount" json:"followingCount"`

	Followers []primitive.ObjectID `bson:"followers" json:"followers"`
	Following []primitive.ObjectID `bson:"following" json:"following"`

	SavedPosts    []primitive.ObjectID `bson:"savedPosts" json:"savedPosts"`
	LikedPosts    []primitive.ObjectID `bson:"likedPosts" json:"likedPosts"`
	RepostedPosts []primitive.ObjectID `bson:"repostedPosts" json:"repostedPosts"`
	Posts         []primitive.ObjectID `bson:"posts" json:"posts"`

	// Lazily generated on first confession access; never exposed alongside
	// the real identity.
	AnonymousID     string               `bson:"anonymousID,omitempty" json:"anonymousID,omitempty"`
	ConfessionPosts []primitive.ObjectID `bson:"confessionPosts" json:"confessionPosts"`

	PasswordHash string `bson:"passwordHash" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the profile shape embedded in feed responses. IsFollowed is
// viewer-relative and computed at read time, never stored.
type PublicUser struct {
	ID             primitive.ObjectID `json:"_id"`
	FullName       string             `json:"fullName"`
	Username       string             `json:"username"`
	Avatar         string             `json:"avatar"`
	Bio            string             `json:"bio"`
	Department     string             `json:"department"`
	YearOfStudy    string             `json:"yearOfStudy"`
	PostsCount     int                `json:"postsCount"`
	FollowersCount int                `json:"followersCount"`
	FollowingCount int                `json:"followingCount"`
	IsFollowed     bool               `json:"isFollowed"`
}

func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}
	avatar := u.Avatar
	if avatar == "" {
		avatar = DefaultAvatar
	}
	return &PublicUser{
		ID:             u.ID,
		FullName:       u.FullName,
		Username:       u.Username,
		Avatar:         avatar,
		Bio:            u.Bio,
		Department:     u.Department,
		YearOfStudy:    u.YearOfStudy,
		PostsCount:     u.PostsCount,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}
}
