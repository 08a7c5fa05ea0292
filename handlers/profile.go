package handlers

import (
	"net/http"
	"time"

	"comsiconnect/database"
	"comsiconnect/feed"
	"comsiconnect/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetProfile(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	user, err := loadUser(ctx, viewerID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if user.Avatar == "" {
		user.Avatar = models.DefaultAvatar
	}
	c.JSON(http.StatusOK, user)
}

type profileUpdate struct {
	FullName    string `json:"fullName" form:"fullName"`
	Bio         string `json:"bio" form:"bio"`
	Department  string `json:"department" form:"department"`
	YearOfStudy string `json:"yearOfStudy" form:"yearOfStudy"`
}

func UpdateProfile(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	var data profileUpdate
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if data.FullName != "" {
		set["fullName"] = data.FullName
	}
	if data.Bio != "" {
		set["bio"] = data.Bio
	}
	if data.Department != "" {
		set["department"] = data.Department
	}
	if data.YearOfStudy != "" {
		set["yearOfStudy"] = data.YearOfStudy
	}

	if file, err := c.FormFile("file"); err == nil {
		url, err := uploadAvatar(ctx, file, viewerID.Hex())
		if err != nil {
			log.Error().Err(err).Msg("avatar upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
			return
		}
		set["avatar"] = url
	}

	result := database.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": viewerID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var user models.User
	if err := result.Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ViewProfile returns another user's public profile, follow state stamped,
// along with their posts annotated for the viewer.
func ViewProfile(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	viewer, err := loadUser(ctx, viewerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	target, err := loadUser(ctx, targetID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	pub := target.Public()
	pub.IsFollowed = feed.Contains(target.Followers, viewerID)

	posts, ok := userPosts(c, target, viewer)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": pub, "posts": posts})
}

// GetFollowList returns the populated follower and following lists of a user.
func GetFollowList(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	target, err := loadUser(ctx, targetID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	users, err := loadUsersByID(ctx, append(append([]primitive.ObjectID{}, target.Followers...), target.Following...))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	expand := func(ids []primitive.ObjectID) []*models.PublicUser {
		out := make([]*models.PublicUser, 0, len(ids))
		for _, id := range ids {
			if u, ok := users[id]; ok {
				pub := u.Public()
				pub.IsFollowed = feed.Contains(u.Followers, viewerID)
				out = append(out, pub)
			}
		}
		return out
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": expand(target.Followers),
		"following": expand(target.Following),
	})
}

// userPosts loads owner's posts newest first, annotated for viewer.
func userPosts(c *gin.Context, owner, viewer *models.User) ([]*models.Post, bool) {
	ctx, cancel := opCtx()
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Posts.Find(ctx, bson.M{"user": owner.ID}, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return nil, false
	}
	defer cursor.Close(ctx)

	var docs []models.Post
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return nil, false
	}

	out := make([]*models.Post, 0, len(docs))
	for i := range docs {
		feed.Annotate(&docs[i], viewer, owner)
		out = append(out, &docs[i])
	}
	return out, true
}

func GetMyPosts(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	viewer, err := loadUser(ctx, viewerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	posts, ok := userPosts(c, viewer, viewer)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, posts)
}

type updatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

func UpdatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}
	post, ok := loadPost(c, "postId")
	if !ok {
		return
	}
	if post.UserID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can edit a post"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	now := time.Now()
	_, err := database.Posts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
		"$set": bson.M{"content": req.Content, "updatedAt": now},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	post.Content = req.Content
	post.UpdatedAt = now

	viewer, err := loadUser(ctx, viewerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := populatePost(ctx, post, viewer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to populate post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost removes an owned post, prunes it from the owner's ownership set
// (counter recomputed from the set size) and sweeps the id out of every
// user's liked/saved/reposted sets so no dangling references survive.
func DeletePost(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}
	post, ok := loadPost(c, "postId")
	if !ok {
		return
	}
	if post.UserID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete a post"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	if _, err := database.Posts.DeleteOne(ctx, bson.M{"_id": post.ID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	_, err := database.Users.UpdateMany(ctx, bson.M{}, bson.M{
		"$pull": bson.M{
			"posts":         post.ID,
			"likedPosts":    post.ID,
			"savedPosts":    post.ID,
			"repostedPosts": post.ID,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("post", post.ID.Hex()).Msg("post reference sweep failed")
	}

	owner, err := loadUser(ctx, viewerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	_, err = database.Users.UpdateOne(ctx, bson.M{"_id": owner.ID}, bson.M{
		"$set": bson.M{"postsCount": len(owner.Posts), "updatedAt": time.Now()},
	})
	if err != nil {
		log.Error().Err(err).Msg("posts count update failed")
	}
	owner.PostsCount = len(owner.Posts)

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted", "user": owner})
}
