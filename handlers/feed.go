package handlers

import (
	"context"
	"net/http"
	"time"

	"comsiconnect/database"
	"comsiconnect/feed"
	"comsiconnect/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Each request gets its own ranker; rand.Rand is not safe for concurrent use.
func newRequestRanker() *feed.Ranker {
	return feed.NewRanker()
}

// populatePost expands the owner and comment authors on post and stamps the
// viewer-relative flags. Every post leaving the API goes through here.
func populatePost(ctx context.Context, post *models.Post, viewer *models.User) error {
	ids := []primitive.ObjectID{post.UserID}
	for _, cm := range post.Comments {
		ids = append(ids, cm.UserID)
	}

	users, err := loadUsersByID(ctx, ids)
	if err != nil {
		return err
	}

	feed.Annotate(post, viewer, users[post.UserID])
	for i := range post.Comments {
		post.Comments[i].User = users[post.Comments[i].UserID].Public()
	}
	return nil
}

func CreatePost(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}

	content, images, ok := readPostBody(c, "comsiconnect/posts")
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	user, err := loadUser(ctx, viewerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now()
	post := models.Post{
		ID:      primitive.NewObjectID(),
		UserID:  user.ID,
		Content: content,
		Images:  images,
		InteractionSets: models.InteractionSets{
			LikedBy:    []primitive.ObjectID{},
			RepostedBy: []primitive.ObjectID{},
			SavedBy:    []primitive.ObjectID{},
		},
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Posts.InsertOne(ctx, post); err != nil {
		log.Error().Err(err).Msg("post insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	// Ownership set and its counter; the counter is recomputed from the set
	// size, never incremented blindly.
	posts := append(user.Posts, post.ID)
	_, err = database.Users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$addToSet": bson.M{"posts": post.ID},
		"$set":      bson.M{"postsCount": len(posts), "updatedAt": now},
	})
	if err != nil {
		log.Error().Err(err).Str("post", post.ID.Hex()).Msg("owner update failed after post insert")
	}

	feed.Annotate(&post, user, user)
	c.JSON(http.StatusOK, post)
}

// GetFeedPosts assembles the personalized feed: the whole pool and the
// viewer's following set are fetched, both pools are ranked with the
// recency-decay score, reposts are materialized into synthetic entries and
// every entry is annotated for the viewer.
func GetFeedPosts(c *gin.Context) {
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

	cursor, err := database.Posts.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	var docs []models.Post
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	pool := make([]*models.Post, len(docs))
	idSet := make(map[primitive.ObjectID]bool)
	for i := range docs {
		pool[i] = &docs[i]
		idSet[docs[i].UserID] = true
		for _, r := range docs[i].RepostedBy {
			idSet[r] = true
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := loadUsersByID(ctx, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	global, following := feed.BuildFeed(newRequestRanker(), pool, users, viewer)

	c.JSON(http.StatusOK, gin.H{
		"posts":          global,
		"followingPosts": following,
	})
}

// GetAllUsers lists every account except the viewer, follow state stamped.
func GetAllUsers(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	cursor, err := database.Users.Find(ctx, bson.M{"_id": bson.M{"$ne": viewerID}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	out := make([]*models.PublicUser, 0, len(users))
	for i := range users {
		pub := users[i].Public()
		pub.IsFollowed = feed.Contains(users[i].Followers, viewerID)
		out = append(out, pub)
	}
	c.JSON(http.StatusOK, out)
}
