package handlers

import (
	"context"
	"fmt"
	"math/rand"
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
)

var (
	anonAdjectives = []string{"Chill", "Brave", "Sneaky", "Clever", "Swift", "Silent", "Fierce", "Calm"}
	anonAnimals    = []string{"Fox", "Wolf", "Tiger", "Panda", "Hawk", "Koala", "Otter", "Raven"}
)

// newAnonymousID builds a handle like "SwiftOtter42".
func newAnonymousID(r *rand.Rand) string {
	adj := anonAdjectives[r.Intn(len(anonAdjectives))]
	animal := anonAnimals[r.Intn(len(anonAnimals))]
	return fmt.Sprintf("%s%s%d", adj, animal, 10+r.Intn(90))
}

// ensureAnonymousID lazily assigns the user's anonymous handle on first use.
// The handle is unique across users; collisions are retried.
func ensureAnonymousID(ctx context.Context, user *models.User) (string, error) {
	if user.AnonymousID != "" {
		return user.AnonymousID, nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for attempt := 0; attempt < 10; attempt++ {
		candidate := newAnonymousID(r)
		count, err := database.Users.CountDocuments(ctx, bson.M{"anonymousID": candidate})
		if err != nil {
			return "", err
		}
		if count > 0 {
			continue
		}
		_, err = database.Users.UpdateOne(ctx, bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"anonymousID": candidate}})
		if err != nil {
			return "", err
		}
		user.AnonymousID = candidate
		return candidate, nil
	}
	return "", fmt.Errorf("could not allocate a unique anonymous id")
}

func GetAnonymousID(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
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

	id, err := ensureAnonymousID(ctx, user)
	if err != nil {
		log.Error().Err(err).Msg("anonymous id allocation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign anonymous ID"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"anonymousID": id})
}

func CreateConfession(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
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

	anonID, err := ensureAnonymousID(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign anonymous ID"})
		return
	}

	content, images, ok := readPostBody(c, "comsiconnect/confessions")
	if !ok {
		return
	}

	now := time.Now()
	cf := models.Confession{
		ID:          primitive.NewObjectID(),
		AnonymousID: anonID,
		UserID:      user.ID,
		Content:     content,
		Images:      images,
		InteractionSets: models.InteractionSets{
			LikedBy:    []primitive.ObjectID{},
			RepostedBy: []primitive.ObjectID{},
			SavedBy:    []primitive.ObjectID{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := database.Confessions.InsertOne(ctx, cf); err != nil {
		log.Error().Err(err).Msg("confession insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create confession"})
		return
	}

	_, err = database.Users.UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$addToSet": bson.M{"confessionPosts": cf.ID}})
	if err != nil {
		log.Error().Err(err).Msg("confession ownership update failed")
	}

	feed.AnnotateConfession(&cf, viewerID)
	c.JSON(http.StatusOK, cf)
}

// GetConfessions returns every confession in shuffled order, viewer flags
// stamped, author identity reduced to the anonymous handle.
func GetConfessions(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	cursor, err := database.Confessions.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch confessions"})
		return
	}
	defer cursor.Close(ctx)

	var docs []models.Confession
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode confessions"})
		return
	}

	out := make([]*models.Confession, 0, len(docs))
	for i := range docs {
		feed.AnnotateConfession(&docs[i], viewerID)
		out = append(out, &docs[i])
	}
	newRequestRanker().ShuffleConfessions(out)

	c.JSON(http.StatusOK, out)
}

// ToggleConfessionInteraction mirrors the post toggle against the
// confessions collection.
func ToggleConfessionInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind, err := feed.ParseKind(req.InteractionType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}
	confessionID, err := primitive.ObjectIDFromHex(c.Param("confessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confession ID"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	viewer, err := loadUser(ctx, viewerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var cf models.Confession
	err = database.Confessions.FindOne(ctx, bson.M{"_id": confessionID}).Decode(&cf)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Confession not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	nowSet := feed.Toggle(kind, cf.ID, &cf.InteractionSets, viewer)

	if err := applyToggle(ctx, database.Confessions, kind, cf.ID, viewerID, nowSet); err != nil {
		if err == errInteractionDrift {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Str("confession", cf.ID.Hex()).Msg("confession interaction write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update interaction"})
		return
	}

	feed.AnnotateConfession(&cf, viewerID)
	c.JSON(http.StatusOK, cf)
}

func GetMyConfessions(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	cursor, err := database.Confessions.Find(ctx, bson.M{"user": viewerID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch confessions"})
		return
	}
	defer cursor.Close(ctx)

	var docs []models.Confession
	if err := cursor.All(ctx, &docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode confessions"})
		return
	}

	out := make([]*models.Confession, 0, len(docs))
	for i := range docs {
		feed.AnnotateConfession(&docs[i], viewerID)
		out = append(out, &docs[i])
	}
	c.JSON(http.StatusOK, out)
}

func UpdateConfession(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}
	confessionID, err := primitive.ObjectIDFromHex(c.Param("confessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confession ID"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	result := database.Confessions.FindOneAndUpdate(ctx,
		bson.M{"_id": confessionID, "user": viewerID},
		bson.M{"$set": bson.M{"content": req.Content, "updatedAt": time.Now()}},
	)
	var cf models.Confession
	if err := result.Decode(&cf); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Confession not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update confession"})
		return
	}

	cf.Content = req.Content
	feed.AnnotateConfession(&cf, viewerID)
	c.JSON(http.StatusOK, cf)
}

func DeleteConfession(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}
	confessionID, err := primitive.ObjectIDFromHex(c.Param("confessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid confession ID"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	res, err := database.Confessions.DeleteOne(ctx, bson.M{"_id": confessionID, "user": viewerID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete confession"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Confession not found"})
		return
	}

	_, err = database.Users.UpdateMany(ctx, bson.M{}, bson.M{
		"$pull": bson.M{
			"confessionPosts": confessionID,
			"likedPosts":      confessionID,
			"savedPosts":      confessionID,
			"repostedPosts":   confessionID,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("confession", confessionID.Hex()).Msg("confession reference sweep failed")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confession deleted"})
}
