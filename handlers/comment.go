package handlers

import (
	"net/http"
	"strings"
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

func loadPost(c *gin.Context, param string) (*models.Post, bool) {
	postID, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return nil, false
	}

	ctx, cancel := opCtx()
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	return &post, true
}

// expandCommentAuthors returns the post's comments with author profiles
// populated, in stored (chronological) order.
func expandCommentAuthors(c *gin.Context, post *models.Post) ([]models.Comment, bool) {
	ctx, cancel := opCtx()
	defer cancel()

	ids := make([]primitive.ObjectID, 0, len(post.Comments))
	for _, cm := range post.Comments {
		ids = append(ids, cm.UserID)
	}
	users, err := loadUsersByID(ctx, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comment authors"})
		return nil, false
	}

	out := make([]models.Comment, len(post.Comments))
	copy(out, post.Comments)
	for i := range out {
		out[i].User = users[out[i].UserID].Public()
	}
	return out, true
}

type addCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddComment appends a comment to the post and returns the full updated
// comment list with authors expanded, matching what the client renders.
func AddComment(c *gin.Context) {
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
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

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    viewerID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	ctx, cancel := opCtx()
	defer cancel()

	_, err := database.Posts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": comment.CreatedAt},
	})
	if err != nil {
		log.Error().Err(err).Str("post", post.ID.Hex()).Msg("comment append failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	post.Comments = append(post.Comments, comment)
	comments, ok := expandCommentAuthors(c, post)
	if !ok {
		return
	}

	if post.UserID != viewerID {
		go notifyUser(post.UserID, "New comment", "Someone commented on your post")
	}

	c.JSON(http.StatusOK, comments)
}

func GetComments(c *gin.Context) {
	post, ok := loadPost(c, "postId")
	if !ok {
		return
	}
	comments, ok := expandCommentAuthors(c, post)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, comments)
}

// DeleteComment removes a comment by id. Only the comment author or the post
// owner may delete; removing an id that is already gone is a no-op success.
func DeleteComment(c *gin.Context) {
	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}
	post, ok := loadPost(c, "postId")
	if !ok {
		return
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	for _, cm := range post.Comments {
		if cm.ID == commentID && !feed.CanDeleteComment(cm, post.UserID, viewerID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this comment"})
			return
		}
	}

	remaining, removed := feed.RemoveComment(post.Comments, commentID)
	if removed {
		ctx, cancel := opCtx()
		defer cancel()

		_, err := database.Posts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
			"$set": bson.M{"comments": remaining, "updatedAt": time.Now()},
		})
		if err != nil {
			log.Error().Err(err).Str("post", post.ID.Hex()).Msg("comment delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
