package handlers

import (
	"context"
	"errors"
	"net/http"

	"comsiconnect/database"
	"comsiconnect/feed"
	"comsiconnect/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type interactionRequest struct {
	InteractionType string `json:"interactionType" binding:"required"`
}

// applyToggle persists both sides of a toggled interaction. The target-side
// set is authoritative; both updates run inside a transaction when the
// deployment supports one, otherwise the target write is compensated if the
// user-side write fails. A divergence that cannot be rolled back is surfaced
// as a distinct conflict, never swallowed.
func applyToggle(ctx context.Context, coll *mongo.Collection, k feed.Kind, targetID, viewerID primitive.ObjectID, nowSet bool) error {
	op := "$pull"
	if nowSet {
		op = "$addToSet"
	}
	targetUpdate := bson.M{op: bson.M{k.TargetField(): viewerID}}
	userUpdate := bson.M{op: bson.M{k.UserField(): targetID}}

	err := database.Txn(ctx, func(ctx context.Context) error {
		if _, err := coll.UpdateOne(ctx, bson.M{"_id": targetID}, targetUpdate); err != nil {
			return err
		}
		if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": viewerID}, userUpdate); err != nil {
			// Compensate the target write so the two sides cannot diverge.
			undo := "$addToSet"
			if nowSet {
				undo = "$pull"
			}
			if _, undoErr := coll.UpdateOne(ctx, bson.M{"_id": targetID},
				bson.M{undo: bson.M{k.TargetField(): viewerID}}); undoErr != nil {
				log.Error().Err(undoErr).
					Str("target", targetID.Hex()).
					Str("kind", k.String()).
					Msg("interaction rollback failed, sides diverged")
				return errInteractionDrift
			}
			return err
		}
		return nil
	})
	return err
}

var errInteractionDrift = errors.New("interaction state diverged between post and user")

// TogglePostInteraction flips like/save/repost between the viewer and a post.
// The flip is strict: state is read from the authoritative membership set,
// never from a stored flag. The response is the fully repopulated post.
func TogglePostInteraction(c *gin.Context) {
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
	postID, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	ctx, cancel := opCtx()
	defer cancel()

	viewer, err := loadUser(ctx, viewerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	nowSet := feed.Toggle(kind, post.ID, &post.InteractionSets, viewer)

	if err := applyToggle(ctx, database.Posts, kind, post.ID, viewerID, nowSet); err != nil {
		if err == errInteractionDrift {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Str("post", post.ID.Hex()).Msg("interaction write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update interaction"})
		return
	}

	if err := populatePost(ctx, &post, viewer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to populate post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

type followRequest struct {
	Action string `json:"action" binding:"required,oneof=follow unfollow"`
}

// FollowUser applies follow/unfollow between the viewer and another account.
// Counters are recomputed from set sizes and the returned isFollowed is
// re-derived from membership after the mutation.
func FollowUser(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewerID, ok := viewerObjectID(c)
	if !ok {
		return
	}
	targetID, err := primitive.ObjectIDFromHex(c.Param("userId"))
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

	isFollowed, err := feed.SetFollow(viewer, target, req.Action == "follow")
	if err == feed.ErrSelfFollow {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow state"})
		return
	}

	err = database.Txn(ctx, func(ctx context.Context) error {
		if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": viewer.ID}, bson.M{"$set": bson.M{
			"following":      viewer.Following,
			"followingCount": viewer.FollowingCount,
		}}); err != nil {
			return err
		}
		_, err := database.Users.UpdateOne(ctx, bson.M{"_id": target.ID}, bson.M{"$set": bson.M{
			"followers":      target.Followers,
			"followersCount": target.FollowersCount,
		}})
		return err
	})
	if err != nil {
		log.Error().Err(err).
			Str("follower", viewer.ID.Hex()).
			Str("target", target.ID.Hex()).
			Msg("follow write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update follow state"})
		return
	}

	if isFollowed {
		go notifyUser(target.ID, "New follower",
			viewer.FullName+" (@"+viewer.Username+") started following you")
	}

	c.JSON(http.StatusOK, gin.H{"isFollowed": isFollowed})
}
