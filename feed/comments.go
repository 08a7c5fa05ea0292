package feed

import (
	"comsiconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RemoveComment deletes the comment with id from the sequence, preserving the
// order of the remainder. Removing an absent id is a no-op; the second return
// reports whether anything was removed.
func RemoveComment(comments []models.Comment, id primitive.ObjectID) ([]models.Comment, bool) {
	for i, c := range comments {
		if c.ID == id {
			return append(comments[:i], comments[i+1:]...), true
		}
	}
	return comments, false
}

// CanDeleteComment reports whether viewer may delete the comment: only the
// comment author or the post owner.
func CanDeleteComment(c models.Comment, postOwner, viewer primitive.ObjectID) bool {
	return c.UserID == viewer || postOwner == viewer
}
