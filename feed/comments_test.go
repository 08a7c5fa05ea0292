package feed

import (
	"testing"
	"time"

	"comsiconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func makeComments(n int) []models.Comment {
	out := make([]models.Comment, n)
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = models.Comment{
			ID:        primitive.NewObjectID(),
			UserID:    primitive.NewObjectID(),
			Content:   "comment",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

func TestRemoveCommentPreservesOrder(t *testing.T) {
	comments := makeComments(5)
	victim := comments[2]

	out, removed := RemoveComment(comments, victim.ID)

	assert.True(t, removed)
	require.Len(t, out, 4)
	for i := 1; i < len(out); i++ {
		assert.True(t, out[i-1].CreatedAt.Before(out[i].CreatedAt),
			"chronological order must survive removal")
	}
	for _, c := range out {
		assert.NotEqual(t, victim.ID, c.ID)
	}
}

func TestRemoveCommentAbsentIDIsNoOp(t *testing.T) {
	comments := makeComments(3)

	out, removed := RemoveComment(comments, primitive.NewObjectID())

	assert.False(t, removed)
	assert.Len(t, out, 3)
}

func TestCanDeleteComment(t *testing.T) {
	author := primitive.NewObjectID()
	postOwner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	c := models.Comment{ID: primitive.NewObjectID(), UserID: author}

	assert.True(t, CanDeleteComment(c, postOwner, author))
	assert.True(t, CanDeleteComment(c, postOwner, postOwner))
	assert.False(t, CanDeleteComment(c, postOwner, stranger))
}
