package feed

import (
	"testing"

	"comsiconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestUser() *models.User {
	return &models.User{ID: primitive.NewObjectID()}
}

func newTestPost(owner primitive.ObjectID) *models.Post {
	return &models.Post{ID: primitive.NewObjectID(), UserID: owner}
}

func TestToggleSetsBothSides(t *testing.T) {
	owner := newTestUser()
	viewer := newTestUser()
	post := newTestPost(owner.ID)

	on := Toggle(Like, post.ID, &post.InteractionSets, viewer)

	assert.True(t, on)
	assert.True(t, Contains(post.LikedBy, viewer.ID))
	assert.True(t, Contains(viewer.LikedPosts, post.ID))
	assert.Empty(t, post.SavedBy)
	assert.Empty(t, post.RepostedBy)
}

func TestToggleSymmetry(t *testing.T) {
	// Toggling twice returns both sides to their original membership, for
	// every interaction kind.
	for _, k := range []Kind{Like, Save, Repost} {
		t.Run(k.String(), func(t *testing.T) {
			viewer := newTestUser()
			post := newTestPost(newTestUser().ID)

			on := Toggle(k, post.ID, &post.InteractionSets, viewer)
			require.True(t, on)

			off := Toggle(k, post.ID, &post.InteractionSets, viewer)
			require.False(t, off)

			assert.Empty(t, *targetSet(&post.InteractionSets, k))
			assert.Empty(t, *userSet(viewer, k))
		})
	}
}

func TestToggleIsIndependentPerViewer(t *testing.T) {
	a := newTestUser()
	b := newTestUser()
	post := newTestPost(newTestUser().ID)

	Toggle(Like, post.ID, &post.InteractionSets, a)
	Toggle(Like, post.ID, &post.InteractionSets, b)
	Toggle(Like, post.ID, &post.InteractionSets, a)

	assert.False(t, Contains(post.LikedBy, a.ID))
	assert.True(t, Contains(post.LikedBy, b.ID))
	assert.Empty(t, a.LikedPosts)
	assert.True(t, Contains(b.LikedPosts, post.ID))
}

func TestToggleRepairsOneSidedState(t *testing.T) {
	// A target-side entry without its user-side mirror (a partial write from
	// the legacy dual-save) converges after one off/on cycle.
	viewer := newTestUser()
	post := newTestPost(newTestUser().ID)
	post.LikedBy = []primitive.ObjectID{viewer.ID}

	off := Toggle(Like, post.ID, &post.InteractionSets, viewer)
	assert.False(t, off)
	assert.Empty(t, post.LikedBy)
	assert.Empty(t, viewer.LikedPosts)

	on := Toggle(Like, post.ID, &post.InteractionSets, viewer)
	assert.True(t, on)
	assert.Equal(t, []primitive.ObjectID{viewer.ID}, post.LikedBy)
	assert.Equal(t, []primitive.ObjectID{post.ID}, viewer.LikedPosts)
}

func TestToggleOnConfession(t *testing.T) {
	viewer := newTestUser()
	cf := &models.Confession{ID: primitive.NewObjectID(), AnonymousID: "SwiftOtter42"}

	on := Toggle(Save, cf.ID, &cf.InteractionSets, viewer)
	assert.True(t, on)
	assert.True(t, Contains(cf.SavedBy, viewer.ID))
	assert.True(t, Contains(viewer.SavedPosts, cf.ID))
}
