package feed

import (
	"testing"

	"comsiconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAnnotateComputesFlagsFromMembership(t *testing.T) {
	owner := newTestUser()
	viewer := newTestUser()

	post := newTestPost(owner.ID)
	post.LikedBy = []primitive.ObjectID{viewer.ID}
	post.SavedBy = []primitive.ObjectID{owner.ID}

	Annotate(post, viewer, owner)

	assert.True(t, post.IsLiked)
	assert.False(t, post.IsSaved, "another viewer's save must not leak")
	assert.False(t, post.IsReposted)
	assert.Equal(t, post.ID.Hex(), post.FeedID)
	assert.Equal(t, post.ID.Hex(), post.TargetID)

	// The same document annotated for the owner reads differently.
	Annotate(post, owner, owner)
	assert.False(t, post.IsLiked)
	assert.True(t, post.IsSaved)
}

func TestAnnotateStampsOwnerFollowState(t *testing.T) {
	owner := newTestUser()
	viewer := newTestUser()
	owner.Followers = []primitive.ObjectID{viewer.ID}

	post := newTestPost(owner.ID)
	Annotate(post, viewer, owner)

	require.NotNil(t, post.User)
	assert.True(t, post.User.IsFollowed)

	stranger := newTestUser()
	Annotate(post, stranger, owner)
	assert.False(t, post.User.IsFollowed)
}

func TestAnnotatePreservesSyntheticID(t *testing.T) {
	owner := newTestUser()
	viewer := newTestUser()

	post := newTestPost(owner.ID)
	post.FeedID = post.ID.Hex() + repostSeparator + viewer.ID.Hex()

	Annotate(post, viewer, owner)

	assert.Equal(t, post.ID.Hex()+repostSeparator+viewer.ID.Hex(), post.FeedID)
	assert.Equal(t, post.ID.Hex(), post.TargetID)
}

func TestAnnotateDefaultsEmptyCollections(t *testing.T) {
	post := newTestPost(newTestUser().ID)
	Annotate(post, newTestUser(), nil)

	assert.NotNil(t, post.Images)
	assert.NotNil(t, post.Comments)
	assert.NotNil(t, post.LikedBy)
	assert.NotNil(t, post.SavedBy)
	assert.NotNil(t, post.RepostedBy)
	assert.Nil(t, post.User)
}

func TestAnnotateConfessionHidesAuthor(t *testing.T) {
	viewer := newTestUser()
	author := newTestUser()

	cf := &models.Confession{
		ID:          primitive.NewObjectID(),
		AnonymousID: "CleverPanda17",
		UserID:      author.ID,
	}
	cf.LikedBy = []primitive.ObjectID{viewer.ID}

	AnnotateConfession(cf, viewer.ID)

	assert.True(t, cf.IsLiked)
	assert.False(t, cf.IsSaved)
	assert.Equal(t, author.ID, cf.UserID, "internal ownership link stays intact")
}
