package feed

import (
	"testing"

	"comsiconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFollow(t *testing.T) {
	a := newTestUser()
	b := newTestUser()

	followed, err := SetFollow(a, b, true)
	require.NoError(t, err)
	assert.True(t, followed)
	assert.True(t, Contains(b.Followers, a.ID))
	assert.True(t, Contains(a.Following, b.ID))
	assert.Equal(t, 1, b.FollowersCount)
	assert.Equal(t, 1, a.FollowingCount)

	followed, err = SetFollow(a, b, false)
	require.NoError(t, err)
	assert.False(t, followed)
	assert.Empty(t, b.Followers)
	assert.Empty(t, a.Following)
	assert.Equal(t, 0, b.FollowersCount)
	assert.Equal(t, 0, a.FollowingCount)
}

func TestSetFollowRejectsSelf(t *testing.T) {
	a := newTestUser()

	_, err := SetFollow(a, a, true)
	assert.ErrorIs(t, err, ErrSelfFollow)
	assert.Empty(t, a.Followers)
	assert.Empty(t, a.Following)
}

func TestSetFollowIdempotent(t *testing.T) {
	a := newTestUser()
	b := newTestUser()

	for i := 0; i < 3; i++ {
		followed, err := SetFollow(a, b, true)
		require.NoError(t, err)
		assert.True(t, followed)
	}
	assert.Len(t, b.Followers, 1)
	assert.Len(t, a.Following, 1)

	for i := 0; i < 3; i++ {
		followed, err := SetFollow(a, b, false)
		require.NoError(t, err)
		assert.False(t, followed)
	}
	assert.Empty(t, b.Followers)
	assert.Empty(t, a.Following)
}

func TestCounterInvariantUnderSequences(t *testing.T) {
	// followersCount == |followers| and followingCount == |following| after
	// any sequence of follow/unfollow operations.
	a := newTestUser()
	b := newTestUser()
	c := newTestUser()

	ops := []struct {
		follower, target *models.User
		follow           bool
	}{
		{a, b, true},
		{a, c, true},
		{b, a, true},
		{a, b, false},
		{c, a, true},
		{a, b, true},
		{b, a, false},
		{a, b, false},
	}

	for _, op := range ops {
		_, err := SetFollow(op.follower, op.target, op.follow)
		require.NoError(t, err)
		for _, u := range []*models.User{a, b, c} {
			assert.Equal(t, len(u.Followers), u.FollowersCount)
			assert.Equal(t, len(u.Following), u.FollowingCount)
			assert.False(t, Contains(u.Followers, u.ID), "user in own followers")
			assert.False(t, Contains(u.Following, u.ID), "user in own following")
		}
	}
}
