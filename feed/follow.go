package feed

import (
	"errors"

	"comsiconnect/models"
)

var ErrSelfFollow = errors.New("cannot follow yourself")

// SetFollow applies a follow or unfollow between follower and target. Both
// relationship sets are updated and every counter is recomputed from its set
// size rather than incremented, so repeated or racing calls cannot drift the
// counts. Returns whether follower is present in target.Followers after the
// mutation — recomputed, not assumed from the requested action.
func SetFollow(follower, target *models.User, follow bool) (bool, error) {
	if follower.ID == target.ID {
		return false, ErrSelfFollow
	}

	if follow {
		if !Contains(target.Followers, follower.ID) {
			target.Followers = append(target.Followers, follower.ID)
		}
		if !Contains(follower.Following, target.ID) {
			follower.Following = append(follower.Following, target.ID)
		}
	} else {
		target.Followers = remove(target.Followers, follower.ID)
		follower.Following = remove(follower.Following, target.ID)
	}

	follower.FollowersCount = len(follower.Followers)
	follower.FollowingCount = len(follower.Following)
	target.FollowersCount = len(target.Followers)
	target.FollowingCount = len(target.Following)

	return Contains(target.Followers, follower.ID), nil
}
