// Package feed is the ranking and interaction-state engine behind the
// campus feed: recency-decayed randomized ordering, repost materialization,
// the like/save/repost ledger and the viewer annotation pass. It operates on
// in-memory documents only; persistence stays with the callers.
package feed

import (
	"comsiconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildFeed assembles the two feed lists for viewer from the full post pool:
// the global feed and the following-only feed (posts authored by accounts the
// viewer follows). Each pool is ranked independently, expanded with synthetic
// repost entries and annotated with the viewer-relative flags. users must map
// every owner and reposter id that should appear populated.
func BuildFeed(r *Ranker, posts []*models.Post, users map[primitive.ObjectID]*models.User, viewer *models.User) (global, following []*models.Post) {
	pool := make([]*models.Post, len(posts))
	copy(pool, posts)

	var followingPool []*models.Post
	for _, p := range pool {
		if Contains(viewer.Following, p.UserID) {
			followingPool = append(followingPool, p)
		}
	}

	global = r.Rank(pool)
	following = r.Rank(followingPool)

	global = r.MaterializeReposts(global, viewer.ID, users)
	following = r.MaterializeReposts(following, viewer.ID, users)

	for _, p := range global {
		Annotate(p, viewer, users[p.UserID])
	}
	for _, p := range following {
		Annotate(p, viewer, users[p.UserID])
	}

	if following == nil {
		following = []*models.Post{}
	}
	return global, following
}
