package feed

import (
	"comsiconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// repostSeparator joins the original post id and the reposter id into the
// composite display id of a synthetic entry.
const repostSeparator = "~repost~"

// MaterializeReposts expands every entry with a nonempty repostedBy set into
// additional synthetic feed entries, one per reposter, each inserted at a
// uniformly random position so reposts scatter through the feed instead of
// clustering. The viewer's own reposts are skipped: they already see the
// original. Synthetic entries share content and interaction sets with the
// original and carry the original target id, so an interaction issued from
// any of them lands on the same ledger target. Reposters missing from users
// yield no entry.
func (r *Ranker) MaterializeReposts(entries []*models.Post, viewerID primitive.ObjectID, users map[primitive.ObjectID]*models.User) []*models.Post {
	out := make([]*models.Post, len(entries))
	copy(out, entries)

	for _, p := range entries {
		for _, reposterID := range p.RepostedBy {
			if reposterID == viewerID {
				continue
			}
			reposter, ok := users[reposterID]
			if !ok {
				continue
			}
			clone := p.Clone()
			clone.FeedID = p.ID.Hex() + repostSeparator + reposterID.Hex()
			clone.TargetID = p.ID.Hex()
			clone.RepostedByUser = reposter.Public()

			at := r.rand.Intn(len(out) + 1)
			out = append(out, nil)
			copy(out[at+1:], out[at:])
			out[at] = clone
		}
	}
	return out
}
