package feed

import (
	"comsiconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Annotate stamps the viewer-relative derived fields on a post: isLiked,
// isSaved and isReposted from the post's membership sets, isFollowed on the
// owner from the owner's followers. These are computed fresh on every read
// and never persisted. Synthetic repost entries keep the composite display id
// set by the materializer; everything else gets the plain hex id.
func Annotate(p *models.Post, viewer *models.User, owner *models.User) {
	p.IsLiked = Contains(p.LikedBy, viewer.ID)
	p.IsSaved = Contains(p.SavedBy, viewer.ID)
	p.IsReposted = Contains(p.RepostedBy, viewer.ID)

	if p.FeedID == "" {
		p.FeedID = p.ID.Hex()
	}
	p.TargetID = p.ID.Hex()

	if owner != nil {
		pub := owner.Public()
		pub.IsFollowed = Contains(owner.Followers, viewer.ID)
		p.User = pub
	}

	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	if p.LikedBy == nil {
		p.LikedBy = []primitive.ObjectID{}
	}
	if p.SavedBy == nil {
		p.SavedBy = []primitive.ObjectID{}
	}
	if p.RepostedBy == nil {
		p.RepostedBy = []primitive.ObjectID{}
	}
}

// AnnotateConfession stamps the viewer-relative flags on a confession. The
// author identity stays hidden; only the anonymous handle is serialized.
func AnnotateConfession(cf *models.Confession, viewerID primitive.ObjectID) {
	cf.IsLiked = Contains(cf.LikedBy, viewerID)
	cf.IsSaved = Contains(cf.SavedBy, viewerID)
	cf.IsReposted = Contains(cf.RepostedBy, viewerID)

	if cf.Images == nil {
		cf.Images = []string{}
	}
	if cf.LikedBy == nil {
		cf.LikedBy = []primitive.ObjectID{}
	}
	if cf.SavedBy == nil {
		cf.SavedBy = []primitive.ObjectID{}
	}
	if cf.RepostedBy == nil {
		cf.RepostedBy = []primitive.ObjectID{}
	}
}
