package feed

import (
	"comsiconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contains reports whether id is a member of ids.
func Contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func targetSet(sets *models.InteractionSets, k Kind) *[]primitive.ObjectID {
	switch k {
	case Like:
		return &sets.LikedBy
	case Save:
		return &sets.SavedBy
	case Repost:
		return &sets.RepostedBy
	default:
		return nil
	}
}

func userSet(u *models.User, k Kind) *[]primitive.ObjectID {
	switch k {
	case Like:
		return &u.LikedPosts
	case Save:
		return &u.SavedPosts
	case Repost:
		return &u.RepostedPosts
	default:
		return nil
	}
}

// Toggle flips the k interaction between user and the target identified by
// targetID, keeping the target-side and user-side sets consistent. The
// authoritative state is membership of the user in the target-side set; the
// stored boolean of the legacy schema is gone. Returns the state after the
// flip.
func Toggle(k Kind, targetID primitive.ObjectID, sets *models.InteractionSets, user *models.User) bool {
	ts := targetSet(sets, k)
	us := userSet(user, k)

	if Contains(*ts, user.ID) {
		*ts = remove(*ts, user.ID)
		*us = remove(*us, targetID)
		return false
	}

	*ts = append(*ts, user.ID)
	if !Contains(*us, targetID) {
		*us = append(*us, targetID)
	}
	return true
}
