package feed

import "fmt"

// Kind is the closed set of interactions between a user and a target
// (post or confession).
type Kind int

const (
	Like Kind = iota
	Save
	Repost
)

func ParseKind(s string) (Kind, error) {
	switch s {
	case "like":
		return Like, nil
	case "save":
		return Save, nil
	case "repost":
		return Repost, nil
	default:
		return 0, fmt.Errorf("unknown interaction type %q", s)
	}
}

func (k Kind) String() string {
	switch k {
	case Like:
		return "like"
	case Save:
		return "save"
	case Repost:
		return "repost"
	default:
		return "unknown"
	}
}

// TargetField is the membership array on the post/confession document.
func (k Kind) TargetField() string {
	switch k {
	case Like:
		return "likedBy"
	case Save:
		return "savedBy"
	case Repost:
		return "repostedBy"
	default:
		return ""
	}
}

// UserField is the mirror array on the user document.
func (k Kind) UserField() string {
	switch k {
	case Like:
		return "likedPosts"
	case Save:
		return "savedPosts"
	case Repost:
		return "repostedPosts"
	default:
		return ""
	}
}
