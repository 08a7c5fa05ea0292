package feed

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"comsiconnect/models"
)

// decayScaleMinutes is the exponential decay scale of the recency score. It is
// not a cutoff: a day-old post still has a nonzero chance of ranking high.
const decayScaleMinutes = 60

// Ranker orders a pool of posts by a recency-decayed random score. The
// ordering is deliberately non-deterministic; only the statistical bias toward
// newer posts is guaranteed.
type Ranker struct {
	now  func() time.Time
	rand *rand.Rand
}

func NewRanker() *Ranker {
	return NewRankerWith(time.Now, rand.NewSource(time.Now().UnixNano()))
}

// NewRankerWith injects the clock and randomness source, for tests.
func NewRankerWith(now func() time.Time, src rand.Source) *Ranker {
	return &Ranker{now: now, rand: rand.New(src)}
}

// Score computes rand(0,1) * exp(-ageMinutes/60) for a post created at
// createdAt. Posts dated in the future score as age zero.
func (r *Ranker) Score(createdAt time.Time) float64 {
	age := r.now().Sub(createdAt).Minutes()
	if age < 0 {
		age = 0
	}
	return r.rand.Float64() * math.Exp(-age/decayScaleMinutes)
}

type scoredPost struct {
	post  *models.Post
	score float64
}

// Rank returns entries ordered highest score first. Every call rescores the
// whole pool; each entry is scored exactly once per call.
func (r *Ranker) Rank(entries []*models.Post) []*models.Post {
	scored := make([]scoredPost, len(entries))
	for i, p := range entries {
		scored[i] = scoredPost{post: p, score: r.Score(p.CreatedAt)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	out := make([]*models.Post, len(scored))
	for i, s := range scored {
		out[i] = s.post
	}
	return out
}

// ShuffleConfessions applies a Fisher-Yates shuffle; the confession wall is
// intentionally unordered.
func (r *Ranker) ShuffleConfessions(confessions []*models.Confession) {
	r.rand.Shuffle(len(confessions), func(i, j int) {
		confessions[i], confessions[j] = confessions[j], confessions[i]
	})
}
