package feed

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"comsiconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func TestScoreDecaysWithAge(t *testing.T) {
	r := NewRankerWith(fixedNow, rand.NewSource(1))

	// With the random factor in (0,1), a score can never exceed the pure
	// decay envelope for that age.
	for _, ageMin := range []float64{0, 1, 60, 600, 1440} {
		created := fixedNow().Add(-time.Duration(ageMin * float64(time.Minute)))
		score := r.Score(created)
		envelope := math.Exp(-ageMin / 60)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, envelope)
	}
}

func TestScoreFutureTimestampClamped(t *testing.T) {
	r := NewRankerWith(fixedNow, rand.NewSource(1))
	score := r.Score(fixedNow().Add(time.Hour))
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestRankFavorsRecencyStatistically(t *testing.T) {
	// A 1-minute-old post should outrank a 10-hour-old post in a clear
	// majority of trials. The ordering is randomized, so this is a
	// distributional property, not an exact sequence.
	r := NewRankerWith(fixedNow, rand.NewSource(42))

	young := &models.Post{ID: primitive.NewObjectID(), CreatedAt: fixedNow().Add(-time.Minute)}
	old := &models.Post{ID: primitive.NewObjectID(), CreatedAt: fixedNow().Add(-600 * time.Minute)}

	const trials = 200
	youngFirst := 0
	for i := 0; i < trials; i++ {
		ranked := r.Rank([]*models.Post{old, young})
		require.Len(t, ranked, 2)
		if ranked[0] == young {
			youngFirst++
		}
	}
	assert.Greater(t, youngFirst, trials*8/10,
		"young post ranked first in %d/%d trials", youngFirst, trials)
}

func TestRankKeepsPool(t *testing.T) {
	r := NewRankerWith(fixedNow, rand.NewSource(7))

	var pool []*models.Post
	for i := 0; i < 25; i++ {
		pool = append(pool, &models.Post{
			CreatedAt: fixedNow().Add(-time.Duration(i) * time.Hour),
		})
	}

	ranked := r.Rank(pool)
	require.Len(t, ranked, len(pool))

	seen := make(map[*models.Post]bool)
	for _, p := range ranked {
		seen[p] = true
	}
	assert.Len(t, seen, len(pool), "ranking must be a permutation")
}

func TestRankEmptyPool(t *testing.T) {
	r := NewRanker()
	assert.Empty(t, r.Rank(nil))
}

func TestShuffleConfessionsIsPermutation(t *testing.T) {
	r := NewRankerWith(fixedNow, rand.NewSource(3))

	var pool []*models.Confession
	for i := 0; i < 20; i++ {
		pool = append(pool, &models.Confession{AnonymousID: string(rune('A' + i))})
	}
	orig := make([]*models.Confession, len(pool))
	copy(orig, pool)

	r.ShuffleConfessions(pool)

	require.Len(t, pool, len(orig))
	seen := make(map[*models.Confession]bool)
	for _, c := range pool {
		seen[c] = true
	}
	for _, c := range orig {
		assert.True(t, seen[c])
	}
}
