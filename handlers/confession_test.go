package handlers

import (
	"math/rand"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnonymousIDFormat(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	pattern := regexp.MustCompile(`^([A-Z][a-z]+)([A-Z][a-z]+)(\d{2})$`)

	for i := 0; i < 100; i++ {
		id := newAnonymousID(r)
		m := pattern.FindStringSubmatch(id)
		require.NotNil(t, m, "unexpected handle %q", id)

		assert.Contains(t, anonAdjectives, m[1])
		assert.Contains(t, anonAnimals, m[2])

		n, err := strconv.Atoi(m[3])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10)
		assert.LessOrEqual(t, n, 99)
	}
}

func TestNewAnonymousIDVaries(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[newAnonymousID(r)] = true
	}
	assert.Greater(t, len(seen), 1)
}
