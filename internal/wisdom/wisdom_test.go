package wisdom_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/wealthwise/internal/wisdom"
)

func TestAll(t *testing.T) {
	all := wisdom.All()

	assert.Len(t, all, 20)
	assert.Equal(t, "Warren Buffett", all[0].Author)
	assert.Equal(t, "The Total Money Makeover", all[18].Book)

	all[0].Author = "changed"
	assert.Equal(t, "Warren Buffett", wisdom.All()[0].Author)
}

func TestRandom_Deterministic(t *testing.T) {
	a := wisdom.Random(rand.New(rand.NewPCG(1, 2)))
	b := wisdom.Random(rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, a, b)
	assert.Contains(t, wisdom.All(), wisdom.Random(nil))
}

func TestCarousel(t *testing.T) {
	var c wisdom.Carousel
	all := wisdom.All()

	assert.Equal(t, all[0], c.Current())
	assert.Equal(t, all[len(all)-1], c.Prev())
	assert.Equal(t, all[0], c.Next())
	assert.Equal(t, all[1], c.Next())

	assert.Equal(t, all[5], c.Select(5))
	assert.Equal(t, all[1], c.Select(21))
	assert.Equal(t, all[19], c.Select(-1))
	assert.Equal(t, 19, c.Index())
}
