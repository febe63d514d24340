package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next(), "draw %d", i)
	}
}

func TestRNGSeedsDiffer(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)
	assert.NotEqual(t, a.Next(), b.Next())
}

func TestRNGZeroSeed(t *testing.T) {
	r := NewRNG(0)
	assert.NotZero(t, r.Next())
}

func TestRNGRange(t *testing.T) {
	r := NewRNG(7)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := r.Range(-3, 3)
		assert.GreaterOrEqual(t, v, -3)
		assert.LessOrEqual(t, v, 3)
		seen[v] = true
	}
	assert.Len(t, seen, 7, "every value in [-3, 3] should appear")

	assert.Equal(t, 5, r.Range(5, 5))
	assert.Equal(t, 5, r.Range(5, 2))
}

func TestRNGFloat(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 1000; i++ {
		f := r.Float()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestRNGIntnNonPositive(t *testing.T) {
	r := NewRNG(3)
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-4))
}
