package keen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntGeneMutateRespectsRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := NewIntGene(0, NewRange(5, 10), nil)
	for i := 0; i < 100; i++ {
		mutated, err := g.Mutate(rng)
		require.NoError(t, err)
		v := mutated.Value()
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 10)
	}
}

func TestIntGeneVerifyChecksRangeAndFilter(t *testing.T) {
	even := Filter[int](func(v int) bool { return v%2 == 0 })
	g := NewIntGene(4, NewRange(0, 10), even)
	assert.True(t, g.Verify())
	assert.False(t, g.DuplicateWithValue(3).Verify())
	assert.False(t, g.DuplicateWithValue(20).Verify())
}

func TestIntGeneUninhabitedDetectsEmptyRangeFilterIntersection(t *testing.T) {
	tooHigh := Filter[int](func(v int) bool { return v > 100 })
	g := NewIntGene(0, NewRange(0, 10), tooHigh)
	assert.True(t, g.Uninhabited())

	reachable := Filter[int](func(v int) bool { return v == 5 })
	g2 := NewIntGene(0, NewRange(0, 10), reachable)
	assert.False(t, g2.Uninhabited())
}

func TestIntGeneMutateReturnsErrAbsurdOperationWhenUninhabited(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tooHigh := Filter[int](func(v int) bool { return v > 100 })
	g := NewIntGene(0, NewRange(0, 1), tooHigh)
	_, err := g.Mutate(rng)
	assert.ErrorIs(t, err, ErrAbsurdOperation)
}

func TestFloatGeneMutateRespectsRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := NewFloatGene(0.0, NewRange(-1.0, 1.0), nil)
	for i := 0; i < 100; i++ {
		mutated, err := g.Mutate(rng)
		require.NoError(t, err)
		v := mutated.Value()
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestBoolGeneMutateFlipsOrDrawsFresh(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g := NewBoolGene(true, nil)
	mutated, err := g.Mutate(rng)
	require.NoError(t, err)
	assert.IsType(t, BoolGene{}, mutated)
}

func TestRuneGeneMutateDrawsFromAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	alphabet := []rune{'x', 'y', 'z'}
	g := NewRuneGene('x', alphabet, nil)
	for i := 0; i < 50; i++ {
		mutated, err := g.Mutate(rng)
		require.NoError(t, err)
		assert.Contains(t, alphabet, mutated.Value())
	}
}

func TestRuneGeneMutateDefaultsToLowercaseAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := NewRuneGene('a', nil, nil)
	mutated, err := g.Mutate(rng)
	require.NoError(t, err)
	v := mutated.Value()
	assert.GreaterOrEqual(t, v, 'a')
	assert.LessOrEqual(t, v, 'z')
}
