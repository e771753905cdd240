package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_SameSeedSameDraws(t *testing.T) {
	a := NewSource(7)
	b := NewSource(7)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Intn(1000), b.Intn(1000), "draw %d diverged", i)
	}
}

func TestSource_Between(t *testing.T) {
	src := NewSource(1)
	for i := 0; i < 500; i++ {
		v := src.Between(2, 4)
		assert.GreaterOrEqual(t, v, 2)
		assert.LessOrEqual(t, v, 4)
	}

	// Collapsed and inverted ranges return the lower bound.
	assert.Equal(t, 0, src.Between(0, 0))
	assert.Equal(t, 5, src.Between(5, 3))
}

func TestSource_SampleIndexes(t *testing.T) {
	src := NewSource(3)

	got := src.SampleIndexes(10, 4)
	require.Len(t, got, 4)
	seen := make(map[int]bool)
	for _, i := range got {
		assert.False(t, seen[i], "index %d sampled twice", i)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 10)
		seen[i] = true
	}

	// k larger than n is clamped
	assert.Len(t, src.SampleIndexes(3, 10), 3)
	assert.Empty(t, src.SampleIndexes(5, 0))
	assert.Empty(t, src.SampleIndexes(0, 2))
}

func TestSource_Read(t *testing.T) {
	a := NewSource(11)
	b := NewSource(11)

	pa := make([]byte, 16)
	pb := make([]byte, 16)
	n, err := a.Read(pa)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	_, err = b.Read(pb)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}
