package idgen_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit-orm/grapefruit/idgen"
)

func TestNewValidatesBitWidths(t *testing.T) {
	_, err := idgen.New(32, 0, nil)
	assert.Error(t, err)

	_, err = idgen.New(0, 32, nil)
	assert.Error(t, err)

	_, err = idgen.New(-1, 0, nil)
	assert.Error(t, err)

	gen, err := idgen.New(31, 31, nil)
	require.NoError(t, err)
	require.NotNil(t, gen)
}

func TestNextIsMonotonicAndUnique(t *testing.T) {
	gen, err := idgen.New(1, 1, nil)
	require.NoError(t, err)

	seen := make(map[int64]bool)
	var prev int64
	for i := 0; i < 10000; i++ {
		id := gen.Next()
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestNextConcurrentUnique(t *testing.T) {
	gen, err := idgen.New(2, 3, nil)
	require.NoError(t, err)

	const n = 2000
	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = gen.Next()
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for _, id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}
