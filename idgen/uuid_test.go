package idgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grapefruit-orm/grapefruit/idgen"
)

func TestUUIDGeneratorProducesDistinctIDs(t *testing.T) {
	var gen idgen.Generator = idgen.UUIDGenerator{}

	seen := make(map[int64]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		assert.False(t, seen[id], "unexpected collision at iteration %d", i)
		seen[id] = true
	}
}
