package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustParseUint(t *testing.T) {
	assert.Equal(t, uint(42), MustParseUint("42"))
	assert.Equal(t, uint(0), MustParseUint(""))
	assert.Equal(t, uint(0), MustParseUint("not-a-number"))
	assert.Equal(t, uint(0), MustParseUint("-5"))
}

func TestChunkUints(t *testing.T) {
	ids := []uint{1, 2, 3, 4, 5, 6, 7}

	chunks := ChunkUints(ids, 3)
	assert.Equal(t, [][]uint{{1, 2, 3}, {4, 5, 6}, {7}}, chunks)

	assert.Len(t, ChunkUints(ids, 10), 1)
	assert.Nil(t, ChunkUints(nil, 3))
	assert.Nil(t, ChunkUints(ids, 0))
}
