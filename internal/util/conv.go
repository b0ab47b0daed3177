package util

import (
	"strconv"
)

// MustParseUint parses an unsigned integer, returning 0 on failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ChunkUints splits ids into chunks of at most size. A nil or empty input
// yields no chunks.
func ChunkUints(ids []uint, size int) [][]uint {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	var chunks [][]uint
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
