package cache

import (
	"encoding/binary"

	"github.com/bananemure/fastrtext/core"
)

// Key prefix for word-vector entries
const wordVectorPrefix = "wvec"

// makeVectorKey generates a composite key for a cached word vector.
// Format: prefix:fingerprint:word
func makeVectorKey(fingerprint core.ID, word string) []byte {
	prefix := wordVectorPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(word) // 8 bytes for the fingerprint
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so entries of one model stay contiguous
	binary.BigEndian.PutUint64(buf[offset:], uint64(fingerprint))
	offset += 8
	copy(buf[offset:], []byte(word))
	return buf
}
