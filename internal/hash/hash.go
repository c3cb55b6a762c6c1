package hash

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Sum64 computes the xxHash64 of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// DistinctSet counts distinct byte strings exactly. Inputs are bucketed by
// their xxHash64 digest and compared byte for byte within a bucket.
type DistinctSet struct {
	seen  map[uint64][][]byte
	count int
}

// NewDistinctSet creates an empty set.
func NewDistinctSet() *DistinctSet {
	return &DistinctSet{seen: make(map[uint64][][]byte)}
}

// Add records a copy of data and reports whether it was not seen before.
func (s *DistinctSet) Add(data []byte) bool {
	h := xxhash.Sum64(data)
	return s.add(h, data)
}

func (s *DistinctSet) add(h uint64, data []byte) bool {
	bucket := s.seen[h]
	for _, b := range bucket {
		if bytes.Equal(b, data) {
			return false
		}
	}
	s.seen[h] = append(bucket, bytes.Clone(data))
	s.count++

	return true
}

// Len returns the number of distinct inputs recorded.
func (s *DistinctSet) Len() int {
	return s.count
}
