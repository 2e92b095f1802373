package model

import "sort"

// PairIndex is an ordered, deduplicated set of candidate pair keys,
// mirroring recordlinkage's MultiIndex: the blocker produces one, the
// feature extractor consumes it row by row, and a sub-index of positives
// (drawn from training data) is always a subset of it.
type PairIndex struct {
	keys map[PairKey]struct{}
}

// NewPairIndex creates an empty PairIndex.
func NewPairIndex() *PairIndex {
	return &PairIndex{keys: make(map[PairKey]struct{})}
}

// Add inserts a pair key, silently ignoring duplicates.
func (idx *PairIndex) Add(k PairKey) {
	idx.keys[k] = struct{}{}
}

// AddPair inserts the key of a Pair.
func (idx *PairIndex) AddPair(p Pair) {
	idx.Add(p.Key())
}

// Contains reports whether k is present in the index.
func (idx *PairIndex) Contains(k PairKey) bool {
	_, ok := idx.keys[k]
	return ok
}

// Len returns the number of distinct pairs in the index.
func (idx *PairIndex) Len() int {
	return len(idx.keys)
}

// Sorted returns the index's keys in a deterministic order (by QID, then
// TID), so that two runs over the same input produce identical chunking.
func (idx *PairIndex) Sorted() []PairKey {
	res := make([]PairKey, 0, len(idx.keys))
	for k := range idx.keys {
		res = append(res, k)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].QID != res[j].QID {
			return res[i].QID < res[j].QID
		}
		return res[i].TID < res[j].TID
	})
	return res
}

// Intersect returns a new PairIndex containing only keys present in both
// idx and other.
func (idx *PairIndex) Intersect(other *PairIndex) *PairIndex {
	res := NewPairIndex()
	for k := range idx.keys {
		if other.Contains(k) {
			res.Add(k)
		}
	}
	return res
}

// Union returns a new PairIndex containing keys present in either index.
func (idx *PairIndex) Union(other *PairIndex) *PairIndex {
	res := NewPairIndex()
	for k := range idx.keys {
		res.Add(k)
	}
	for k := range other.keys {
		res.Add(k)
	}
	return res
}
