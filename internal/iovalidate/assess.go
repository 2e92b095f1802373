// Package iovalidate holds the comparison logic shared by the dead-ID,
// links and biographical-data validators (internal/iovalidate/deadid,
// .../link, .../biodata): for every KB identifier claim, compare the
// KB's own view of some criterion against the catalog's, the Go generic
// port of checks.py's shared _assess loop.
package iovalidate

import "github.com/soweego-go/soweego/pkg/model"

// Assessment is one criterion's comparison outcome: identifier claims
// with nothing in common between KB and catalog (Deprecate), and
// catalog-only data to recommend adding to the KB (Add), keyed by the
// claiming QID.
type Assessment[T comparable] struct {
	Deprecate map[model.TID][]model.QID
	Add       map[model.QID][]T
}

// Assess compares, for every (QID, TID) identifier claim, the KB-side
// data set (kbData, keyed by QID) against the catalog-side data set
// (catalogData, keyed by TID): an empty intersection recommends
// deprecating the claim, and catalog-side data absent from the KB side
// is queued for addition, since the catalog is authoritative for
// whatever it asserts. A claim is skipped when either side has no data
// at all for the criterion, mirroring _assess's own skip-and-warn
// branches.
func Assess[T comparable](claims *model.PairIndex, kbData map[model.QID]map[T]struct{}, catalogData map[model.TID]map[T]struct{}) Assessment[T] {
	result := Assessment[T]{
		Deprecate: make(map[model.TID][]model.QID),
		Add:       make(map[model.QID][]T),
	}

	for _, key := range claims.Sorted() {
		source := kbData[key.QID]
		if len(source) == 0 {
			continue
		}
		target := catalogData[key.TID]
		if len(target) == 0 {
			continue
		}

		shared := false
		for v := range source {
			if _, ok := target[v]; ok {
				shared = true
				break
			}
		}
		if !shared {
			result.Deprecate[key.TID] = append(result.Deprecate[key.TID], key.QID)
		}

		for v := range target {
			if _, ok := source[v]; !ok {
				result.Add[key.QID] = append(result.Add[key.QID], v)
			}
		}
	}

	return result
}
