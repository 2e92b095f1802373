package iofeatures

import (
	"context"
	"sync"

	"github.com/soweego-go/soweego/pkg/external"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// SharedOccupations scores occupation overlap after expanding the catalog
// side's occupation classes to their subclasses via the knowledge base's
// SPARQL endpoint, so a KB occupation that is a subclass of a broader
// catalog occupation still counts as shared.
type SharedOccupations struct {
	LeftColumn, RightColumn string
	SPARQL                  external.SPARQLClient

	expansions sync.Map // model.PropertyID -> []model.PropertyID
}

func (f *SharedOccupations) Name() string {
	return "shared_occupations:" + f.LeftColumn + ":" + f.RightColumn
}

func (f *SharedOccupations) Compute(ctx context.Context, pairs *model.PairIndex, left, right pipeline.Table) ([]float64, error) {
	out := make([]float64, 0, pairs.Len())
	for _, key := range pairs.Sorted() {
		leftOccupations, leftOK := stringSlice(left, string(key.QID), f.LeftColumn)
		rightOccupations, rightOK := stringSlice(right, string(key.TID), f.RightColumn)
		if !leftOK || !rightOK || len(leftOccupations) == 0 || len(rightOccupations) == 0 {
			out = append(out, MissingValue)
			continue
		}

		expandedRight, err := f.expandAll(ctx, rightOccupations)
		if err != nil {
			return nil, err
		}

		leftSet := make(map[string]struct{}, len(leftOccupations))
		for _, o := range leftOccupations {
			leftSet[o] = struct{}{}
		}

		shared := 0
		for o := range expandedRight {
			if _, ok := leftSet[o]; ok {
				shared++
			}
		}

		minLen := len(leftSet)
		if len(expandedRight) < minLen {
			minLen = len(expandedRight)
		}
		if minLen == 0 {
			out = append(out, MissingValue)
			continue
		}
		out = append(out, float64(shared)/float64(minLen))
	}
	return out, nil
}

// expandAll unions each occupation with its class descendants, memoizing
// per-class lookups across calls and across pairs since the knowledge
// base's class hierarchy doesn't change within a single run.
func (f *SharedOccupations) expandAll(ctx context.Context, occupations []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(occupations))
	for _, occupation := range occupations {
		out[occupation] = struct{}{}

		descendants, err := f.expand(ctx, occupation)
		if err != nil {
			return nil, err
		}
		for _, d := range descendants {
			out[d] = struct{}{}
		}
	}
	return out, nil
}

func (f *SharedOccupations) expand(ctx context.Context, classQID model.PropertyID) ([]model.PropertyID, error) {
	if cached, ok := f.expansions.Load(classQID); ok {
		return cached.([]model.PropertyID), nil
	}

	descendants, err := f.SPARQL.ClassDescendants(ctx, classQID)
	if err != nil {
		return nil, OccupationLookupError(classQID, err)
	}

	actual, _ := f.expansions.LoadOrStore(classQID, descendants)
	return actual.([]model.PropertyID), nil
}
