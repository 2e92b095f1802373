package iofeatures

import (
	"context"
	"strings"

	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// SharedTokensPlus scores set containment after flattening and lowercasing
// both sides, optionally dropping stopwords before comparing. It differs
// from SharedTokens by normalizing case and stripping stopwords rather than
// penalizing band low-score words, and by dividing over the smaller side
// instead of the union.
type SharedTokensPlus struct {
	LeftColumn, RightColumn string
	Stopwords               map[string]struct{}
}

func (f SharedTokensPlus) Name() string {
	return "shared_tokens_plus:" + f.LeftColumn + ":" + f.RightColumn
}

func (f SharedTokensPlus) Compute(_ context.Context, pairs *model.PairIndex, left, right pipeline.Table) ([]float64, error) {
	out := make([]float64, 0, pairs.Len())
	for _, key := range pairs.Sorted() {
		leftSet, leftOK := f.flattenColumn(left, string(key.QID), f.LeftColumn)
		rightSet, rightOK := f.flattenColumn(right, string(key.TID), f.RightColumn)
		if !leftOK || !rightOK || len(leftSet) == 0 || len(rightSet) == 0 {
			out = append(out, MissingValue)
			continue
		}

		shared := 0
		for tok := range leftSet {
			if _, ok := rightSet[tok]; ok {
				shared++
			}
		}

		minLen := len(leftSet)
		if len(rightSet) < minLen {
			minLen = len(rightSet)
		}
		if minLen == 0 {
			out = append(out, MissingValue)
			continue
		}
		out = append(out, float64(shared)/float64(minLen))
	}
	return out, nil
}

// flattenColumn lowercases and splits every value in a column (regardless of
// whether it's stored as a string, a slice or a token set), mirroring the
// original's recursive _flatten + "lowercase and split on whitespace" step,
// then drops any configured stopwords.
func (f SharedTokensPlus) flattenColumn(t pipeline.Table, row, col string) (map[string]struct{}, bool) {
	values, ok := multiValue(t, row, col)
	if !ok {
		return nil, false
	}

	out := make(map[string]struct{})
	for _, v := range values {
		for _, tok := range strings.Fields(strings.ToLower(v)) {
			if _, stop := f.Stopwords[tok]; stop {
				continue
			}
			out[tok] = struct{}{}
		}
	}
	return out, true
}
