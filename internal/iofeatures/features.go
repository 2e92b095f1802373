// Package iofeatures implements the seven pairwise comparison features
// the classifier trains and predicts on: ExactMatch, SimilarStrings
// (Levenshtein and cosine variants), SimilarDates, SharedTokens,
// SharedTokensPlus and SharedOccupations.
package iofeatures

import (
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// MissingValue fills a pair's feature score when either side of the
// comparison has no value for the compared column.
const MissingValue = -1.0

func tokenSet(t pipeline.Table, row, col string) (map[string]struct{}, bool) {
	v, ok := t.Column(row, col)
	if !ok {
		return nil, false
	}
	set, ok := v.(map[string]struct{})
	return set, ok
}

func stringValue(t pipeline.Table, row, col string) (string, bool) {
	v, ok := t.Column(row, col)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func precisionDate(t pipeline.Table, row, col string) (model.PrecisionDate, bool) {
	v, ok := t.Column(row, col)
	if !ok {
		return model.PrecisionDate{}, false
	}
	d, ok := v.(model.PrecisionDate)
	return d, ok
}

func stringSlice(t pipeline.Table, row, col string) ([]string, bool) {
	v, ok := t.Column(row, col)
	if !ok {
		return nil, false
	}
	s, ok := v.([]string)
	return s, ok
}
