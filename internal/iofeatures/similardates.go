package iofeatures

import (
	"context"

	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// SimilarDates scores the best year/month/day match between a KB date
// column and a catalog date column, via model.PrecisionDate.Score.
type SimilarDates struct {
	LeftColumn, RightColumn string
}

func (f SimilarDates) Name() string {
	return "similar_dates:" + f.LeftColumn + ":" + f.RightColumn
}

func (f SimilarDates) Compute(_ context.Context, pairs *model.PairIndex, left, right pipeline.Table) ([]float64, error) {
	out := make([]float64, 0, pairs.Len())
	for _, key := range pairs.Sorted() {
		leftDate, leftOK := precisionDate(left, string(key.QID), f.LeftColumn)
		rightDate, rightOK := precisionDate(right, string(key.TID), f.RightColumn)
		if !leftOK || !rightOK {
			out = append(out, MissingValue)
			continue
		}
		out = append(out, leftDate.Score(rightDate))
	}
	return out, nil
}
