package iofeatures

import (
	"context"

	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// ExactMatch scores 1.0 when any value on the left side equals any value
// on the right, 0.0 otherwise, taking the max across the cross product of
// multi-valued columns (e.g. gender, birth place).
type ExactMatch struct {
	LeftColumn, RightColumn string
}

func (f ExactMatch) Name() string { return "exact_match:" + f.LeftColumn + ":" + f.RightColumn }

func (f ExactMatch) Compute(_ context.Context, pairs *model.PairIndex, left, right pipeline.Table) ([]float64, error) {
	out := make([]float64, 0, pairs.Len())
	for _, key := range pairs.Sorted() {
		out = append(out, f.compareOne(left, right, string(key.QID), string(key.TID)))
	}
	return out, nil
}

func (f ExactMatch) compareOne(left, right pipeline.Table, leftRow, rightRow string) float64 {
	leftVals, leftOK := multiValue(left, leftRow, f.LeftColumn)
	rightVals, rightOK := multiValue(right, rightRow, f.RightColumn)
	if !leftOK || !rightOK || len(leftVals) == 0 || len(rightVals) == 0 {
		return MissingValue
	}

	for _, l := range leftVals {
		for _, r := range rightVals {
			if l == r {
				return 1.0
			}
		}
	}
	return 0.0
}

// multiValue normalizes a column's stored shape (single string, slice, or
// token set) into a flat list of comparable strings.
func multiValue(t pipeline.Table, row, col string) ([]string, bool) {
	v, ok := t.Column(row, col)
	if !ok || v == nil {
		return nil, false
	}
	switch value := v.(type) {
	case string:
		return []string{value}, true
	case []string:
		return value, true
	case map[string]struct{}:
		out := make([]string, 0, len(value))
		for s := range value {
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
