package iofeatures

import (
	"context"

	"github.com/soweego-go/soweego/internal/iotext"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// SharedTokens scores the Jaccard overlap between two token-set columns,
// discounting band/ensemble low-score words (e.g. "band", "orchestra")
// that carry little discriminating signal when they happen to match.
type SharedTokens struct {
	LeftColumn, RightColumn string
}

const bandLowScorePenalty = 0.9

func (f SharedTokens) Name() string {
	return "shared_tokens:" + f.LeftColumn + ":" + f.RightColumn
}

func (f SharedTokens) Compute(_ context.Context, pairs *model.PairIndex, left, right pipeline.Table) ([]float64, error) {
	lowScore := iotext.BandLowScoreWords()

	out := make([]float64, 0, pairs.Len())
	for _, key := range pairs.Sorted() {
		leftTokens, leftOK := tokenSet(left, string(key.QID), f.LeftColumn)
		rightTokens, rightOK := tokenSet(right, string(key.TID), f.RightColumn)
		if !leftOK || !rightOK || len(leftTokens) == 0 || len(rightTokens) == 0 {
			out = append(out, MissingValue)
			continue
		}

		intersection, union := 0, len(leftTokens)
		lowScoreHits := 0
		for tok := range leftTokens {
			if _, ok := rightTokens[tok]; ok {
				intersection++
				if _, low := lowScore[tok]; low {
					lowScoreHits++
				}
			}
		}
		for tok := range rightTokens {
			if _, ok := leftTokens[tok]; !ok {
				union++
			}
		}

		if union == 0 {
			out = append(out, MissingValue)
			continue
		}
		score := (float64(intersection) - float64(lowScoreHits)*bandLowScorePenalty) / float64(union)
		out = append(out, score)
	}
	return out, nil
}
