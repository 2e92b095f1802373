package iofeatures

import (
	"context"
	"math"

	"github.com/agext/levenshtein"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// StringAlgorithm selects the similarity measure SimilarStrings applies.
type StringAlgorithm int

const (
	Levenshtein StringAlgorithm = iota
	Cosine
)

// SimilarStrings scores how alike two token-set columns are, taking the
// maximum pairwise score across the cross product for Levenshtein, or a
// single cosine similarity over the whole bag of tokens.
type SimilarStrings struct {
	LeftColumn, RightColumn string
	Algorithm               StringAlgorithm
}

func (f SimilarStrings) Name() string {
	name := "similar_strings"
	if f.Algorithm == Cosine {
		name += ":cosine"
	} else {
		name += ":levenshtein"
	}
	return name + ":" + f.LeftColumn + ":" + f.RightColumn
}

func (f SimilarStrings) Compute(_ context.Context, pairs *model.PairIndex, left, right pipeline.Table) ([]float64, error) {
	out := make([]float64, 0, pairs.Len())
	for _, key := range pairs.Sorted() {
		leftTokens, leftOK := tokenSet(left, string(key.QID), f.LeftColumn)
		rightTokens, rightOK := tokenSet(right, string(key.TID), f.RightColumn)
		if !leftOK || !rightOK || len(leftTokens) == 0 || len(rightTokens) == 0 {
			out = append(out, MissingValue)
			continue
		}

		if f.Algorithm == Cosine {
			out = append(out, cosineSimilarity(leftTokens, rightTokens))
		} else {
			out = append(out, maxLevenshteinSimilarity(leftTokens, rightTokens))
		}
	}
	return out, nil
}

// maxLevenshteinSimilarity is the teacher-pack-grounded port of the
// original's "maximum edit distance among the list of values": the
// highest 1 - distance/maxlen over every source/target token pair.
func maxLevenshteinSimilarity(left, right map[string]struct{}) float64 {
	best := 0.0
	for l := range left {
		for r := range right {
			maxLen := len(l)
			if len(r) > maxLen {
				maxLen = len(r)
			}
			if maxLen == 0 {
				continue
			}
			score := 1 - float64(levenshtein.Distance(l, r, nil))/float64(maxLen)
			if score > best {
				best = score
			}
		}
	}
	return best
}

// cosineSimilarity computes sparse token-count cosine similarity between
// two token bags. No example-pack library offers sparse-vector cosine
// similarity over string token counts (see DESIGN.md); this hand-rolled
// implementation mirrors the original's CountVectorizer + cosine metric
// using term counts of 1 per distinct token, since both sides are
// already deduplicated sets by the time they reach this feature.
func cosineSimilarity(left, right map[string]struct{}) float64 {
	if len(left) == 0 || len(right) == 0 {
		return MissingValue
	}

	shared := 0
	for tok := range left {
		if _, ok := right[tok]; ok {
			shared++
		}
	}

	magnitudeLeft := math.Sqrt(float64(len(left)))
	magnitudeRight := math.Sqrt(float64(len(right)))
	if magnitudeLeft == 0 || magnitudeRight == 0 {
		return 0
	}
	return float64(shared) / (magnitudeLeft * magnitudeRight)
}
