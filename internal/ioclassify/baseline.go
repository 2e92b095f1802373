package ioclassify

import (
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// Baseline is a zero-training rule-based matcher: a pair scores 1.0 when
// its name-token sets overlap exactly (one is a subset of the other) and,
// if CheckDates is set, its birth/death dates agree at Year precision or
// coarser; otherwise it scores 0.0. Grounded on baseline.py's
// perfect_name_match plus its optional birth_death_date_match guard —
// the simplest strategy ('perfect'), since 'links'/'names' token-overlap
// variants are already covered by internal/iofeatures' SharedTokens/
// SimilarStrings features feeding the trained classifiers.
type Baseline struct {
	NameColumn      string
	BirthDateColumn string
	DeathDateColumn string
	CheckDates      bool
}

func (b Baseline) Name() string { return "baseline_perfect_name" }

// Match scores every candidate pair directly against the preprocessed
// tables, bypassing the feature-vector/classifier machinery entirely —
// the baseline never trains or extracts features.
func (b Baseline) Match(pairs *model.PairIndex, left, right pipeline.Table) *model.FeatureVector {
	keys := pairs.Sorted()
	vector := model.NewFeatureVector([]string{"score"})

	for _, key := range keys {
		score := 0.0
		if b.namesMatch(left, right, key) && (!b.CheckDates || b.datesAgree(left, right, key)) {
			score = 1.0
		}
		vector.Set(key, []float64{score})
	}
	return vector
}

func (b Baseline) namesMatch(left, right pipeline.Table, key model.PairKey) bool {
	leftTokens, leftOK := tokenColumn(left, key.QID, b.NameColumn)
	rightTokens, rightOK := tokenColumn(right, key.TID, b.NameColumn)
	if !leftOK || !rightOK || len(leftTokens) == 0 || len(rightTokens) == 0 {
		return false
	}
	return isSubset(leftTokens, rightTokens) || isSubset(rightTokens, leftTokens)
}

func isSubset(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func (b Baseline) datesAgree(left, right pipeline.Table, key model.PairKey) bool {
	agree := true
	if b.BirthDateColumn != "" {
		agree = agree && datePairAgrees(left, right, key, b.BirthDateColumn)
	}
	if b.DeathDateColumn != "" {
		agree = agree && datePairAgrees(left, right, key, b.DeathDateColumn)
	}
	return agree
}

func datePairAgrees(left, right pipeline.Table, key model.PairKey, column string) bool {
	leftDate, leftOK := dateColumn(left, key.QID, column)
	rightDate, rightOK := dateColumn(right, key.TID, column)
	if !leftOK || !rightOK {
		return true // no date to contradict on either side
	}
	return leftDate.Score(rightDate) > 0
}

func dateColumn(t pipeline.Table, row, col string) (model.PrecisionDate, bool) {
	v, ok := t.Column(row, col)
	if !ok {
		return model.PrecisionDate{}, false
	}
	d, ok := v.(model.PrecisionDate)
	return d, ok
}
