package ioevaluate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// thresholdClassifier is a trivial classifier test double: it learns
// nothing and simply echoes back the single feature column as the score,
// enough to drive deterministic precision/recall through the fold logic.
type thresholdClassifier struct{}

func (thresholdClassifier) Name() string { return "threshold" }

func (thresholdClassifier) Fit(*model.FeatureVector, *model.PairIndex) error { return nil }

func (thresholdClassifier) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	out := model.NewFeatureVector([]string{"score"})
	for _, k := range features.Keys() {
		row, _ := features.Get(k)
		out.Set(k, []float64{row[0]})
	}
	return out, nil
}

func separableDataset() (*model.FeatureVector, *model.PairIndex) {
	features := model.NewFeatureVector([]string{"similarity"})
	positives := model.NewPairIndex()

	for i := 0; i < 30; i++ {
		key := model.PairKey{QID: "Q1", TID: model.TID(string(rune('a' + i)))}
		features.Set(key, []float64{0.9})
		positives.Add(key)
	}
	for i := 0; i < 30; i++ {
		key := model.PairKey{QID: "Q2", TID: model.TID(string(rune('A' + i)))}
		features.Set(key, []float64{0.1})
	}
	return features, positives
}

func TestAverageKFoldScoresPerfectSeparation(t *testing.T) {
	features, positives := separableDataset()

	result, err := AverageKFold(context.Background(), func() pipeline.Classifier { return thresholdClassifier{} },
		features, positives, DefaultK, 0.5, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.PrecisionMean, 0.001)
	assert.InDelta(t, 1.0, result.RecallMean, 0.001)
	assert.InDelta(t, 1.0, result.FScoreMean, 0.001)
	assert.InDelta(t, 0.0, result.PrecisionStd, 0.001)
}

func TestSingleKFoldUnionsAcrossFolds(t *testing.T) {
	features, positives := separableDataset()

	predictions, result, err := SingleKFold(context.Background(), func() pipeline.Classifier { return thresholdClassifier{} },
		features, positives, DefaultK, 0.5, 1)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Precision, 0.001)
	assert.InDelta(t, 1.0, result.Recall, 0.001)
	assert.Equal(t, 30, predictions.Len())
}

type failingFitClassifier struct{}

func (failingFitClassifier) Name() string { return "failing" }
func (failingFitClassifier) Fit(*model.FeatureVector, *model.PairIndex) error {
	return errors.New("boom")
}
func (failingFitClassifier) Predict(*model.FeatureVector) (*model.FeatureVector, error) {
	return nil, nil
}

func TestAverageKFoldPropagatesFoldError(t *testing.T) {
	features, positives := separableDataset()

	_, err := AverageKFold(context.Background(), func() pipeline.Classifier { return failingFitClassifier{} },
		features, positives, DefaultK, 0.5, 1)
	assert.Error(t, err)
}

func TestStratifiedFoldsPreserveRatio(t *testing.T) {
	features, positives := separableDataset()
	folds := stratifiedFolds(features, positives, 5, 1)

	for _, fold := range folds {
		positiveCount := 0
		for _, k := range fold {
			if positives.Contains(k) {
				positiveCount++
			}
		}
		assert.Equal(t, len(fold)/2, positiveCount, "each fold should keep the overall 1:1 positive/negative ratio")
	}
}
