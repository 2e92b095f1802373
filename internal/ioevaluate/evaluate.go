// Package ioevaluate measures a classifier's precision, recall and
// F-score under stratified k-fold cross validation, the Go counterpart
// of evaluate.py's average_k_fold/single_k_fold. There is no pack-grounded
// equivalent of recordlinkage's confusion_matrix/precision/recall/fscore
// or numpy's mean/std, so both the confusion-matrix bookkeeping and the
// summary statistics are hand-rolled on stdlib math (see DESIGN.md).
package ioevaluate

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// Result is one fold's (or, for SingleKFold, the whole run's) confusion
// matrix and derived scores.
type Result struct {
	TruePositive  int
	FalsePositive int
	FalseNegative int
	TrueNegative  int

	Precision float64
	Recall    float64
	FScore    float64
}

// AverageResult is average_k_fold's summary: the mean and standard
// deviation of precision/recall/F-score across every fold, plus the
// union of every fold's predicted pairs.
type AverageResult struct {
	PrecisionMean, PrecisionStd float64
	RecallMean, RecallStd       float64
	FScoreMean, FScoreStd       float64
	Predictions                 *model.PairIndex
}

// DefaultK is the fold count both CLI commands default to, matching
// evaluate.py's `k=5` default.
const DefaultK = 5

// DefaultBinarizeThreshold is the score a prediction must clear to count
// as a positive match, matching evaluate.py's `--binarize` default.
const DefaultBinarizeThreshold = 0.1

// AverageKFold runs k-fold stratified cross validation over features/
// positives, training a fresh classifier (from newClassifier) on each
// fold's training split and scoring it against the held-out split,
// returning the mean and standard deviation of precision/recall/F-score
// across folds. Mirrors evaluate.py's average_k_fold.
func AverageKFold(ctx context.Context, newClassifier func() pipeline.Classifier, features *model.FeatureVector, positives *model.PairIndex, k int, binarizeThreshold float64, seed int64) (*AverageResult, error) {
	folds := stratifiedFolds(features, positives, k, seed)
	predictions := model.NewPairIndex()

	precisions := make([]float64, 0, len(folds))
	recalls := make([]float64, 0, len(folds))
	fscores := make([]float64, 0, len(folds))

	for i := range folds {
		result, foldPredictions, err := runFold(folds, i, newClassifier, features, positives, binarizeThreshold)
		if err != nil {
			return nil, FoldError(i, err)
		}
		precisions = append(precisions, result.Precision)
		recalls = append(recalls, result.Recall)
		fscores = append(fscores, result.FScore)
		predictions = predictions.Union(foldPredictions)
	}

	precisionMean, precisionStd := meanStd(precisions)
	recallMean, recallStd := meanStd(recalls)
	fscoreMean, fscoreStd := meanStd(fscores)

	return &AverageResult{
		PrecisionMean: precisionMean, PrecisionStd: precisionStd,
		RecallMean: recallMean, RecallStd: recallStd,
		FScoreMean: fscoreMean, FScoreStd: fscoreStd,
		Predictions: predictions,
	}, nil
}

// SingleKFold also runs k-fold cross validation, but instead of averaging
// per-fold scores it unions every fold's predictions and test rows, then
// computes one precision/recall/F-score over the whole dataset. Mirrors
// evaluate.py's single_k_fold.
func SingleKFold(ctx context.Context, newClassifier func() pipeline.Classifier, features *model.FeatureVector, positives *model.PairIndex, k int, binarizeThreshold float64, seed int64) (*model.PairIndex, Result, error) {
	folds := stratifiedFolds(features, positives, k, seed)
	predictions := model.NewPairIndex()
	var allTestKeys []model.PairKey

	for i := range folds {
		_, foldPredictions, err := runFold(folds, i, newClassifier, features, positives, binarizeThreshold)
		if err != nil {
			return nil, Result{}, FoldError(i, err)
		}
		predictions = predictions.Union(foldPredictions)
		allTestKeys = append(allTestKeys, folds[i]...)
	}

	return predictions, computePerformance(allTestKeys, predictions, positives), nil
}

// runFold trains newClassifier() on every fold but index i and scores it
// against fold i, returning that fold's Result and its binarized
// predictions.
func runFold(folds [][]model.PairKey, index int, newClassifier func() pipeline.Classifier, features *model.FeatureVector, positives *model.PairIndex, binarizeThreshold float64) (Result, *model.PairIndex, error) {
	var trainKeys []model.PairKey
	for i, fold := range folds {
		if i != index {
			trainKeys = append(trainKeys, fold...)
		}
	}
	testKeys := folds[index]

	trainFeatures := subsetFeatures(features, trainKeys)
	trainPositives := subsetPositives(positives, trainKeys)

	classifier := newClassifier()
	if err := classifier.Fit(trainFeatures, trainPositives); err != nil {
		return Result{}, nil, err
	}

	testFeatures := subsetFeatures(features, testKeys)
	predicted, err := classifier.Predict(testFeatures)
	if err != nil {
		return Result{}, nil, err
	}

	predictedPairs := binarizePredictions(predicted, binarizeThreshold)
	return computePerformance(testKeys, predictedPairs, positives), predictedPairs, nil
}

func binarizePredictions(scores *model.FeatureVector, threshold float64) *model.PairIndex {
	predicted := model.NewPairIndex()
	for _, k := range scores.Keys() {
		row, ok := scores.Get(k)
		if ok && len(row) > 0 && row[0] >= threshold {
			predicted.Add(k)
		}
	}
	return predicted
}

// computePerformance builds the confusion matrix of predicted against the
// known positives, restricted to testKeys, mirroring rl.confusion_matrix/
// precision/recall/fscore.
func computePerformance(testKeys []model.PairKey, predicted *model.PairIndex, positives *model.PairIndex) Result {
	var result Result
	for _, k := range testKeys {
		isPredicted := predicted.Contains(k)
		isActual := positives.Contains(k)
		switch {
		case isPredicted && isActual:
			result.TruePositive++
		case isPredicted && !isActual:
			result.FalsePositive++
		case !isPredicted && isActual:
			result.FalseNegative++
		default:
			result.TrueNegative++
		}
	}

	tp, fp, fn := float64(result.TruePositive), float64(result.FalsePositive), float64(result.FalseNegative)
	if tp+fp > 0 {
		result.Precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		result.Recall = tp / (tp + fn)
	}
	if result.Precision+result.Recall > 0 {
		result.FScore = 2 * result.Precision * result.Recall / (result.Precision + result.Recall)
	}
	return result
}

// stratifiedFolds splits every key in features into k folds, distributing
// positives and negatives round-robin after an independent shuffle of
// each group so every fold keeps roughly the dataset's overall
// positive/negative ratio, mirroring sklearn's
// StratifiedKFold(shuffle=True).
func stratifiedFolds(features *model.FeatureVector, positives *model.PairIndex, k int, seed int64) [][]model.PairKey {
	keys := features.Keys()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].QID != keys[j].QID {
			return keys[i].QID < keys[j].QID
		}
		return keys[i].TID < keys[j].TID
	})

	var positiveKeys, negativeKeys []model.PairKey
	for _, k := range keys {
		if positives.Contains(k) {
			positiveKeys = append(positiveKeys, k)
		} else {
			negativeKeys = append(negativeKeys, k)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(positiveKeys), func(i, j int) { positiveKeys[i], positiveKeys[j] = positiveKeys[j], positiveKeys[i] })
	rng.Shuffle(len(negativeKeys), func(i, j int) { negativeKeys[i], negativeKeys[j] = negativeKeys[j], negativeKeys[i] })

	folds := make([][]model.PairKey, k)
	for i, key := range positiveKeys {
		folds[i%k] = append(folds[i%k], key)
	}
	for i, key := range negativeKeys {
		folds[i%k] = append(folds[i%k], key)
	}
	return folds
}

func subsetFeatures(features *model.FeatureVector, keys []model.PairKey) *model.FeatureVector {
	out := model.NewFeatureVector(features.Columns)
	for _, k := range keys {
		if row, ok := features.Get(k); ok {
			out.Set(k, row)
		}
	}
	return out
}

func subsetPositives(positives *model.PairIndex, keys []model.PairKey) *model.PairIndex {
	out := model.NewPairIndex()
	for _, k := range keys {
		if positives.Contains(k) {
			out.Add(k)
		}
	}
	return out
}

// meanStd returns the mean and (population) standard deviation of values,
// the Go stand-in for numpy's mean/std used by evaluate.py.
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	for _, v := range values {
		d := v - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(len(values)))
	return mean, std
}
