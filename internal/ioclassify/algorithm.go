// Package ioclassify implements the supervised classifiers that score
// candidate (QID, TID) pairs from their feature vectors: naive Bayes,
// logistic regression, linear and probability-calibrated SVM, random
// forest, single- and multi-layer perceptrons, plus the voting/gated/
// stacked ensembles that combine them. Every algorithm is implemented on
// plain slices of float64 rather than a linear-algebra library (see
// DESIGN.md for why).
package ioclassify

import (
	"math"
	"sort"

	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// Algorithm names the supported classifiers, matching the original
// implementation's classifier keys exactly.
const (
	NaiveBayesAlgorithm            = "naive_bayes"
	LogisticRegressionAlgorithm    = "logistic_regression"
	LinearSVMAlgorithm             = "linear_support_vector_machines"
	SVMAlgorithm                   = "support_vector_machines"
	RandomForestAlgorithm          = "random_forest"
	SingleLayerPerceptronAlgorithm = "single_layer_perceptron"
	MultiLayerPerceptronAlgorithm  = "multi_layer_perceptron"

	VotingEnsembleAlgorithm  = "voting_classifier"
	GatedEnsembleAlgorithm   = "gated_classifier"
	StackedEnsembleAlgorithm = "stacked_classifier"
)

// New constructs an untrained classifier for algorithm with its default
// configuration, the single place Train/Tune resolve an algorithm name to
// a concrete type.
func New(algorithm string) (pipeline.Classifier, error) {
	switch algorithm {
	case NaiveBayesAlgorithm:
		return &NaiveBayes{}, nil
	case LogisticRegressionAlgorithm:
		return &LogisticRegression{Config: DefaultGradientDescentConfig()}, nil
	case LinearSVMAlgorithm:
		return &LinearSVM{Config: DefaultGradientDescentConfig()}, nil
	case SVMAlgorithm:
		return &SVM{Config: DefaultGradientDescentConfig()}, nil
	case RandomForestAlgorithm:
		return &RandomForest{Config: DefaultRandomForestConfig()}, nil
	case SingleLayerPerceptronAlgorithm:
		return &SingleLayerPerceptron{Config: DefaultGradientDescentConfig()}, nil
	case MultiLayerPerceptronAlgorithm:
		return &MultiLayerPerceptron{Config: DefaultMLPConfig()}, nil
	default:
		return nil, UnknownAlgorithmError(algorithm)
	}
}

// labeledRow is one training example: a feature row plus its binary label.
type labeledRow struct {
	key   model.PairKey
	x     []float64
	label float64
}

// labelRows walks every row in features and labels it 1 when its pair key
// is a known positive, 0 otherwise — candidate pairs not listed as
// positive are assumed negative, the same convention the blocker's
// candidate-generation step relies on.
func labelRows(features *model.FeatureVector, positives *model.PairIndex) []labeledRow {
	keys := features.Keys()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].QID != keys[j].QID {
			return keys[i].QID < keys[j].QID
		}
		return keys[i].TID < keys[j].TID
	})

	rows := make([]labeledRow, 0, len(keys))
	for _, k := range keys {
		row, ok := features.Get(k)
		if !ok {
			continue
		}
		label := 0.0
		if positives != nil && positives.Contains(k) {
			label = 1.0
		}
		rows = append(rows, labeledRow{key: k, x: row, label: label})
	}
	return rows
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(w []float64, x []float64) float64 {
	sum := 0.0
	for i, v := range w {
		if i < len(x) {
			sum += v * x[i]
		}
	}
	return sum
}

// scoreVector builds a single-column "score" feature vector from a set of
// keys and scores, the common output shape every Classifier.Predict uses.
func scoreVector(keys []model.PairKey, scores []float64) *model.FeatureVector {
	out := model.NewFeatureVector([]string{"score"})
	for i, k := range keys {
		out.Set(k, []float64{scores[i]})
	}
	return out
}

func keysOf(features *model.FeatureVector) []model.PairKey {
	keys := features.Keys()
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].QID != keys[j].QID {
			return keys[i].QID < keys[j].QID
		}
		return keys[i].TID < keys[j].TID
	})
	return keys
}
