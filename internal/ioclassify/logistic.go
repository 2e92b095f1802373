package ioclassify

import (
	"github.com/soweego-go/soweego/pkg/model"
)

// GradientDescentConfig controls the shared batch gradient-descent loop
// LogisticRegression, LinearSVM and SingleLayerPerceptron all use.
type GradientDescentConfig struct {
	LearningRate float64
	L2           float64
	Epochs       int
}

// DefaultGradientDescentConfig mirrors sklearn's and Keras's common
// defaults for these linear models: a modest learning rate, light L2
// regularization, and enough epochs to converge on a few hundred rows.
func DefaultGradientDescentConfig() GradientDescentConfig {
	return GradientDescentConfig{LearningRate: 0.1, L2: 0.0001, Epochs: 500}
}

// LogisticRegression is a linear classifier trained by batch gradient
// descent on the binary cross-entropy loss, grounded on
// `rl.LogisticRegressionClassifier`'s role in the original pipeline.
type LogisticRegression struct {
	Config GradientDescentConfig

	Weights []float64
	Bias    float64
}

func (c *LogisticRegression) Name() string { return LogisticRegressionAlgorithm }

func (c *LogisticRegression) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
	rows := labelRows(features, positives)
	if len(rows) == 0 {
		return FitError(c.Name(), "no training rows")
	}
	if c.Config == (GradientDescentConfig{}) {
		c.Config = DefaultGradientDescentConfig()
	}

	c.Weights, c.Bias = fitLogistic(rows, features.Width(), c.Config)
	return nil
}

func (c *LogisticRegression) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	if c.Weights == nil {
		return nil, NotFittedError(c.Name())
	}
	keys := keysOf(features)
	scores := make([]float64, len(keys))
	for i, k := range keys {
		row, _ := features.Get(k)
		scores[i] = sigmoid(dot(c.Weights, row) + c.Bias)
	}
	return scoreVector(keys, scores), nil
}

// fitLogistic runs batch gradient descent on the logistic loss, shared by
// LogisticRegression and SingleLayerPerceptron since a single sigmoid
// output unit with binary cross-entropy loss is the same model either way
// (see neural_networks.py's SingleLayerPerceptron: one Dense(1, sigmoid)
// layer trained with SGD).
func fitLogistic(rows []labeledRow, width int, cfg GradientDescentConfig) (weights []float64, bias float64) {
	weights = make([]float64, width)
	n := float64(len(rows))

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		gradW := make([]float64, width)
		gradB := 0.0

		for _, r := range rows {
			pred := sigmoid(dot(weights, r.x) + bias)
			err := pred - r.label
			for j := 0; j < width && j < len(r.x); j++ {
				gradW[j] += err * r.x[j]
			}
			gradB += err
		}

		for j := range weights {
			weights[j] -= cfg.LearningRate * (gradW[j]/n + cfg.L2*weights[j])
		}
		bias -= cfg.LearningRate * gradB / n
	}
	return weights, bias
}
