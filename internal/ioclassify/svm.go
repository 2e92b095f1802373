package ioclassify

import (
	"github.com/soweego-go/soweego/pkg/model"
)

// LinearSVM is a linear support vector machine trained by sub-gradient
// descent on the hinge loss (a Pegasos-style update), grounded on
// classifiers.py's SVCClassifier configured with kernel='linear'. Its
// score is the sigmoid of the raw decision value, so it lands on the same
// [0,1] scale every other classifier's score column uses.
type LinearSVM struct {
	Config GradientDescentConfig

	Weights []float64
	Bias    float64
}

func (c *LinearSVM) Name() string { return LinearSVMAlgorithm }

func (c *LinearSVM) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
	rows := labelRows(features, positives)
	if len(rows) == 0 {
		return FitError(c.Name(), "no training rows")
	}
	if c.Config == (GradientDescentConfig{}) {
		c.Config = DefaultGradientDescentConfig()
	}
	c.Weights, c.Bias = fitHinge(rows, features.Width(), c.Config)
	return nil
}

func (c *LinearSVM) decision(x []float64) float64 {
	return dot(c.Weights, x) + c.Bias
}

func (c *LinearSVM) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	if c.Weights == nil {
		return nil, NotFittedError(c.Name())
	}
	keys := keysOf(features)
	scores := make([]float64, len(keys))
	for i, k := range keys {
		row, _ := features.Get(k)
		scores[i] = sigmoid(c.decision(row))
	}
	return scoreVector(keys, scores), nil
}

// fitHinge runs sub-gradient descent on the hinge loss with signed labels
// {-1, +1}, the classic Pegasos update.
func fitHinge(rows []labeledRow, width int, cfg GradientDescentConfig) (weights []float64, bias float64) {
	weights = make([]float64, width)
	n := float64(len(rows))

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		gradW := make([]float64, width)
		gradB := 0.0

		for _, r := range rows {
			y := 2*r.label - 1 // {0,1} -> {-1,+1}
			margin := y * (dot(weights, r.x) + bias)
			if margin < 1 {
				for j := 0; j < width && j < len(r.x); j++ {
					gradW[j] -= y * r.x[j]
				}
				gradB -= y
			}
		}

		for j := range weights {
			weights[j] -= cfg.LearningRate * (gradW[j]/n + cfg.L2*weights[j])
		}
		bias -= cfg.LearningRate * gradB / n
	}
	return weights, bias
}

// SVM wraps LinearSVM with Platt-style sigmoid calibration of its
// decision values into probabilities, mirroring SVCClassifier's
// `probability=True` option (scikit-learn's Platt scaling).
type SVM struct {
	Config GradientDescentConfig

	Base   LinearSVM
	Platt  []float64 // [scale] fit on the SVM's decision values
	Platt0 float64
}

func (c *SVM) Name() string { return SVMAlgorithm }

func (c *SVM) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
	c.Base.Config = c.Config
	if err := c.Base.Fit(features, positives); err != nil {
		return err
	}

	rows := labelRows(features, positives)
	decisionRows := make([]labeledRow, len(rows))
	for i, r := range rows {
		decisionRows[i] = labeledRow{key: r.key, x: []float64{c.Base.decision(r.x)}, label: r.label}
	}
	weights, bias := fitLogistic(decisionRows, 1, DefaultGradientDescentConfig())
	c.Platt = weights
	c.Platt0 = bias
	return nil
}

func (c *SVM) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	if c.Base.Weights == nil {
		return nil, NotFittedError(c.Name())
	}
	keys := keysOf(features)
	scores := make([]float64, len(keys))
	for i, k := range keys {
		row, _ := features.Get(k)
		decision := c.Base.decision(row)
		scores[i] = sigmoid(c.Platt[0]*decision + c.Platt0)
	}
	return scoreVector(keys, scores), nil
}
