package ioclassify

import (
	"math"
	"math/rand"

	"github.com/soweego-go/soweego/pkg/model"
)

// SingleLayerPerceptron is a single Dense(1, sigmoid) unit trained by
// batch gradient descent on binary cross-entropy, the same model as LogisticRegression but kept
// as a distinct type since the original ships it as a separate neural
// network classifier (neural_networks.py's SingleLayerPerceptron).
type SingleLayerPerceptron struct {
	Config GradientDescentConfig

	Weights []float64
	Bias    float64
}

func (c *SingleLayerPerceptron) Name() string { return SingleLayerPerceptronAlgorithm }

func (c *SingleLayerPerceptron) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
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

func (c *SingleLayerPerceptron) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
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

// MultiLayerPerceptron is a small feed-forward network — hidden layers of
// 128 and 32 ReLU units followed by one sigmoid output unit — trained by
// mini-batch gradient descent with momentum. Grounded line-for-line on
// neural_networks.py's MultiLayerPerceptron architecture
// (Dense(128, relu) -> Dense(32, relu) -> Dense(1, sigmoid)); Adam is
// approximated by momentum-SGD (see DESIGN.md).
type MultiLayerPerceptron struct {
	Config MLPConfig

	W1, W2, W3 [][]float64
	B1, B2, B3 []float64
}

// MLPConfig controls the network's training loop.
type MLPConfig struct {
	HiddenOne    int
	HiddenTwo    int
	LearningRate float64
	Momentum     float64
	Epochs       int
	BatchSize    int
	Seed         int64
}

func DefaultMLPConfig() MLPConfig {
	return MLPConfig{HiddenOne: 128, HiddenTwo: 32, LearningRate: 0.01, Momentum: 0.9, Epochs: 200, BatchSize: 64, Seed: 1}
}

func (c *MultiLayerPerceptron) Name() string { return MultiLayerPerceptronAlgorithm }

func (c *MultiLayerPerceptron) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
	rows := labelRows(features, positives)
	if len(rows) == 0 {
		return FitError(c.Name(), "no training rows")
	}
	if c.Config == (MLPConfig{}) {
		c.Config = DefaultMLPConfig()
	}

	width := features.Width()
	rng := rand.New(rand.NewSource(c.Config.Seed))
	c.W1, c.B1 = initLayer(rng, width, c.Config.HiddenOne)
	c.W2, c.B2 = initLayer(rng, c.Config.HiddenOne, c.Config.HiddenTwo)
	c.W3, c.B3 = initLayer(rng, c.Config.HiddenTwo, 1)

	mw1, mw2, mw3 := zeroLike(c.W1), zeroLike(c.W2), zeroLike(c.W3)
	mb1, mb2, mb3 := make([]float64, len(c.B1)), make([]float64, len(c.B2)), make([]float64, len(c.B3))

	batch := c.Config.BatchSize
	if batch <= 0 || batch > len(rows) {
		batch = len(rows)
	}

	for epoch := 0; epoch < c.Config.Epochs; epoch++ {
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

		for start := 0; start < len(rows); start += batch {
			end := start + batch
			if end > len(rows) {
				end = len(rows)
			}
			c.trainBatch(rows[start:end], mw1, mw2, mw3, mb1, mb2, mb3)
		}
	}
	return nil
}

func (c *MultiLayerPerceptron) trainBatch(batch []labeledRow, mw1, mw2, mw3 [][]float64, mb1, mb2, mb3 []float64) {
	n := float64(len(batch))
	gw1, gw2, gw3 := zeroLike(c.W1), zeroLike(c.W2), zeroLike(c.W3)
	gb1, gb2, gb3 := make([]float64, len(c.B1)), make([]float64, len(c.B2)), make([]float64, len(c.B3))

	for _, row := range batch {
		h1, h1raw := forwardReLU(c.W1, c.B1, row.x)
		h2, h2raw := forwardReLU(c.W2, c.B2, h1)
		out := sigmoid(dot(c.W3[0], h2) + c.B3[0])

		delta3 := out - row.label
		for j := range c.W3[0] {
			gw3[0][j] += delta3 * h2[j]
		}
		gb3[0] += delta3

		delta2 := make([]float64, len(h2))
		for j := range h2 {
			delta2[j] = delta3 * c.W3[0][j] * reLUDerivative(h2raw[j])
		}
		for j := range c.W2 {
			for k := range c.W2[j] {
				gw2[j][k] += delta2[j] * h1[k]
			}
			gb2[j] += delta2[j]
		}

		delta1 := make([]float64, len(h1))
		for j := range h1 {
			sum := 0.0
			for k := range delta2 {
				sum += delta2[k] * c.W2[k][j]
			}
			delta1[j] = sum * reLUDerivative(h1raw[j])
		}
		for j := range c.W1 {
			for k := range c.W1[j] {
				if k < len(row.x) {
					gw1[j][k] += delta1[j] * row.x[k]
				}
			}
			gb1[j] += delta1[j]
		}
	}

	applyMomentumUpdate(c.W1, gw1, mw1, n, c.Config.LearningRate, c.Config.Momentum)
	applyMomentumUpdate(c.W2, gw2, mw2, n, c.Config.LearningRate, c.Config.Momentum)
	applyMomentumUpdate(c.W3, gw3, mw3, n, c.Config.LearningRate, c.Config.Momentum)
	applyMomentumUpdateVec(c.B1, gb1, mb1, n, c.Config.LearningRate, c.Config.Momentum)
	applyMomentumUpdateVec(c.B2, gb2, mb2, n, c.Config.LearningRate, c.Config.Momentum)
	applyMomentumUpdateVec(c.B3, gb3, mb3, n, c.Config.LearningRate, c.Config.Momentum)
}

func (c *MultiLayerPerceptron) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	if c.W1 == nil {
		return nil, NotFittedError(c.Name())
	}
	keys := keysOf(features)
	scores := make([]float64, len(keys))
	for i, k := range keys {
		row, _ := features.Get(k)
		h1, _ := forwardReLU(c.W1, c.B1, row)
		h2, _ := forwardReLU(c.W2, c.B2, h1)
		scores[i] = sigmoid(dot(c.W3[0], h2) + c.B3[0])
	}
	return scoreVector(keys, scores), nil
}

func initLayer(rng *rand.Rand, in, out int) (weights [][]float64, bias []float64) {
	weights = make([][]float64, out)
	scale := math.Sqrt(2.0 / float64(in+1))
	for i := range weights {
		weights[i] = make([]float64, in)
		for j := range weights[i] {
			weights[i][j] = rng.NormFloat64() * scale
		}
	}
	bias = make([]float64, out)
	return weights, bias
}

func zeroLike(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i := range m {
		out[i] = make([]float64, len(m[i]))
	}
	return out
}

func forwardReLU(weights [][]float64, bias []float64, x []float64) (activated, raw []float64) {
	raw = make([]float64, len(weights))
	activated = make([]float64, len(weights))
	for i := range weights {
		z := dot(weights[i], x) + bias[i]
		raw[i] = z
		activated[i] = reLU(z)
	}
	return activated, raw
}

func reLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func reLUDerivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

func applyMomentumUpdate(weights, grad, momentum [][]float64, n, lr, beta float64) {
	for i := range weights {
		for j := range weights[i] {
			g := grad[i][j] / n
			momentum[i][j] = beta*momentum[i][j] + (1-beta)*g
			weights[i][j] -= lr * momentum[i][j]
		}
	}
}

func applyMomentumUpdateVec(bias, grad, momentum []float64, n, lr, beta float64) {
	for i := range bias {
		g := grad[i] / n
		momentum[i] = beta*momentum[i] + (1-beta)*g
		bias[i] -= lr * momentum[i]
	}
}
