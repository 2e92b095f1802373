package ioclassify

import (
	"math"

	"github.com/soweego-go/soweego/pkg/model"
)

// NaiveBayes is a Gaussian naive Bayes classifier: each feature column is
// assumed normally distributed within each class, independently of the
// others, mirroring recordlinkage's NaiveBayesClassifier applied to this
// module's continuous similarity features rather than its original
// binarized ones.
type NaiveBayes struct {
	Columns       []string
	PriorPositive float64
	MeanPositive  []float64
	VarPositive   []float64
	MeanNegative  []float64
	VarNegative   []float64
}

func (c *NaiveBayes) Name() string { return NaiveBayesAlgorithm }

func (c *NaiveBayes) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
	rows := labelRows(features, positives)
	if len(rows) == 0 {
		return FitError(c.Name(), "no training rows")
	}

	width := features.Width()
	c.Columns = features.Columns

	var positiveRows, negativeRows [][]float64
	for _, r := range rows {
		if r.label == 1 {
			positiveRows = append(positiveRows, r.x)
		} else {
			negativeRows = append(negativeRows, r.x)
		}
	}

	c.PriorPositive = float64(len(positiveRows)) / float64(len(rows))
	c.MeanPositive, c.VarPositive = meanVar(positiveRows, width)
	c.MeanNegative, c.VarNegative = meanVar(negativeRows, width)
	return nil
}

func (c *NaiveBayes) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	if c.MeanPositive == nil {
		return nil, NotFittedError(c.Name())
	}

	keys := keysOf(features)
	scores := make([]float64, len(keys))
	for i, k := range keys {
		row, _ := features.Get(k)
		logPositive := math.Log(c.PriorPositive + 1e-12)
		logNegative := math.Log(1-c.PriorPositive + 1e-12)
		for j := range row {
			if j >= len(c.MeanPositive) {
				break
			}
			logPositive += logGaussian(row[j], c.MeanPositive[j], c.VarPositive[j])
			logNegative += logGaussian(row[j], c.MeanNegative[j], c.VarNegative[j])
		}
		scores[i] = sigmoid(logPositive - logNegative)
	}
	return scoreVector(keys, scores), nil
}

func meanVar(rows [][]float64, width int) (mean, variance []float64) {
	mean = make([]float64, width)
	variance = make([]float64, width)
	if len(rows) == 0 {
		for i := range variance {
			variance[i] = 1
		}
		return mean, variance
	}

	for _, r := range rows {
		for j := 0; j < width && j < len(r); j++ {
			mean[j] += r[j]
		}
	}
	for j := range mean {
		mean[j] /= float64(len(rows))
	}

	for _, r := range rows {
		for j := 0; j < width && j < len(r); j++ {
			d := r[j] - mean[j]
			variance[j] += d * d
		}
	}
	for j := range variance {
		variance[j] = variance[j]/float64(len(rows)) + 1e-6 // floor avoids div-by-zero on constant columns
	}
	return mean, variance
}

func logGaussian(x, mean, variance float64) float64 {
	return -0.5*math.Log(2*math.Pi*variance) - (x-mean)*(x-mean)/(2*variance)
}
