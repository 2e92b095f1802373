package ioclassify

import (
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// Voting averages its constituent classifiers' scores, mirroring
// ensembles.py's majority-vote combinator generalized from hard votes to
// averaged soft scores (so it composes with probability-producing
// classifiers directly).
type Voting struct {
	Classifiers []pipeline.Classifier
}

func (c *Voting) Name() string { return VotingEnsembleAlgorithm }

func (c *Voting) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
	for _, child := range c.Classifiers {
		if err := child.Fit(features, positives); err != nil {
			return err
		}
	}
	return nil
}

func (c *Voting) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	if len(c.Classifiers) == 0 {
		return nil, NotFittedError(c.Name())
	}
	return combine(c.Classifiers, features, func(scores []float64) float64 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		return sum / float64(len(scores))
	})
}

// Gated picks the first constituent whose score crosses Threshold,
// falling back to the last constituent's score, mirroring ensembles.py's
// gated combinator ("defer to a stronger, pickier classifier only when
// the cheap one is unsure").
type Gated struct {
	Classifiers []pipeline.Classifier
	Threshold   float64
}

func (c *Gated) Name() string { return GatedEnsembleAlgorithm }

func (c *Gated) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
	for _, child := range c.Classifiers {
		if err := child.Fit(features, positives); err != nil {
			return err
		}
	}
	return nil
}

func (c *Gated) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	if len(c.Classifiers) == 0 {
		return nil, NotFittedError(c.Name())
	}
	return combine(c.Classifiers, features, func(scores []float64) float64 {
		for _, s := range scores {
			if s >= c.Threshold {
				return s
			}
		}
		return scores[len(scores)-1]
	})
}

// Stacked trains a logistic-regression meta-classifier on its
// constituents' scores, mirroring ensembles.py's stacked combinator
// ("learn how to weigh each base classifier instead of fixing the rule").
type Stacked struct {
	Classifiers []pipeline.Classifier
	Meta        LogisticRegression
}

func (c *Stacked) Name() string { return StackedEnsembleAlgorithm }

func (c *Stacked) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
	for _, child := range c.Classifiers {
		if err := child.Fit(features, positives); err != nil {
			return err
		}
	}

	keys := keysOf(features)
	stackedColumns := make([]string, len(c.Classifiers))
	for i, child := range c.Classifiers {
		stackedColumns[i] = child.Name()
	}
	stackedVector := model.NewFeatureVector(stackedColumns)
	for _, k := range keys {
		row := make([]float64, len(c.Classifiers))
		for i, child := range c.Classifiers {
			pred, err := child.Predict(singleRowVector(features, k))
			if err != nil {
				return err
			}
			if v, ok := pred.Get(k); ok {
				row[i] = v[0]
			}
		}
		stackedVector.Set(k, row)
	}

	return c.Meta.Fit(stackedVector, positives)
}

func (c *Stacked) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	keys := keysOf(features)
	stackedColumns := make([]string, len(c.Classifiers))
	for i, child := range c.Classifiers {
		stackedColumns[i] = child.Name()
	}
	stackedVector := model.NewFeatureVector(stackedColumns)
	for _, k := range keys {
		row := make([]float64, len(c.Classifiers))
		for i, child := range c.Classifiers {
			pred, err := child.Predict(singleRowVector(features, k))
			if err != nil {
				return nil, err
			}
			if v, ok := pred.Get(k); ok {
				row[i] = v[0]
			}
		}
		stackedVector.Set(k, row)
	}
	return c.Meta.Predict(stackedVector)
}

func singleRowVector(features *model.FeatureVector, key model.PairKey) *model.FeatureVector {
	out := model.NewFeatureVector(features.Columns)
	if row, ok := features.Get(key); ok {
		out.Set(key, row)
	}
	return out
}

func combine(classifiers []pipeline.Classifier, features *model.FeatureVector, reduce func([]float64) float64) (*model.FeatureVector, error) {
	predictions := make([]*model.FeatureVector, len(classifiers))
	for i, child := range classifiers {
		pred, err := child.Predict(features)
		if err != nil {
			return nil, err
		}
		predictions[i] = pred
	}

	keys := keysOf(features)
	scores := make([]float64, len(keys))
	for i, k := range keys {
		perClassifier := make([]float64, len(predictions))
		for j, pred := range predictions {
			if v, ok := pred.Get(k); ok {
				perClassifier[j] = v[0]
			}
		}
		scores[i] = reduce(perClassifier)
	}
	return scoreVector(keys, scores), nil
}
