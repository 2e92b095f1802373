package ioclassify

import (
	"math"
	"math/rand"

	"github.com/soweego-go/soweego/pkg/model"
)

// RandomForestConfig controls forest size and tree shape.
type RandomForestConfig struct {
	Trees       int
	MaxDepth    int
	FeatureFrac float64
	SampleFrac  float64
	Seed        int64
}

func DefaultRandomForestConfig() RandomForestConfig {
	return RandomForestConfig{Trees: 50, MaxDepth: 4, FeatureFrac: 0.7, SampleFrac: 0.8, Seed: 1}
}

// decisionNode is one node of a shallow binary decision tree, split on a
// single feature's threshold (a CART-style axis-aligned split).
type decisionNode struct {
	Leaf       bool
	Prediction float64
	Feature    int
	Threshold  float64
	Left       *decisionNode
	Right      *decisionNode
}

// RandomForest is a bagging ensemble of shallow decision trees over
// randomly sampled rows and feature subsets, the Go stand-in for
// sklearn's RandomForestClassifier as used by the original pipeline; no
// pack library implements CART trees (see DESIGN.md), so both tree
// induction and bagging are hand-rolled here.
type RandomForest struct {
	Config RandomForestConfig

	Trees []*decisionNode
}

func (c *RandomForest) Name() string { return RandomForestAlgorithm }

func (c *RandomForest) Fit(features *model.FeatureVector, positives *model.PairIndex) error {
	rows := labelRows(features, positives)
	if len(rows) == 0 {
		return FitError(c.Name(), "no training rows")
	}
	if c.Config == (RandomForestConfig{}) {
		c.Config = DefaultRandomForestConfig()
	}

	width := features.Width()
	rng := rand.New(rand.NewSource(c.Config.Seed))

	sampleSize := int(float64(len(rows)) * c.Config.SampleFrac)
	if sampleSize < 1 {
		sampleSize = len(rows)
	}
	featureCount := int(float64(width) * c.Config.FeatureFrac)
	if featureCount < 1 {
		featureCount = width
	}

	c.Trees = make([]*decisionNode, c.Config.Trees)
	for t := 0; t < c.Config.Trees; t++ {
		sample := bootstrapSample(rng, rows, sampleSize)
		featureSubset := randomFeatureSubset(rng, width, featureCount)
		c.Trees[t] = buildTree(sample, featureSubset, c.Config.MaxDepth)
	}
	return nil
}

func (c *RandomForest) Predict(features *model.FeatureVector) (*model.FeatureVector, error) {
	if c.Trees == nil {
		return nil, NotFittedError(c.Name())
	}
	keys := keysOf(features)
	scores := make([]float64, len(keys))
	for i, k := range keys {
		row, _ := features.Get(k)
		sum := 0.0
		for _, tree := range c.Trees {
			sum += predictTree(tree, row)
		}
		scores[i] = sum / float64(len(c.Trees))
	}
	return scoreVector(keys, scores), nil
}

func bootstrapSample(rng *rand.Rand, rows []labeledRow, size int) []labeledRow {
	out := make([]labeledRow, size)
	for i := range out {
		out[i] = rows[rng.Intn(len(rows))]
	}
	return out
}

func randomFeatureSubset(rng *rand.Rand, width, count int) []int {
	all := rng.Perm(width)
	if count > len(all) {
		count = len(all)
	}
	return all[:count]
}

func buildTree(rows []labeledRow, features []int, maxDepth int) *decisionNode {
	if maxDepth == 0 || len(rows) < 2 || isPure(rows) {
		return &decisionNode{Leaf: true, Prediction: meanLabel(rows)}
	}

	bestFeature, bestThreshold, bestGain := -1, 0.0, 0.0
	baseImpurity := giniImpurity(rows)

	for _, f := range features {
		thresholds := candidateThresholds(rows, f)
		for _, threshold := range thresholds {
			left, right := splitRows(rows, f, threshold)
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			gain := baseImpurity - weightedImpurity(left, right)
			if gain > bestGain {
				bestGain, bestFeature, bestThreshold = gain, f, threshold
			}
		}
	}

	if bestFeature == -1 {
		return &decisionNode{Leaf: true, Prediction: meanLabel(rows)}
	}

	left, right := splitRows(rows, bestFeature, bestThreshold)
	return &decisionNode{
		Feature:   bestFeature,
		Threshold: bestThreshold,
		Left:      buildTree(left, features, maxDepth-1),
		Right:     buildTree(right, features, maxDepth-1),
	}
}

func predictTree(node *decisionNode, x []float64) float64 {
	for !node.Leaf {
		if node.Feature < len(x) && x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Prediction
}

func isPure(rows []labeledRow) bool {
	if len(rows) == 0 {
		return true
	}
	first := rows[0].label
	for _, r := range rows {
		if r.label != first {
			return false
		}
	}
	return true
}

func meanLabel(rows []labeledRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rows {
		sum += r.label
	}
	return sum / float64(len(rows))
}

func giniImpurity(rows []labeledRow) float64 {
	p := meanLabel(rows)
	return 2 * p * (1 - p)
}

func weightedImpurity(left, right []labeledRow) float64 {
	n := float64(len(left) + len(right))
	return float64(len(left))/n*giniImpurity(left) + float64(len(right))/n*giniImpurity(right)
}

func splitRows(rows []labeledRow, feature int, threshold float64) (left, right []labeledRow) {
	for _, r := range rows {
		v := 0.0
		if feature < len(r.x) {
			v = r.x[feature]
		}
		if v <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}

// candidateThresholds samples up to 10 evenly-spaced values between the
// feature's min and max as split candidates, avoiding the cost of trying
// every distinct value in a large chunk.
func candidateThresholds(rows []labeledRow, feature int) []float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		if feature >= len(r.x) {
			continue
		}
		if r.x[feature] < min {
			min = r.x[feature]
		}
		if r.x[feature] > max {
			max = r.x[feature]
		}
	}
	if math.IsInf(min, 1) || min == max {
		return nil
	}

	const steps = 10
	out := make([]float64, 0, steps)
	for i := 1; i < steps; i++ {
		out = append(out, min+(max-min)*float64(i)/float64(steps))
	}
	return out
}
