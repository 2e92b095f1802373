package ioclassify

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soweego-go/soweego/internal/iocache"
	"github.com/soweego-go/soweego/internal/iopreprocess"
	"github.com/soweego-go/soweego/pkg/model"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// separableVectors builds a feature vector where a single column cleanly
// separates two classes, so every classifier's Fit/Predict round trip can
// be checked against a known answer without a real dataset.
func separableVectors() (*model.FeatureVector, *model.PairIndex) {
	features := model.NewFeatureVector([]string{"similarity"})
	positives := model.NewPairIndex()

	for i := 0; i < 20; i++ {
		key := model.PairKey{QID: "Q1", TID: model.TID(string(rune('a' + i)))}
		features.Set(key, []float64{0.95})
		positives.Add(key)
	}
	for i := 0; i < 20; i++ {
		key := model.PairKey{QID: "Q2", TID: model.TID(string(rune('A' + i)))}
		features.Set(key, []float64{0.05})
	}
	return features, positives
}

func assertSeparates(t *testing.T, classifier pipeline.Classifier) {
	t.Helper()
	features, positives := separableVectors()
	require.NoError(t, classifier.Fit(features, positives))

	predicted, err := classifier.Predict(features)
	require.NoError(t, err)

	positiveKey := model.PairKey{QID: "Q1", TID: "a"}
	negativeKey := model.PairKey{QID: "Q2", TID: "A"}
	positiveScore, ok := predicted.Get(positiveKey)
	require.True(t, ok)
	negativeScore, ok := predicted.Get(negativeKey)
	require.True(t, ok)

	assert.Greater(t, positiveScore[0], negativeScore[0])
}

func TestNaiveBayesSeparates(t *testing.T) {
	assertSeparates(t, &NaiveBayes{})
}

func TestLogisticRegressionSeparates(t *testing.T) {
	assertSeparates(t, &LogisticRegression{})
}

func TestLinearSVMSeparates(t *testing.T) {
	assertSeparates(t, &LinearSVM{})
}

func TestSVMSeparates(t *testing.T) {
	assertSeparates(t, &SVM{})
}

func TestRandomForestSeparates(t *testing.T) {
	assertSeparates(t, &RandomForest{})
}

func TestSingleLayerPerceptronSeparates(t *testing.T) {
	assertSeparates(t, &SingleLayerPerceptron{})
}

func TestMultiLayerPerceptronSeparates(t *testing.T) {
	cfg := DefaultMLPConfig()
	cfg.Epochs = 50 // keep the test fast; the separable fixture converges well before 200
	assertSeparates(t, &MultiLayerPerceptron{Config: cfg})
}

func TestVotingSeparates(t *testing.T) {
	assertSeparates(t, &Voting{Classifiers: []pipeline.Classifier{&LogisticRegression{}, &NaiveBayes{}}})
}

func TestStackedSeparates(t *testing.T) {
	assertSeparates(t, &Stacked{Classifiers: []pipeline.Classifier{&LogisticRegression{}, &NaiveBayes{}}})
}

func TestPredictBeforeFitReturnsNotFittedError(t *testing.T) {
	features, _ := separableVectors()
	_, err := (&LogisticRegression{}).Predict(features)
	assert.Error(t, err)
}

func TestGatedFallsBackToLastConstituent(t *testing.T) {
	features, positives := separableVectors()

	a := &LogisticRegression{}
	b := &NaiveBayes{}
	require.NoError(t, a.Fit(features, positives))
	require.NoError(t, b.Fit(features, positives))

	gated := &Gated{Classifiers: []pipeline.Classifier{a, b}, Threshold: 2.0} // unreachable threshold forces fallback
	predicted, err := gated.Predict(features)
	require.NoError(t, err)

	last, err := b.Predict(features)
	require.NoError(t, err)

	key := model.PairKey{QID: "Q1", TID: "a"}
	gotScore, _ := predicted.Get(key)
	wantScore, _ := last.Get(key)
	assert.Equal(t, wantScore, gotScore)
}

func TestBaselineMatchesOnOverlappingNames(t *testing.T) {
	left := iopreprocess.New(model.EntitySchema{Columns: []model.ColumnSpec{{Name: "name"}}})
	left.Set("Q1", "name", tokenSet("david", "bowie"))
	right := iopreprocess.New(model.EntitySchema{Columns: []model.ColumnSpec{{Name: "name"}}})
	right.Set("T1", "name", tokenSet("david", "bowie"))
	right.Set("T2", "name", tokenSet("someone", "else"))

	pairs := model.NewPairIndex()
	pairs.Add(model.PairKey{QID: "Q1", TID: "T1"})
	pairs.Add(model.PairKey{QID: "Q1", TID: "T2"})

	baseline := Baseline{NameColumn: "name"}
	scores := baseline.Match(pairs, left, right)

	matched, _ := scores.Get(model.PairKey{QID: "Q1", TID: "T1"})
	unmatched, _ := scores.Get(model.PairKey{QID: "Q1", TID: "T2"})
	assert.Equal(t, 1.0, matched[0])
	assert.Equal(t, 0.0, unmatched[0])
}

func TestBaselineChecksDatesWhenConfigured(t *testing.T) {
	left := iopreprocess.New(model.EntitySchema{Columns: []model.ColumnSpec{{Name: "name"}, {Name: "birth"}}})
	left.Set("Q1", "name", tokenSet("david", "bowie"))
	left.Set("Q1", "birth", model.PrecisionDate{Year: 1947, Precision: model.PrecisionYear})

	right := iopreprocess.New(model.EntitySchema{Columns: []model.ColumnSpec{{Name: "name"}, {Name: "birth"}}})
	right.Set("T1", "name", tokenSet("david", "bowie"))
	right.Set("T1", "birth", model.PrecisionDate{Year: 1999, Precision: model.PrecisionYear})

	pairs := model.NewPairIndex()
	pairs.Add(model.PairKey{QID: "Q1", TID: "T1"})

	baseline := Baseline{NameColumn: "name", BirthDateColumn: "birth", CheckDates: true}
	scores := baseline.Match(pairs, left, right)

	score, _ := scores.Get(model.PairKey{QID: "Q1", TID: "T1"})
	assert.Equal(t, 0.0, score[0], "mismatched birth years should override the name match")
}

func TestNameRuleZeroesDisjointNames(t *testing.T) {
	left := iopreprocess.New(model.EntitySchema{Columns: []model.ColumnSpec{{Name: "name"}}})
	left.Set("Q1", "name", tokenSet("david", "bowie"))
	right := iopreprocess.New(model.EntitySchema{Columns: []model.ColumnSpec{{Name: "name"}}})
	right.Set("T1", "name", tokenSet("totally", "different"))

	keys := []model.PairKey{{QID: "Q1", TID: "T1"}}
	scores := NameRule("name")(keys, []float64{0.9}, left, right)
	assert.Equal(t, 0.0, scores[0])
}

func TestSelfLinkRuleOverridesScore(t *testing.T) {
	right := iopreprocess.New(model.EntitySchema{Columns: []model.ColumnSpec{{Name: "urls"}}})
	right.Set("T1", "urls", []string{"https://www.wikidata.org/wiki/Q42"})
	right.Set("T2", "urls", []string{"https://www.wikidata.org/wiki/Q999"})
	left := iopreprocess.New(model.EntitySchema{})

	keys := []model.PairKey{{QID: "Q42", TID: "T1"}, {QID: "Q42", TID: "T2"}}
	scores := SelfLinkRule("urls")(keys, []float64{0.1, 0.9}, left, right)
	assert.Equal(t, 1.0, scores[0], "matching self-link should force score to 1.0")
	assert.Equal(t, 0.0, scores[1], "mismatching self-link should force score to 0.0")
}

func TestSaveLoadRoundTripsTrainedModel(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	features, positives := separableVectors()
	classifier := &LogisticRegression{}
	require.NoError(t, classifier.Fit(features, positives))
	require.NoError(t, Save(ctx, store, "cat", "person", classifier))

	loaded, err := Load(ctx, store, "cat", "person", LogisticRegressionAlgorithm)
	require.NoError(t, err)

	want, err := classifier.Predict(features)
	require.NoError(t, err)
	got, err := loaded.Predict(features)
	require.NoError(t, err)

	key := model.PairKey{QID: "Q1", TID: "a"}
	wantScore, _ := want.Get(key)
	gotScore, _ := got.Get(key)
	assert.Equal(t, wantScore, gotScore)
}

func TestSaveLoadRoundTripsEnsemble(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	features, positives := separableVectors()
	voting := &Voting{Classifiers: []pipeline.Classifier{&LogisticRegression{}, &NaiveBayes{}}}
	require.NoError(t, voting.Fit(features, positives))
	require.NoError(t, Save(ctx, store, "cat", "person", voting))

	loaded, err := Load(ctx, store, "cat", "person", VotingEnsembleAlgorithm)
	require.NoError(t, err)

	want, err := voting.Predict(features)
	require.NoError(t, err)
	got, err := loaded.Predict(features)
	require.NoError(t, err)

	key := model.PairKey{QID: "Q1", TID: "a"}
	wantScore, _ := want.Get(key)
	gotScore, _ := got.Get(key)
	assert.InDelta(t, wantScore[0], gotScore[0], 1e-9)
}

func TestTrainThenClassifyThresholdsResults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	features, positives := separableVectors()
	cfg := ClassifierConfig{Algorithm: LogisticRegressionAlgorithm, Threshold: 0.5}

	_, err := Train(ctx, store, "cat", "person", cfg, features, positives)
	require.NoError(t, err)

	left := iopreprocess.New(model.EntitySchema{})
	right := iopreprocess.New(model.EntitySchema{})

	result, err := Classify(ctx, store, "cat", "person", cfg, features, left, right)
	require.NoError(t, err)

	_, kept := result.Get(model.PairKey{QID: "Q1", TID: "a"})
	_, dropped := result.Get(model.PairKey{QID: "Q2", TID: "A"})
	assert.True(t, kept)
	assert.False(t, dropped)
}

func TestClassifyUnknownModelReturnsNotFoundError(t *testing.T) {
	store := openTestStore(t)
	cfg := ClassifierConfig{Algorithm: LogisticRegressionAlgorithm}
	left := iopreprocess.New(model.EntitySchema{})
	right := iopreprocess.New(model.EntitySchema{})
	features := model.NewFeatureVector([]string{"similarity"})

	_, err := Classify(context.Background(), store, "cat", "person", cfg, features, left, right)
	assert.Error(t, err)
}

func TestTuneRejectsPerceptronVariants(t *testing.T) {
	store := openTestStore(t)
	features, positives := separableVectors()
	cfg := ClassifierConfig{Algorithm: MultiLayerPerceptronAlgorithm}

	_, err := Tune(context.Background(), store, "cat", "person", cfg, features, positives)
	assert.Error(t, err)
}

func TestTunePicksAWorkingLogisticRegression(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	features, positives := separableVectors()
	cfg := ClassifierConfig{Algorithm: LogisticRegressionAlgorithm}

	classifier, err := Tune(ctx, store, "cat", "person", cfg, features, positives)
	require.NoError(t, err)

	predicted, err := classifier.Predict(features)
	require.NoError(t, err)
	positiveScore, _ := predicted.Get(model.PairKey{QID: "Q1", TID: "a"})
	negativeScore, _ := predicted.Get(model.PairKey{QID: "Q2", TID: "A"})
	assert.Greater(t, positiveScore[0], negativeScore[0])
}

func tokenSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func openTestStore(t *testing.T) *iocache.Store {
	t.Helper()
	dir := t.TempDir()
	store, err := iocache.Open(context.Background(), filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}
