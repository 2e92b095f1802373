package ioclassify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soweego-go/soweego/internal/iocache"
	"github.com/soweego-go/soweego/pkg/pipeline"
)

// modelKind is the iocache artifact kind every trained classifier is
// stored under; models are addressed by (catalog, entity, algorithm) the
// same way every other cached artifact is addressed by (catalog, entity,
// goal).
const modelKind = "model"

// ensembleManifest is what actually gets persisted for a Voting, Gated or
// Stacked classifier. The ensemble's Classifiers field holds
// pipeline.Classifier interface values, which gob cannot encode without a
// registered concrete type per value — rather than fight that, each
// constituent is saved under its own (catalog, entity, algorithm) key and
// the manifest records only their names, so Load can reassemble the
// ensemble by loading each child independently.
type ensembleManifest struct {
	Children  []string
	Threshold float64             // Gated only
	Meta      LogisticRegression  // Stacked only
}

// Save persists a trained classifier so a later process can Load and
// Predict with it without retraining.
func Save(ctx context.Context, store *iocache.Store, catalog, entity string, classifier pipeline.Classifier) error {
	algorithm := classifier.Name()

	switch c := classifier.(type) {
	case *NaiveBayes:
		return put(ctx, store, catalog, entity, algorithm, *c)
	case *LogisticRegression:
		return put(ctx, store, catalog, entity, algorithm, *c)
	case *LinearSVM:
		return put(ctx, store, catalog, entity, algorithm, *c)
	case *SVM:
		return put(ctx, store, catalog, entity, algorithm, *c)
	case *RandomForest:
		return put(ctx, store, catalog, entity, algorithm, *c)
	case *SingleLayerPerceptron:
		return put(ctx, store, catalog, entity, algorithm, *c)
	case *MultiLayerPerceptron:
		return put(ctx, store, catalog, entity, algorithm, *c)
	case *Voting:
		return saveEnsemble(ctx, store, catalog, entity, algorithm, c.Classifiers, ensembleManifest{Children: namesOf(c.Classifiers)})
	case *Gated:
		return saveEnsemble(ctx, store, catalog, entity, algorithm, c.Classifiers, ensembleManifest{Children: namesOf(c.Classifiers), Threshold: c.Threshold})
	case *Stacked:
		return saveEnsemble(ctx, store, catalog, entity, algorithm, c.Classifiers, ensembleManifest{Children: namesOf(c.Classifiers), Meta: c.Meta})
	default:
		return ModelPersistError(catalog, entity, algorithm, fmt.Errorf("unsupported classifier type %T", classifier))
	}
}

// Load reconstructs a trained classifier previously stored by Save.
func Load(ctx context.Context, store *iocache.Store, catalog, entity, algorithm string) (pipeline.Classifier, error) {
	switch algorithm {
	case NaiveBayesAlgorithm:
		v, err := get[NaiveBayes](ctx, store, catalog, entity, algorithm)
		return v, err
	case LogisticRegressionAlgorithm:
		v, err := get[LogisticRegression](ctx, store, catalog, entity, algorithm)
		return v, err
	case LinearSVMAlgorithm:
		v, err := get[LinearSVM](ctx, store, catalog, entity, algorithm)
		return v, err
	case SVMAlgorithm:
		v, err := get[SVM](ctx, store, catalog, entity, algorithm)
		return v, err
	case RandomForestAlgorithm:
		v, err := get[RandomForest](ctx, store, catalog, entity, algorithm)
		return v, err
	case SingleLayerPerceptronAlgorithm:
		v, err := get[SingleLayerPerceptron](ctx, store, catalog, entity, algorithm)
		return v, err
	case MultiLayerPerceptronAlgorithm:
		v, err := get[MultiLayerPerceptron](ctx, store, catalog, entity, algorithm)
		return v, err
	case VotingEnsembleAlgorithm, GatedEnsembleAlgorithm, StackedEnsembleAlgorithm:
		return loadEnsemble(ctx, store, catalog, entity, algorithm)
	default:
		return nil, UnknownAlgorithmError(algorithm)
	}
}

func put[T any](ctx context.Context, store *iocache.Store, catalog, entity, algorithm string, value T) error {
	key := iocache.Key{Kind: modelKind, Catalog: catalog, Entity: entity, Goal: algorithm}
	changed, err := iocache.Put(ctx, store, key, value)
	if err != nil {
		return ModelPersistError(catalog, entity, algorithm, err)
	}
	if !changed {
		slog.Info("model unchanged since last save", "catalog", catalog, "entity", entity, "algorithm", algorithm)
	}
	return nil
}

// get returns *T so every Load case can hand back a pipeline.Classifier
// without an extra copy — every classifier method set here is on the
// pointer receiver.
func get[T any](ctx context.Context, store *iocache.Store, catalog, entity, algorithm string) (*T, error) {
	key := iocache.Key{Kind: modelKind, Catalog: catalog, Entity: entity, Goal: algorithm}
	value, found, err := iocache.Get[T](ctx, store, key)
	if err != nil {
		return nil, ModelPersistError(catalog, entity, algorithm, err)
	}
	if !found {
		return nil, ModelNotFoundError(catalog, entity, algorithm)
	}
	return &value, nil
}

func saveEnsemble(ctx context.Context, store *iocache.Store, catalog, entity, algorithm string, children []pipeline.Classifier, manifest ensembleManifest) error {
	for _, child := range children {
		if err := Save(ctx, store, catalog, entity, child); err != nil {
			return err
		}
	}
	return put(ctx, store, catalog, entity, algorithm, manifest)
}

func loadEnsemble(ctx context.Context, store *iocache.Store, catalog, entity, algorithm string) (pipeline.Classifier, error) {
	manifest, err := get[ensembleManifest](ctx, store, catalog, entity, algorithm)
	if err != nil {
		return nil, err
	}

	children := make([]pipeline.Classifier, len(manifest.Children))
	for i, name := range manifest.Children {
		child, err := Load(ctx, store, catalog, entity, name)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	switch algorithm {
	case VotingEnsembleAlgorithm:
		return &Voting{Classifiers: children}, nil
	case GatedEnsembleAlgorithm:
		return &Gated{Classifiers: children, Threshold: manifest.Threshold}, nil
	case StackedEnsembleAlgorithm:
		return &Stacked{Classifiers: children, Meta: manifest.Meta}, nil
	default:
		return nil, UnknownAlgorithmError(algorithm)
	}
}

func namesOf(classifiers []pipeline.Classifier) []string {
	names := make([]string, len(classifiers))
	for i, c := range classifiers {
		names[i] = c.Name()
	}
	return names
}
