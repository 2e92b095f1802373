package ioclassify

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// FitError creates an error for a classifier that failed to train.
func FitError(algorithm, reason string) error {
	msg := `A classifier failed to train

<em>Algorithm:</em> %s
<em>Reason:</em> %s

<em>How to fix:</em>
  1. Check the training feature vector has at least one positive and one
     negative example`

	return &gn.Error{
		Code: errcode.ClassifierNotFittedError,
		Msg:  msg,
		Vars: []any{algorithm, reason},
		Err:  fmt.Errorf("fit %s: %s", algorithm, reason),
	}
}

// NotFittedError creates an error for a Predict call on an untrained
// classifier.
func NotFittedError(algorithm string) error {
	msg := `A classifier was asked to predict before it was trained

<em>Algorithm:</em> %s

<em>How to fix:</em>
  1. Call Fit (or load a persisted model) before Predict`

	return &gn.Error{
		Code: errcode.ClassifierNotFittedError,
		Msg:  msg,
		Vars: []any{algorithm},
		Err:  fmt.Errorf("%s: not fitted", algorithm),
	}
}

// UnknownAlgorithmError creates an error for an unrecognized algorithm name.
func UnknownAlgorithmError(algorithm string) error {
	msg := `Unknown classifier algorithm

<em>Algorithm:</em> %s

<em>How to fix:</em>
  1. Check the algorithm name against the supported list`

	return &gn.Error{
		Code: errcode.ClassifierUnknownAlgorithmError,
		Msg:  msg,
		Vars: []any{algorithm},
		Err:  fmt.Errorf("unknown algorithm %q", algorithm),
	}
}

// GridSearchUnsupportedError creates an error for a --tune request
// against an algorithm that does not support grid search (the two
// perceptron variants, per train.py's explicit NotImplementedError).
func GridSearchUnsupportedError(algorithm string) error {
	msg := `Hyperparameter grid search is not supported for this algorithm

<em>Algorithm:</em> %s

<em>How to fix:</em>
  1. Train without --tune, or pick a different algorithm`

	return &gn.Error{
		Code: errcode.ClassifierGridSearchUnsupportedError,
		Msg:  msg,
		Vars: []any{algorithm},
		Err:  fmt.Errorf("grid search unsupported for %s", algorithm),
	}
}

// ModelNotFoundError creates an error for a Classify call when no
// persisted model exists for (catalog, entity, algorithm).
func ModelNotFoundError(catalog, entity, algorithm string) error {
	msg := `No trained model found

<em>Catalog:</em> %s
<em>Entity:</em> %s
<em>Algorithm:</em> %s

<em>How to fix:</em>
  1. Run training first`

	return &gn.Error{
		Code: errcode.ClassifierModelNotFoundError,
		Msg:  msg,
		Vars: []any{catalog, entity, algorithm},
		Err:  fmt.Errorf("no model for %s/%s/%s", catalog, entity, algorithm),
	}
}

// ModelPersistError creates an error for a failed model save/load.
func ModelPersistError(catalog, entity, algorithm string, err error) error {
	msg := `Cannot persist the trained model

<em>Catalog:</em> %s
<em>Entity:</em> %s
<em>Algorithm:</em> %s`

	return &gn.Error{
		Code: errcode.ClassifierModelPersistError,
		Vars: []any{catalog, entity, algorithm},
		Msg:  msg,
		Err:  fmt.Errorf("persist model %s/%s/%s: %w", catalog, entity, algorithm, err),
	}
}
