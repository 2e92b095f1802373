package ioevaluate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// FoldError creates an error for a k-fold iteration that failed to train
// or predict.
func FoldError(fold int, err error) error {
	msg := `A cross-validation fold failed

<em>Fold:</em> %d

<em>How to fix:</em>
  1. Check the classifier's Fit/Predict error for the underlying cause`

	return &gn.Error{
		Code: errcode.EvaluateFoldError,
		Msg:  msg,
		Vars: []any{fold},
		Err:  fmt.Errorf("fold %d: %w", fold, err),
	}
}
