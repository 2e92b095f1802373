package iofeatures

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// ComputeError creates an error for a feature that failed mid-computation.
func ComputeError(feature string, err error) error {
	msg := `A comparison feature failed to compute

<em>Feature:</em> %s

<em>How to fix:</em>
  1. Check the preprocessed tables carry the columns this feature expects
  2. Re-run with a smaller candidate set to isolate the failing pair`

	return &gn.Error{
		Code: errcode.FeatureComputeError,
		Msg:  msg,
		Vars: []any{feature},
		Err:  fmt.Errorf("compute %s: %w", feature, err),
	}
}

// OccupationLookupError creates an error for a failed class-descendants
// lookup during occupation expansion.
func OccupationLookupError(classQID string, err error) error {
	msg := `Cannot expand an occupation class

<em>Class:</em> %s

<em>How to fix:</em>
  1. Check the knowledge base's SPARQL endpoint is reachable
  2. Retry once the endpoint recovers`

	return &gn.Error{
		Code: errcode.FeatureOccupationLookupError,
		Msg:  msg,
		Vars: []any{classQID},
		Err:  fmt.Errorf("expand class %s: %w", classQID, err),
	}
}
