package biodata

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// GatherError wraps a failure to gather either side's metadata before
// the check can run.
func GatherError(catalog, entity string, err error) error {
	msg := `The biodata check failed to gather metadata

<em>Catalog:</em> %s
<em>Entity:</em> %s

<em>How to fix:</em>
  1. Check the catalog store and KB client are both reachable`

	return &gn.Error{
		Code: errcode.ValidateBioDataError,
		Msg:  msg,
		Vars: []any{catalog, entity},
		Err:  fmt.Errorf("biodata check %s/%s: %w", catalog, entity, err),
	}
}
