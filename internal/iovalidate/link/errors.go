package link

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// GatherError wraps a failure to gather either side's link set before
// the check can run.
func GatherError(catalog, entity string, err error) error {
	msg := `The links check failed to gather link data

<em>Catalog:</em> %s
<em>Entity:</em> %s

<em>How to fix:</em>
  1. Check the catalog store and KB client are both reachable`

	return &gn.Error{
		Code: errcode.ValidateLinksError,
		Msg:  msg,
		Vars: []any{catalog, entity},
		Err:  fmt.Errorf("links check %s/%s: %w", catalog, entity, err),
	}
}
