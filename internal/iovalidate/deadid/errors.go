package deadid

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// CheckError wraps a failed catalog lookup during the dead-ID check.
func CheckError(catalog, entity string, err error) error {
	msg := `The dead-ID check failed to read the catalog's identifier set

<em>Catalog:</em> %s
<em>Entity:</em> %s

<em>How to fix:</em>
  1. Check the catalog store is reachable and the entity table is populated`

	return &gn.Error{
		Code: errcode.ValidateDeadIDError,
		Msg:  msg,
		Vars: []any{catalog, entity},
		Err:  fmt.Errorf("dead-id check %s/%s: %w", catalog, entity, err),
	}
}
