package iopreprocess

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// SchemaError creates an error for an entity schema missing a required
// column in its source data.
func SchemaError(entity, column string) error {
	msg := `Entity schema is missing a required column

<em>Entity:</em> %s
<em>Column:</em> %s

<em>How to fix:</em>
  1. Check the catalog/KB dataset includes this column
  2. Mark the column optional in the entity schema if it is genuinely absent`

	return &gn.Error{
		Code: errcode.PreprocessSchemaError,
		Msg:  msg,
		Vars: []any{entity, column},
		Err:  fmt.Errorf("missing required column %q for entity %q", column, entity),
	}
}
