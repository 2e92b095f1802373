package ioblock

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// BlockQueryError creates an error for a failed full-text blocking query.
func BlockQueryError(catalog, entity, query string, err error) error {
	msg := `Full-text blocking query failed

<em>Catalog:</em> %s
<em>Entity:</em> %s
<em>Query:</em> %s`

	return &gn.Error{
		Code: errcode.BlockFullTextQueryError,
		Msg:  msg,
		Vars: []any{catalog, entity, query},
		Err:  fmt.Errorf("full-text search %q: %w", query, err),
	}
}
