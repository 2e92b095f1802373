package iodataset

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// KBStreamError creates an error for a failed knowledge-base item stream.
func KBStreamError(catalog, entity string, err error) error {
	msg := `Cannot stream knowledge-base items

<em>Catalog:</em> %s
<em>Entity:</em> %s

<em>How to fix:</em>
  1. Check the knowledge-base client is reachable
  2. Re-run once connectivity is restored; completed chunks are retained`

	return &gn.Error{
		Code: errcode.DatasetKBStreamError,
		Msg:  msg,
		Vars: []any{catalog, entity},
		Err:  fmt.Errorf("stream kb items for %s/%s: %w", catalog, entity, err),
	}
}

// CatalogStreamError creates an error for a failed catalog record stream.
func CatalogStreamError(catalog, entity string, err error) error {
	msg := `Cannot stream catalog records

<em>Catalog:</em> %s
<em>Entity:</em> %s`

	return &gn.Error{
		Code: errcode.DatasetCatalogStreamError,
		Msg:  msg,
		Vars: []any{catalog, entity},
		Err:  fmt.Errorf("stream catalog records for %s/%s: %w", catalog, entity, err),
	}
}

// EmptyError creates an error for a dataset build that yielded no rows.
func EmptyError(catalog, entity, goal string) error {
	msg := `No records were found to build a dataset from

<em>Catalog:</em> %s
<em>Entity:</em> %s
<em>Goal:</em> %s`

	return &gn.Error{
		Code: errcode.DatasetEmptyError,
		Msg:  msg,
		Vars: []any{catalog, entity, goal},
		Err:  fmt.Errorf("empty dataset for %s/%s/%s", catalog, entity, goal),
	}
}
