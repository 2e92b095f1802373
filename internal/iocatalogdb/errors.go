package iocatalogdb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// ConnectionError creates an error for a failed catalog DB connection.
func ConnectionError(dsn string, err error) error {
	msg := `Cannot connect to the catalog database

<em>Possible causes:</em>
  - The database is not running
  - Connection parameters in soweego.yaml are wrong

<em>How to fix:</em>
  1. Check the catalog database is reachable
  2. Review catalog_db settings in your config file`

	return &gn.Error{
		Code: errcode.CatalogDBConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("connect to catalog db: %w", err),
	}
}

// QueryError wraps a failed query against the catalog store.
func QueryError(op string, err error) error {
	msg := `Catalog database query failed

<em>Operation:</em> %s

<em>How to fix:</em>
  1. Check the catalog schema matches what this module expects
  2. Retry; transient connection errors are common under load`

	return &gn.Error{
		Code: errcode.CatalogDBQueryError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("%s: %w", op, err),
	}
}
