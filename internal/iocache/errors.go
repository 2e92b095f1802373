package iocache

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// OpenError creates an error for a cache database that failed to open.
func OpenError(path string, err error) error {
	msg := `Cannot open the local cache database

<em>Path:</em> %s

<em>How to fix:</em>
  1. Check the cache directory is writable
  2. Delete the file if it is corrupted and let it be recreated`

	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("open cache db: %w", err),
	}
}

// MigrateError creates an error for a failed cache schema migration.
func MigrateError(path string, err error) error {
	msg := `Cannot migrate the local cache database

<em>Path:</em> %s`

	return &gn.Error{
		Code: errcode.CacheMigrateError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("migrate cache db: %w", err),
	}
}

// ReadError creates an error for a failed cache read.
func ReadError(key Key, err error) error {
	msg := `Cannot read cached artifact

<em>Artifact:</em> %s`

	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  msg,
		Vars: []any{key.String()},
		Err:  fmt.Errorf("read %s: %w", key, err),
	}
}

// WriteError creates an error for a failed cache write.
func WriteError(key Key, err error) error {
	msg := `Cannot write cached artifact

<em>Artifact:</em> %s`

	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Vars: []any{key.String()},
		Err:  fmt.Errorf("write %s: %w", key, err),
	}
}
