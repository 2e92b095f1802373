package iotext

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// InvalidURLError creates an error for a string that does not parse as a
// valid URL even after scheme normalization.
func InvalidURLError(raw string) error {
	msg := `Invalid URL

<em>Value:</em> %s

<em>Possible causes:</em>
  - Missing or malformed host
  - Unsupported characters in the URL

<em>How to fix:</em>
  1. Check the value against the source record
  2. Drop it from the dataset if it cannot be repaired`

	return &gn.Error{
		Code: errcode.URLValidateError,
		Msg:  msg,
		Vars: []any{raw},
	}
}

// ResolveURLError creates an error for a URL that could not be resolved
// over HTTP within the configured retry policy.
func ResolveURLError(raw string, err error) error {
	msg := `Cannot resolve URL

<em>URL:</em> %s

<em>Possible causes:</em>
  - The remote host is unreachable or slow
  - The certificate is invalid
  - The URL no longer exists

<em>How to fix:</em>
  1. Retry later
  2. Mark the link dead if the host is permanently gone`

	return &gn.Error{
		Code: errcode.URLResolveError,
		Msg:  msg,
		Vars: []any{raw},
		Err:  fmt.Errorf("resolve %s: %w", raw, err),
	}
}
