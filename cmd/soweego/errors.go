package main

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/soweego-go/soweego/pkg/errcode"
)

// DependencyNotConfiguredError is returned by commands that need one of
// the interface-only external collaborators (§4.13) when nothing has
// wired a concrete client into Clients before Execute ran.
func DependencyNotConfiguredError(dependency string) error {
	msg := `A required external dependency is not configured

<em>Dependency:</em> %s

<em>How to fix:</em>
  1. This module only provides a concrete catalog store; the
     knowledge-base client, edit bot, SPARQL client and Mix'n'match
     uploader are interfaces a deployment must supply
  2. Set the corresponding field on main.Clients before calling Execute`

	return &gn.Error{
		Code: errcode.CLIDependencyNotConfiguredError,
		Msg:  msg,
		Vars: []any{dependency},
		Err:  fmt.Errorf("dependency not configured: %s", dependency),
	}
}

// BootstrapError wraps a failure during root command bootstrap (config
// load, logger init).
func BootstrapError(reason string, err error) error {
	msg := `Failed to start soweego

<em>Reason:</em> %s

<em>How to fix:</em>
  1. Check soweego.yaml and SOWEEGO_* environment variables`

	return &gn.Error{
		Code: errcode.CLIBootstrapError,
		Msg:  msg,
		Vars: []any{reason},
		Err:  fmt.Errorf("bootstrap: %s: %w", reason, err),
	}
}
