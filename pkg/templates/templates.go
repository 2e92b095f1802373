// Package templates provides embedded YAML configuration templates.
package templates

import _ "embed"

// ConfigYAML contains the default soweego.yaml template for application
// configuration, written out the first time the CLI runs without one.
//
//go:embed soweego.yaml
var ConfigYAML string
