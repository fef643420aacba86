// Package config loads the optional errenum YAML configuration.
//
// Example:
//
//	version: "1"
//	opaque: error
//	output: errenum_gen.go
//	unwrap: true
//	naming:
//	  from: "{{.Union}}From{{.Variant}}"
//	  wrap: "New{{.Union}}"
//	markers:
//	  without_catchall: [skip_unwrap]
//
// Every key is optional. Command-line flags override file values.
package config
