// Package main provides the CLI entrypoint for errenum.
//
// errenum derives conversions into tagged-union error types:
//   - Loads Go packages (AST + go/types) and finds interfaces marked
//     //errenum:derive or named with --type
//   - Checks each union has exactly one catch-all variant carrying the
//     opaque error type
//   - Generates one From function per single-field variant, flattening inner
//     catch-alls, plus the New entry point for opaque errors
//
// Typical use is a go:generate line next to the union:
//
//	//go:generate go run errenum-generator/cmd/errenum
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultEnv()).Execute(); err != nil {
		os.Exit(1)
	}
}
