// Package gen provides deterministic Go code generation for union conversions.
//
// Generation uses text/template + go/format. Every package gets one file
// holding, per union:
//   - one conversion function per eligible variant, flattening the inner
//     union's catch-all when the variant is not marked without_catchall
//   - the universal entry point wrapping an opaque error into the catch-all
//   - an Unwrap method on the catch-all variant, when enabled
//
// Nil inputs convert to a nil union. Imports are sorted by path so repeated
// runs produce byte-identical output.
package gen
