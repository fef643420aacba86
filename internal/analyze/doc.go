// Package analyze provides package loading and tagged-union extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build an
// in-memory model of the error unions a package asks errenum to derive.
//
// A tagged union is a named interface type with a non-empty method set. Its
// variants are the named types of the same package implementing it, in source
// order. A variant takes part in generation when it is a struct with exactly
// one embedded field.
//
// Key types:
//   - Package: one loaded package with its requested declarations
//   - Declaration: the union being derived, with its variants
//   - Variant: one arm of a union, its field shape and markers
//   - TypeRef: a rendered type reference, plus the inner union it names (if any)
package analyze
