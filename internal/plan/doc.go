// Package plan provides the resolution pipeline that turns the declarations
// of a loaded package into conversion units consumed by code generation.
//
// Resolution pipeline, per declaration:
//  1. Validate the declaration is a tagged union (interface, not generic)
//  2. Find the unique catch-all variant carrying the opaque-error type
//  3. Classify every other single-field variant:
//     - unwrap-through-catch-all by default, after checking that the inner
//     type is a union exposing a catch-all of the same name
//     - direct-wrap when the variant carries the without_catchall marker
//  4. Name the universal entry point from the opaque type
//
// Any fatal diagnostic drops the whole declaration; there is no partial unit.
// Variants with other field shapes are skipped without error.
package plan
