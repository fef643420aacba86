// Package diagnostic provides structured errors, warnings and infos reported
// while deriving conversions for a tagged-union error type.
//
// Key capabilities:
//   - Fatal diagnostics that abort generation for one declaration
//   - Warnings for unknown variant markers, with suggestions
//   - Infos explaining why a variant produced no conversion
//   - Positions anchored at the invocation site or the offending variant
package diagnostic
