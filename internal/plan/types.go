package plan

import (
	"errenum-generator/internal/analyze"
	"errenum-generator/internal/diagnostic"
)

// Plan is the final output of the resolution pipeline for one package.
// It contains everything needed for code generation.
type Plan struct {
	// Package is the loaded package the units are generated into.
	Package *analyze.Package
	// Units holds one entry per successfully resolved declaration, in
	// declaration order.
	Units []Unit
	// Diagnostics contains all errors, warnings and infos from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Unit is the resolved conversion surface of one tagged union.
type Unit struct {
	// Decl is the union being derived.
	Decl *analyze.Declaration
	// CatchAll is the variant carrying the opaque-error type.
	CatchAll analyze.Variant
	// Rules holds one conversion per eligible variant, in declaration order.
	Rules []Rule
	// WrapFunc is the name of the universal entry point.
	WrapFunc string
	// EmitUnwrap is true when an Unwrap method must be generated on CatchAll.
	EmitUnwrap bool
}

// Rule is the conversion derived for one variant.
type Rule struct {
	// Variant is the variant the inner value is wrapped into.
	Variant analyze.Variant
	// Strategy selects the conversion body.
	Strategy Strategy
	// FuncName is the generated function name.
	FuncName string
	// Flatten is set for StrategyUnwrapCatchAll.
	Flatten *Flatten
}

// Flatten describes how to reach the opaque payload of the inner union's
// catch-all variant.
type Flatten struct {
	// CatchAll is the inner union's catch-all variant.
	CatchAll analyze.Variant
	// AssertExpr is the type used in the type assertion, e.g. "*repo.ErrorOther".
	AssertExpr string
	// PayloadExpr is the selector returning the payload, e.g. "error" or "Unwrap()".
	PayloadExpr string
}

//go:generate go tool stringer -type=Strategy -trimprefix=Strategy -output=strategy_string.go

// Strategy describes how an inner value becomes a union value.
type Strategy int

const (
	// StrategyUnwrapCatchAll re-wraps the inner catch-all payload into the
	// outer catch-all and wraps anything else into the variant.
	StrategyUnwrapCatchAll Strategy = iota
	// StrategyDirectWrap always wraps the inner value into the variant.
	StrategyDirectWrap
)

// Names returns the package-level names the unit generates.
func (u *Unit) Names() []string {
	names := make([]string, 0, len(u.Rules)+1)
	for _, r := range u.Rules {
		names = append(names, r.FuncName)
	}

	return append(names, u.WrapFunc)
}
