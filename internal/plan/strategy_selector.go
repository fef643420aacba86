package plan

import (
	"fmt"

	"errenum-generator/internal/analyze"
	"errenum-generator/internal/config"
	"errenum-generator/internal/diagnostic"
)

// unwrapPayload is the payload selector used when the inner catch-all's
// field is out of reach.
const unwrapPayload = "Unwrap()"

// selectStrategy classifies a variant by its markers.
func (r *Resolver) selectStrategy(v analyze.Variant) Strategy {
	for _, m := range v.Markers {
		if kind, ok := r.opts.Markers.Lookup(m.Name); ok && kind == MarkerWithoutCatchAll {
			return StrategyDirectWrap
		}
	}

	return StrategyUnwrapCatchAll
}

// resolveRule derives the conversion of one eligible variant.
func (r *Resolver) resolveRule(
	pkg *analyze.Package,
	decl *analyze.Declaration,
	catchAll, v analyze.Variant,
	diags *diagnostic.Diagnostics,
) (Rule, bool) {
	at := pkg.Position(v.Pos)

	name, err := execName(r.opts.From, config.NameData{
		Union:   decl.Name,
		Variant: v.Name,
		Inner:   v.Field.Type.Expr,
	})
	if err != nil {
		diags.AddError(at, diagnostic.CodeInvalidName,
			fmt.Sprintf("cannot name the conversion from %s: %v", v.Field.Type.Expr, err), decl.Name, v.Name)

		return Rule{}, false
	}

	rule := Rule{
		Variant:  v,
		Strategy: r.selectStrategy(v),
		FuncName: name,
	}

	if rule.Strategy == StrategyDirectWrap {
		return rule, true
	}

	fl, problem := r.flatten(pkg, catchAll, v)
	if problem != "" {
		diags.AddError(at, diagnostic.CodeInnerNotUnion, problem, decl.Name, v.Name,
			fmt.Sprintf("mark %s with %s%s to wrap it unconditionally",
				v.TypeName, analyze.DirectivePrefix, MarkerNameWithoutCatchAll))

		return Rule{}, false
	}

	rule.Flatten = fl

	return rule, true
}

// flatten confirms the inner type of v is a union exposing a variant named
// like the outer catch-all and carrying the opaque type, and that its payload
// is reachable from pkg. It returns a problem description otherwise.
func (r *Resolver) flatten(pkg *analyze.Package, catchAll, v analyze.Variant) (*Flatten, string) {
	inner := v.Field.Type

	if inner.Union == nil {
		return nil, fmt.Sprintf("inner type %s is not a tagged union, so its catch-all cannot be unwrapped", inner.Expr)
	}

	target := inner.Union.Variant(catchAll.Name)
	if target == nil {
		return nil, fmt.Sprintf("inner union %s has no %s variant", inner.Expr, catchAll.Name)
	}

	if !target.Eligible() || target.Field.Type.Qualified != r.opts.Opaque {
		return nil, fmt.Sprintf("variant %s of %s does not carry %s", target.TypeName, inner.Expr, r.opts.Opaque)
	}

	var payload string
	switch {
	case target.PkgPath == pkg.Path || target.Field.Exported:
		payload = target.Field.Name
	case target.Unwrap != nil && target.Unwrap.Result == r.opts.Opaque:
		payload = unwrapPayload
	case r.unwraps[unwrapKey(*target)]:
		payload = unwrapPayload
	default:
		return nil, fmt.Sprintf("payload of %s is unexported and it has no Unwrap() %s method; run errenum on %s first",
			target.Type.Expr, r.opts.Opaque, target.PkgPath)
	}

	assert := target.Type.Expr
	if target.Pointer {
		assert = "*" + assert
	}

	return &Flatten{
		CatchAll:    *target,
		AssertExpr:  assert,
		PayloadExpr: payload,
	}, ""
}
