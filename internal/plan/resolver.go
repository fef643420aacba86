package plan

import (
	"fmt"
	"go/token"
	"strings"

	"errenum-generator/internal/analyze"
	"errenum-generator/internal/common"
	"errenum-generator/internal/config"
	"errenum-generator/internal/diagnostic"
)

// Resolver turns loaded declarations into conversion plans.
type Resolver struct {
	opts Options
	// unwraps records catch-all variants that get a generated Unwrap method in
	// packages already resolved, keyed by "pkgpath.TypeName".
	unwraps map[string]bool
}

// NewResolver creates a new Resolver.
func NewResolver(opts Options) *Resolver {
	if opts.Markers == nil {
		opts.Markers = NewMarkerRegistry()
	}

	return &Resolver{
		opts:    opts,
		unwraps: make(map[string]bool),
	}
}

// Resolve builds the plan of one package. Packages should be resolved in
// dependency order so an outer union can flatten through an Unwrap method
// generated for an inner union in the same run.
func (r *Resolver) Resolve(pkg *analyze.Package) *Plan {
	plan := &Plan{Package: pkg}
	owners := make(map[string]string)

	var unwraps []string

	for _, decl := range pkg.Decls {
		unit, diags := r.ResolveDeclaration(pkg, decl)
		plan.Diagnostics.Merge(diags)

		if unit == nil {
			continue
		}

		clash := false
		for _, name := range unit.Names() {
			if owner, taken := owners[name]; taken {
				plan.Diagnostics.AddError(pkg.Position(decl.Pos), diagnostic.CodeNameCollision,
					fmt.Sprintf("generated name %s is also generated for %s", name, owner),
					decl.Name, "")

				clash = true
			}
		}

		if clash {
			continue
		}

		for _, name := range unit.Names() {
			owners[name] = decl.Name
		}

		if unit.EmitUnwrap {
			unwraps = append(unwraps, unwrapKey(unit.CatchAll))
		}

		plan.Units = append(plan.Units, *unit)
	}

	// A package with errors is not generated, so its Unwrap methods never exist.
	if !plan.Diagnostics.HasErrors() {
		for _, key := range unwraps {
			r.unwraps[key] = true
		}
	}

	return plan
}

// ResolveDeclaration validates one declaration and derives its conversions.
// The unit is nil when any fatal diagnostic was raised for the declaration.
func (r *Resolver) ResolveDeclaration(pkg *analyze.Package, decl *analyze.Declaration) (*Unit, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	at := pkg.Position(decl.Pos)
	if !r.validate(decl, at, &diags) {
		return nil, diags
	}

	r.checkMarkers(pkg, decl, &diags)

	catchAll, ok := r.findCatchAll(decl, at, &diags)
	if !ok {
		return nil, diags
	}

	unit := &Unit{
		Decl:       decl,
		CatchAll:   catchAll,
		EmitUnwrap: r.opts.Unwrap && (catchAll.Unwrap == nil || catchAll.Unwrap.Generated),
	}

	for _, v := range decl.Variants {
		if v.TypeName == catchAll.TypeName {
			continue
		}

		if !v.Eligible() {
			diags.AddInfo(pkg.Position(v.Pos), diagnostic.CodeSkippedVariant,
				fmt.Sprintf("%s does not embed exactly one field (shape %s), no conversion generated", v.TypeName, v.Shape),
				decl.Name, v.Name)

			continue
		}

		if rule, ok := r.resolveRule(pkg, decl, catchAll, v, &diags); ok {
			unit.Rules = append(unit.Rules, rule)
		}
	}

	wrap, err := execName(r.opts.Wrap, config.NameData{
		Union:   decl.Name,
		Variant: catchAll.Name,
		Inner:   catchAll.Field.Type.Expr,
	})
	if err != nil {
		diags.AddError(at, diagnostic.CodeInvalidName,
			fmt.Sprintf("cannot name the entry point of %s: %v", decl.Name, err), decl.Name, "")

		return nil, diags
	}

	unit.WrapFunc = wrap

	r.checkCollisions(pkg, unit, &diags)

	if diags.HasErrors() {
		return nil, diags
	}

	return unit, diags
}

// validate checks that decl is a non-generic tagged union.
func (r *Resolver) validate(decl *analyze.Declaration, at token.Position, diags *diagnostic.Diagnostics) bool {
	switch {
	case decl.Kind != analyze.DeclKindInterface:
		diags.AddError(at, diagnostic.CodeNotUnion,
			fmt.Sprintf("errenum applies only to tagged unions (interfaces with methods); %s is a %s type", decl.Name, decl.Kind),
			decl.Name, "")

		return false

	case !decl.Sealed:
		diags.AddError(at, diagnostic.CodeNotUnion,
			fmt.Sprintf("errenum applies only to tagged unions; interface %s has no methods, so any type would be a variant", decl.Name),
			decl.Name, "", "add an unexported marker method such as "+lowerFirst(decl.Name)+"()")

		return false

	case decl.Generic:
		diags.AddError(at, diagnostic.CodeGenericUnion,
			fmt.Sprintf("generic union %s is not supported", decl.Name), decl.Name, "")

		return false
	}

	return true
}

// findCatchAll returns the only eligible variant carrying the opaque type.
func (r *Resolver) findCatchAll(decl *analyze.Declaration, at token.Position, diags *diagnostic.Diagnostics) (analyze.Variant, bool) {
	var found []analyze.Variant
	for _, v := range decl.Variants {
		if v.Eligible() && v.Field.Type.Qualified == r.opts.Opaque {
			found = append(found, v)
		}
	}

	switch len(found) {
	case 0:
		diags.AddError(at, diagnostic.CodeMissingCatchAll,
			fmt.Sprintf("no variant carrying the opaque-error type %s was found", r.opts.Opaque),
			decl.Name, "",
			fmt.Sprintf("add a variant such as `type %sOther struct{ %s }`", decl.Name, r.opts.Opaque))

		return analyze.Variant{}, false

	case 1:
		return found[0], true

	default:
		names := common.Names(found, func(v analyze.Variant) string { return v.TypeName })
		diags.AddError(at, diagnostic.CodeAmbiguousCatchAll,
			fmt.Sprintf("variants %s all carry the opaque-error type %s; exactly one catch-all is allowed",
				strings.Join(names, ", "), r.opts.Opaque),
			decl.Name, "")

		return analyze.Variant{}, false
	}
}

// checkMarkers warns about markers the registry does not know.
func (r *Resolver) checkMarkers(pkg *analyze.Package, decl *analyze.Declaration, diags *diagnostic.Diagnostics) {
	for _, v := range decl.Variants {
		for _, m := range v.Markers {
			if _, ok := r.opts.Markers.Lookup(m.Name); ok {
				continue
			}

			var suggestions []string
			if s, ok := r.opts.Markers.Suggest(m.Name); ok {
				suggestions = append(suggestions, fmt.Sprintf("did you mean %s%s?", analyze.DirectivePrefix, s))
			}

			diags.AddWarning(pkg.Position(m.Pos), diagnostic.CodeUnknownMarker,
				fmt.Sprintf("unknown marker %s%s is ignored", analyze.DirectivePrefix, m.Name),
				decl.Name, v.Name, suggestions...)
		}
	}
}

// checkCollisions rejects generated names that are already declared in the
// package, or generated twice for the same union.
func (r *Resolver) checkCollisions(pkg *analyze.Package, unit *Unit, diags *diagnostic.Diagnostics) {
	decl := unit.Decl
	seen := make(map[string]bool)

	for _, name := range unit.Names() {
		if seen[name] {
			diags.AddError(pkg.Position(decl.Pos), diagnostic.CodeNameCollision,
				fmt.Sprintf("name %s is generated twice for %s", name, decl.Name), decl.Name, "",
				"adjust naming.from or naming.wrap in the configuration")

			continue
		}

		seen[name] = true

		if pos, ok := pkg.Declared[name]; ok {
			diags.AddError(pkg.Position(decl.Pos), diagnostic.CodeNameCollision,
				fmt.Sprintf("generated name %s collides with the declaration at %s", name, pkg.Position(pos)),
				decl.Name, "")
		}
	}
}

func unwrapKey(v analyze.Variant) string {
	return v.PkgPath + "." + v.TypeName
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}
