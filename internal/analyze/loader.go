package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"errenum-generator/internal/common"
)

// LoadMode specifies what information to load from packages. Dependencies are
// type-checked from source so positions of inner unions resolve to real files.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps

const (
	// DirectivePrefix starts every errenum directive comment.
	DirectivePrefix = "//errenum:"
	// DeriveDirective requests conversions for the type it documents.
	DeriveDirective = "derive"
	// DefaultOutput is the name of the file generated into each package.
	DefaultOutput = "errenum_gen.go"
)

// LoaderConfig controls how packages are loaded.
type LoaderConfig struct {
	// Dir is the directory go list runs in. Empty means the current directory.
	Dir string
	// Env overrides the environment of go list.
	Env []string
	// Tags are extra build tags.
	Tags []string
	// Types selects declarations by name in addition to the derive directive.
	Types []string
	// Output is the generated file name. Declarations in it are ignored.
	Output string
}

// Analyzer loads Go packages and extracts the unions they declare.
type Analyzer struct {
	cfg LoaderConfig
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(cfg LoaderConfig) *Analyzer {
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	return &Analyzer{cfg: cfg}
}

// LoadPackages loads the specified packages and extracts their declarations.
// Patterns are standard Go package patterns (e.g., "./service", "example.com/app/...").
// Packages are returned in dependency order.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.cfg.Dir,
		Env:     a.cfg.Env,
	}
	if len(a.cfg.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.cfg.Tags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	// Type errors are tolerated: hand-written code usually calls functions
	// that only exist once the output file has been generated.
	var errs []error
	typeErrors := make(map[string][]error)
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				typeErrors[pkg.PkgPath] = append(typeErrors[pkg.PkgPath], e)
				continue
			}

			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	pkgs, err = dependencyOrder(pkgs)
	if err != nil {
		return nil, fmt.Errorf("ordering packages: %w", err)
	}

	out := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		p, err := a.ProcessPackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}

		p.TypeErrors = typeErrors[pkg.PkgPath]

		out = append(out, p)
	}

	return out, nil
}

// ProcessPackage extracts the requested declarations of a type-checked
// package. The package needs Fset, Syntax and Types.
func (a *Analyzer) ProcessPackage(pkg *packages.Package) (*Package, error) {
	out := &Package{
		Path:     pkg.PkgPath,
		Name:     pkg.Name,
		Fset:     pkg.Fset,
		Declared: make(map[string]token.Pos),
	}
	if len(pkg.Syntax) > 0 {
		out.Dir = filepath.Dir(pkg.Fset.Position(pkg.Syntax[0].Pos()).Filename)
	}

	requested := make(map[string]token.Pos)
	markers := make(map[string][]Marker)

	for _, file := range pkg.Syntax {
		generated := common.SameFile(pkg.Fset.Position(file.Pos()).Filename, a.cfg.Output)
		if generated {
			continue
		}

		a.scanFile(file, out.Declared, requested, markers)
	}

	scope := pkg.Types.Scope()
	for _, name := range a.cfg.Types {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			return nil, fmt.Errorf("type %s not found", name)
		}

		if _, ok := requested[name]; !ok {
			requested[name] = obj.Pos()
		}
	}

	names := make([]string, 0, len(requested))
	for name := range requested {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return requested[names[i]] < requested[names[j]]
	})

	im := newImporter(pkg.Types)
	for _, name := range names {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			// Directive on a type declared inside a function.
			continue
		}

		out.Decls = append(out.Decls, a.declaration(pkg, im, tn, requested[name], markers))
	}

	return out, nil
}

// scanFile records package-level names, derive directives and variant markers.
func (a *Analyzer) scanFile(file *ast.File, declared, requested map[string]token.Pos, markers map[string][]Marker) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				declared[d.Name.Name] = d.Name.Pos()
			}

		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					declared[s.Name.Name] = s.Name.Pos()

					for _, m := range directives(docOf(d, s)) {
						if m.Name == DeriveDirective {
							requested[s.Name.Name] = m.Pos
							continue
						}

						markers[s.Name.Name] = append(markers[s.Name.Name], m)
					}

				case *ast.ValueSpec:
					for _, n := range s.Names {
						if n.Name != "_" {
							declared[n.Name] = n.Pos()
						}
					}
				}
			}
		}
	}
}

// docOf returns the doc comment of a type spec. An ungrouped declaration
// carries its doc on the GenDecl.
func docOf(d *ast.GenDecl, s *ast.TypeSpec) *ast.CommentGroup {
	if s.Doc != nil {
		return s.Doc
	}

	if !d.Lparen.IsValid() {
		return d.Doc
	}

	return nil
}

// directives parses "//errenum:<name>" lines. CommentGroup.Text drops
// directive lines, so the raw comments are scanned.
func directives(doc *ast.CommentGroup) []Marker {
	if doc == nil {
		return nil
	}

	var out []Marker
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}

		out = append(out, Marker{Name: fields[0], Pos: c.Slash})
	}

	return out
}

// declaration builds the model of one requested type.
func (a *Analyzer) declaration(pkg *packages.Package, im *importer, tn *types.TypeName, pos token.Pos, markers map[string][]Marker) *Declaration {
	d := &Declaration{
		Name:    tn.Name(),
		PkgPath: pkg.PkgPath,
		Pos:     pos,
	}

	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		d.Kind = DeclKindOther
		return d
	}

	d.Generic = named.TypeParams().Len() > 0

	switch u := named.Underlying().(type) {
	case *types.Interface:
		d.Kind = DeclKindInterface
		d.Sealed = u.NumMethods() > 0
	case *types.Struct:
		d.Kind = DeclKindStruct
	case *types.Basic:
		d.Kind = DeclKindBasic
	default:
		d.Kind = DeclKindOther
	}

	if d.Kind == DeclKindInterface && d.Sealed && !d.Generic {
		d.Variants = a.discover(pkg.Fset, im, named, markers, false)
	}

	return d
}

// discover finds the variants of union in its package scope, in declaration
// order. Inner unions are described one level deep only.
func (a *Analyzer) discover(fset *token.FileSet, im *importer, union *types.Named, markers map[string][]Marker, inner bool) []Variant {
	iface, _ := union.Underlying().(*types.Interface)
	pkg := union.Obj().Pkg()
	scope := pkg.Scope()
	foreign := pkg != im.self

	var found []*types.TypeName
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}

		if foreign && !tn.Exported() {
			continue
		}

		named, ok := tn.Type().(*types.Named)
		if !ok || named == union || named.TypeParams().Len() > 0 || types.IsInterface(named) {
			continue
		}

		found = append(found, tn)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Pos() < found[j].Pos()
	})

	idx := newVariantIndex()
	for _, tn := range found {
		named := tn.Type().(*types.Named)

		var pointer bool
		switch {
		case types.Implements(named, iface):
		case types.Implements(types.NewPointer(named), iface):
			pointer = true
		default:
			continue
		}

		if embedsUnion(named, union, iface) {
			continue
		}

		v := Variant{
			Name:     variantName(union.Obj().Name(), tn.Name()),
			Type:     im.ref(named),
			TypeName: tn.Name(),
			PkgPath:  pkg.Path(),
			Pointer:  pointer,
			Markers:  markers[tn.Name()],
			Pos:      tn.Pos(),
		}
		a.shape(fset, im, &v, named, inner)
		v.Unwrap = a.unwrapMethod(fset, named, pointer)

		idx.add(v)
	}

	return idx.variants()
}

// embedsUnion reports whether named implements union only through an
// embedded field holding union itself, as an outer variant wrapping an inner
// union of the same package does.
func embedsUnion(named, union *types.Named, iface *types.Interface) bool {
	st, ok := named.Underlying().(*types.Struct)
	if !ok || iface.NumMethods() == 0 {
		return false
	}

	for i := range iface.NumMethods() {
		m := iface.Method(i)

		_, index, _ := types.LookupFieldOrMethod(types.NewPointer(named), true, m.Pkg(), m.Name())
		if len(index) < 2 {
			return false
		}

		ft := st.Field(index[0]).Type()
		if p, ok := ft.(*types.Pointer); ok {
			ft = p.Elem()
		}

		if !types.Identical(ft, union) {
			return false
		}
	}

	return true
}

// variantName trims the union name from a variant type name:
// ServiceErrorRepo -> Repo.
func variantName(union, typeName string) string {
	rest, ok := strings.CutPrefix(typeName, union)
	if !ok || rest == "" {
		return typeName
	}

	if c := rest[0]; c < 'A' || c > 'Z' {
		return typeName
	}

	return rest
}

// shape classifies the fields of a variant.
func (a *Analyzer) shape(fset *token.FileSet, im *importer, v *Variant, named *types.Named, inner bool) {
	st, ok := named.Underlying().(*types.Struct)

	switch {
	case !ok:
		v.Shape = ShapeOther
	case st.NumFields() == 0:
		v.Shape = ShapeNone
	case st.NumFields() > 1:
		v.Shape = ShapeMultiple
	case !st.Field(0).Embedded():
		v.Shape = ShapeNamed
	default:
		v.Shape = ShapeSingleUnnamed

		f := st.Field(0)
		ref := im.ref(f.Type())
		if !inner {
			ref.Union = a.innerUnion(fset, im, f.Type())
		}

		v.Field = &Field{
			Name:     f.Name(),
			Exported: f.Exported(),
			Type:     ref,
		}
	}
}

// innerUnion describes t when it is itself a tagged union.
func (a *Analyzer) innerUnion(fset *token.FileSet, im *importer, t types.Type) *InnerUnion {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.TypeParams().Len() > 0 || named.Obj().Pkg() == nil {
		return nil
	}

	iface, ok := named.Underlying().(*types.Interface)
	if !ok || iface.NumMethods() == 0 {
		return nil
	}

	return &InnerUnion{
		Name:     named.Obj().Name(),
		PkgPath:  named.Obj().Pkg().Path(),
		Variants: a.discover(fset, im, named, nil, true),
	}
}

// unwrapMethod looks up an Unwrap method declared directly on the variant.
// Promoted methods are ignored: they unwrap the embedded value, not the variant.
func (a *Analyzer) unwrapMethod(fset *token.FileSet, named *types.Named, pointer bool) *Method {
	var recv types.Type = named
	if pointer {
		recv = types.NewPointer(named)
	}

	obj, index, _ := types.LookupFieldOrMethod(recv, true, named.Obj().Pkg(), "Unwrap")

	fn, ok := obj.(*types.Func)
	if !ok || len(index) != 1 {
		return nil
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil
	}

	return &Method{
		Result:    QualifiedString(sig.Results().At(0).Type()),
		Generated: common.SameFile(fset.Position(fn.Pos()).Filename, a.cfg.Output),
	}
}
