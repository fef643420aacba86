package analyze

import (
	"go/types"

	"errenum-generator/internal/common"
)

// bodyNames are the parameters and locals of generated functions.
var bodyNames = []string{"v", "c", "err", "e"}

// importer assigns import aliases for the file generated into one package.
// Aliases never shadow a package-level name of that package or a name used
// inside generated bodies.
type importer struct {
	self    *types.Package
	aliases map[string]string
	taken   map[string]bool
}

func newImporter(self *types.Package) *importer {
	taken := make(map[string]bool)
	for _, name := range self.Scope().Names() {
		taken[name] = true
	}

	for _, name := range bodyNames {
		taken[name] = true
	}

	return &importer{
		self:    self,
		aliases: make(map[string]string),
		taken:   taken,
	}
}

// alias returns the name used for pkg in generated code, or "" for the
// package being generated into.
func (im *importer) alias(pkg *types.Package) string {
	if pkg == nil || pkg.Path() == im.self.Path() {
		return ""
	}

	if a, ok := im.aliases[pkg.Path()]; ok {
		return a
	}

	a := common.UniqueName(pkg.Name(), func(s string) bool { return im.taken[s] })
	im.taken[a] = true
	im.aliases[pkg.Path()] = a

	return a
}

// ref renders t for the generated file.
func (im *importer) ref(t types.Type) TypeRef {
	var imports []Import

	seen := make(map[string]bool)
	expr := types.TypeString(t, func(pkg *types.Package) string {
		a := im.alias(pkg)
		if a != "" && !seen[pkg.Path()] {
			seen[pkg.Path()] = true
			imports = append(imports, Import{Alias: a, Name: pkg.Name(), Path: pkg.Path()})
		}

		return a
	})

	return TypeRef{
		Expr:      expr,
		Qualified: QualifiedString(t),
		Imports:   imports,
		Nillable:  isNillable(t),
	}
}

// QualifiedString renders t with full package paths, e.g.
// "*example.com/app/repo.Error". The builtin error renders as "error".
func QualifiedString(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string { return pkg.Path() })
}

func isNillable(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Interface, *types.Pointer, *types.Map, *types.Slice, *types.Chan, *types.Signature:
		return true
	default:
		return false
	}
}
