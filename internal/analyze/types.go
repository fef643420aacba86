package analyze

import (
	"go/token"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"errenum-generator/internal/common"
)

// DeclKind classifies the underlying type of a requested declaration.
type DeclKind int

const (
	DeclKindUnknown   DeclKind = iota
	DeclKindInterface          // interface type, the only kind that can be a union
	DeclKindStruct             // struct type (a record)
	DeclKindBasic              // int, string, bool, etc.
	DeclKindOther              // slices, maps, funcs, channels...
)

// String returns a human-readable representation of the DeclKind.
func (k DeclKind) String() string {
	switch k {
	case DeclKindInterface:
		return "interface"
	case DeclKindStruct:
		return "struct"
	case DeclKindBasic:
		return "basic"
	case DeclKindOther:
		return "non-interface"
	default:
		return common.UnknownStr
	}
}

//go:generate go tool stringer -type=Shape -trimprefix=Shape -output=shape_string.go

// Shape describes the fields carried by a variant.
type Shape int

const (
	ShapeOther         Shape = iota // not a struct
	ShapeNone                       // struct{}
	ShapeSingleUnnamed              // struct{ T }, the only shape that gets a conversion
	ShapeNamed                      // struct{ Name T }
	ShapeMultiple                   // more than one field
)

// Import is a package referenced by a rendered type.
type Import struct {
	Alias string // Name used in generated code
	Name  string // Declared package name
	Path  string // Import path
}

// TypeRef is a type reference rendered for the generated file.
type TypeRef struct {
	// Expr renders the type with the import aliases of the generated file,
	// e.g. "*repo.Error".
	Expr string
	// Qualified renders the type with full package paths,
	// e.g. "*example.com/app/repo.Error". Used for matching.
	Qualified string
	// Imports lists the packages Expr refers to.
	Imports []Import
	// Nillable is true when the type can be compared to nil.
	Nillable bool
	// Union describes the type's own variants when it is itself a tagged union.
	Union *InnerUnion
}

// Field is the embedded field of a single-field variant.
type Field struct {
	Name     string // Field name, i.e. the embedded type's name
	Exported bool
	Type     TypeRef
}

// Marker is an "//errenum:<name>" directive attached to a variant.
type Marker struct {
	Name string
	Pos  token.Pos
}

// Method describes a method found in a variant's method set.
type Method struct {
	// Result is the qualified rendering of the single result type.
	Result string
	// Generated is true when the method is declared in errenum's own output.
	Generated bool
}

// Variant describes one arm of a tagged union.
type Variant struct {
	Name     string  // Variant name, the type name with the union name trimmed
	Type     TypeRef // The variant's named type (never a pointer)
	TypeName string  // Unqualified type name
	PkgPath  string
	Pointer  bool // Only the pointer type implements the union
	Shape    Shape
	Field    *Field // Set for ShapeSingleUnnamed
	Markers  []Marker
	Unwrap   *Method // Unwrap() with one result, if declared
	Pos      token.Pos
}

// Eligible reports whether the variant carries exactly one unnamed field.
func (v *Variant) Eligible() bool {
	return v.Shape == ShapeSingleUnnamed && v.Field != nil
}

// InnerUnion describes a tagged union used as a variant's inner type.
type InnerUnion struct {
	Name     string
	PkgPath  string
	Variants []Variant
}

// Variant returns the variant with the given name, or nil.
func (u *InnerUnion) Variant(name string) *Variant {
	for i := range u.Variants {
		if u.Variants[i].Name == name {
			return &u.Variants[i]
		}
	}

	return nil
}

// Declaration is a type errenum was asked to derive conversions for.
type Declaration struct {
	Name    string
	PkgPath string
	Kind    DeclKind
	// Sealed is true for interfaces with at least one method.
	Sealed  bool
	Generic bool
	// Pos is the invocation site: the directive, or the type name when the
	// declaration was selected by name.
	Pos      token.Pos
	Variants []Variant
}

// Package holds one loaded package and the declarations it requests.
type Package struct {
	Path  string
	Name  string
	Dir   string
	Fset  *token.FileSet
	Decls []*Declaration
	// Declared maps package-level names declared outside the generated file
	// to their position.
	Declared map[string]token.Pos
	// TypeErrors are the type-checking errors of the package.
	TypeErrors []error
}

// Position resolves pos against the package's file set.
func (p *Package) Position(pos token.Pos) token.Position {
	if p.Fset == nil || !pos.IsValid() {
		return token.Position{}
	}

	return p.Fset.Position(pos)
}

// variantIndex keeps variants in declaration order keyed by name.
type variantIndex struct {
	m *linkedhashmap.Map
}

func newVariantIndex() variantIndex {
	return variantIndex{m: linkedhashmap.New()}
}

// add inserts v, falling back to the full type name when the trimmed name is
// already taken.
func (x variantIndex) add(v Variant) {
	if _, taken := x.m.Get(v.Name); taken {
		v.Name = v.TypeName
	}

	x.m.Put(v.Name, v)
}

func (x variantIndex) variants() []Variant {
	out := make([]Variant, 0, x.m.Size())
	for _, v := range x.m.Values() {
		out = append(out, v.(Variant))
	}

	return out
}
