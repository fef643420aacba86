package gen

import (
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"errenum-generator/internal/analyze"
	"errenum-generator/internal/diagnostic"
	"errenum-generator/internal/plan"
)

const repoPath = "example.com/app/repo"

var repoImport = analyze.Import{Alias: "repo", Name: "repo", Path: repoPath}

func errorRef() analyze.TypeRef {
	return analyze.TypeRef{Expr: "error", Qualified: "error", Nillable: true}
}

func single(typeName, field string, ref analyze.TypeRef) analyze.Variant {
	return analyze.Variant{
		TypeName: typeName,
		Shape:    analyze.ShapeSingleUnnamed,
		Field:    &analyze.Field{Name: field, Type: ref},
	}
}

func servicePlan(dir string) *plan.Plan {
	catchAll := single("ServiceErrorOther", "error", errorRef())

	repoRef := analyze.TypeRef{
		Expr:     "repo.Error",
		Imports:  []analyze.Import{repoImport},
		Nillable: true,
	}
	repoOther := analyze.Variant{
		TypeName: "ErrorOther",
		Type:     analyze.TypeRef{Expr: "repo.ErrorOther", Imports: []analyze.Import{repoImport}},
	}

	validation := single("ServiceErrorValidation", "ValidationError",
		analyze.TypeRef{Expr: "*ValidationError", Nillable: true})
	validation.Pointer = true

	return &plan.Plan{
		Package: &analyze.Package{Path: "example.com/app/service", Name: "service", Dir: dir},
		Units: []plan.Unit{{
			Decl:     &analyze.Declaration{Name: "ServiceError"},
			CatchAll: catchAll,
			Rules: []plan.Rule{
				{
					Variant:  single("ServiceErrorRepo", "Error", repoRef),
					Strategy: plan.StrategyUnwrapCatchAll,
					FuncName: "ServiceErrorFromRepo",
					Flatten: &plan.Flatten{
						CatchAll:    repoOther,
						AssertExpr:  "repo.ErrorOther",
						PayloadExpr: "Unwrap()",
					},
				},
				{
					Variant:  validation,
					Strategy: plan.StrategyDirectWrap,
					FuncName: "ServiceErrorFromValidation",
				},
				{
					Variant:  single("ServiceErrorStatus", "StatusCode", analyze.TypeRef{Expr: "StatusCode"}),
					Strategy: plan.StrategyDirectWrap,
					FuncName: "ServiceErrorFromStatus",
				},
			},
			WrapFunc:   "NewServiceError",
			EmitUnwrap: true,
		}},
	}
}

const serviceGolden = `// Code generated by errenum. DO NOT EDIT.

package service

import (
	"example.com/app/repo"
)

// ServiceErrorFromRepo converts repo.Error to ServiceError.
// The catch-all variant of repo.Error is flattened into ServiceErrorOther.
func ServiceErrorFromRepo(v repo.Error) ServiceError {
	if v == nil {
		return nil
	}
	if c, ok := v.(repo.ErrorOther); ok {
		return ServiceErrorOther{c.Unwrap()}
	}
	return ServiceErrorRepo{v}
}

// ServiceErrorFromValidation converts *ValidationError to ServiceError.
func ServiceErrorFromValidation(v *ValidationError) ServiceError {
	if v == nil {
		return nil
	}
	return &ServiceErrorValidation{v}
}

// ServiceErrorFromStatus converts StatusCode to ServiceError.
func ServiceErrorFromStatus(v StatusCode) ServiceError {
	return ServiceErrorStatus{v}
}

// NewServiceError wraps err into ServiceErrorOther.
func NewServiceError(err error) ServiceError {
	if err == nil {
		return nil
	}
	return ServiceErrorOther{err}
}

// Unwrap returns the error wrapped by ServiceErrorOther.
func (e ServiceErrorOther) Unwrap() error {
	return e.error
}
`

func TestGenerate_Golden(t *testing.T) {
	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(servicePlan("/src/service"))
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, "/src/service/errenum_gen.go", file.Path())

	if diff := cmp.Diff(serviceGolden, string(file.Content)); diff != "" {
		t.Errorf("generated code mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig())

	first, err := g.Generate(servicePlan(""))
	require.NoError(t, err)

	second, err := g.Generate(servicePlan(""))
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
}

func TestGenerate_OnlyEntryPoint(t *testing.T) {
	p := &plan.Plan{
		Package: &analyze.Package{Name: "app"},
		Units: []plan.Unit{{
			Decl:     &analyze.Declaration{Name: "E"},
			CatchAll: single("EB", "error", errorRef()),
			WrapFunc: "NewE",
		}},
	}

	file, err := NewGenerator(GeneratorConfig{Output: "gen.go"}).Generate(p)
	require.NoError(t, err)

	want := `// Code generated by errenum. DO NOT EDIT.

package app

// NewE wraps err into EB.
func NewE(err error) E {
	if err == nil {
		return nil
	}
	return EB{err}
}
`
	assert.Equal(t, "gen.go", file.Filename)
	assert.Empty(t, cmp.Diff(want, string(file.Content)))
}

func TestGenerate_Imports(t *testing.T) {
	opaque := analyze.TypeRef{
		Expr:     "*errs.Opaque",
		Imports:  []analyze.Import{{Alias: "errs", Name: "errs", Path: "example.com/z/errs"}},
		Nillable: true,
	}
	other := analyze.TypeRef{
		Expr:     "repo2.Error",
		Imports:  []analyze.Import{{Alias: "repo2", Name: "repo", Path: "example.com/a/repo"}},
		Nillable: true,
	}

	catchAll := single("EOther", "Opaque", opaque)
	catchAll.Pointer = true

	p := &plan.Plan{
		Package: &analyze.Package{Name: "app"},
		Units: []plan.Unit{{
			Decl:     &analyze.Declaration{Name: "E"},
			CatchAll: catchAll,
			Rules: []plan.Rule{{
				Variant:  single("ERepo", "Error", other),
				Strategy: plan.StrategyDirectWrap,
				FuncName: "EFromRepo",
			}},
			WrapFunc:   "NewE",
			EmitUnwrap: true,
		}},
	}

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)

	content := string(file.Content)
	assert.Contains(t, content, "import (\n\trepo2 \"example.com/a/repo\"\n\t\"example.com/z/errs\"\n)")
	assert.Contains(t, content, "func NewE(err *errs.Opaque) E {")
	assert.Contains(t, content, "return &EOther{err}")
	assert.Contains(t, content, "func (e *EOther) Unwrap() *errs.Opaque {\n\treturn e.Opaque\n}")
}

func TestGenerate_Empty(t *testing.T) {
	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(&plan.Plan{Package: &analyze.Package{Name: "app"}})

	assert.NoError(t, err)
	assert.Nil(t, file)
}

func TestGenerate_RefusesPlanWithErrors(t *testing.T) {
	p := servicePlan("")
	p.Diagnostics.AddError(token.Position{}, diagnostic.CodeMissingCatchAll, "no catch-all", "ServiceError", "")

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)

	require.Error(t, err)
	assert.Nil(t, file)
	assert.Contains(t, err.Error(), diagnostic.CodeMissingCatchAll)
}

func TestGenerate_FormatFailureWritesSidecar(t *testing.T) {
	dir := t.TempDir()

	p := servicePlan(dir)
	p.Units[0].Rules[2].Variant.Field.Type.Expr = "StatusCode!!"

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.Error(t, err)
	require.NotNil(t, file)
	assert.Contains(t, string(file.Content), "StatusCode!!")

	_, statErr := os.Stat(filepath.Join(dir, "errenum_gen.go.unformatted"))
	assert.NoError(t, statErr)
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(servicePlan(dir))
	require.NoError(t, err)

	written, err := WriteFiles([]*GeneratedFile{file, nil})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "errenum_gen.go")}, written)

	data, err := os.ReadFile(filepath.Join(dir, "errenum_gen.go"))
	require.NoError(t, err)
	assert.Equal(t, serviceGolden, string(data))

	written, err = WriteFiles([]*GeneratedFile{file})
	require.NoError(t, err)
	assert.Empty(t, written)
}
