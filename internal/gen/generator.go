package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"sort"

	"errenum-generator/internal/analyze"
	"errenum-generator/internal/plan"
)

// Header is the first line of every generated file.
const Header = "// Code generated by errenum. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Output is the name of the file generated into each package.
	Output string
	// WriteDebug writes an unformatted sidecar next to the output when the
	// generated code does not format.
	WriteDebug bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Output:     analyze.DefaultOutput,
		WriteDebug: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Output == "" {
		config.Output = analyze.DefaultOutput
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs to.
	Dir string
	// Filename is the base name of the file (e.g., "errenum_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full path of the file.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders all units of a plan into one file. It returns nil when the
// plan has no units. Plans with fatal diagnostics must not be generated.
func (g *Generator) Generate(p *plan.Plan) (*GeneratedFile, error) {
	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("plan for %s has errors: %w", p.Package.Path, p.Diagnostics.Error())
	}

	if len(p.Units) == 0 {
		return nil, nil
	}

	data := &fileData{Package: p.Package.Name}

	imports := make(map[string]analyze.Import)
	for i := range p.Units {
		data.Units = append(data.Units, buildUnit(&p.Units[i], imports))
	}

	for _, imp := range imports {
		data.Imports = append(data.Imports, imp)
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	file := &GeneratedFile{
		Dir:      p.Package.Dir,
		Filename: g.config.Output,
	}

	var buf bytes.Buffer
	if err := fileTemplate.ExecuteTemplate(&buf, "file", data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.WriteDebug {
			_ = writeDebugUnformatted(file.Dir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

// buildUnit prepares the template data of one union and records the imports
// its signatures and assertions need.
func buildUnit(u *plan.Unit, imports map[string]analyze.Import) unitData {
	use := func(ref analyze.TypeRef) string {
		for _, imp := range ref.Imports {
			imports[imp.Path] = imp
		}

		return ref.Expr
	}

	catchAll := u.CatchAll
	out := unitData{Union: u.Decl.Name}

	for _, r := range u.Rules {
		inner := r.Variant.Field.Type
		rd := ruleData{
			Func:     r.FuncName,
			Union:    u.Decl.Name,
			Inner:    use(inner),
			CatchAll: catchAll.TypeName,
			NilCheck: inner.Nillable,
			Wrapped:  construct(r.Variant, "v"),
		}

		if r.Strategy == plan.StrategyUnwrapCatchAll && r.Flatten != nil {
			use(r.Flatten.CatchAll.Type)
			rd.Assert = r.Flatten.AssertExpr
			rd.Flattened = construct(catchAll, "c."+r.Flatten.PayloadExpr)
		}

		out.Rules = append(out.Rules, rd)
	}

	out.Wrap = ruleData{
		Func:     u.WrapFunc,
		Union:    u.Decl.Name,
		Inner:    use(catchAll.Field.Type),
		CatchAll: catchAll.TypeName,
		NilCheck: catchAll.Field.Type.Nillable,
		Wrapped:  construct(catchAll, "err"),
	}

	if u.EmitUnwrap {
		recv := catchAll.TypeName
		if catchAll.Pointer {
			recv = "*" + recv
		}

		out.Unwrap = &unwrapData{
			Type:   catchAll.TypeName,
			Recv:   recv,
			Result: catchAll.Field.Type.Expr,
			Field:  catchAll.Field.Name,
		}
	}

	return out
}

// construct renders a variant value holding expr.
func construct(v analyze.Variant, expr string) string {
	lit := fmt.Sprintf("%s{%s}", v.TypeName, expr)
	if v.Pointer {
		return "&" + lit
	}

	return lit
}
