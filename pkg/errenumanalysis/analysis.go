// Package errenumanalysis exposes errenum's checks as a go/analysis Analyzer,
// so analysis drivers such as gopls report them in place.
package errenumanalysis

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"errenum-generator/internal/analyze"
	"errenum-generator/internal/config"
	"errenum-generator/internal/diagnostic"
	"errenum-generator/internal/gen"
	"errenum-generator/internal/plan"
)

var configPath string

// Analyzer validates errenum unions and checks their generated file is up to
// date.
var Analyzer = &analysis.Analyzer{
	Name: "errenum",
	Doc:  "check errenum tagged unions and their generated conversions",
	URL:  "https://pkg.go.dev/errenum-generator/pkg/errenumanalysis",
	Run:  run,
}

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "", "errenum configuration file")
}

func run(pass *analysis.Pass) (any, error) {
	cfg := config.Default()
	if configPath != "" {
		c, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg = c
	}

	opts, err := plan.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	loaded, err := analyze.NewAnalyzer(analyze.LoaderConfig{Output: cfg.Output}).ProcessPackage(pkg)
	if err != nil {
		return nil, err
	}

	if len(loaded.Decls) == 0 {
		return nil, nil
	}

	p := plan.NewResolver(opts).Resolve(loaded)
	for _, d := range p.Diagnostics.All() {
		if d.Severity == diagnostic.DiagnosticInfo {
			continue
		}

		pass.Report(analysis.Diagnostic{
			Pos:      tokenPos(pass, d.Pos),
			Category: d.Code,
			Message:  message(d),
		})
	}

	if p.Diagnostics.HasErrors() {
		return nil, nil
	}

	checkGenerated(pass, p, cfg.Output)

	return nil, nil
}

// checkGenerated reports a missing or stale output file.
func checkGenerated(pass *analysis.Pass, p *plan.Plan, output string) {
	file, err := gen.NewGenerator(gen.GeneratorConfig{Output: output}).Generate(p)
	if err != nil || file == nil {
		return
	}

	var existing *ast.File
	for _, f := range pass.Files {
		if filepath.Base(pass.Fset.Position(f.Pos()).Filename) == output {
			existing = f
			break
		}
	}

	if existing == nil {
		pass.Reportf(tokenPos(pass, p.Package.Position(p.Units[0].Decl.Pos)),
			"%s is missing; run errenum", output)

		return
	}

	content, err := pass.ReadFile(pass.Fset.Position(existing.Pos()).Filename)
	if err != nil || !bytes.Equal(content, file.Content) {
		pass.Reportf(existing.Package, "%s is out of date; run errenum", output)
	}
}

// message renders a diagnostic without its position, which the driver
// prints itself.
func message(d diagnostic.Diagnostic) string {
	msg := fmt.Sprintf("[%s] %s", d.Code, d.Message)
	if len(d.Suggestions) > 0 {
		msg += " (" + strings.Join(d.Suggestions, "; ") + ")"
	}

	return msg
}

// tokenPos maps a resolved position back into the pass's file set.
func tokenPos(pass *analysis.Pass, pos token.Position) token.Pos {
	for _, f := range pass.Files {
		tf := pass.Fset.File(f.Pos())
		if tf != nil && tf.Name() == pos.Filename && pos.Offset <= tf.Size() {
			return tf.Pos(pos.Offset)
		}
	}

	if len(pass.Files) > 0 {
		return pass.Files[0].Package
	}

	return token.NoPos
}
