// Package errenum runs the whole pipeline: load packages, resolve their unions,
// generate and write one file per package.
package errenum

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"errenum-generator/internal/analyze"
	"errenum-generator/internal/config"
	"errenum-generator/internal/diagnostic"
	"errenum-generator/internal/gen"
	"errenum-generator/internal/plan"
)

// ErrDiagnostics is returned when at least one declaration raised a fatal
// diagnostic. Result.Diagnostics holds the details.
var ErrDiagnostics = errors.New("errenum reported errors")

// Options configures a run.
type Options struct {
	// Dir is the working directory packages are loaded from.
	Dir string
	// Env overrides the environment of go list.
	Env []string
	// Patterns are the packages to process. Empty means ".".
	Patterns []string
	// Types selects declarations by name in addition to the derive directive.
	Types []string
	// DryRun generates files without writing them.
	DryRun bool
}

// Result is the outcome of a run.
type Result struct {
	// Packages are the loaded packages in dependency order.
	Packages []*analyze.Package
	// Files are the generated files, one per package with units.
	Files []*gen.GeneratedFile
	// Written lists the paths whose content changed on disk.
	Written []string
	// Diagnostics gathers the diagnostics of every package.
	Diagnostics diagnostic.Diagnostics
}

// Main is the main entry point for errenum. It is used by the command-line
// tool directly.
//
// Packages with fatal diagnostics get no file; the others are still written
// unless opts.DryRun is set. The error wraps ErrDiagnostics when any fatal
// diagnostic was raised.
func Main(ctx context.Context, logger *zap.Logger, cfg *config.Config, opts Options) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg == nil {
		cfg = config.Default()
	}

	popts, err := plan.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	analyzer := analyze.NewAnalyzer(analyze.LoaderConfig{
		Dir:    opts.Dir,
		Env:    opts.Env,
		Tags:   cfg.Tags,
		Types:  opts.Types,
		Output: cfg.Output,
	})

	logger.Debug("Loading packages", zap.Strings("patterns", patterns), zap.Strings("types", opts.Types))

	pkgs, err := analyzer.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	res := &Result{Packages: pkgs}
	resolver := plan.NewResolver(popts)
	generator := gen.NewGenerator(gen.GeneratorConfig{
		Output:     cfg.Output,
		WriteDebug: !opts.DryRun,
	})

	var errs []error
	for _, pkg := range pkgs {
		for _, terr := range pkg.TypeErrors {
			logger.Debug("Ignoring type error", zap.String("package", pkg.Path), zap.Error(terr))
		}

		if len(pkg.Decls) == 0 {
			logger.Debug("No unions requested", zap.String("package", pkg.Path))
			continue
		}

		p := resolver.Resolve(pkg)
		res.Diagnostics.Merge(p.Diagnostics)

		if p.Diagnostics.HasErrors() {
			logger.Warn("Skipping package with errors",
				zap.String("package", pkg.Path),
				zap.Int("errors", len(p.Diagnostics.Errors)))

			continue
		}

		file, err := generator.Generate(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("generating %s: %w", pkg.Path, err))
			continue
		}

		if file == nil {
			continue
		}

		logger.Debug("Generated package",
			zap.String("package", pkg.Path),
			zap.Int("unions", len(p.Units)),
			zap.String("file", file.Path()))

		res.Files = append(res.Files, file)
	}

	if !opts.DryRun {
		written, err := gen.WriteFiles(res.Files)
		res.Written = written

		if err != nil {
			errs = append(errs, err)
		}

		for _, path := range written {
			logger.Info("Wrote file", zap.String("path", path))
		}
	}

	if res.Diagnostics.HasErrors() {
		errs = append(errs, fmt.Errorf("%w: %d error(s)", ErrDiagnostics, len(res.Diagnostics.Errors)))
	}

	return res, errors.Join(errs...)
}
