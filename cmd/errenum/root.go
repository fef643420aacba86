package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"errenum-generator/internal/config"
	"errenum-generator/internal/errenum"
)

// env holds what the command touches outside its flags.
type env struct {
	stdout    io.Writer
	stderr    io.Writer
	dir       string
	newLogger func(verbose bool) (*zap.Logger, error)
}

func defaultEnv() env {
	dir, _ := os.Getwd()

	return env{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		dir:       dir,
		newLogger: productionLogger,
	}
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

// rootFlags are the command-line flags. Non-empty values override the
// configuration file.
type rootFlags struct {
	types      []string
	output     string
	opaque     string
	configPath string
	tags       []string
	dryRun     bool
	verbose    bool
	dump       bool
	color      string
}

func newRootCmd(e env) *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "errenum [flags] [packages]",
		Short: "Derive conversions into tagged-union error types",
		Long: `errenum generates conversion functions for error unions.

A union is an interface with at least one method, marked with //errenum:derive
or named with --type. Its variants are the types of the same package that
implement it. Exactly one variant must embed the opaque error type (error by
default); it becomes the target of New<Union>. Every other variant embedding a
single type gets <Union>From<Variant>. Mark a variant //errenum:without_catchall
(or //errenum:without_anyhow) to wrap its inner value without flattening.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, e, f, args)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&f.types, "type", nil, "union type names to derive, in addition to //errenum:derive")
	flags.StringVarP(&f.output, "output", "o", "", "name of the generated file in each package (default "+config.DefaultOutput+")")
	flags.StringVar(&f.opaque, "opaque", "", "package-qualified opaque error type (default "+config.DefaultOpaque+")")
	flags.StringVarP(&f.configPath, "config", "c", "", "configuration file (default ./"+config.DefaultFile+" when present)")
	flags.StringSliceVar(&f.tags, "tags", nil, "build tags used to load packages")
	flags.BoolVarP(&f.dryRun, "dry-run", "n", false, "print generated code instead of writing it")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging and informational diagnostics")
	flags.BoolVar(&f.dump, "dump", false, "dump the loaded unions")
	flags.StringVar(&f.color, "color", colorAuto, "colorize diagnostics: auto, always or never")

	return cmd
}

func run(cmd *cobra.Command, e env, f rootFlags, args []string) error {
	printer, err := newPrinter(e.stderr, f.color, e.dir)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(e.dir, f)
	if err != nil {
		printer.fatal(err)
		return err
	}

	logger, err := e.newLogger(f.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	res, err := errenum.Main(cmd.Context(), logger, cfg, errenum.Options{
		Dir:      e.dir,
		Patterns: args,
		Types:    f.types,
		DryRun:   f.dryRun,
	})

	if res != nil {
		if f.dump {
			dump(e.stdout, res)
		}

		printer.diagnostics(res.Diagnostics, f.verbose)

		if f.dryRun {
			for _, file := range res.Files {
				fmt.Fprintf(e.stdout, "// %s\n%s", printer.rel(file.Path()), file.Content)
			}
		}
	}

	if err != nil && !errors.Is(err, errenum.ErrDiagnostics) {
		printer.fatal(err)
	}

	return err
}

// loadConfig resolves the configuration file and applies flag overrides.
func loadConfig(dir string, f rootFlags) (*config.Config, error) {
	cfg, err := config.Resolve(f.configPath, dir)
	if err != nil {
		return nil, err
	}

	if f.output != "" {
		cfg.Output = f.output
	}

	if f.opaque != "" {
		cfg.Opaque = f.opaque
	}

	if len(f.tags) > 0 {
		cfg.Tags = f.tags
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func dump(w io.Writer, res *errenum.Result) {
	cs := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}

	for _, pkg := range res.Packages {
		fmt.Fprintf(w, "package %s\n", pkg.Path)
		cs.Fdump(w, pkg.Decls)
	}
}
