package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"errenum-generator/internal/diagnostic"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// printer renders diagnostics for a terminal.
type printer struct {
	w   io.Writer
	dir string

	pos        *color.Color
	severities map[diagnostic.DiagnosticSeverity]*color.Color
	code       *color.Color
	hint       *color.Color
}

func newPrinter(w io.Writer, mode, dir string) (*printer, error) {
	p := &printer{
		w:   w,
		dir: dir,
		pos: color.New(color.Bold),
		severities: map[diagnostic.DiagnosticSeverity]*color.Color{
			diagnostic.DiagnosticError:   color.New(color.FgHiRed, color.Bold),
			diagnostic.DiagnosticWarning: color.New(color.FgHiYellow, color.Bold),
			diagnostic.DiagnosticInfo:    color.New(color.FgHiCyan),
		},
		code: color.New(color.FgHiBlue),
		hint: color.New(color.FgHiGreen),
	}

	all := []*color.Color{p.pos, p.code, p.hint}
	for _, c := range p.severities {
		all = append(all, c)
	}

	switch mode {
	case colorAuto:
	case colorAlways:
		for _, c := range all {
			c.EnableColor()
		}
	case colorNever:
		for _, c := range all {
			c.DisableColor()
		}
	default:
		return nil, fmt.Errorf("invalid --color %q: want %s, %s or %s", mode, colorAuto, colorAlways, colorNever)
	}

	return p, nil
}

// diagnostics prints errors and warnings, and infos when verbose.
func (p *printer) diagnostics(d diagnostic.Diagnostics, verbose bool) {
	for _, diag := range d.All() {
		if diag.Severity == diagnostic.DiagnosticInfo && !verbose {
			continue
		}

		p.diagnostic(diag)
	}
}

// diagnostic prints one diagnostic as
//
//	file:line:col: severity[CODE] Union.Variant: message
//		= suggestion
func (p *printer) diagnostic(d diagnostic.Diagnostic) {
	if d.Pos.IsValid() {
		pos := d.Pos
		pos.Filename = p.rel(pos.Filename)
		p.pos.Fprintf(p.w, "%s: ", pos)
	}

	p.severities[d.Severity].Fprint(p.w, d.Severity.String())
	p.code.Fprintf(p.w, "[%s]", d.Code)

	if d.Union != "" {
		subject := d.Union
		if d.Variant != "" {
			subject += "." + d.Variant
		}

		fmt.Fprintf(p.w, " %s:", subject)
	}

	fmt.Fprintf(p.w, " %s\n", d.Message)

	for _, s := range d.Suggestions {
		p.hint.Fprintf(p.w, "\t= %s\n", s)
	}
}

func (p *printer) fatal(err error) {
	p.severities[diagnostic.DiagnosticError].Fprint(p.w, "error")
	fmt.Fprintf(p.w, ": %v\n", err)
}

// rel shortens path relative to the working directory.
func (p *printer) rel(path string) string {
	if p.dir == "" {
		return path
	}

	if r, err := filepath.Rel(p.dir, path); err == nil && !filepath.IsAbs(r) && len(r) < len(path) {
		return r
	}

	return path
}
