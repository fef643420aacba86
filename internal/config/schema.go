package config

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Default values applied by Parse.
const (
	DefaultVersion    = "1"
	DefaultOpaque     = "error"
	DefaultOutput     = "errenum_gen.go"
	DefaultFromNaming = "{{.Union}}From{{.Variant}}"
	DefaultWrapNaming = "New{{.Union}}"
)

// Config represents the root of an errenum configuration file.
type Config struct {
	// Version of the configuration schema.
	Version string `yaml:"version,omitempty"`

	// Opaque is the opaque-error type identifying the catch-all variant,
	// qualified by package path: "error", "example.com/errs.Opaque" or
	// "*example.com/errs.Opaque".
	Opaque string `yaml:"opaque,omitempty"`

	// Output is the name of the file generated into each package.
	Output string `yaml:"output,omitempty"`

	// Unwrap enables the Unwrap method generated on catch-all variants.
	Unwrap *bool `yaml:"unwrap,omitempty"`

	// Naming holds the templates of generated function names.
	Naming Naming `yaml:"naming,omitempty"`

	// Markers maps a canonical marker name to extra aliases.
	Markers map[string][]string `yaml:"markers,omitempty"`

	// Tags are build tags used when loading packages.
	Tags []string `yaml:"tags,omitempty"`
}

// Naming holds text/template sources for generated function names. Templates
// see .Union, .Variant and .Inner (the inner type as written).
type Naming struct {
	From string `yaml:"from,omitempty"`
	Wrap string `yaml:"wrap,omitempty"`
}

// NameData is the data passed to naming templates.
type NameData struct {
	Union   string
	Variant string
	Inner   string
}

// UnwrapEnabled reports whether Unwrap methods are generated.
func (c *Config) UnwrapEnabled() bool {
	return c.Unwrap == nil || *c.Unwrap
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Opaque) == "" {
		errs = append(errs, errors.New("opaque: must not be empty"))
	}

	if strings.ContainsAny(c.Output, `/\`) || !strings.HasSuffix(c.Output, ".go") {
		errs = append(errs, fmt.Errorf("output: %q must be a .go file name", c.Output))
	}

	if _, err := c.Naming.FromTemplate(); err != nil {
		errs = append(errs, fmt.Errorf("naming.from: %w", err))
	}

	if _, err := c.Naming.WrapTemplate(); err != nil {
		errs = append(errs, fmt.Errorf("naming.wrap: %w", err))
	}

	for canonical, aliases := range c.Markers {
		for _, alias := range aliases {
			if alias == "" || strings.ContainsAny(alias, " \t") {
				errs = append(errs, fmt.Errorf("markers.%s: invalid alias %q", canonical, alias))
			}
		}
	}

	return errors.Join(errs...)
}

// FromTemplate parses the per-variant naming template.
func (n Naming) FromTemplate() (*template.Template, error) {
	return template.New("from").Option("missingkey=error").Parse(n.From)
}

// WrapTemplate parses the universal entry point naming template.
func (n Naming) WrapTemplate() (*template.Template, error) {
	return template.New("wrap").Option("missingkey=error").Parse(n.Wrap)
}
