package plan

import (
	"fmt"
	"go/token"
	"strings"
	"text/template"

	"errenum-generator/internal/config"
)

// Options controls resolution.
type Options struct {
	// Opaque is the package-path-qualified opaque-error type.
	Opaque string
	// Markers resolves variant marker names.
	Markers *MarkerRegistry
	// From names per-variant conversions.
	From *template.Template
	// Wrap names the universal entry point.
	Wrap *template.Template
	// Unwrap enables generating Unwrap on catch-all variants.
	Unwrap bool
}

// DefaultOptions returns the options matching config.Default.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.Default())
	if err != nil {
		panic(fmt.Sprintf("default options: %v", err))
	}

	return opts
}

// OptionsFromConfig builds resolver options from a validated configuration.
func OptionsFromConfig(c *config.Config) (Options, error) {
	from, err := c.Naming.FromTemplate()
	if err != nil {
		return Options{}, fmt.Errorf("naming.from: %w", err)
	}

	wrap, err := c.Naming.WrapTemplate()
	if err != nil {
		return Options{}, fmt.Errorf("naming.wrap: %w", err)
	}

	markers := NewMarkerRegistry()
	for canonical, aliases := range c.Markers {
		for _, alias := range aliases {
			if err := markers.Alias(alias, canonical); err != nil {
				return Options{}, fmt.Errorf("markers.%s: %w", canonical, err)
			}
		}
	}

	return Options{
		Opaque:  strings.TrimSpace(c.Opaque),
		Markers: markers,
		From:    from,
		Wrap:    wrap,
		Unwrap:  c.UnwrapEnabled(),
	}, nil
}

// execName renders a naming template and checks the result is an identifier.
func execName(t *template.Template, data config.NameData) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}

	name := b.String()
	if !token.IsIdentifier(name) {
		return "", fmt.Errorf("%q is not a valid identifier", name)
	}

	return name, nil
}
