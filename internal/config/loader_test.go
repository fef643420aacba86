package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
opaque: "*example.com/errs.Opaque"
output: errors_gen.go
unwrap: false
naming:
  from: "{{.Variant}}To{{.Union}}"
  wrap: "Wrap{{.Union}}"
markers:
  without_catchall: [skip_unwrap, direct]
tags: [integration]
`

	c, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, "1", c.Version)
	assert.Equal(t, "*example.com/errs.Opaque", c.Opaque)
	assert.Equal(t, "errors_gen.go", c.Output)
	assert.False(t, c.UnwrapEnabled())
	assert.Equal(t, "{{.Variant}}To{{.Union}}", c.Naming.From)
	assert.Equal(t, "Wrap{{.Union}}", c.Naming.Wrap)
	assert.Equal(t, []string{"skip_unwrap", "direct"}, c.Markers["without_catchall"])
	assert.Equal(t, []string{"integration"}, c.Tags)
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, c.Version)
	assert.Equal(t, DefaultOpaque, c.Opaque)
	assert.Equal(t, DefaultOutput, c.Output)
	assert.Equal(t, DefaultFromNaming, c.Naming.From)
	assert.Equal(t, DefaultWrapNaming, c.Naming.Wrap)
	assert.True(t, c.UnwrapEnabled())
	assert.Equal(t, Default(), c)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown key",
			yaml: "opaq: error\n",
			want: "field opaq not found",
		},
		{
			name: "output with directory",
			yaml: "output: gen/errenum.go\n",
			want: "output:",
		},
		{
			name: "output without go suffix",
			yaml: "output: errenum.txt\n",
			want: "output:",
		},
		{
			name: "broken naming template",
			yaml: "naming:\n  from: \"{{.Union\"\n",
			want: "naming.from",
		},
		{
			name: "blank alias",
			yaml: "markers:\n  without_catchall: [\"\"]\n",
			want: "markers.without_catchall",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errenum.yaml")
	require.NoError(t, os.WriteFile(path, []byte("opaque: error\noutput: gen.go\n"), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gen.go", c.Output)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestMarshal_RoundTripsDefaults(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestResolve(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		c, err := Resolve("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("picks up errenum.yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("output: e_gen.go\n"), 0o644))

		c, err := Resolve("", dir)
		require.NoError(t, err)
		assert.Equal(t, "e_gen.go", c.Output)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml"), "")
		assert.Error(t, err)
	})
}
