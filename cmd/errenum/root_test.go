package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"errenum-generator/internal/errenum"
)

func testEnv(t *testing.T) (env, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	dir, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer

	return env{
		stdout: &stdout,
		stderr: &stderr,
		dir:    dir,
		newLogger: func(bool) (*zap.Logger, error) {
			return zap.NewNop(), nil
		},
	}, &stdout, &stderr
}

func execute(e env, args ...string) error {
	cmd := newRootCmd(e)
	cmd.SetArgs(args)

	return cmd.Execute()
}

func TestRoot_DryRunPrintsCode(t *testing.T) {
	e, stdout, stderr := testEnv(t)

	err := execute(e, "--dry-run", "--color=never", "./examples/layered/repo")
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "// "+filepath.Join("examples", "layered", "repo", "errenum_gen.go")+"\n")
	assert.Contains(t, out, "func StoreErrorFromNotFound(v *NotFoundError) StoreError {")
	assert.Contains(t, out, "func NewStoreError(err error) StoreError {")
	assert.Empty(t, stderr.String())
}

func TestRoot_VerbosePrintsInfos(t *testing.T) {
	e, _, stderr := testEnv(t)

	err := execute(e, "-n", "-v", "--color=never", "./examples/layered/service")
	require.NoError(t, err)

	assert.Contains(t, stderr.String(), "info[EI001] ServiceError.Timeout:")
	assert.Contains(t, stderr.String(), "info[EI001] ServiceError.Conflict:")
}

func TestRoot_ReportsDiagnostics(t *testing.T) {
	e, stdout, stderr := testEnv(t)

	err := execute(e, "-n", "--color=never", "./internal/errenum/testdata/broken")
	require.ErrorIs(t, err, errenum.ErrDiagnostics)

	out := stderr.String()
	assert.Contains(t, out, filepath.Join("internal", "errenum", "testdata", "broken", "broken.go")+":5:1: error[EE002] Conflict:")
	assert.Contains(t, out, "\t= add a variant such as `type ConflictOther struct{ error }`\n")
	assert.Contains(t, out, "error[EE001] Record:")
	assert.Empty(t, stdout.String())
}

func TestRoot_Dump(t *testing.T) {
	e, stdout, _ := testEnv(t)

	err := execute(e, "-n", "--dump", "--color=never", "./examples/layered/repo")
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "package errenum-generator/examples/layered/repo\n")
	assert.Contains(t, stdout.String(), `Name: (string) (len=10) "StoreError"`)
}

func TestRoot_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "color", args: []string{"--color=sometimes"}, want: `invalid --color "sometimes"`},
		{name: "output", args: []string{"--output=gen/x.go"}, want: "output:"},
		{name: "config", args: []string{"--config=does-not-exist.yaml"}, want: "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := testEnv(t)

			err := execute(e, append(tt.args, "-n", "./examples/layered/repo")...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
