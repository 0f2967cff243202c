package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ctxbundle/pkg/bundle"
	"ctxbundle/pkg/version"
)

func nopLogger(bool) (*zap.Logger, error) {
	return zap.NewNop(), nil
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(nopLogger)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"a":   1}`), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "skipme"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skipme", "x.txt"), []byte("x"), 0o600))
	return dir
}

func TestRoot_WritesBundle(t *testing.T) {
	dir := newProject(t)
	out := filepath.Join(t.TempDir(), "ctx.txt")

	stdout, _, err := execute(t, dir, "--output", out, "--minify")
	require.NoError(t, err)
	assert.Equal(t, "Successfully generated context file at "+out+"\n", stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "```json\n{\"a\":1}\n```")
	assert.Contains(t, string(data), "<statistics>")
	assert.Contains(t, string(data), "  - skipme/\n    - x.txt\n")
}

func TestRoot_ShortFlagsAndExcludes(t *testing.T) {
	dir := newProject(t)
	out := filepath.Join(t.TempDir(), "ctx.txt")

	_, _, err := execute(t, dir, "-o", out, "-e", "skipme", "-e", "other,more")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "skipme")
	assert.NotContains(t, string(data), "<statistics>")
	assert.Contains(t, string(data), "<file path=")
}

func TestRoot_ExcludeTakesSeveralPatterns(t *testing.T) {
	dir := newProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drafts"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drafts", "y.txt"), []byte("y"), 0o600))
	out := filepath.Join(t.TempDir(), "ctx.txt")

	_, _, err := execute(t, dir, "-o", out, "-e", "skipme", "drafts")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "skipme")
	assert.NotContains(t, string(data), "drafts")
	assert.Contains(t, string(data), "a.json")
}

func TestRoot_ExtraArgumentsNeedExclude(t *testing.T) {
	dir := newProject(t)

	_, _, err := execute(t, dir, "drafts", "-o", filepath.Join(t.TempDir(), "ctx.txt"))
	require.Error(t, err)
}

func TestRoot_ExcludeFromEnvironment(t *testing.T) {
	dir := newProject(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drafts"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drafts", "y.txt"), []byte("y"), 0o600))
	out := filepath.Join(t.TempDir(), "ctx.txt")
	t.Setenv("CTXBUNDLE_EXCLUDE", "skipme,drafts")

	_, _, err := execute(t, dir, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "skipme")
	assert.NotContains(t, string(data), "drafts")
}

func TestExcludePatterns(t *testing.T) {
	got := excludePatterns([]string{"a, b", "c"}, []string{" d "})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestRoot_InvalidDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	out := filepath.Join(t.TempDir(), "ctx.txt")

	_, stderr, err := execute(t, missing, "-o", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, bundle.ErrInvalidDirectory)
	assert.Equal(t, missing+" is not a valid directory", err.Error())
	assert.Contains(t, stderr, "Error: "+missing+" is not a valid directory")
	assert.NoFileExists(t, out)
}

func TestRoot_RequiresDirectory(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := newProject(t)
	out := filepath.Join(t.TempDir(), "ctx.txt")
	cfg := filepath.Join(t.TempDir(), "ctxbundle.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("minify: true\nexclude:\n  - skipme\noutput: "+out+"\n"), 0o600))

	_, _, err := execute(t, dir, "--config", cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<statistics>")
	assert.NotContains(t, string(data), "skipme")
}

func TestRoot_MissingConfigFile(t *testing.T) {
	dir := newProject(t)

	_, _, err := execute(t, dir, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestRoot_EnvironmentOverridesDefaults(t *testing.T) {
	dir := newProject(t)
	out := filepath.Join(t.TempDir(), "ctx.txt")
	t.Setenv("CTXBUNDLE_MINIFY", "true")
	t.Setenv("CTXBUNDLE_OUTPUT", out)

	_, _, err := execute(t, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<statistics>")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)

	stdout, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Get().String()+"\n", stdout)
}
