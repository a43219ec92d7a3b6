package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jsonpane/pkg/settings"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func resetParams(t *testing.T) {
	t.Helper()
	orig := *params
	t.Cleanup(func() { *params = orig })
	*params = *settings.NewCliParams()
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
theme: light
keymap: emacs
no_color: true
indent: 4
workers: 8
parallel_threshold: 128
max_values: 500
`)

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "emacs", cfg.KeyMode)
	require.NotNil(t, cfg.NoColor)
	assert.True(t, *cfg.NoColor)
	assert.Equal(t, 4, *cfg.Indent)
	assert.Equal(t, 8, *cfg.Workers)
	assert.Equal(t, 128, *cfg.ParallelThreshold)
	assert.Equal(t, 500, *cfg.MaxValues)
}

func TestLoadConfigFilePartial(t *testing.T) {
	path := writeConfig(t, "theme: mono\n")

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Empty(t, cfg.KeyMode)
	assert.Nil(t, cfg.NoColor)
	assert.Nil(t, cfg.MaxValues)
}

func TestLoadConfigFileErrors(t *testing.T) {
	_, err := loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeConfig(t, "theme: [not, a, string\n")
	_, err = loadConfigFile(path)
	assert.ErrorContains(t, err, "decode config")
}

func testFlagSet(t *testing.T) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("theme", "", "")
	fs.String("keymap", "", "")
	fs.Bool("no-color", false, "")
	fs.Int("indent", 2, "")
	fs.Int("workers", 0, "")
	fs.Int("parallel-threshold", 0, "")
	fs.Int("max-values", 0, "")
	return fs
}

func TestApplyConfigDefaults(t *testing.T) {
	resetParams(t)

	four := 4
	thousand := 1000
	yes := true
	cfg := fileConfig{
		Theme:     "light",
		KeyMode:   "emacs",
		NoColor:   &yes,
		Indent:    &four,
		MaxValues: &thousand,
	}

	applyConfigDefaults(cfg, testFlagSet(t))
	assert.Equal(t, "light", params.Theme)
	assert.Equal(t, "emacs", params.KeyMode)
	assert.True(t, params.NoColor)
	assert.Equal(t, 4, params.Indent)
	assert.Equal(t, 1000, params.MaxValues)
}

func TestApplyConfigDefaultsFlagsWin(t *testing.T) {
	resetParams(t)

	fs := testFlagSet(t)
	require.NoError(t, fs.Set("theme", "mono"))
	require.NoError(t, fs.Set("max-values", "50"))
	params.Theme = "mono"
	params.MaxValues = 50

	thousand := 1000
	cfg := fileConfig{Theme: "light", MaxValues: &thousand}
	applyConfigDefaults(cfg, fs)

	assert.Equal(t, "mono", params.Theme)
	assert.Equal(t, 50, params.MaxValues)
}

func TestResolveConfigPathExplicit(t *testing.T) {
	assert.Equal(t, "/some/path.yaml", resolveConfigPath("/some/path.yaml"))
}

func TestResolveConfigPathDefaultMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.Empty(t, resolveConfigPath(""))
}

func TestResolveConfigPathDefaultPresent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "jsonpane")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\n"), 0o644))

	assert.Equal(t, path, resolveConfigPath(""))
}
