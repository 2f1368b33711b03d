package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dhamidi/src2abs/java/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "class", cfg.Granularity)
	assert.Equal(t, "text", cfg.Format)
	assert.True(t, cfg.NeutralizeStrings)
	assert.False(t, cfg.GreedyChains)
	assert.Equal(t, runtime.NumCPU(), cfg.Batch.Workers)
	assert.Equal(t, []string{"**.java"}, cfg.Batch.Include)
	require.NoError(t, Validate(cfg))
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Granularity, cfg.Granularity)
	assert.Equal(t, defaults.Format, cfg.Format)
	assert.Equal(t, defaults.NeutralizeStrings, cfg.NeutralizeStrings)
	assert.Equal(t, defaults.Batch.Workers, cfg.Batch.Workers)
	assert.Equal(t, defaults.Batch.Include, cfg.Batch.Include)
	assert.Empty(t, cfg.Batch.Exclude)
	assert.Empty(t, cfg.Idioms)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
granularity: METHOD
idioms: idioms.txt
greedy_chains: true
format: json
batch:
  workers: 3
  exclude:
    - "**/generated/**"
`)

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "METHOD", cfg.Granularity)
	assert.Equal(t, "idioms.txt", cfg.Idioms)
	assert.True(t, cfg.GreedyChains)
	assert.True(t, cfg.NeutralizeStrings)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, []string{"**.java"}, cfg.Batch.Include)
	assert.Equal(t, []string{"**/generated/**"}, cfg.Batch.Exclude)

	g, err := cfg.ParsedGranularity()
	require.NoError(t, err)
	assert.Equal(t, extract.Method, g)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "format: json\nbatch:\n  workers: 3\n")

	t.Setenv("SRC2ABS_FORMAT", "yaml")
	t.Setenv("SRC2ABS_BATCH_WORKERS", "7")
	t.Setenv("SRC2ABS_NEUTRALIZE_STRINGS", "false")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, 7, cfg.Batch.Workers)
	assert.False(t, cfg.NeutralizeStrings)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "granularity: method\n")

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "method", cfg.Granularity)

	_, err = NewFileLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "granularity: [unclosed\n")

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "granularity: package\n")

	_, err := NewLoader(dir).Load()
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"granularity", func(c *Config) { c.Granularity = "file" }, ErrInvalidGranularity},
		{"format", func(c *Config) { c.Format = "xml" }, ErrInvalidFormat},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }, ErrInvalidWorkers},
		{"bad include", func(c *Config) { c.Batch.Include = []string{"[a-"} }, ErrInvalidPattern},
		{"bad exclude", func(c *Config) { c.Batch.Exclude = []string{"build/[z-"} }, ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Granularity = "file"
	cfg.Batch.Workers = -1

	err := Validate(cfg)
	assert.ErrorIs(t, err, ErrInvalidGranularity)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}
