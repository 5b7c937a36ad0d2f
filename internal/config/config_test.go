package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	osfind "github.com/wafemand/os-find"
)

func pointer[T any](v T) *T {
	return &v
}

func TestNewConfig_WithNilOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(nil)

	require.NotNil(t, cfg)
	assert.Equal(t, NewDefaultConfig(), cfg, "must use default values when no config provided")
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_WithAllOverride(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{
		Verbose:    pointer(4),
		Backend:    pointer("portable"),
		BufferSize: pointer(8192),
		Strict:     pointer(true),
	})

	assert.Equal(t, &Config{Verbose: 4, Backend: "portable", BufferSize: 8192, Strict: true}, cfg)
}

func TestConfig_Merge_KeepsUnsetFields(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Merge(&ConfigOverride{Strict: pointer(true)})

	assert.True(t, cfg.Strict)
	assert.Equal(t, DefaultBackend, cfg.Backend)
	assert.Equal(t, DefaultBufferSize, cfg.BufferSize)
	assert.Equal(t, DefaultVerbose, cfg.Verbose)
}

func TestConfig_Merge_ClampsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero_clamped_to_1", 0, 1},
		{"in_range", 3, 3},
		{"large_clamped_to_5", 100, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(&ConfigOverride{Verbose: pointer(tt.in)})
			assert.Equal(t, tt.want, cfg.Verbose)
		})
	}
}

func TestConfig_Validate_RejectsBadValues(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{Backend: pointer("turbo")})
	require.Error(t, cfg.Validate())

	_, err := cfg.WalkOptions()
	require.Error(t, err)

	cfg = NewConfig(&ConfigOverride{BufferSize: pointer(-1)})
	require.Error(t, cfg.Validate())
}

func TestConfig_WalkOptions_BuildsReader(t *testing.T) {
	t.Parallel()

	cfg := NewConfig(&ConfigOverride{Backend: pointer("portable"), BufferSize: pointer(4096)})

	opts, err := cfg.WalkOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
	assert.NotNil(t, osfind.NewReader(opts...))
}

func TestLoadConfigOverrideFile_Formats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "find.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("backend: portable\nstrict: true\n"), 0o600))

	jsonPath := filepath.Join(dir, "find.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"verbose": 5, "buffer_size": 2048}`), 0o600))

	override, err := LoadConfigOverrideFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "portable", *override.Backend)
	assert.True(t, *override.Strict)
	assert.Nil(t, override.Verbose)

	cfg, err := NewConfigFromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Verbose)
	assert.Equal(t, 2048, cfg.BufferSize)
	assert.Equal(t, DefaultBackend, cfg.Backend)
}

func TestLoadConfigOverrideFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadConfigOverrideFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	tomlPath := filepath.Join(dir, "find.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("x = 1"), 0o600))

	_, err = LoadConfigOverrideFile(tomlPath)
	require.ErrorContains(t, err, "unknown config file extension")

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{"), 0o600))

	_, err = LoadConfigOverrideFile(badPath)
	require.ErrorContains(t, err, "failed to unmarshal")
}
