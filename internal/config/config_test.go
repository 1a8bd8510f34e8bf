package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tnorm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  read_timeout: 3s
normalizer:
  tagger_set: full
  deterministic: false
  cache_dir: /var/cache/tnorm
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "full", cfg.Normalizer.TaggerSet)
	assert.False(t, cfg.Normalizer.Deterministic)
	assert.Equal(t, "/var/cache/tnorm", cfg.Normalizer.CacheDir)
	// untouched keys keep their defaults
	assert.Equal(t, Default().Stream, cfg.Stream)
	assert.Equal(t, "default", cfg.Normalizer.Preprocessor)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("normalizer:\n  tagger_set: huge\nstream:\n  batch_size: 0\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tagger_set")
	assert.Contains(t, err.Error(), "batch_size")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tnorm.yaml")
	cfg := Default()
	cfg.Normalizer.TaggerSet = "full"
	cfg.Stream.Workers = 3
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
