package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5, cfg.MaxChainDepth)
	assert.Equal(t, 10, cfg.MaxDirectDeps)
	assert.Equal(t, 5, cfg.TreeDepth)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_chain_depth: 3\n"), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxChainDepth)
	// Unset fields fall back to defaults
	assert.Equal(t, 10, cfg.MaxDirectDeps)
	assert.Equal(t, 5, cfg.TreeDepth)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_chain_depth: [broken\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestNormalize_RejectsNonsense(t *testing.T) {
	cfg := Config{MaxChainDepth: -1, MaxDirectDeps: 0, TreeDepth: -5}
	cfg.Normalize()
	assert.Equal(t, Default(), cfg)
}
