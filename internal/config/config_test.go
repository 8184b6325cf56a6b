package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "keyhound.yml")
	require.NoError(t, os.WriteFile(p, []byte(
		"include: \"**/*.env\"\nworkers: 4\nno_cache: true\nentropy_threshold: 4.0\n"), 0644))

	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, cfg.Include)
	assert.Equal(t, "**/*.env", *cfg.Include)
	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 4, *cfg.Workers)
	require.NotNil(t, cfg.NoCache)
	assert.True(t, *cfg.NoCache)
	require.NotNil(t, cfg.EntropyThreshold)
	assert.Equal(t, 4.0, *cfg.EntropyThreshold)
	assert.Nil(t, cfg.Exclude)
}

func TestLoadLocalVariants(t *testing.T) {
	for _, name := range []string{".keyhound.yml", ".keyhound.yaml", "keyhound.yml", "keyhound.yaml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("workers: 2\n"), 0644))

			cfg, err := LoadLocal(dir)
			require.NoError(t, err)
			require.NotNil(t, cfg.Workers)
			assert.Equal(t, 2, *cfg.Workers)
		})
	}
}

func TestLoadLocalMissing(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.Error(t, err)
}

func TestLoadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".keyhound.yml")
	require.NoError(t, os.WriteFile(p, []byte(":\n  - not yaml"), 0644))
	_, err := LoadFile(p)
	assert.Error(t, err)
}

func TestMergeLocalWins(t *testing.T) {
	gInclude, gWorkers := "**/*.go", 8
	lWorkers := 2
	global := FileConfig{Include: &gInclude, Workers: &gWorkers}
	local := FileConfig{Workers: &lWorkers}

	got := Merge(global, local)
	require.NotNil(t, got.Include)
	assert.Equal(t, "**/*.go", *got.Include)
	require.NotNil(t, got.Workers)
	assert.Equal(t, 2, *got.Workers)
}
