package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyhound/keyhound/internal/types"
)

func TestHashStableAndDistinct(t *testing.T) {
	a := Hash([]byte("content one"))
	b := Hash([]byte("content one"))
	c := Hash([]byte("content two"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
	assert.Equal(t, "0000000000000000", Hash(nil))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	db := DB{Registry: "0123456789abcdef", Entries: map[string]Entry{
		"src/app.go": {
			Hash: Hash([]byte("data")),
			Findings: []types.Finding{{
				File:         "src/app.go",
				Line:         3,
				PatternName:  "Marker",
				Severity:     types.SevHigh,
				MatchedValue: "value",
			}},
		},
		"clean.txt": {Hash: Hash([]byte("clean"))},
	}}
	require.NoError(t, Save(root, db))

	got, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", got.Registry)
	assert.Equal(t, db.Entries["src/app.go"].Hash, got.Entries["src/app.go"].Hash)
	require.Len(t, got.Entries["src/app.go"].Findings, 1)
	assert.Equal(t, "Marker", got.Entries["src/app.go"].Findings[0].PatternName)
	assert.Empty(t, got.Entries["clean.txt"].Findings)
}

func TestLoadMissingIsColdStart(t *testing.T) {
	db, err := Load(t.TempDir())
	assert.Error(t, err)
	assert.NotNil(t, db.Entries)
	assert.Empty(t, db.Entries)
}

func TestCacheLivesUnderGitDirWhenPresent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))

	require.NoError(t, Save(root, DB{Entries: map[string]Entry{}}))

	if _, err := os.Stat(filepath.Join(root, ".git", "keyhound-cache.json")); err != nil {
		t.Fatalf("expected cache under .git: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".keyhound-cache.json")); err == nil {
		t.Fatal("cache should not be written at the root when .git exists")
	}
}
