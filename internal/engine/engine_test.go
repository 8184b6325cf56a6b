package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyhound/keyhound/internal/patterns"
	"github.com/keyhound/keyhound/internal/types"
)

func write(t *testing.T, root, rel string, data string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func testRegistry() patterns.Registry {
	return patterns.New([]patterns.Rule{{
		Name:     "Marker",
		Pattern:  regexp.MustCompile(`MARKER-[0-9]{4}`),
		Severity: types.SevCritical,
	}})
}

func TestScanFindsSecrets(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, ".env", "TOKEN=MARKER-1234\n")
	write(t, dir, "src/app.go", "clean line\nanother MARKER-5678 here\n")
	write(t, dir, "README.md", "nothing to see\n")

	res, err := Scan(Config{Root: dir, Registry: testRegistry(), NoCache: true})
	require.NoError(t, err)

	assert.Equal(t, 3, res.FilesFound)
	assert.Equal(t, 3, res.FilesScanned)
	require.Len(t, res.Findings, 2)

	byFile := map[string]types.Finding{}
	for _, f := range res.Findings {
		byFile[f.File] = f
	}
	assert.Equal(t, 1, byFile[".env"].Line)
	assert.Equal(t, "MARKER-1234", byFile[".env"].MatchedValue)
	assert.Equal(t, 2, byFile["src/app.go"].Line)
	assert.Equal(t, "Marker", byFile["src/app.go"].PatternName)
}

func TestScanMissingRootFails(t *testing.T) {
	_, err := Scan(Config{Root: filepath.Join(t.TempDir(), "nope"), NoCache: true})
	assert.Error(t, err)
}

func TestScanPrunesSkipDirs(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "node_modules/lib/creds.js", "MARKER-0001\n")
	write(t, dir, ".git/config", "MARKER-0002\n")

	res, err := Scan(Config{Root: dir, Registry: testRegistry(), NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, 0, res.FilesFound)
	assert.Empty(t, res.Findings)
}

func TestScanParallelManyFiles(t *testing.T) {
	dir := t.TempDir()
	// more than the sequential threshold so the worker pool path runs
	for i := 0; i < 25; i++ {
		write(t, dir, fmt.Sprintf("f%02d.txt", i), fmt.Sprintf("x MARKER-%04d\n", i))
	}

	res, err := Scan(Config{Root: dir, Registry: testRegistry(), NoCache: true, Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, 25, res.FilesFound)
	assert.Len(t, res.Findings, 25)

	seen := map[string]bool{}
	for _, f := range res.Findings {
		seen[f.File] = true
	}
	assert.Len(t, seen, 25)
}

func TestScanCacheReusesFindings(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.txt", "MARKER-1111\n")
	write(t, dir, "b.txt", "clean\n")

	first, err := Scan(Config{Root: dir, Registry: testRegistry()})
	require.NoError(t, err)
	assert.Equal(t, 0, first.CacheHits)
	require.Len(t, first.Findings, 1)

	second, err := Scan(Config{Root: dir, Registry: testRegistry()})
	require.NoError(t, err)
	assert.Equal(t, 2, second.CacheHits)
	require.Len(t, second.Findings, 1)
	assert.Equal(t, first.Findings[0], second.Findings[0])

	// changed content invalidates only that entry
	write(t, dir, "a.txt", "MARKER-2222\n")
	third, err := Scan(Config{Root: dir, Registry: testRegistry()})
	require.NoError(t, err)
	assert.Equal(t, 1, third.CacheHits)
	require.Len(t, third.Findings, 1)
	assert.Equal(t, "MARKER-2222", third.Findings[0].MatchedValue)
}

func TestScanCacheInvalidatedByRegistryChange(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.txt", "MARKER-1111\n")

	first, err := Scan(Config{Root: dir, Registry: testRegistry()})
	require.NoError(t, err)
	require.Len(t, first.Findings, 1)

	// Same tree, different rule set: the warm cache must not replay the
	// previous rules' findings.
	other := patterns.New([]patterns.Rule{{
		Name:     "Beacon",
		Pattern:  regexp.MustCompile(`BEACON-[0-9]{4}`),
		Severity: types.SevCritical,
	}})
	second, err := Scan(Config{Root: dir, Registry: other})
	require.NoError(t, err)
	assert.Equal(t, 0, second.CacheHits)
	assert.Empty(t, second.Findings)

	// And switching back is a cold start again, not a stale replay.
	third, err := Scan(Config{Root: dir, Registry: testRegistry()})
	require.NoError(t, err)
	assert.Equal(t, 0, third.CacheHits)
	require.Len(t, third.Findings, 1)
	assert.Equal(t, "MARKER-1111", third.Findings[0].MatchedValue)
}

func TestRegistryFingerprint(t *testing.T) {
	a := testRegistry()
	assert.Equal(t, a.Fingerprint(), testRegistry().Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)

	b := patterns.New([]patterns.Rule{{
		Name:     "Marker",
		Pattern:  regexp.MustCompile(`MARKER-[0-9]{5}`),
		Severity: types.SevCritical,
	}})
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestScanGlobFilters(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "app.env", "MARKER-1234\n")
	write(t, dir, "notes.txt", "MARKER-5678\n")

	res, err := Scan(Config{Root: dir, Registry: testRegistry(), NoCache: true, IncludeGlobs: "*.env"})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "app.env", res.Findings[0].File)

	res, err = Scan(Config{Root: dir, Registry: testRegistry(), NoCache: true, ExcludeGlobs: "*.txt"})
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "app.env", res.Findings[0].File)
}

func TestScanSkipsOwnOutputs(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "secret-scan-results.json", `{"findings":[{"matched_value":"MARKER-9999"}]}`)
	write(t, dir, "app.txt", "MARKER-0001\n")

	res, err := Scan(Config{Root: dir, Registry: testRegistry(), NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.FilesFound)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "app.txt", res.Findings[0].File)
}

func TestScanContentTruncatesValues(t *testing.T) {
	reg := patterns.New([]patterns.Rule{{
		Name:     "Long",
		Pattern:  regexp.MustCompile(`LONG[A-Z]{150}`),
		Severity: types.SevHigh,
	}})
	line := "LONG"
	for i := 0; i < 150; i++ {
		line += "A"
	}
	out := ScanContent("x.txt", []byte(line+"\n"), reg)
	require.Len(t, out, 1)
	assert.Len(t, out[0].MatchedValue, types.MaxValueLen)
}

func TestCountTargets(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "one.txt", "a")
	write(t, dir, "sub/two.txt", "b")
	write(t, dir, "node_modules/three.txt", "c")

	assert.Equal(t, 2, CountTargets(Config{Root: dir}))
}
