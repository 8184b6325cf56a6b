package keyhound

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyhound/keyhound/internal/report"
	"github.com/keyhound/keyhound/internal/types"
)

// End-to-end through the cobra command tree. Fixtures deliberately contain
// only non-critical findings: a critical one makes the command exit the
// process, which would kill the test binary.
func TestScanThenValidateCommands(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "settings.txt")
	require.NoError(t, os.WriteFile(cfg,
		[]byte("apiKey: \"k4Jx2pQ9mW8zR4vL7nB5\"\n"), 0644))

	rootCmd.SetArgs([]string{"scan", "-p", dir, "--no-progress", "--no-update-check", "--json"})
	require.NoError(t, rootCmd.Execute())

	resultsPath := filepath.Join(dir, report.ScanResultsFile)
	b, err := os.ReadFile(resultsPath)
	require.NoError(t, err)

	var doc report.ScanDocument
	require.NoError(t, json.Unmarshal(b, &doc))
	require.Len(t, doc.Findings, 1)
	assert.Equal(t, "settings.txt", doc.Findings[0].File)
	assert.Equal(t, "Generic API Key", doc.Findings[0].PatternName)

	rootCmd.SetArgs([]string{"validate", "-p", dir, "--json"})
	require.NoError(t, rootCmd.Execute())

	if _, err := os.Stat(filepath.Join(dir, report.ValidatedFile)); err != nil {
		t.Fatalf("expected validated findings file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, report.MarkdownReportFile)); err != nil {
		t.Fatalf("expected markdown report: %v", err)
	}
}

func TestValidateHonorsConfigThresholds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.txt"),
		[]byte("apiKey: \"k4Jx2pQ9mW8zR4vL7nB5\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".keyhound.yml"),
		[]byte("min_secret_length: 32\n"), 0644))

	rootCmd.SetArgs([]string{"scan", "-p", dir, "--no-progress", "--no-update-check", "--json"})
	require.NoError(t, rootCmd.Execute())
	rootCmd.SetArgs([]string{"validate", "-p", dir, "--json"})
	require.NoError(t, rootCmd.Execute())

	b, err := os.ReadFile(filepath.Join(dir, report.ValidatedFile))
	require.NoError(t, err)
	var vdoc report.ValidatedDocument
	require.NoError(t, json.Unmarshal(b, &vdoc))

	// the 20-char value is below the configured floor and must be downgraded
	require.Len(t, vdoc.Findings, 1)
	assert.Equal(t, types.SevInfo, vdoc.Findings[0].Severity)
	assert.Equal(t, 20, vdoc.Findings[0].Validation.ValueLength)
}

func TestCIInitUnknownProvider(t *testing.T) {
	rootCmd.SetArgs([]string{"ci", "init", "--provider", "circleci"})
	assert.Error(t, rootCmd.Execute())
}
