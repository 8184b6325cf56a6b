// Package report renders and persists scan output: the JSON documents each
// stage writes into the scanned root, the derived markdown summary, and the
// terminal view.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/keyhound/keyhound/internal/history"
	"github.com/keyhound/keyhound/internal/types"
	"github.com/keyhound/keyhound/internal/validator"
)

// Fixed output filenames, written into the scanned root.
const (
	ScanResultsFile    = "secret-scan-results.json"
	ValidatedFile      = "validated-findings.json"
	MarkdownReportFile = "secret-scan-report.md"
	HistoryResultsFile = "git-history-scan-results.json"
)

// ScanSummary aggregates a scan's findings by severity and pattern.
type ScanSummary struct {
	TotalFindings  int                    `json:"total_findings"`
	SeverityCounts map[types.Severity]int `json:"severity_counts"`
	PatternCounts  map[string]int         `json:"pattern_counts"`
}

// SummarizeScan counts findings per severity and pattern. All five severity
// buckets are always present so consumers can index them unconditionally.
func SummarizeScan(findings []types.Finding) ScanSummary {
	s := ScanSummary{
		TotalFindings: len(findings),
		SeverityCounts: map[types.Severity]int{
			types.SevCritical: 0, types.SevHigh: 0, types.SevMedium: 0,
			types.SevLow: 0, types.SevInfo: 0,
		},
		PatternCounts: map[string]int{},
	}
	for _, f := range findings {
		s.SeverityCounts[f.Severity]++
		s.PatternCounts[f.PatternName]++
	}
	return s
}

// ScanDocument is the persisted output of the scan stage and the input of the
// validation stage.
type ScanDocument struct {
	ScanDirectory string          `json:"scan_directory"`
	Summary       ScanSummary     `json:"summary"`
	Findings      []types.Finding `json:"findings"`
}

// ValidatedDocument extends the scan document with validation output.
type ValidatedDocument struct {
	ScanDirectory     string                `json:"scan_directory"`
	Summary           ScanSummary           `json:"summary"`
	Findings          []types.Finding       `json:"findings"`
	Categorized       validator.Categorized `json:"categorized"`
	ValidationSummary validator.Summary     `json:"validation_summary"`
}

// HistoryDocument is the persisted output of a history scan.
type HistoryDocument struct {
	Repository     string                 `json:"repository"`
	ScanType       string                 `json:"scan_type"`
	Summary        history.Summary        `json:"summary"`
	SensitiveFiles []string               `json:"sensitive_files"`
	Findings       []types.HistoryFinding `json:"findings"`
}

// WriteScanResults persists the scan document into dir and returns its path.
func WriteScanResults(dir string, doc ScanDocument) (string, error) {
	if doc.Findings == nil {
		doc.Findings = []types.Finding{}
	}
	return writeJSON(filepath.Join(dir, ScanResultsFile), doc)
}

// LoadScanResults reads a prior scan document. A missing or malformed file is
// fatal to the validation stage; the caller tells the user to re-run scan.
func LoadScanResults(path string) (ScanDocument, error) {
	var doc ScanDocument
	b, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read scan results: %w", err)
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("parse scan results %s: %w", path, err)
	}
	return doc, nil
}

// WriteValidated persists the validated document next to the scan results.
func WriteValidated(dir string, doc ValidatedDocument) (string, error) {
	if doc.Findings == nil {
		doc.Findings = []types.Finding{}
	}
	return writeJSON(filepath.Join(dir, ValidatedFile), doc)
}

// WriteHistoryResults persists the history document into the repository root.
func WriteHistoryResults(dir string, doc HistoryDocument) (string, error) {
	if doc.Findings == nil {
		doc.Findings = []types.HistoryFinding{}
	}
	if doc.ScanType == "" {
		doc.ScanType = "git_history"
	}
	return writeJSON(filepath.Join(dir, HistoryResultsFile), doc)
}

func writeJSON(path string, v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ShouldFail implements the CI gating contract: a run fails exactly when any
// CRITICAL-severity item remains after the relevant stage.
func ShouldFail(criticalCount int) bool {
	return criticalCount > 0
}
