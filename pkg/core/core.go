package core

import (
	"github.com/keyhound/keyhound/internal/engine"
	"github.com/keyhound/keyhound/internal/history"
	"github.com/keyhound/keyhound/internal/patterns"
	"github.com/keyhound/keyhound/internal/types"
	"github.com/keyhound/keyhound/internal/validator"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Finding = types.Finding
type HistoryFinding = types.HistoryFinding

// Scan walks the configured root and returns every finding.
func Scan(cfg Config) ([]Finding, error) {
	res, err := engine.Scan(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// Validate re-grades raw findings with the placeholder, context, and entropy
// heuristics. The input slice is not modified.
func Validate(findings []Finding) []Finding {
	return validator.Validate(findings)
}

// ScanHistory inspects every reachable commit of the repository at path and
// returns findings for secrets introduced anywhere in its history.
func ScanHistory(path string) ([]HistoryFinding, error) {
	res, err := history.Scan(path, patterns.History())
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}
