// Package core provides a small, stable facade over keyhound's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so other tools can depend on a stable import path without reaching
// into internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: "."}
//	findings, err := core.Scan(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, core.Validate(findings))
package core
