package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/keyhound/keyhound/internal/validator"
)

// Markdown renders the human-readable report for a validated scan. Critical
// findings get full detail, high findings a one-line listing, and remediation
// guidance is appended whenever anything critical remains.
func Markdown(scanned string, cat validator.Categorized, sum validator.Summary) string {
	var b strings.Builder

	b.WriteString("# Secret Scan Report\n\n")
	fmt.Fprintf(&b, "**Scanned directory:** `%s`\n\n", scanned)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Severity | Count |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(&b, "| CRITICAL | %d |\n", sum.Critical)
	fmt.Fprintf(&b, "| HIGH | %d |\n", sum.High)
	fmt.Fprintf(&b, "| MEDIUM | %d |\n", sum.Medium)
	fmt.Fprintf(&b, "| LOW | %d |\n", sum.Low)
	fmt.Fprintf(&b, "| INFO | %d |\n", sum.Info)
	fmt.Fprintf(&b, "| **Total** | **%d** |\n\n", sum.Total)

	if len(cat.Critical) > 0 {
		b.WriteString("## Critical Findings\n\n")
		b.WriteString("These require immediate attention.\n\n")
		for _, f := range cat.Critical {
			fmt.Fprintf(&b, "### %s\n\n", f.PatternName)
			fmt.Fprintf(&b, "- **File:** `%s`\n", f.File)
			fmt.Fprintf(&b, "- **Line:** %d\n", f.Line)
			fmt.Fprintf(&b, "- **Value:** `%s`\n", f.MatchedValue)
			if f.Validation != nil {
				fmt.Fprintf(&b, "- **Entropy:** %.2f\n", f.Validation.Entropy)
				fmt.Fprintf(&b, "- **Confidence:** %s\n", f.Validation.Confidence)
			}
			if f.Warning != "" {
				fmt.Fprintf(&b, "- **Warning:** %s\n", f.Warning)
			}
			b.WriteString("\n")
		}
	}

	if len(cat.High) > 0 {
		b.WriteString("## High Severity Findings\n\n")
		for _, f := range cat.High {
			fmt.Fprintf(&b, "- **%s** in `%s` line %d\n", f.PatternName, f.File, f.Line)
		}
		b.WriteString("\n")
	}

	if len(cat.Critical) > 0 {
		b.WriteString("## Remediation Steps\n\n")
		b.WriteString("1. Rotate every credential listed above immediately.\n")
		b.WriteString("2. Remove the secrets from the affected files and move them to environment variables or a secret manager.\n")
		b.WriteString("3. If any file was ever committed, purge it from git history as well.\n")
		b.WriteString("4. Re-run the scan to confirm the findings are resolved.\n")
	}

	return b.String()
}

// WriteMarkdown renders and persists the report into dir. The scanned argument
// is the directory named in the report header, which can differ from dir when
// results were copied elsewhere before validation.
func WriteMarkdown(dir, scanned string, cat validator.Categorized, sum validator.Summary) (string, error) {
	path := filepath.Join(dir, MarkdownReportFile)
	if err := os.WriteFile(path, []byte(Markdown(scanned, cat, sum)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// maskValue shortens a matched value for terminal display so full secrets are
// not echoed into scrollback.
func maskValue(v string) string {
	if len(v) <= 12 {
		return v
	}
	return v[:8] + "…" + v[len(v)-4:]
}
