package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/keyhound/keyhound/internal/types"
	"github.com/keyhound/keyhound/internal/validator"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func severityLabel(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return red(string(s))
	case types.SevHigh:
		return yellow(string(s))
	case types.SevMedium:
		return cyan(string(s))
	default:
		return gray(string(s))
	}
}

// RenderFindings prints the findings table. Values are masked so full secrets
// do not land in terminal scrollback.
func RenderFindings(w io.Writer, findings []types.Finding) error {
	if len(findings) == 0 {
		fmt.Fprintf(w, "%s No secrets found.\n", green("✓"))
		return nil
	}

	tbl := tablewriter.NewTable(w)
	tbl.Header("SEVERITY", "PATTERN", "LOCATION", "VALUE")
	for _, f := range findings {
		loc := f.File + ":" + strconv.Itoa(f.Line)
		if err := tbl.Append([]string{severityLabel(f.Severity), f.PatternName, loc, maskValue(f.MatchedValue)}); err != nil {
			return err
		}
	}
	return tbl.Render()
}

// RenderSummary prints per-severity totals and the overall count.
func RenderSummary(w io.Writer, sum ScanSummary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Scan Summary:"))
	order := []types.Severity{types.SevCritical, types.SevHigh, types.SevMedium, types.SevLow, types.SevInfo}
	for _, sev := range order {
		n := sum.SeverityCounts[sev]
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "   %s: %d\n", severityLabel(sev), n)
	}
	fmt.Fprintf(w, "   Total: %d\n", sum.TotalFindings)
}

// RenderValidationSummary prints the post-validation severity distribution.
func RenderValidationSummary(w io.Writer, sum validator.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Validation Summary:"))
	fmt.Fprintf(w, "   %s: %d\n", severityLabel(types.SevCritical), sum.Critical)
	fmt.Fprintf(w, "   %s: %d\n", severityLabel(types.SevHigh), sum.High)
	fmt.Fprintf(w, "   %s: %d\n", severityLabel(types.SevMedium), sum.Medium)
	fmt.Fprintf(w, "   %s: %d\n", severityLabel(types.SevLow), sum.Low)
	fmt.Fprintf(w, "   %s: %d\n", severityLabel(types.SevInfo), sum.Info)
	fmt.Fprintf(w, "   Total: %d\n", sum.Total)
}

// RenderHistoryFindings prints one block per commit that introduced secrets.
func RenderHistoryFindings(w io.Writer, findings []types.HistoryFinding) {
	if len(findings) == 0 {
		fmt.Fprintf(w, "%s No secrets found in git history.\n", green("✓"))
		return
	}
	for _, hf := range findings {
		fmt.Fprintf(w, "\n%s %s %s\n", yellow("●"), bold(hf.CommitHash), hf.Message)
		fmt.Fprintf(w, "   Author: %s (%s)\n", hf.Author, hf.Date)
		fmt.Fprintf(w, "   File:   %s\n", cyan(hf.File))
		for _, s := range hf.Secrets {
			fmt.Fprintf(w, "   %s line %d: %s (%s)\n",
				severityLabel(s.Severity), s.Line, s.PatternName, maskValue(s.MatchedValue))
		}
	}
}

// RenderSensitivePaths lists paths that ever existed in history and match a
// sensitive filename.
func RenderSensitivePaths(w io.Writer, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Sensitive files present in history:"))
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	for _, p := range sorted {
		fmt.Fprintf(w, "   %s %s\n", yellow("⚠"), p)
	}
}
