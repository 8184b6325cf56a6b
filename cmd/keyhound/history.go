package keyhound

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keyhound/keyhound/internal/history"
	"github.com/keyhound/keyhound/internal/patterns"
	"github.com/keyhound/keyhound/internal/report"
	"github.com/keyhound/keyhound/internal/types"
)

var flagRepoPath string

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Scan git history for secrets that were committed and later removed",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagRepoPath, "repo", "r", ".", "path to the git repository")
}

func runHistory(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagRepoPath)

	if !flagJSON {
		fmt.Fprintf(os.Stderr, "Scanning git history of %s...\n", abs)
	}

	res, err := history.Scan(abs, patterns.History())
	if err != nil {
		return err
	}

	doc := report.HistoryDocument{
		Repository:     abs,
		ScanType:       "git_history",
		Summary:        history.Summarize(res.Findings),
		SensitiveFiles: res.SensitiveFiles,
		Findings:       res.Findings,
	}
	outPath, err := report.WriteHistoryResults(abs, doc)
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
	} else {
		report.RenderHistoryFindings(os.Stdout, res.Findings)
		report.RenderSensitivePaths(os.Stdout, res.SensitiveFiles)
		fmt.Fprintf(os.Stdout, "\nScanned %d commits\n", res.CommitsScanned)
		fmt.Fprintf(os.Stdout, "Results written to %s\n", outPath)
	}

	if report.ShouldFail(doc.Summary.SeverityCounts[types.SevCritical]) {
		os.Exit(1)
	}
	return nil
}
