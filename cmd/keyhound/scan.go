package keyhound

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/keyhound/keyhound/internal/engine"
	"github.com/keyhound/keyhound/internal/report"
	"github.com/keyhound/keyhound/internal/types"
	"github.com/keyhound/keyhound/internal/update"
)

var (
	flagScanPath   string
	flagInclude    string
	flagExclude    string
	flagWorkers    int
	flagNoCache    bool
	flagNoProgress bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a directory tree for hardcoded secrets",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagScanPath, "path", "p", ".", "directory to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "worker count (0 = CPUs minus one)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable the incremental scan cache")
	cmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "disable the progress bar")
}

func runScan(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagScanPath)

	// Config precedence: CLI > local file > global file.
	fc := loadFileConfig(abs)
	if !flagNoColor && fc.NoColor != nil && *fc.NoColor {
		color.NoColor = true
	}

	cfg := engine.Config{
		Root:         abs,
		IncludeGlobs: pickString(flagInclude, fc.Include),
		ExcludeGlobs: pickString(flagExclude, fc.Exclude),
		Workers:      pickInt(flagWorkers, fc.Workers),
		NoCache:      pickBool(flagNoCache, fc.NoCache),
	}

	if !flagJSON {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'keyhound update' to upgrade\n", latest)
			}
		}
		fmt.Fprintf(os.Stderr, "Scanning %s...\n", abs)
	}

	progressWanted := !flagNoProgress && (fc.Progress == nil || *fc.Progress)
	if !flagJSON && progressWanted {
		if total := engine.CountTargets(cfg); total > 0 {
			bar := progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("scanning"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			cfg.Progress = func() { _ = bar.Add(1) }
		}
	}

	res, err := engine.Scan(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	doc := report.ScanDocument{
		ScanDirectory: abs,
		Summary:       report.SummarizeScan(res.Findings),
		Findings:      res.Findings,
	}
	outPath, err := report.WriteScanResults(abs, doc)
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
		if err := report.RenderFindings(os.Stdout, res.Findings); err != nil {
			return err
		}
		report.RenderSummary(os.Stdout, doc.Summary)
		fmt.Fprintf(os.Stdout, "\nScanned %d of %d files in %s (%d cache hits)\n",
			res.FilesScanned, res.FilesFound, res.Duration.Round(time.Millisecond), res.CacheHits)
		fmt.Fprintf(os.Stdout, "Results written to %s\n", outPath)
	}

	if report.ShouldFail(doc.Summary.SeverityCounts[types.SevCritical]) {
		os.Exit(1)
	}
	return nil
}
