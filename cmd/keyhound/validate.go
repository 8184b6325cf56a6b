package keyhound

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/keyhound/keyhound/internal/report"
	"github.com/keyhound/keyhound/internal/validator"
)

var flagValidatePath string

func init() {
	cmd := &cobra.Command{
		Use:   "validate [scan-results.json]",
		Short: "Triage scan results and produce the markdown report",
		Long:  "Validate re-grades the findings from a previous scan using placeholder detection, file context, and Shannon entropy, then writes the validated JSON and a markdown report. With no argument it reads " + report.ScanResultsFile + " from --path.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runValidate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagValidatePath, "path", "p", ".", "directory holding the scan results")
}

func runValidate(_ *cobra.Command, args []string) error {
	input := filepath.Join(flagValidatePath, report.ScanResultsFile)
	if len(args) == 1 {
		input = args[0]
	}
	input, _ = filepath.Abs(input)
	abs := filepath.Dir(input)

	doc, err := report.LoadScanResults(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\nrun 'keyhound scan' first\n", err)
		os.Exit(1)
	}

	fc := loadFileConfig(abs)
	if !flagNoColor && fc.NoColor != nil && *fc.NoColor {
		color.NoColor = true
	}
	opts := validator.DefaultOptions()
	if fc.EntropyThreshold != nil {
		opts.EntropyThreshold = *fc.EntropyThreshold
	}
	if fc.MinSecretLength != nil {
		opts.MinSecretLength = *fc.MinSecretLength
	}

	validated := validator.ValidateWith(doc.Findings, opts)
	cat := validator.Categorize(validated)
	sum := validator.Summarize(cat)

	vdoc := report.ValidatedDocument{
		ScanDirectory:     doc.ScanDirectory,
		Summary:           report.SummarizeScan(validated),
		Findings:          validated,
		Categorized:       cat,
		ValidationSummary: sum,
	}
	jsonPath, err := report.WriteValidated(abs, vdoc)
	if err != nil {
		return fmt.Errorf("write validated findings: %w", err)
	}
	mdPath, err := report.WriteMarkdown(abs, doc.ScanDirectory, cat, sum)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(vdoc); err != nil {
			return err
		}
	} else {
		report.RenderValidationSummary(os.Stdout, sum)
		fmt.Fprintf(os.Stdout, "\nValidated findings written to %s\n", jsonPath)
		fmt.Fprintf(os.Stdout, "Report written to %s\n", mdPath)
	}

	if report.ShouldFail(sum.Critical) {
		os.Exit(1)
	}
	return nil
}
