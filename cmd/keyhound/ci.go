package keyhound

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(_ *cobra.Command, _ []string) error {
			var path string
			var content string
			switch provider {
			case "github":
				path = ".github/workflows/keyhound.yml"
				content = `name: keyhound
on: [push, pull_request]
jobs:
  scan:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
        with:
          fetch-depth: 0
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go install github.com/keyhound/keyhound@latest
      - run: keyhound scan --no-progress
      - run: keyhound validate
      - run: keyhound history
      - uses: actions/upload-artifact@v4
        if: always()
        with:
          name: keyhound-results
          path: |
            secret-scan-results.json
            validated-findings.json
            secret-scan-report.md
            git-history-scan-results.json
`
			case "gitlab":
				path = ".gitlab-ci.yml"
				content = `stages: [scan]
scan:
  stage: scan
  image: golang:1.25
  script:
    - go install github.com/keyhound/keyhound@latest
    - keyhound scan --no-progress
    - keyhound validate
  artifacts:
    when: always
    paths:
      - secret-scan-results.json
      - validated-findings.json
      - secret-scan-report.md
`
			case "azure":
				path = "azure-pipelines.yml"
				content = `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- task: GoTool@0
  inputs:
    version: '1.25.x'
- script: |
    go install github.com/keyhound/keyhound@latest
    keyhound scan --no-progress
    keyhound validate
  displayName: 'Keyhound Scan'
- publish: validated-findings.json
  artifact: keyhound-findings
  condition: succeededOrFailed()
`
			default:
				return fmt.Errorf("unknown --provider. Supported: github, gitlab, azure")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
			fmt.Println("Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: github | gitlab | azure")
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}
