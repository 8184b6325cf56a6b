// Package history scans version-control history for secrets that were ever
// committed to sensitive files, including files long since deleted. Deleting
// a credentialed file does not remove the exposure; only rotation does.
package history

import (
	"fmt"
	"sort"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/keyhound/keyhound/internal/engine"
	"github.com/keyhound/keyhound/internal/patterns"
	"github.com/keyhound/keyhound/internal/types"
)

// Result is the outcome of one history scan. CommitsScanned counts the
// (file, commit) inspections performed, mirroring the work done rather than
// the findings produced.
type Result struct {
	Findings       []types.HistoryFinding
	SensitiveFiles []string
	CommitsScanned int
}

// Scan opens the repository at repoPath and applies the reduced registry to
// every revision of every sensitive-looking path in history. The repository
// is never mutated. A path that is not a git repository is a fatal input
// error; per-commit failures (file absent, unreadable blob) skip that
// (commit, file) pair and continue.
func Scan(repoPath string, reg patterns.Registry) (Result, error) {
	var res Result

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return res, fmt.Errorf("open repository %s: %w", repoPath, err)
	}
	if reg.Len() == 0 {
		reg = patterns.History()
	}

	paths, err := sensitiveFiles(repo)
	if err != nil {
		return res, fmt.Errorf("traverse history: %w", err)
	}
	res.SensitiveFiles = paths

	for _, path := range paths {
		commits := commitsTouching(repo, path)
		res.CommitsScanned += len(commits)
		for _, c := range commits {
			if hf, ok := scanCommitFile(c, path, reg); ok {
				res.Findings = append(res.Findings, hf)
			}
		}
	}
	return res, nil
}

// sensitiveFiles walks every commit object in the repository — not just the
// current branch tip — and collects the distinct paths that ever matched the
// sensitive-file classifier. The result is sorted for deterministic output.
func sensitiveFiles(repo *git.Repository) ([]string, error) {
	iter, err := repo.CommitObjects()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	seen := map[string]bool{}
	err = iter.ForEach(func(c *object.Commit) error {
		tree, err := c.Tree()
		if err != nil {
			return nil
		}
		_ = tree.Files().ForEach(func(f *object.File) error {
			if IsSensitivePath(f.Name) {
				seen[f.Name] = true
			}
			return nil
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// commitsTouching returns the commits where the blob at path differs from
// every parent (added or modified), newest first.
func commitsTouching(repo *git.Repository, path string) []*object.Commit {
	iter, err := repo.CommitObjects()
	if err != nil {
		return nil
	}
	defer iter.Close()

	var out []*object.Commit
	_ = iter.ForEach(func(c *object.Commit) error {
		cur, ok := blobHash(c, path)
		if !ok {
			return nil
		}
		touched := true
		_ = c.Parents().ForEach(func(p *object.Commit) error {
			if ph, ok := blobHash(p, path); ok && ph == cur {
				touched = false
			}
			return nil
		})
		if touched {
			out = append(out, c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Committer.When.After(out[j].Committer.When)
	})
	return out
}

func blobHash(c *object.Commit, path string) (plumbing.Hash, bool) {
	tree, err := c.Tree()
	if err != nil {
		return plumbing.ZeroHash, false
	}
	entry, err := tree.FindEntry(path)
	if err != nil {
		return plumbing.ZeroHash, false
	}
	return entry.Hash, true
}

// scanCommitFile reads the blob at path in commit c and applies the registry.
// Any failure skips this (commit, file) pair.
func scanCommitFile(c *object.Commit, path string, reg patterns.Registry) (types.HistoryFinding, bool) {
	f, err := c.File(path)
	if err != nil {
		return types.HistoryFinding{}, false
	}
	content, err := f.Contents()
	if err != nil {
		return types.HistoryFinding{}, false
	}

	var secrets []types.Secret
	for _, finding := range engine.ScanContent(path, []byte(content), reg) {
		secrets = append(secrets, types.Secret{
			PatternName:  finding.PatternName,
			Severity:     finding.Severity,
			MatchedValue: finding.MatchedValue,
			Line:         finding.Line,
			LineContent:  finding.LineContent,
		})
	}
	if len(secrets) == 0 {
		return types.HistoryFinding{}, false
	}

	hash := c.Hash.String()
	return types.HistoryFinding{
		CommitHash:     hash[:8],
		CommitHashFull: hash,
		Author:         fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email),
		Date:           c.Author.When.Format(time.RFC3339),
		Message:        trimMessage(c.Message),
		File:           path,
		Secrets:        secrets,
	}, true
}

func trimMessage(msg string) string {
	for len(msg) > 0 && (msg[len(msg)-1] == '\n' || msg[len(msg)-1] == ' ') {
		msg = msg[:len(msg)-1]
	}
	return msg
}

// Summary aggregates history findings for reporting.
type Summary struct {
	TotalFindings   int                    `json:"total_findings"`
	TotalSecrets    int                    `json:"total_secrets"`
	FilesAffected   int                    `json:"files_affected"`
	CommitsAffected int                    `json:"commits_affected"`
	SeverityCounts  map[types.Severity]int `json:"severity_counts"`
}

// Summarize counts findings, secrets, and the distinct files and commits
// affected.
func Summarize(findings []types.HistoryFinding) Summary {
	s := Summary{SeverityCounts: map[types.Severity]int{
		types.SevCritical: 0, types.SevHigh: 0, types.SevMedium: 0, types.SevLow: 0,
	}}
	files := map[string]bool{}
	commits := map[string]bool{}
	for _, f := range findings {
		s.TotalFindings++
		files[f.File] = true
		commits[f.CommitHashFull] = true
		for _, sec := range f.Secrets {
			s.TotalSecrets++
			s.SeverityCounts[sec.Severity]++
		}
	}
	s.FilesAffected = len(files)
	s.CommitsAffected = len(commits)
	return s
}
