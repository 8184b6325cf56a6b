package engine

import (
	"io/fs"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/keyhound/keyhound/internal/classify"
)

// ownOutputs are files keyhound itself writes into the scanned root. They
// carry copies of matched values, so scanning them would double-report every
// finding on the next run.
var ownOutputs = map[string]bool{
	"secret-scan-results.json":      true,
	"validated-findings.json":       true,
	"secret-scan-report.md":         true,
	"git-history-scan-results.json": true,
	".keyhound-cache.json":          true,
}

// CountTargets returns how many candidate files a scan with cfg would visit.
// The CLI uses it to size the progress bar before scanning starts.
func CountTargets(cfg Config) int {
	return len(collectCandidates(cfg))
}

// collectCandidates enumerates regular files under root, pruning skip-set
// directories before descending into them so huge dependency trees are never
// traversed. Returned paths are slash-separated and relative to root.
// Traversal errors on individual entries are ignored; the walk continues.
func collectCandidates(cfg Config) []string {
	var files []string
	_ = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && classify.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || ownOutputs[d.Name()] {
			return nil
		}
		rel, relErr := filepath.Rel(cfg.Root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	return files
}

// allowedByGlobs applies the optional comma-separated include/exclude globs
// to a slash-relative path. Includes, when present, act as a positive filter;
// excludes are subtracted last. A glob matches against the full relative path
// or its basename.
func allowedByGlobs(relPath string, cfg Config) bool {
	includes := parseGlobList(cfg.IncludeGlobs)
	excludes := parseGlobList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(relPath, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(relPath, excludes) {
		return false
	}
	return true
}

func parseGlobList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchAnyGlob(path string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, path); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}
