package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/keyhound/keyhound/internal/cache"
	"github.com/keyhound/keyhound/internal/classify"
	"github.com/keyhound/keyhound/internal/patterns"
	"github.com/keyhound/keyhound/internal/types"
)

// parallelThreshold is the candidate-file count above which the scan fans out
// to the worker pool. Small scans stay sequential to avoid pool overhead.
const parallelThreshold = 10

// Config controls one scan. Registry is injected so tests can use reduced
// rule sets; a zero Registry falls back to the default rules.
type Config struct {
	Root         string
	Registry     patterns.Registry
	Workers      int // 0 = available parallelism minus one
	IncludeGlobs string
	ExcludeGlobs string
	NoCache      bool
	Progress     func()
}

// Result carries the findings plus scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesFound   int
	FilesScanned int
	CacheHits    int
	Duration     time.Duration
}

// fileResult is the output of one worker for one candidate path.
type fileResult struct {
	findings []types.Finding
	hash     string
	scanned  bool
	cacheHit bool
}

// Scan walks the tree once and applies every registry rule to every line of
// every scannable file. A missing root is fatal before any work begins;
// everything after that is best-effort — unreadable files are skipped
// silently and never abort the run. Line order is preserved within a file;
// no ordering is guaranteed across files when running parallel.
func Scan(cfg Config) (Result, error) {
	var res Result

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return res, fmt.Errorf("scan root %s: %w", cfg.Root, err)
	}
	if !info.IsDir() {
		return res, fmt.Errorf("scan root %s is not a directory", cfg.Root)
	}
	if cfg.Registry.Len() == 0 {
		cfg.Registry = patterns.Default()
	}

	fp := cfg.Registry.Fingerprint()
	db := cache.DB{Entries: map[string]cache.Entry{}}
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root)
		// A cache written by a different rule set holds findings the current
		// rules might not produce. Treat all of it as a miss.
		if db.Registry != fp {
			db = cache.DB{Entries: map[string]cache.Entry{}}
		}
	}

	files := collectCandidates(cfg)
	res.FilesFound = len(files)

	started := time.Now()
	results := make([]fileResult, len(files))

	worker := func(i int) {
		results[i] = scanCandidate(cfg, db, files[i])
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}

	if len(files) > parallelThreshold {
		g := new(errgroup.Group)
		g.SetLimit(workerCount(cfg.Workers))
		for i := range files {
			i := i
			g.Go(func() error {
				worker(i)
				return nil
			})
		}
		// Synchronous join; workers never return errors, per-file failures
		// are dropped.
		_ = g.Wait()
	} else {
		for i := range files {
			worker(i)
		}
	}

	next := cache.DB{Registry: fp, Entries: map[string]cache.Entry{}}
	for i, r := range results {
		res.Findings = append(res.Findings, r.findings...)
		if r.scanned {
			res.FilesScanned++
			next.Entries[files[i]] = cache.Entry{Hash: r.hash, Findings: r.findings}
		}
		if r.cacheHit {
			res.CacheHits++
		}
	}
	res.Duration = time.Since(started)

	if !cfg.NoCache {
		_ = cache.Save(cfg.Root, next)
	}
	return res, nil
}

// scanCandidate classifies one path and, when scannable, matches every line
// against the registry. Cached findings are reused when the content hash is
// unchanged since the previous scan.
func scanCandidate(cfg Config, db cache.DB, rel string) fileResult {
	abs := filepath.Join(cfg.Root, filepath.FromSlash(rel))
	if !classify.ShouldScan(abs) {
		return fileResult{}
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return fileResult{}
	}
	h := cache.Hash(data)
	if !cfg.NoCache {
		if entry, ok := db.Entries[rel]; ok && entry.Hash == h {
			return fileResult{findings: entry.Findings, hash: h, scanned: true, cacheHit: true}
		}
	}
	return fileResult{findings: ScanContent(rel, data, cfg.Registry), hash: h, scanned: true}
}

// ScanContent applies the registry to content line by line, emitting one
// finding per (rule, match) pair. Bytes are matched as-is: malformed UTF-8
// never fails a scan. Used both by the filesystem engine and the history
// scanner.
func ScanContent(file string, data []byte, reg patterns.Registry) []types.Finding {
	var out []types.Finding
	for i, line := range strings.Split(string(data), "\n") {
		for _, m := range reg.Match(line) {
			out = append(out, types.Finding{
				File:         file,
				Line:         i + 1,
				PatternName:  m.Rule.Name,
				Severity:     m.Rule.Severity,
				MatchedValue: types.Truncate(m.Value, types.MaxValueLen),
				LineContent:  types.Truncate(strings.TrimSpace(line), types.MaxLineLen),
				Warning:      m.Rule.Warning,
			})
		}
	}
	return out
}

// workerCount sizes the pool to available parallelism minus one, reserving a
// unit for coordination, floor 1.
func workerCount(configured int) int {
	if configured > 0 {
		return configured
	}
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}
