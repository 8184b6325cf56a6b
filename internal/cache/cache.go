// Package cache stores per-file scan results keyed by content hash so repeat
// scans can reuse findings for unchanged files without losing completeness.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/keyhound/keyhound/internal/types"
)

// Entry is the cached result for one file at one content hash.
type Entry struct {
	Hash     string          `json:"hash"`
	Findings []types.Finding `json:"findings"`
}

// DB maps root-relative paths to their cached entries. Registry is the
// fingerprint of the rule set that produced them; entries are only valid for
// scans using the same rule set.
type DB struct {
	Registry string           `json:"registry"`
	Entries  map[string]Entry `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing under .git to avoid accidental commits.
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "keyhound-cache.json")
	}
	return filepath.Join(root, ".keyhound-cache.json")
}

// Load reads the cache for root. A missing or corrupt cache yields an empty
// DB and the underlying error; callers treat that as a cold start.
func Load(root string) (DB, error) {
	var db DB
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

// Save writes the cache for root.
func Save(root string, db DB) error {
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(defaultPath(root), b, 0o644)
}

// Hash returns a short stable content hash.
func Hash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
