// Package update implements the lightweight release check used to notify the
// user when a newer keyhound version is available.
package update

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	releasesURL  = "https://api.github.com/repos/keyhound/keyhound/releases/latest"
	checkEvery   = 24 * time.Hour
	requestLimit = 2 * time.Second
)

type checkState struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
}

// Check returns the latest published version and whether it is newer than
// current. Results are cached for a day; the check is skipped entirely in CI
// or when noNetwork is set.
func Check(current string, noNetwork bool) (string, bool, error) {
	if os.Getenv("CI") != "" || noNetwork {
		return "", false, nil
	}
	current = strings.TrimPrefix(strings.TrimSpace(current), "v")

	state := readState()
	if state.Latest == "" || time.Since(state.LastChecked) > checkEvery {
		if v, err := fetchLatest(); err == nil {
			state.Latest = strings.TrimPrefix(v, "v")
			state.LastChecked = time.Now()
			writeState(state)
		}
	}
	if state.Latest == "" || current == "" {
		return state.Latest, false, nil
	}
	return state.Latest, versionLess(current, state.Latest), nil
}

func fetchLatest() (string, error) {
	client := &http.Client{Timeout: requestLimit}
	req, _ := http.NewRequest(http.MethodGet, releasesURL, nil)
	req.Header.Set("User-Agent", "keyhound-updater")
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var rel struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", err
	}
	if rel.TagName != "" {
		return rel.TagName, nil
	}
	return rel.Name, nil
}

func statePath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "keyhound", "update.json")
}

func readState() checkState {
	var s checkState
	p := statePath()
	if p == "" {
		return s
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return s
	}
	_ = json.Unmarshal(b, &s)
	return s
}

func writeState(s checkState) {
	p := statePath()
	if p == "" {
		return
	}
	_ = os.MkdirAll(filepath.Dir(p), 0755)
	b, _ := json.MarshalIndent(s, "", "  ")
	_ = os.WriteFile(p, b, 0644)
}

// versionLess reports whether a < b comparing dot-separated numeric parts.
func versionLess(a, b string) bool {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := max(len(as), len(bs))
	for i := 0; i < n; i++ {
		ai, bi := 0, 0
		if i < len(as) {
			ai = leadingInt(as[i])
		}
		if i < len(bs) {
			bi = leadingInt(bs[i])
		}
		if ai != bi {
			return ai < bi
		}
	}
	return false
}

func leadingInt(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	v, _ := strconv.Atoi(s[:i])
	return v
}
