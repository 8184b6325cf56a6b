package keyhound

import (
	"runtime/debug"

	semver3 "github.com/blang/semver"
	semver "github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/keyhound/keyhound/internal/config"
)

// loadFileConfig merges the global config file with any repo-local one under
// root. Local keys win; CLI flags are layered on top by the caller.
func loadFileConfig(root string) config.FileConfig {
	var global, local config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		local = c
	}
	return config.Merge(global, local)
}

func selfUpdate() error {
	v := version
	// Use build info if tag overridden at build-time
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(v) == 0 {
				v = s.Value
			}
		}
	}
	// parse semantic version (strip leading v)
	ver, err := semver.ParseTolerant(v)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	latest, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), "keyhound/keyhound")
	if err != nil {
		return err
	}
	_ = latest
	return nil
}

func pickString(cli string, file *string) string {
	if cli != "" {
		return cli
	}
	if file != nil {
		return *file
	}
	return ""
}

func pickInt(cli int, file *int) int {
	if cli != 0 {
		return cli
	}
	if file != nil {
		return *file
	}
	return 0
}

func pickBool(cli bool, file *bool) bool {
	if cli {
		return true
	}
	if file != nil {
		return *file
	}
	return false
}
