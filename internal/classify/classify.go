// Package classify decides whether a path is worth scanning. It is a pure
// predicate with no shared state, safe to call from any number of workers.
package classify

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// sniffBytes is how much of a file is read when checking for NUL bytes.
	sniffBytes = 8 * 1024
	// MaxFileSize is the upper bound for scannable files. Anything larger is
	// assumed generated or binary and skipped whole, never partially scanned.
	MaxFileSize = 10 * 1024 * 1024
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"bin":          true,
	"obj":          true,
	"dist":         true,
	"build":        true,
	".next":        true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"vendor":       true,
	"packages":     true,
	".vercel":      true,
	".nuxt":        true,
	".cache":       true,
	"coverage":     true,
}

var skipExtensions = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true, ".dat": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".ico": true,
	".pdf": true, ".zip": true, ".tar": true, ".gz": true, ".rar": true, ".7z": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
}

// SkipDir reports whether a directory name belongs to the skip set
// (version-control internals, dependency and build output, caches). The
// walker uses this to prune whole subtrees before descending.
func SkipDir(name string) bool {
	return skipDirs[name]
}

// ShouldScan reports whether path is a scannable text file. Checks run in
// fixed precedence: skip-set ancestors, binary extension, NUL sniff, size
// cap. Any read failure rejects the file (fail-safe exclude).
func ShouldScan(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if skipDirs[part] {
			return false
		}
	}
	if skipExtensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	if isBinary(path) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() > MaxFileSize {
		return false
	}
	return true
}

// isBinary checks the first 8 KiB for a NUL byte. Unreadable files count as
// binary.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()
	buf := make([]byte, sniffBytes)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}
	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return true
		}
	}
	return false
}
