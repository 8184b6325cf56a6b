package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSkipDir(t *testing.T) {
	for _, name := range []string{"node_modules", ".git", "dist", "__pycache__", "vendor"} {
		if !SkipDir(name) {
			t.Errorf("expected %q to be skipped", name)
		}
	}
	for _, name := range []string{"src", "internal", "app"} {
		if SkipDir(name) {
			t.Errorf("did not expect %q to be skipped", name)
		}
	}
}

func TestShouldScanTextFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "app.env")
	write(t, p, []byte("API_KEY=value\n"))
	if !ShouldScan(p) {
		t.Fatal("plain text file should be scannable")
	}
}

func TestShouldScanRejectsBinaryContent(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "blob.dat2")
	write(t, p, []byte{'h', 'e', 0x00, 'l', 'o'})
	if ShouldScan(p) {
		t.Fatal("file with NUL in first bytes should be rejected")
	}
}

func TestShouldScanRejectsByExtension(t *testing.T) {
	dir := t.TempDir()
	// content is text, but the extension alone disqualifies it
	p := filepath.Join(dir, "logo.PNG")
	write(t, p, []byte("plain text"))
	if ShouldScan(p) {
		t.Fatal("binary extension should be rejected before content is read")
	}
}

func TestShouldScanRejectsSkipDirAncestor(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "node_modules", "pkg", "index.js")
	write(t, p, []byte("const x = 1\n"))
	if ShouldScan(p) {
		t.Fatal("file under node_modules should be rejected")
	}
}

func TestShouldScanRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "huge.txt")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	// sparse file over the limit without writing 10 MiB of data
	if err := f.Truncate(MaxFileSize + 1); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if ShouldScan(p) {
		t.Fatal("file over the size cap should be rejected")
	}
}

func TestShouldScanMissingFile(t *testing.T) {
	if ShouldScan(filepath.Join(t.TempDir(), "absent.txt")) {
		t.Fatal("unreadable file should be rejected")
	}
}
