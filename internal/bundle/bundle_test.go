package bundle

import (
	"archive/tar"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func seedWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"claude-flow.config.json": `{"metadata": {"version": "2.0.0-alpha.86"}}`,
		"agents/coder.json":       `{"id": "coder"}`,
		"agents/queen.json":       `{"id": "queen"}`,
		"workflows/minimal.json":  `{"name": "minimal"}`,
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	// Empty directories survive the round trip too.
	if err := os.MkdirAll(filepath.Join(root, "sessions"), 0o755); err != nil {
		t.Fatalf("mkdir sessions: %v", err)
	}
	return root
}

func TestBackupRestoreRoundTrip(t *testing.T) {
	root := seedWorkspace(t)
	archive := filepath.Join(t.TempDir(), "workspace.tar.zst")

	sum, err := Backup(root, archive)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if sum.Files != 4 {
		t.Errorf("expected 4 files archived, got %d", sum.Files)
	}

	target := t.TempDir()
	rsum, err := Restore(archive, target, false)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if rsum.Files != 4 {
		t.Errorf("expected 4 files restored, got %d", rsum.Files)
	}

	data, err := os.ReadFile(filepath.Join(target, "agents", "coder.json"))
	if err != nil {
		t.Fatalf("read restored file: %v", err)
	}
	if string(data) != `{"id": "coder"}` {
		t.Errorf("unexpected restored content: %s", data)
	}

	info, err := os.Stat(filepath.Join(target, "sessions"))
	if err != nil || !info.IsDir() {
		t.Errorf("expected sessions directory restored: %v", err)
	}
}

func TestBackupSkipsArchiveInsideRoot(t *testing.T) {
	root := seedWorkspace(t)
	archive := filepath.Join(root, "backup.tar.zst")

	sum, err := Backup(root, archive)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if sum.Files != 4 {
		t.Errorf("expected the archive itself skipped, got %d files", sum.Files)
	}
}

func TestRestoreRefusesOverwrite(t *testing.T) {
	root := seedWorkspace(t)
	archive := filepath.Join(t.TempDir(), "workspace.tar.zst")
	if _, err := Backup(root, archive); err != nil {
		t.Fatalf("backup: %v", err)
	}

	target := t.TempDir()
	existing := filepath.Join(target, "agents", "coder.json")
	if err := os.MkdirAll(filepath.Dir(existing), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(existing, []byte("precious"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	_, err := Restore(archive, target, false)
	if err == nil {
		t.Fatal("expected an error without -overwrite")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected collision error, got %v", err)
	}

	data, _ := os.ReadFile(existing)
	if string(data) != "precious" {
		t.Error("expected existing file untouched after refused restore")
	}

	if _, err := Restore(archive, target, true); err != nil {
		t.Fatalf("restore with overwrite: %v", err)
	}
	data, _ = os.ReadFile(existing)
	if string(data) != `{"id": "coder"}` {
		t.Errorf("expected overwrite, got %s", data)
	}
}

func TestRestoreRejectsTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.tar.zst")

	f, err := os.Create(archive)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	tw := tar.NewWriter(zw)
	content := []byte("pwned")
	if err := tw.WriteHeader(&tar.Header{
		Name: "../escape.txt", Mode: 0o644, Size: int64(len(content)), Typeflag: tar.TypeReg,
	}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zstd: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	if _, err := Restore(archive, t.TempDir(), true); err == nil {
		t.Fatal("expected a traversal error")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 bytes"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
