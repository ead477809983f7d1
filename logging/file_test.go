package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileWriterAppends(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(dir, "landing.log", 1, 2)
	if err != nil {
		t.Fatalf("new file writer: %v", err)
	}
	logger := New("landing", INFO, fw)
	logger.Info("test", "first", nil)
	logger.Info("test", "second", nil)
	if err := fw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "landing.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", lines, data)
	}
}

func TestFileWriterRotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(dir, "landing.log", 1, 2)
	if err != nil {
		t.Fatalf("new file writer: %v", err)
	}

	chunk := append(bytes.Repeat([]byte("x"), 700*1024), '\n')
	for i := 0; i < 5; i++ {
		if _, err := fw.Write(chunk); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	backups, _ := filepath.Glob(filepath.Join(dir, "landing.log.*.gz"))
	if len(backups) == 0 || len(backups) > 2 {
		t.Fatalf("expected between 1 and 2 compressed backups, got %v", backups)
	}
	if _, err := os.Stat(fw.Path()); err != nil {
		t.Fatalf("expected active log file: %v", err)
	}
}

func TestFileWriterRotatesByAge(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(dir, "landing.log", 1, 2)
	if err != nil {
		t.Fatalf("new file writer: %v", err)
	}
	now := time.Now()
	fw.now = func() time.Time { return now }
	_, _ = fw.Write([]byte("old\n"))

	now = now.Add(25 * time.Hour)
	_, _ = fw.Write([]byte("new\n"))
	if err := fw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, _ := os.ReadFile(fw.Path())
	if string(data) != "new\n" {
		t.Fatalf("expected rotated file to hold only the new line, got %q", data)
	}
}

func TestFileWriterClosed(t *testing.T) {
	fw, err := NewFileWriter(t.TempDir(), "landing.log", 1, 1)
	if err != nil {
		t.Fatalf("new file writer: %v", err)
	}
	_ = fw.Close()
	if _, err := fw.Write([]byte("late\n")); err == nil {
		t.Fatalf("expected write after close to fail")
	}
}
