package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileWriter appends log lines to a file and rotates it by size or age.
// Rotated files are gzip-compressed and only the newest maxBackups are kept.
type FileWriter struct {
	mu           sync.Mutex
	dir          string
	filename     string
	maxSize      int64
	maxBackups   int
	maxAge       time.Duration
	currentFile  *os.File
	currentSize  int64
	lastRotation time.Time
	now          func() time.Time
	wg           sync.WaitGroup
}

// NewFileWriter opens dir/filename for appending, creating dir if needed.
func NewFileWriter(dir, filename string, maxSizeMB, maxBackups int) (*FileWriter, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	if maxBackups <= 0 {
		maxBackups = 5
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	fw := &FileWriter{
		dir:        dir,
		filename:   filename,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxBackups: maxBackups,
		maxAge:     24 * time.Hour,
		now:        time.Now,
	}
	fw.lastRotation = fw.now()

	if err := fw.openFile(); err != nil {
		return nil, err
	}
	return fw, nil
}

// Path returns the location of the active log file.
func (fw *FileWriter) Path() string {
	return filepath.Join(fw.dir, fw.filename)
}

func (fw *FileWriter) openFile() error {
	f, err := os.OpenFile(fw.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}

	fw.currentFile = f
	fw.currentSize = info.Size()
	return nil
}

func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.currentFile == nil {
		return 0, os.ErrClosed
	}
	if fw.shouldRotate(int64(len(p))) {
		if err := fw.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := fw.currentFile.Write(p)
	fw.currentSize += int64(n)
	return n, err
}

func (fw *FileWriter) shouldRotate(writeSize int64) bool {
	if fw.currentSize == 0 {
		return false
	}
	if fw.currentSize+writeSize > fw.maxSize {
		return true
	}
	return fw.now().Sub(fw.lastRotation) > fw.maxAge
}

func (fw *FileWriter) rotate() error {
	if err := fw.currentFile.Close(); err != nil {
		return fmt.Errorf("close current file: %w", err)
	}

	timestamp := fw.now().Format("20060102-150405.000000000")
	rotated := filepath.Join(fw.dir, fmt.Sprintf("%s.%s", fw.filename, timestamp))
	if err := os.Rename(fw.Path(), rotated); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rename log file: %w", err)
	}

	fw.wg.Add(1)
	go func() {
		defer fw.wg.Done()
		compressFile(rotated)
		fw.cleanup()
	}()

	if err := fw.openFile(); err != nil {
		return err
	}
	fw.lastRotation = fw.now()
	return nil
}

func compressFile(path string) {
	in, err := os.Open(path)
	if err != nil {
		return
	}
	defer in.Close()

	gzPath := path + ".gz"
	out, err := os.Create(gzPath)
	if err != nil {
		return
	}

	gz := gzip.NewWriter(out)
	_, copyErr := io.Copy(gz, in)
	closeErr := gz.Close()
	fileErr := out.Close()
	if copyErr != nil || closeErr != nil || fileErr != nil {
		os.Remove(gzPath)
		return
	}
	os.Remove(path)
}

func (fw *FileWriter) cleanup() {
	matches, err := filepath.Glob(filepath.Join(fw.dir, fw.filename+".*.gz"))
	if err != nil || len(matches) <= fw.maxBackups {
		return
	}
	// Timestamps in the names sort chronologically.
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-fw.maxBackups] {
		os.Remove(path)
	}
}

// Close waits for pending compression and closes the active file.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	f := fw.currentFile
	fw.currentFile = nil
	fw.mu.Unlock()

	fw.wg.Wait()
	if f != nil {
		return f.Close()
	}
	return nil
}
