package logsink

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// File appends lines with a timestamp to a log file
type File struct {
	mu sync.Mutex
	f  *os.File
}

// OpenFile opens (or creates) the log file at path
func OpenFile(path string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &File{f: f}, nil
}

// Write appends line to the file. Write errors are ignored
func (f *File) Write(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintf(f.f, "%s %s\n", time.Now().Format(time.RFC3339), line)
}

// Close closes the underlying file
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.Close()
}
