// Package history records generator runs so earlier output can be audited:
// when a set was written, where, and the checksum of every file.
package history

import (
	"fmt"
	"time"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// FileRecord is one icon written by a run.
type FileRecord struct {
	Name   string
	Size   int // edge length in pixels
	Bytes  int
	SHA256 string
}

// Run is one generator invocation. Err is empty for a successful run.
type Run struct {
	Time      time.Time
	OutputDir string
	Files     []FileRecord
	Elapsed   time.Duration
	Err       string
}

// OK reports whether the run succeeded.
func (r Run) OK() bool { return r.Err == "" }

// Status is "ok" or "failed".
func (r Run) Status() string {
	if r.OK() {
		return "ok"
	}
	return "failed"
}

// Bytes is the total size of the files written.
func (r Run) Bytes() int {
	n := 0
	for _, f := range r.Files {
		n += f.Bytes
	}
	return n
}

// Store abstracts run history storage.
type Store interface {
	Log(r Run) error
	Runs(limit int) ([]Run, error) // newest first, 0 = all
	Clear() error
	Path() string
	Close() error
}

// Open returns the store for the given backend.
func Open(storage, path string) (Store, error) {
	switch storage {
	case StorageSQLite, "":
		return NewSQLiteStore(path)
	case StorageFile:
		return NewFileStore(path), nil
	}
	return nil, fmt.Errorf("history: unknown storage %q", storage)
}
