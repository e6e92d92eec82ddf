package fs

import (
	"errors"
	"sync"
)

// ErrInjected is returned by FaultyFS when a Fault has no Err of its own.
var ErrInjected = errors.New("injected fault")

// Fault describes which operations of a FaultyFS fail.
type Fault struct {
	FailAfterBytes int64 // Fail writes past this many bytes per file; -1 disables
	FailOnCreate   bool
	FailOnSync     bool
	FailOnRename   bool
	Err            error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyFS wraps a FileSystem and injects the configured Fault.
type FaultyFS struct {
	FS FileSystem

	mu      sync.Mutex
	fault   Fault
	created []string
	removed []string
}

// NewFaultyFS wraps fs, or Default if fs is nil. No faults are active.
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{FS: fs, fault: Fault{FailAfterBytes: -1}}
}

// SetFault replaces the active fault.
func (f *FaultyFS) SetFault(fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fault = fault
}

func (f *FaultyFS) current() Fault {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fault
}

// Created returns the names of all temp files created so far.
func (f *FaultyFS) Created() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.created...)
}

// Removed returns the names passed to Remove so far.
func (f *FaultyFS) Removed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}

func (f *FaultyFS) CreateTemp(dir, pattern string) (File, error) {
	fault := f.current()
	if fault.FailOnCreate {
		return nil, fault.err()
	}
	file, err := f.FS.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.created = append(f.created, file.Name())
	f.mu.Unlock()

	return &faultyFile{File: file, fault: fault}, nil
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if fault := f.current(); fault.FailOnRename {
		return fault.err()
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Remove(name string) error {
	f.mu.Lock()
	f.removed = append(f.removed, name)
	f.mu.Unlock()
	return f.FS.Remove(name)
}

func (f *FaultyFS) SyncDir(dir string) error {
	return f.FS.SyncDir(dir)
}

type faultyFile struct {
	File
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if limit := ff.fault.FailAfterBytes; limit >= 0 && ff.written+int64(len(p)) > limit {
		// Short write up to the limit, like a full disk.
		n, _ := ff.File.Write(p[:limit-ff.written])
		ff.written += int64(n)
		return n, ff.fault.err()
	}
	n, err := ff.File.Write(p)
	ff.written += int64(n)
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return ff.fault.err()
	}
	return ff.File.Sync()
}
