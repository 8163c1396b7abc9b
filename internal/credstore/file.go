package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File is a durable Store backed by a JSON document on disk. Writes go
// through a temp file and rename so a crash never leaves a torn document.
// The file holds bearer credentials, so it is created 0600.
type File struct {
	mu        sync.Mutex
	path      string
	values    map[string]string
	listeners map[int]func()
	nextSub   int
}

var _ Store = (*File)(nil)

// NewFile opens (or creates) the credential file at path.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("credstore: path is required")
	}

	f := &File{
		path:      path,
		values:    make(map[string]string),
		listeners: make(map[int]func()),
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run; nothing persisted yet.
	case err != nil:
		return nil, fmt.Errorf("credstore: read %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &f.values); err != nil {
			return nil, fmt.Errorf("credstore: parse %s: %w", path, err)
		}
	}

	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	return f.mutate(func() { f.values[key] = value })
}

func (f *File) Remove(key string) error {
	return f.mutate(func() { delete(f.values, key) })
}

func (f *File) Clear() error {
	return f.mutate(func() { f.values = make(map[string]string) })
}

func (f *File) Subscribe(fn func()) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextSub
	f.nextSub++
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *File) mutate(apply func()) error {
	f.mu.Lock()
	apply()
	err := f.flushLocked()
	fns := make([]func(), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	if err != nil {
		return err
	}
	notify(fns)
	return nil
}

func (f *File) flushLocked() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("credstore: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("credstore: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("credstore: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("credstore: write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("credstore: chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credstore: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credstore: rename to %s: %w", f.path, err)
	}
	return nil
}
