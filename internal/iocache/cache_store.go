package iocache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/schema"
)

// tempPrefix marks in-flight writes so listings can skip them.
const tempPrefix = "."

// FileStore keeps one file per cache key under a root directory.
// The file modification time is the entry's write time.
type FileStore struct {
	root string
}

var _ contract.CacheStore = &FileStore{} // Compile-time check

// NewFileStore creates a FileStore rooted at root, creating the directory if needed.
func NewFileStore(root string) (*FileStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("cache root cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &StorageError{Op: "init", Path: root, Err: err}
	}
	return &FileStore{root: root}, nil
}

// RootExists reports whether the cache root is present on disk.
func RootExists(root string) bool {
	info, err := os.Stat(root)
	return err == nil && info.IsDir()
}

// Root returns the directory holding all entries.
func (s *FileStore) Root() string {
	return s.root
}

// Path returns the on-disk location for a key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.root, EntryFileName(key))
}

// Exists reports whether an entry is present for key.
func (s *FileStore) Exists(key string) bool {
	info, err := os.Stat(s.Path(key))
	return err == nil && info.Mode().IsRegular()
}

// WrittenAt returns the modification time of the entry for key.
func (s *FileStore) WrittenAt(key string) (time.Time, bool) {
	info, err := os.Stat(s.Path(key))
	if err != nil || !info.Mode().IsRegular() {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Read returns the stored blob for key.
func (s *FileStore) Read(key string) ([]byte, error) {
	path := s.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Key: key}
		}
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// Write replaces the entry for key with blob.
// The blob goes to a temp file in the root which is then renamed over the entry,
// so readers never observe a partial entry.
func (s *FileStore) Write(key string, blob []byte) error {
	path := s.Path(key)
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(s.root, tempPrefix+EntryFileName(key)+".tmp-*")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Delete removes the entry for key. A missing entry is not an error.
func (s *FileStore) Delete(key string) error {
	path := s.Path(key)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &StorageError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

// List enumerates all stored entries sorted by name.
// A missing root yields an empty listing.
func (s *FileStore) List() ([]schema.CacheEntryInfo, error) {
	entries := []schema.CacheEntryInfo{}

	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entries, nil
		}
		return nil, &StorageError{Op: "list", Path: s.root, Err: err}
	}

	// os.ReadDir returns entries sorted by filename
	for _, de := range dirEntries {
		if de.IsDir() || strings.HasPrefix(de.Name(), tempPrefix) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// Removed between ReadDir and Info
			continue
		}
		entries = append(entries, schema.CacheEntryInfo{
			Name:      de.Name(),
			SizeBytes: info.Size(),
			WrittenAt: info.ModTime(),
		})
	}
	return entries, nil
}

// PurgeAll removes the root with everything in it and recreates it empty.
// It is safe to retry and succeeds on a missing root.
func (s *FileStore) PurgeAll() error {
	if err := os.RemoveAll(s.root); err != nil {
		return &StorageError{Op: "purge", Path: s.root, Err: err}
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return &StorageError{Op: "purge", Path: s.root, Err: err}
	}
	return nil
}

// Status summarizes the store contents.
func (s *FileStore) Status() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Root: s.root}

	entries, err := s.List()
	if err != nil {
		return status, err
	}

	status.TotalEntries = len(entries)
	for _, e := range entries {
		status.TotalSizeBytes += e.SizeBytes
		if status.NewestEntry.IsZero() || e.WrittenAt.After(status.NewestEntry) {
			status.NewestEntry = e.WrittenAt
		}
		if status.OldestEntry.IsZero() || e.WrittenAt.Before(status.OldestEntry) {
			status.OldestEntry = e.WrittenAt
		}
	}
	return status, nil
}
