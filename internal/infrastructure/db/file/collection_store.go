// Package file stores each collection as a JSON document on local disk,
// using the directory layout of existing portal data folders:
//
//	<root>/users/userdata.json
//	<root>/blacklists/blacklists.json
//	<root>/<name>/<name>.json   (everything else)
//
// Versions are tracked in memory, so a single process must own the root.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/duckcorp/portal/internal/core/ports"
)

var legacyPaths = map[string]string{
	"users":     filepath.Join("users", "userdata.json"),
	"blacklist": filepath.Join("blacklists", "blacklists.json"),
}

// CollectionStore implements ports.CollectionStore on the filesystem.
type CollectionStore struct {
	root     string
	mu       sync.Mutex
	versions map[string]int64
}

// NewCollectionStore creates the root directory if needed.
func NewCollectionStore(root string) (*CollectionStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", root, err)
	}
	return &CollectionStore{root: root, versions: make(map[string]int64)}, nil
}

func (s *CollectionStore) Load(_ context.Context, name string) (ports.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		delete(s.versions, name)
		return ports.Record{}, ports.ErrCollectionNotFound
	}
	if err != nil {
		return ports.Record{}, fmt.Errorf("reading collection %s: %w", name, err)
	}

	version, err := s.currentVersion(name)
	if err != nil {
		return ports.Record{}, err
	}
	return ports.Record{Data: data, Version: version}, nil
}

func (s *CollectionStore) Save(_ context.Context, name string, data []byte, expected int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.currentVersion(name)
	if err != nil {
		return 0, err
	}
	if current != expected {
		return 0, ports.ErrVersionConflict
	}

	if err := s.writeFile(s.path(name), data); err != nil {
		return 0, err
	}
	s.versions[name] = current + 1
	return current + 1, nil
}

// Ping checks that the root directory is still reachable.
func (s *CollectionStore) Ping(context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.root)
	}
	return nil
}

// currentVersion returns the in-memory version of name. A file written before
// this process started counts as version 1. Callers hold s.mu.
func (s *CollectionStore) currentVersion(name string) (int64, error) {
	_, err := os.Stat(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		delete(s.versions, name)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stat collection %s: %w", name, err)
	}

	v, ok := s.versions[name]
	if !ok {
		v = 1
		s.versions[name] = v
	}
	return v, nil
}

func (s *CollectionStore) path(name string) string {
	if p, ok := legacyPaths[name]; ok {
		return filepath.Join(s.root, p)
	}
	return filepath.Join(s.root, name, name+".json")
}

// writeFile atomically replaces finalPath with data.
func (s *CollectionStore) writeFile(finalPath string, data []byte) error {
	dir := filepath.Dir(finalPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating collection directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".collection-*.json")
	if err != nil {
		return fmt.Errorf("creating temp collection file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing collection data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing collection data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp collection file: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("renaming collection file to %s: %w", finalPath, err)
	}

	success = true
	return nil
}
