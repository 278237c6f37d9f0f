package objstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore stores objects as files under a root directory and serves
// them over the API's /files route. It implements the ObjectStore
// interface.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
// baseURL is the externally reachable base of the API, without a trailing
// slash.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create object store root: %w", err)
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Put stores data at the given path. Storing to an existing path fails
// rather than silently overwriting. The data is written to a temp file in
// the same directory and renamed in, so a concurrent reader never sees a
// partial object.
func (s *LocalStore) Put(ctx context.Context, path string, data []byte) error {
	abs, err := s.absPath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	if _, err := os.Stat(abs); err == nil {
		return fmt.Errorf("object %s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat object %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), ".put-*")
	if err != nil {
		return fmt.Errorf("failed to create object %s: %w", path, err)
	}
	_ = tmp.Chmod(0644)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write object %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close object %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), abs); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to finalize object %s: %w", path, err)
	}
	return nil
}

// URL returns the public URL for a stored object path.
func (s *LocalStore) URL(path string) string {
	return s.baseURL + "/files/" + path
}

// Delete removes the object at the given path. Deleting an absent object
// succeeds.
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	abs, err := s.absPath(path)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object %s: %w", path, err)
	}
	return nil
}

// Root returns the directory objects are stored under, for file serving.
func (s *LocalStore) Root() string {
	return s.root
}

// absPath resolves an object path inside the store root, rejecting paths
// that would escape it.
func (s *LocalStore) absPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("object path must not be empty")
	}
	abs := filepath.Join(s.root, filepath.FromSlash(path))
	if !strings.HasPrefix(abs, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("object path %q escapes store root", path)
	}
	return abs, nil
}
