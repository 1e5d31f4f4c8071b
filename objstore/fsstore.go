package objstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSObjStore is an ObjectStore over a local directory tree. Object names
// are slash-separated paths relative to the root.
type FSObjStore struct {
	root string
}

// NewFSObjectStore creates an FSObjStore rooted at the given directory.
func NewFSObjectStore(root string) *FSObjStore {
	return &FSObjStore{root: root}
}

// resolve maps an object name to a path under the root, rejecting names
// that would escape it.
func (s *FSObjStore) resolve(obj string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(obj))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("object name %q escapes store root", obj)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Get opens the file backing the named object.
func (s *FSObjStore) Get(ctx context.Context, obj string) (io.ReadCloser, error) {
	path, err := s.resolve(obj)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Put writes the reader's contents to the file backing the named object
// with truncate-then-write semantics. The file handle is closed on every
// exit path so no dangling handle survives a failed write.
func (s *FSObjStore) Put(ctx context.Context, obj string, reader io.Reader, size int64, contentType string) (err error) {
	path, err := s.resolve(obj)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(f, reader)
	return err
}
