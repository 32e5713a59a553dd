package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// FSStore keeps uploaded files on local disk, one directory per document id,
// each holding the file under its original name.
type FSStore struct {
	root string
}

func NewFSStore(root string) (*FSStore, error) {
	err := os.MkdirAll(root, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs directory: %w", err)
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) dir(id int64) string {
	return filepath.Join(s.root, strconv.FormatInt(id, 10))
}

func (s *FSStore) Write(id int64, filename string, r io.Reader) error {
	dir := s.dir(id)

	err := os.Mkdir(dir, 0755)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("document %d: %w", id, ErrExists)
		}
		return fmt.Errorf("failed to create document directory: %w", err)
	}

	// filepath.Base keeps uploads from escaping the directory
	f, err := os.Create(filepath.Join(dir, filepath.Base(filename)))
	if err != nil {
		return fmt.Errorf("failed to create document file: %w", err)
	}

	_, err = io.Copy(f, r)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to write document file: %w", err)
	}

	return f.Close()
}

func (s *FSStore) Open(id int64, filename string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir(id), filepath.Base(filename)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document %d %q: %w", id, filename, ErrFileNotFound)
		}
		return nil, fmt.Errorf("failed to open document file: %w", err)
	}
	return f, nil
}

func (s *FSStore) Delete(id int64) error {
	dir := s.dir(id)

	_, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("document %d: %w", id, ErrFileNotFound)
		}
		return fmt.Errorf("failed to stat document directory: %w", err)
	}

	err = os.RemoveAll(dir)
	if err != nil {
		return fmt.Errorf("failed to remove document directory: %w", err)
	}

	return nil
}
