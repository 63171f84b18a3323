// Package local implements the local filesystem asset store.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/infravue/infravue/pkg/common"
	"github.com/infravue/infravue/pkg/validator"
)

// Store keeps assets under basePath/{projectID}/{filename}.
type Store struct {
	basePath string
}

// New creates a local filesystem store rooted at basePath.
func New(basePath string) (*Store, error) {
	if basePath == "" {
		basePath = "data/uploads"
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create storage root: %v", common.ErrStorage, err)
	}

	return &Store{basePath: basePath}, nil
}

// Put writes content to a temporary file in the project directory and
// atomically renames it into place. An existing destination is a conflict.
func (s *Store) Put(ctx context.Context, projectID uint, filename string, content []byte) error {
	if err := validator.ValidateFilename(filename); err != nil {
		return err
	}

	dir := s.projectDir(projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create project directory: %v", common.ErrStorage, err)
	}

	dst := filepath.Join(dir, filename)
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: %s", common.ErrConflict, filename)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat destination: %v", common.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", common.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write temp file: %v", common.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %v", common.ErrStorage, err)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: move into place: %v", common.ErrStorage, err)
	}
	return nil
}

// Open returns the stored content for reading.
func (s *Store) Open(ctx context.Context, projectID uint, filename string) (io.ReadCloser, error) {
	if err := validator.ValidateFilename(filename); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.projectDir(projectID), filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, filename)
		}
		return nil, fmt.Errorf("%w: open file: %v", common.ErrStorage, err)
	}
	return f, nil
}

// Exists reports whether the file is present.
func (s *Store) Exists(ctx context.Context, projectID uint, filename string) (bool, error) {
	if err := validator.ValidateFilename(filename); err != nil {
		return false, err
	}

	_, err := os.Lstat(filepath.Join(s.projectDir(projectID), filename))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat file: %v", common.ErrStorage, err)
	}
	return true, nil
}

// Rename atomically moves oldName to newName within the project directory.
// The destination must not exist and the source must.
func (s *Store) Rename(ctx context.Context, projectID uint, oldName, newName string) error {
	if err := validator.ValidateFilename(oldName); err != nil {
		return err
	}
	if err := validator.ValidateFilename(newName); err != nil {
		return err
	}

	dir := s.projectDir(projectID)
	src := filepath.Join(dir, oldName)
	dst := filepath.Join(dir, newName)

	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%w: %s", common.ErrConflict, newName)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat destination: %v", common.ErrStorage, err)
	}

	if err := os.Rename(src, dst); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", common.ErrNotFound, oldName)
		}
		return fmt.Errorf("%w: rename file: %v", common.ErrStorage, err)
	}
	return nil
}

// Delete removes the file. A missing file is not an error.
func (s *Store) Delete(ctx context.Context, projectID uint, filename string) error {
	if err := validator.ValidateFilename(filename); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.projectDir(projectID), filename)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: delete file: %v", common.ErrStorage, err)
	}

	// Drop the project directory if this was the last file.
	_ = os.Remove(s.projectDir(projectID))

	return nil
}

// Type returns "local" as the backend identifier.
func (s *Store) Type() string {
	return "local"
}

// BasePath returns the storage root.
func (s *Store) BasePath() string {
	return s.basePath
}

func (s *Store) projectDir(projectID uint) string {
	return filepath.Join(s.basePath, strconv.FormatUint(uint64(projectID), 10))
}
