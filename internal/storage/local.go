package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// LocalStore keeps images as files in a single upload directory.
type LocalStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string, logger *zap.Logger) (*LocalStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, logger: logger}, nil
}

// Put writes data to a new file and returns its reference.
func (s *LocalStore) Put(_ context.Context, data []byte, suggestedName string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data cannot be empty")
	}

	ref := newRef("", suggestedName)
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrUnavailable, ref, err)
	}
	return ref, nil
}

// Get reads the file behind ref.
func (s *LocalStore) Get(_ context.Context, ref string) ([]byte, error) {
	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, ref)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, ref, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNotExist, ref)
	}
	return data, nil
}

// Delete removes the file behind ref.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	path, err := s.path(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s already removed", ErrNotExist, ref)
		}
		return fmt.Errorf("%w: delete %s: %v", ErrUnavailable, ref, err)
	}
	s.logger.Debug("deleted image", zap.String("ref", ref))
	return nil
}

// path rejects references that would escape the upload directory.
func (s *LocalStore) path(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || ref == "." || ref == ".." {
		return "", fmt.Errorf("%w: invalid reference %q", ErrNotExist, ref)
	}
	return filepath.Join(s.dir, ref), nil
}
