package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/filecms/filecms/internal/document"
)

// FileRepo keeps documents as regular files in a single flat directory.
// Subdirectories are ignored by List.
type FileRepo struct {
	dir string
}

func NewFileRepo(dir string) *FileRepo {
	return &FileRepo{dir: dir}
}

// Dir returns the backing directory.
func (r *FileRepo) Dir() string { return r.dir }

func (r *FileRepo) path(name string) string {
	return filepath.Join(r.dir, filepath.Base(name))
}

// List returns the file names in lexical order. A missing directory is empty.
func (r *FileRepo) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", r.dir, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, e.Name())
	}
	return out, nil
}

func (r *FileRepo) Read(ctx context.Context, name string) ([]byte, error) {
	b, err := os.ReadFile(r.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, document.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}

func (r *FileRepo) Write(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", r.dir, err)
	}
	if err := os.WriteFile(r.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (r *FileRepo) Delete(ctx context.Context, name string) error {
	if err := os.Remove(r.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document.ErrNotFound
		}
		return fmt.Errorf("delete %s: %w", name, err)
	}
	return nil
}
