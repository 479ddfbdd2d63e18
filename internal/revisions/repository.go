package revisions

import (
	"context"
	"sync"

	"github.com/filecms/filecms/internal/yamlfile"
)

// Repository persists the per-document list of content snapshots.
// Append must be durable before it returns; List returns oldest first.
type Repository interface {
	Append(ctx context.Context, name, content string) error
	List(ctx context.Context, name string) ([]string, error)
}

// FileRepository keeps the whole history mapping in memory and mirrors it to
// a YAML file of the form `name: [snapshot, ...]`. A single mutex serialises
// appends so concurrent edits cannot lose each other's snapshots.
type FileRepository struct {
	mu      sync.Mutex
	path    string
	history map[string][]string
}

// NewFileRepository loads path (a missing file is an empty history).
func NewFileRepository(path string) (*FileRepository, error) {
	h := map[string][]string{}
	if err := yamlfile.Load(path, &h); err != nil {
		return nil, err
	}
	return &FileRepository{path: path, history: h}, nil
}

// Append records content and rewrites the file. When the rewrite fails the
// in-memory history is rolled back and the error returned.
func (r *FileRepository) Append(ctx context.Context, name, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, had := r.history[name]
	r.history[name] = append(prev, content)
	if err := yamlfile.Save(r.path, r.history); err != nil {
		if had {
			r.history[name] = prev
		} else {
			delete(r.history, name)
		}
		return err
	}
	return nil
}

func (r *FileRepository) List(ctx context.Context, name string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history[name]...), nil
}
