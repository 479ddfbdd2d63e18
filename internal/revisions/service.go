package revisions

import (
	"context"
	"fmt"

	"github.com/filecms/filecms/pkg/metrics"
)

// Service is the revision log: a full-snapshot, append-only history per document.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// Record appends content as the newest snapshot of name.
func (s *Service) Record(ctx context.Context, name, content string) error {
	if err := s.repo.Append(ctx, name, content); err != nil {
		return fmt.Errorf("record revision for %s: %w", name, err)
	}
	metrics.RevisionsRecorded.Inc()
	return nil
}

// HistoryFor returns the snapshots of name, oldest first. A document that was
// never edited has an empty history.
func (s *Service) HistoryFor(ctx context.Context, name string) ([]string, error) {
	list, err := s.repo.List(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", name, err)
	}
	if list == nil {
		return []string{}, nil
	}
	return list, nil
}
