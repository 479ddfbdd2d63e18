package revisions

import (
	"context"
	"errors"
	"testing"

	"github.com/filecms/filecms/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// fake repo for testing
type fakeRepo struct {
	store     map[string][]string
	appendErr error
}

func (f *fakeRepo) Append(ctx context.Context, name, content string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	if f.store == nil {
		f.store = map[string][]string{}
	}
	f.store[name] = append(f.store[name], content)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, name string) ([]string, error) {
	return f.store[name], nil
}

func TestRecordAndHistoryFor(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeRepo{})
	before := testutil.ToFloat64(metrics.RevisionsRecorded)

	edits := []string{"v1", "v2", "v3"}
	for _, e := range edits {
		require.NoError(t, svc.Record(ctx, "test.txt", e))
	}

	got, err := svc.HistoryFor(ctx, "test.txt")
	require.NoError(t, err)
	require.Equal(t, edits, got)
	require.Equal(t, before+3, testutil.ToFloat64(metrics.RevisionsRecorded))
}

func TestHistoryFor_EmptyIsNotNil(t *testing.T) {
	svc := NewService(&fakeRepo{})
	got, err := svc.HistoryFor(context.Background(), "missing.txt")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got, 0)
}

func TestRecord_PropagatesPersistenceFailure(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&fakeRepo{appendErr: boom})
	err := svc.Record(context.Background(), "test.txt", "v1")
	require.ErrorIs(t, err, boom)
}
