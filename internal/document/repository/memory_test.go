package repository

import (
	"context"
	"testing"

	"github.com/filecms/filecms/internal/document"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	require.NoError(t, r.Write(ctx, "b.txt", []byte("hello")))
	require.NoError(t, r.Write(ctx, "a.md", []byte("# hi")))

	got, err := r.Read(ctx, "b.txt")
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a.md", "b.txt"}, list)

	require.NoError(t, r.Write(ctx, "b.txt", []byte("new")))
	got2, err := r.Read(ctx, "b.txt")
	require.NoError(t, err)
	require.Equal(t, "new", string(got2))

	require.NoError(t, r.Delete(ctx, "b.txt"))
	_, err = r.Read(ctx, "b.txt")
	require.ErrorIs(t, err, document.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, "b.txt"), document.ErrNotFound)
}
