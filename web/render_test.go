package web

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRenderer_LoadsPages(t *testing.T) {
	cms, err := NewRenderer("cms")
	require.NoError(t, err)
	for _, page := range []string{"index", "new", "edit", "history", "signin", "markdown", "image"} {
		require.True(t, cms.Has("cms/"+page), page)
	}
	require.False(t, cms.Has("cms/layout"))

	books, err := NewRenderer("books")
	require.NoError(t, err)
	for _, page := range []string{"home", "search", "chapter"} {
		require.True(t, books.Has("books/"+page), page)
	}
}

func TestNewRenderer_UnknownSet(t *testing.T) {
	_, err := NewRenderer("nope")
	require.Error(t, err)
}

func TestInstance_ExecutesLayout(t *testing.T) {
	r := MustRenderer("books")
	w := httptest.NewRecorder()
	data := map[string]any{
		"Title":    "Chapter 1: A Scandal in Bohemia",
		"Contents": []map[string]any{{"Number": 1, "Name": "A Scandal in Bohemia"}},
		"Yield":    map[string]any{"Text": "one\n\ntwo"},
	}
	require.NoError(t, r.Instance("books/chapter", data).Render(w))
	body := w.Body.String()
	require.Contains(t, body, "<title>Chapter 1: A Scandal in Bohemia</title>")
	require.Contains(t, body, `<p id="paragraph1">two</p>`)
}
