package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAndMetricsSkipSessions(t *testing.T) {
	b := newCMS(t)

	resp, err := b.client.Get(b.srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies())

	p := b.get("/metrics")
	require.Equal(t, http.StatusOK, p.Code)

	p = b.get("/favicon.ico")
	require.Equal(t, http.StatusNoContent, p.Code)
}

func TestCMS_IndexAndView(t *testing.T) {
	b := newCMS(t)
	ctx := context.Background()
	require.NoError(t, b.store.Write(ctx, "about.txt", []byte("about us")))
	require.NoError(t, b.store.Write(ctx, "changes.txt", nil))

	p := b.get("/")
	require.Equal(t, http.StatusOK, p.Code)
	assert.Contains(t, p.Body, "about.txt")
	assert.Contains(t, p.Body, "changes.txt")

	p = b.get("/about.txt")
	require.Equal(t, http.StatusOK, p.Code)
	assert.Equal(t, "about us", p.Body)

	p = b.get("/not_a_file")
	require.Equal(t, http.StatusFound, p.Code)
	p = b.get(p.Location)
	assert.Contains(t, p.Body, "not_a_file does not exist")
}

func TestCMS_EditWithoutSignIn(t *testing.T) {
	b := newCMS(t)
	require.NoError(t, b.store.Write(context.Background(), "changes.txt", nil))

	p := b.get("/changes.txt/edit")
	require.Equal(t, http.StatusFound, p.Code)

	p = b.get(p.Location)
	assert.Contains(t, p.Body, "You must be signed in to do that")
	assert.Contains(t, p.Body, "Sign in")
}

func TestCMS_EditAndHistory(t *testing.T) {
	b := newCMS(t)
	require.NoError(t, b.store.Write(context.Background(), "test.txt", nil))
	b.signIn()

	p := b.get("/test.txt/edit")
	require.Equal(t, http.StatusOK, p.Code)
	assert.Contains(t, p.Body, "<textarea")

	p = b.post("/test.txt/edit", url.Values{"content": {"This is new content."}})
	require.Equal(t, http.StatusFound, p.Code)
	p = b.get(p.Location)
	assert.Contains(t, p.Body, "test.txt has been updated")
	assert.Contains(t, p.Body, `<a href="/test.txt/history">`)

	b.post("/test.txt/edit", url.Values{"content": {"This is new content. More new content."}})

	p = b.get("/test.txt/history")
	require.Equal(t, http.StatusOK, p.Code)
	assert.Contains(t, p.Body, "<li>This is new content.</li>")
	assert.Contains(t, p.Body, "<li>This is new content. More new content.</li>")
	assert.Contains(t, p.Body, "Revert to this version</button>")
}

func TestCMS_CreateDuplicateDelete(t *testing.T) {
	b := newCMS(t)
	b.signIn()

	p := b.post("/new", url.Values{"file_name": {"test.txt"}})
	require.Equal(t, http.StatusFound, p.Code)
	p = b.get("/")
	assert.Contains(t, p.Body, "test.txt was created")

	p = b.post("/new", url.Values{"file_name": {"test.pdf"}})
	require.Equal(t, http.StatusUnprocessableEntity, p.Code)
	assert.Contains(t, p.Body, "That extension is not supported.")

	b.post("/test.txt/duplicate", nil)
	p = b.get("/")
	assert.Contains(t, p.Body, "test.txt was duplicated")
	assert.Contains(t, p.Body, "test_copy.txt")

	b.post("/test.txt/delete", nil)
	p = b.get("/")
	assert.Contains(t, p.Body, "test.txt was deleted")
	assert.NotContains(t, p.Body, `href="/test.txt"`)
}

func TestCMS_UploadImage(t *testing.T) {
	b := newCMS(t)
	b.signIn()

	p := b.get("/new")
	require.Equal(t, http.StatusOK, p.Code)
	assert.Contains(t, p.Body, "Upload an image")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "test.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte{0xff, 0xd8, 0xff})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	p = b.read(b.client.Post(b.srv.URL+"/upload", mw.FormDataContentType(), &buf))
	require.Equal(t, http.StatusFound, p.Code)

	p = b.get(p.Location)
	assert.Contains(t, p.Body, "test.jpg uploaded successfully")
	assert.Contains(t, p.Body, "test.jpg")

	p = b.get("/images/test.jpg")
	require.Equal(t, http.StatusOK, p.Code)
	assert.Equal(t, string([]byte{0xff, 0xd8, 0xff}), p.Body)
}
