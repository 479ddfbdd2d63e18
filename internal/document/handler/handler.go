package handler

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/filecms/filecms/internal/document"
	"github.com/filecms/filecms/internal/document/service"
	"github.com/filecms/filecms/internal/revisions"
	"github.com/filecms/filecms/internal/sessions"
	"github.com/filecms/filecms/pkg/logger"
	"github.com/filecms/filecms/pkg/middleware"
	"github.com/filecms/filecms/web"
	"github.com/gin-gonic/gin"
)

// MaxUploadSize is the largest accepted upload; bigger files are rejected.
const MaxUploadSize = 32 << 20

// Handler serves the CMS document pages.
type Handler struct {
	store   *service.Store
	history *revisions.Service
}

func New(store *service.Store, history *revisions.Service) *Handler {
	return &Handler{store: store, history: history}
}

// Register mounts the document routes. r must already run sessions.Middleware.
func (h *Handler) Register(r gin.IRouter) {
	guard := middleware.RequireSignedIn()

	r.GET("/", h.Index)
	r.GET("/new", guard, h.NewForm)
	r.POST("/new", guard, h.Create)
	r.POST("/upload", guard, h.Upload)
	r.GET("/images/:name", h.Image)
	r.GET("/:file", h.View)
	r.GET("/:file/edit", guard, h.EditForm)
	r.POST("/:file/edit", guard, h.Update)
	r.POST("/:file/delete", guard, h.Delete)
	r.POST("/:file/duplicate", guard, h.Duplicate)
	r.GET("/:file/history", guard, h.History)
}

type listEntry struct {
	Name string
	Text bool
}

type revisionView struct {
	Number  int
	Content string
}

func (h *Handler) Index(c *gin.Context) {
	names, err := h.store.List(c.Request.Context())
	if err != nil {
		serverError(c, "list documents", err)
		return
	}
	docs := make([]listEntry, 0, len(names))
	for _, n := range names {
		docs = append(docs, listEntry{Name: n, Text: document.IsText(n)})
	}
	web.HTML(c, http.StatusOK, "index", "", gin.H{"Documents": docs})
}

func (h *Handler) NewForm(c *gin.Context) {
	web.HTML(c, http.StatusOK, "new", "New document", gin.H{"FileName": ""})
}

func (h *Handler) Create(c *gin.Context) {
	name := c.PostForm("file_name")
	err := h.store.Create(c.Request.Context(), name)
	if document.IsValidation(err) {
		sessions.FromContext(c).FlashFailure(err.Error())
		web.HTML(c, http.StatusUnprocessableEntity, "new", "New document", gin.H{"FileName": name})
		return
	}
	if err != nil {
		serverError(c, "create "+name, err)
		return
	}
	redirectHome(c, fmt.Sprintf("%s was created", name), "")
}

func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		sessions.FromContext(c).FlashFailure("Please choose a file to upload")
		web.HTML(c, http.StatusUnprocessableEntity, "new", "New document", gin.H{"FileName": ""})
		return
	}
	if fh.Size > MaxUploadSize {
		uploadTooLarge(c)
		return
	}
	f, err := fh.Open()
	if err != nil {
		serverError(c, "open upload", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxUploadSize+1))
	if err != nil {
		serverError(c, "read upload", err)
		return
	}
	if len(data) > MaxUploadSize {
		uploadTooLarge(c)
		return
	}

	name, err := h.store.Upload(c.Request.Context(), fh.Filename, data)
	if document.IsValidation(err) {
		sessions.FromContext(c).FlashFailure(err.Error())
		web.HTML(c, http.StatusUnprocessableEntity, "new", "New document", gin.H{"FileName": ""})
		return
	}
	if err != nil {
		serverError(c, "upload "+fh.Filename, err)
		return
	}
	redirectHome(c, fmt.Sprintf("%s uploaded successfully", name), "")
}

func uploadTooLarge(c *gin.Context) {
	sessions.FromContext(c).FlashFailure(fmt.Sprintf("File is too large (limit %d MiB)", MaxUploadSize>>20))
	web.HTML(c, http.StatusUnprocessableEntity, "new", "New document", gin.H{"FileName": ""})
}

// Image streams the raw bytes of an entry of the image area.
func (h *Handler) Image(c *gin.Context) {
	name := c.Param("name")
	if document.IsText(name) {
		c.Status(http.StatusNotFound)
		return
	}
	data, err := h.store.Read(c.Request.Context(), name)
	if service.IsNotFound(err) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		serverError(c, "read image "+name, err)
		return
	}
	c.Data(http.StatusOK, document.ContentType(name), data)
}

func (h *Handler) View(c *gin.Context) {
	name := c.Param("file")
	doc, err := h.store.Get(c.Request.Context(), name)
	if service.IsNotFound(err) {
		redirectHome(c, "", fmt.Sprintf("%s does not exist", name))
		return
	}
	if err != nil {
		serverError(c, "read "+name, err)
		return
	}

	switch doc.Kind {
	case document.PlainText:
		c.Data(http.StatusOK, "text/plain; charset=utf-8", doc.Content)
	case document.Markdown:
		html, err := h.store.RenderMarkdown(doc.Content)
		if err != nil {
			serverError(c, "render "+name, err)
			return
		}
		web.HTML(c, http.StatusOK, "markdown", name, gin.H{"HTML": html})
	default:
		web.HTML(c, http.StatusOK, "image", name, gin.H{
			"Name":        name,
			"Embed":       filepath.Ext(name) == ".pdf",
			"ContentType": document.ContentType(name),
		})
	}
}

// editable loads a text document for the edit routes. It writes the redirect
// itself and returns false when the document cannot be edited.
func (h *Handler) editable(c *gin.Context, name string) ([]byte, bool) {
	b, err := h.store.Read(c.Request.Context(), name)
	if service.IsNotFound(err) {
		redirectHome(c, "", fmt.Sprintf("%s does not exist", name))
		return nil, false
	}
	if err != nil {
		serverError(c, "read "+name, err)
		return nil, false
	}
	if !document.IsText(name) {
		redirectHome(c, "", fmt.Sprintf("%s cannot be edited", name))
		return nil, false
	}
	return b, true
}

func (h *Handler) EditForm(c *gin.Context) {
	name := c.Param("file")
	content, ok := h.editable(c, name)
	if !ok {
		return
	}
	web.HTML(c, http.StatusOK, "edit", "Edit "+name, gin.H{"Name": name, "Content": string(content)})
}

// Update overwrites the document and appends the new content to its history.
func (h *Handler) Update(c *gin.Context) {
	name := c.Param("file")
	if _, ok := h.editable(c, name); !ok {
		return
	}
	content := c.PostForm("content")
	ctx := c.Request.Context()
	if err := h.store.Write(ctx, name, []byte(content)); err != nil {
		serverError(c, "write "+name, err)
		return
	}
	if err := h.history.Record(ctx, name, content); err != nil {
		serverError(c, "record revision", err)
		return
	}
	redirectHome(c, fmt.Sprintf("%s has been updated", name), "")
}

func (h *Handler) Delete(c *gin.Context) {
	name := c.Param("file")
	err := h.store.Delete(c.Request.Context(), name)
	if service.IsNotFound(err) {
		redirectHome(c, "", fmt.Sprintf("%s does not exist", name))
		return
	}
	if err != nil {
		serverError(c, "delete "+name, err)
		return
	}
	redirectHome(c, fmt.Sprintf("%s was deleted", name), "")
}

func (h *Handler) Duplicate(c *gin.Context) {
	name := c.Param("file")
	_, err := h.store.Duplicate(c.Request.Context(), name)
	if service.IsNotFound(err) {
		redirectHome(c, "", fmt.Sprintf("%s does not exist", name))
		return
	}
	if err != nil {
		serverError(c, "duplicate "+name, err)
		return
	}
	redirectHome(c, fmt.Sprintf("%s was duplicated", name), "")
}

// History lists every saved version of a document. The history of a deleted
// document stays viewable.
func (h *Handler) History(c *gin.Context) {
	name := c.Param("file")
	ctx := c.Request.Context()
	if document.CheckName(name) != nil {
		redirectHome(c, "", fmt.Sprintf("%s does not exist", name))
		return
	}
	list, err := h.history.HistoryFor(ctx, name)
	if err != nil {
		serverError(c, "history "+name, err)
		return
	}
	if len(list) == 0 {
		ok, err := h.store.Exists(ctx, name)
		if err != nil {
			serverError(c, "history "+name, err)
			return
		}
		if !ok {
			redirectHome(c, "", fmt.Sprintf("%s does not exist", name))
			return
		}
	}
	revs := make([]revisionView, len(list))
	for i, content := range list {
		revs[i] = revisionView{Number: i + 1, Content: content}
	}
	web.HTML(c, http.StatusOK, "history", "History of "+name, gin.H{"Name": name, "Revisions": revs})
}

func redirectHome(c *gin.Context, success, failure string) {
	s := sessions.FromContext(c)
	if success != "" {
		s.FlashSuccess(success)
	}
	if failure != "" {
		s.FlashFailure(failure)
	}
	c.Redirect(http.StatusFound, "/")
}

func serverError(c *gin.Context, op string, err error) {
	logger.WithField("path", c.Request.URL.Path).Errorf("%s: %v", op, err)
	c.String(http.StatusInternalServerError, "Internal Server Error")
	c.Abort()
}
