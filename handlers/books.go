package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/filecms/filecms/internal/search"
	"github.com/filecms/filecms/pkg/logger"
	"github.com/filecms/filecms/web"
	"github.com/gin-gonic/gin"
)

// BookHandler serves the book viewer: table of contents, chapters and search.
type BookHandler struct {
	book  *search.Book
	title string
}

func NewBookHandler(book *search.Book, title string) *BookHandler {
	return &BookHandler{book: book, title: title}
}

func (h *BookHandler) Register(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/search", h.Search)
	r.GET("/chapters/:number", h.Chapter)
}

func (h *BookHandler) contents(c *gin.Context) ([]web.ChapterLink, bool) {
	titles, err := h.book.Contents(c.Request.Context())
	if err != nil {
		logger.Errorf("load table of contents: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return nil, false
	}
	return web.Links(titles), true
}

func (h *BookHandler) Home(c *gin.Context) {
	links, ok := h.contents(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "books/home", web.BookView{Title: h.title, Contents: links})
}

// Search lists the chapters and paragraphs containing the query. A missing or
// empty query shows just the form.
func (h *BookHandler) Search(c *gin.Context) {
	links, ok := h.contents(c)
	if !ok {
		return
	}
	query := c.Query("query")
	var results []search.Result
	if query != "" {
		chapters, err := h.book.Chapters(c.Request.Context())
		if err != nil {
			logger.Errorf("load chapters: %v", err)
			c.String(http.StatusInternalServerError, "Internal Server Error")
			return
		}
		results = search.Search(query, chapters)
	}
	c.HTML(http.StatusOK, "books/search", web.BookView{
		Title:    h.title,
		Contents: links,
		Yield:    gin.H{"Query": query, "Results": results},
	})
}

func (h *BookHandler) Chapter(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	ch, err := h.book.Chapter(c.Request.Context(), n)
	if errors.Is(err, search.ErrChapterNotFound) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		logger.Errorf("load chapter %d: %v", n, err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	links, ok := h.contents(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "books/chapter", web.BookView{
		Title:    fmt.Sprintf("Chapter %d: %s", ch.Number, ch.Name),
		Contents: links,
		Yield:    ch,
	})
}
