// Package web holds the embedded HTML templates of both applications and a
// gin renderer that executes them inside their layout.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/filecms/filecms/internal/search"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

var funcs = template.FuncMap{
	"highlight":    search.Highlight,
	"inParagraphs": search.InParagraphs,
}

// Renderer implements render.HTMLRender over a cache of parsed page templates.
// Pages are addressed as "<set>/<page>", e.g. "cms/index", and always executed
// through the set's "layout" template.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page of the given template set ("cms" or "books").
func NewRenderer(set string) (*Renderer, error) {
	dir := path.Join("templates", set)
	entries, err := fs.ReadDir(templateFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read templates %s: %w", set, err)
	}
	layout := path.Join(dir, "layout.gohtml")
	r := &Renderer{templates: map[string]*template.Template{}}
	for _, e := range entries {
		name := e.Name()
		if name == "layout.gohtml" || !strings.HasSuffix(name, ".gohtml") {
			continue
		}
		page := strings.TrimSuffix(name, ".gohtml")
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, layout, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("parse %s/%s: %w", set, page, err)
		}
		r.templates[set+"/"+page] = t
	}
	return r, nil
}

// MustRenderer is NewRenderer that panics on error; templates are embedded so
// a failure is a build defect.
func MustRenderer(set string) *Renderer {
	r, err := NewRenderer(set)
	if err != nil {
		panic(err)
	}
	return r
}

// Has reports whether a page exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		panic(fmt.Sprintf("template %s does not exist", name))
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}
