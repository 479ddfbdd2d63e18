package search

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/filecms/filecms/pkg/metrics"
)

// Paragraph is one blank-line separated block of a chapter and its
// zero-based position within the chapter.
type Paragraph struct {
	Text  string
	Index int
}

// Result groups the matching paragraphs of one chapter.
type Result struct {
	Name       string
	Number     int
	Paragraphs []Paragraph
}

// Paragraphs splits chapter text on blank lines. Trailing blank paragraphs
// are dropped so a chapter ending in "\n\n" has no empty last paragraph.
func Paragraphs(text string) []string {
	ps := strings.Split(text, "\n\n")
	for len(ps) > 0 && strings.TrimSpace(ps[len(ps)-1]) == "" {
		ps = ps[:len(ps)-1]
	}
	return ps
}

// Search returns, in chapter order, every chapter whose text contains term
// along with the paragraphs that contain it. Matching is literal and case
// sensitive. An empty term matches nothing.
func Search(term string, chapters []Chapter) []Result {
	results := []Result{}
	if term == "" {
		return results
	}
	metrics.SearchQueries.Inc()
	for _, ch := range chapters {
		if !strings.Contains(ch.Text, term) {
			continue
		}
		r := Result{Name: ch.Name, Number: ch.Number}
		for i, p := range Paragraphs(ch.Text) {
			if strings.Contains(p, term) {
				r.Paragraphs = append(r.Paragraphs, Paragraph{Text: p, Index: i})
			}
		}
		results = append(results, r)
	}
	return results
}

// Highlight escapes text and wraps each literal occurrence of term in <strong>.
func Highlight(text, term string) template.HTML {
	if term == "" {
		return template.HTML(template.HTMLEscapeString(text))
	}
	parts := strings.Split(text, term)
	for i, p := range parts {
		parts[i] = template.HTMLEscapeString(p)
	}
	mark := "<strong>" + template.HTMLEscapeString(term) + "</strong>"
	return template.HTML(strings.Join(parts, mark))
}

// InParagraphs renders chapter text as <p> elements anchored paragraph0, paragraph1, ...
func InParagraphs(text string) template.HTML {
	var b strings.Builder
	for i, p := range Paragraphs(text) {
		b.WriteString(`<p id="paragraph`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`">`)
		b.WriteString(template.HTMLEscapeString(p))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}
