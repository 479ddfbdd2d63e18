package web

import (
	"github.com/filecms/filecms/internal/sessions"
	"github.com/gin-gonic/gin"
)

// ViewModel is the data every CMS page is executed with. Yield carries the
// page-specific values.
type ViewModel struct {
	Title       string
	CurrentUser string
	Success     string
	Failure     string
	Yield       any
}

// HTML renders a CMS page inside the layout. The session's flash messages are
// consumed here, so a message set earlier in the same request is shown too.
func HTML(c *gin.Context, status int, page, title string, yield any) {
	s := sessions.FromContext(c)
	success, failure := s.PopFlash()
	c.HTML(status, "cms/"+page, ViewModel{
		Title:       title,
		CurrentUser: s.CurrentUser,
		Success:     success,
		Failure:     failure,
		Yield:       yield,
	})
}

type ChapterLink struct {
	Number int
	Name   string
}

// BookView is the data of a book viewer page; the layout lists Contents in
// its navigation.
type BookView struct {
	Title    string
	Contents []ChapterLink
	Yield    any
}

// Links numbers chapter titles from 1.
func Links(titles []string) []ChapterLink {
	out := make([]ChapterLink, len(titles))
	for i, t := range titles {
		out[i] = ChapterLink{Number: i + 1, Name: t}
	}
	return out
}
