package document

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"
)

// RenderKind selects how a document is displayed. It is resolved once from
// the file name and never changes for that name.
type RenderKind int

const (
	PlainText RenderKind = iota
	Markdown
	Image
)

func (k RenderKind) String() string {
	switch k {
	case PlainText:
		return "plain_text"
	case Markdown:
		return "markdown"
	default:
		return "image"
	}
}

// TextExtensions are the extensions stored in the content directory and the
// only ones accepted by Create.
var TextExtensions = []string{".txt", ".md"}

// KindOf maps a file name to its render kind. Unknown extensions (including
// .pdf) are rendered through the image page.
func KindOf(name string) RenderKind {
	switch filepath.Ext(name) {
	case ".txt":
		return PlainText
	case ".md":
		return Markdown
	default:
		return Image
	}
}

// IsText reports whether name belongs in the content directory rather than the image area.
func IsText(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range TextExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Document is a named file held by the store.
type Document struct {
	Name    string
	Content []byte
	Kind    RenderKind
}

var (
	ErrNotFound = errors.New("document not found")
)

// ValidationError carries the message shown to the user when input is rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CheckName rejects blank names and names that would escape their directory.
func CheckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Message: "A name is required"}
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." || strings.Contains(name, "\x00") {
		return &ValidationError{Message: "That name is not allowed"}
	}
	return nil
}

// ValidateNewName applies the rules for documents created from the "new" form.
func ValidateNewName(name string) error {
	if err := CheckName(name); err != nil {
		return err
	}
	if !IsText(name) {
		return &ValidationError{Message: "That extension is not supported. Supported extensions: " + strings.Join(TextExtensions, ", ")}
	}
	return nil
}

// CopyName inserts "_copy" before the extension: about.txt -> about_copy.txt.
func CopyName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_copy" + ext
}

// ContentType guesses the MIME type from the file extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
