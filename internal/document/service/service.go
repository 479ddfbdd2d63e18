package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/filecms/filecms/internal/document"
	"github.com/filecms/filecms/internal/document/repository"
	"github.com/filecms/filecms/pkg/metrics"
	"github.com/yuin/goldmark"
)

// Store is the document store used by the CMS handlers. Text documents
// (.txt, .md) live in one repository, everything else in the image area.
type Store struct {
	texts  repository.Repository
	images repository.Repository
	md     goldmark.Markdown
}

func NewStore(texts, images repository.Repository) *Store {
	return &Store{texts: texts, images: images, md: goldmark.New()}
}

func (s *Store) area(name string) repository.Repository {
	if document.IsText(name) {
		return s.texts
	}
	return s.images
}

// List returns text documents followed by images.
func (s *Store) List(ctx context.Context) ([]string, error) {
	texts, err := s.texts.List(ctx)
	if err != nil {
		return nil, err
	}
	images, err := s.images.List(ctx)
	if err != nil {
		return nil, err
	}
	return append(texts, images...), nil
}

// Exists reports whether name is one of the listed documents.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if document.CheckName(name) != nil {
		return false, nil
	}
	names, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// Read returns the bytes of a listed document, ErrNotFound otherwise.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, document.ErrNotFound
	}
	return s.area(name).Read(ctx, name)
}

// Get returns the document together with its render kind.
func (s *Store) Get(ctx context.Context, name string) (*document.Document, error) {
	b, err := s.Read(ctx, name)
	if err != nil {
		return nil, err
	}
	return &document.Document{Name: name, Content: b, Kind: document.KindOf(name)}, nil
}

// Write creates or overwrites name.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := document.CheckName(name); err != nil {
		return err
	}
	if err := s.area(name).Write(ctx, name, data); err != nil {
		return err
	}
	metrics.DocumentOperations.WithLabelValues("write").Inc()
	return nil
}

// Create makes an empty text document. Nothing is written when validation fails.
func (s *Store) Create(ctx context.Context, name string) error {
	if err := document.ValidateNewName(name); err != nil {
		return err
	}
	ok, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if ok {
		return &document.ValidationError{Message: fmt.Sprintf("%s already exists", name)}
	}
	if err := s.texts.Write(ctx, name, []byte{}); err != nil {
		return err
	}
	metrics.DocumentOperations.WithLabelValues("create").Inc()
	return nil
}

// Upload stores uploaded bytes under the base name of the uploaded file and
// returns that name.
func (s *Store) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	name := filepath.Base(filepath.ToSlash(filename))
	if err := document.CheckName(name); err != nil {
		return "", err
	}
	if err := s.area(name).Write(ctx, name, data); err != nil {
		return "", err
	}
	metrics.DocumentOperations.WithLabelValues("upload").Inc()
	return name, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	if document.CheckName(name) != nil {
		return document.ErrNotFound
	}
	if err := s.area(name).Delete(ctx, name); err != nil {
		return err
	}
	metrics.DocumentOperations.WithLabelValues("delete").Inc()
	return nil
}

// Duplicate copies name to its "_copy" name, overwriting an existing copy.
func (s *Store) Duplicate(ctx context.Context, name string) (string, error) {
	src, err := s.Read(ctx, name)
	if err != nil {
		return "", err
	}
	target := document.CopyName(name)
	if err := s.area(target).Write(ctx, target, src); err != nil {
		return "", err
	}
	metrics.DocumentOperations.WithLabelValues("duplicate").Inc()
	return target, nil
}

func (s *Store) RenderKind(name string) document.RenderKind {
	return document.KindOf(name)
}

// RenderMarkdown converts CommonMark source to HTML. Raw HTML in the source is omitted.
func (s *Store) RenderMarkdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// IsNotFound reports whether err means the document is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, document.ErrNotFound)
}
