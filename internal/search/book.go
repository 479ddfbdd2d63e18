package search

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrChapterNotFound = errors.New("chapter not found")

// Chapter is one numbered chapter of the book. Numbers start at 1.
type Chapter struct {
	Number int
	Name   string
	Text   string
}

// Book reads a table of contents (toc.txt, one title per line) and chapter
// files chp1.txt, chp2.txt, ... from a directory.
type Book struct {
	dir string
}

func NewBook(dir string) *Book {
	return &Book{dir: dir}
}

// Contents returns the chapter titles in order. Line N of toc.txt titles
// chpN.txt, so blank lines inside the list keep their slot; only trailing
// blank lines are dropped.
func (b *Book) Contents(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, "toc.txt"))
	if err != nil {
		return nil, fmt.Errorf("read table of contents: %w", err)
	}
	var titles []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		titles = append(titles, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for len(titles) > 0 && strings.TrimSpace(titles[len(titles)-1]) == "" {
		titles = titles[:len(titles)-1]
	}
	return titles, nil
}

// Chapter loads chapter n, ErrChapterNotFound when n is outside the table of contents.
func (b *Book) Chapter(ctx context.Context, n int) (*Chapter, error) {
	titles, err := b.Contents(ctx)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(titles) {
		return nil, ErrChapterNotFound
	}
	text, err := os.ReadFile(filepath.Join(b.dir, "chp"+strconv.Itoa(n)+".txt"))
	if err != nil {
		return nil, fmt.Errorf("read chapter %d: %w", n, err)
	}
	return &Chapter{Number: n, Name: titles[n-1], Text: string(text)}, nil
}

// Chapters loads every chapter listed in the table of contents.
func (b *Book) Chapters(ctx context.Context) ([]Chapter, error) {
	titles, err := b.Contents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Chapter, 0, len(titles))
	for i, title := range titles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := os.ReadFile(filepath.Join(b.dir, "chp"+strconv.Itoa(i+1)+".txt"))
		if err != nil {
			return nil, fmt.Errorf("read chapter %d: %w", i+1, err)
		}
		out = append(out, Chapter{Number: i + 1, Name: title, Text: string(text)})
	}
	return out, nil
}
