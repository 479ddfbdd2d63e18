package repository

import "context"

// Repository stores raw document bytes for one area of the store (the text
// content directory or the image area). Names are plain base names.
type Repository interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}
