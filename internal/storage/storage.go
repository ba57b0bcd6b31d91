package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

const MaxImageBytes = 10 << 20

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// CheckImage accepts png, jpg, jpeg, webp and gif uploads up to MaxImageBytes.
// It returns the content type to store the object with.
func CheckImage(filename, contentType string, size int64) (string, error) {
	if size > MaxImageBytes {
		return "", ErrTooLarge
	}
	want, ok := imageTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", ErrUnsupportedType
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if ct != "" && ct != "application/octet-stream" && ct != want {
		return "", ErrUnsupportedType
	}
	return want, nil
}
