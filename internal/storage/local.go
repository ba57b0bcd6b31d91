package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Local writes uploads under dir using the same <yyyy>/<mm>/<uuid><ext>
// layout as S3, so keys stay portable between drivers.
type Local struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func NewLocal(dir, urlPrefix string) *Local {
	return &Local{
		dir:       dir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		now:       time.Now,
	}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}

	t := l.now().UTC()
	key := fmt.Sprintf("%04d/%02d/%s%s", t.Year(), int(t.Month()), uuid.NewString(), safeExt(in.Filename))
	dst := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return PutResult{}, fmt.Errorf("local put: %w", err)
	}

	// Readers reach the final name only after a complete write.
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return PutResult{}, fmt.Errorf("local put: %w", err)
	}
	n, err := io.Copy(tmp, io.LimitReader(r, MaxImageBytes+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxImageBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = os.Rename(tmp.Name(), dst)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return PutResult{}, fmt.Errorf("local put %s: %w", key, err)
	}

	return PutResult{Key: key, URL: l.urlPrefix + "/" + key}, nil
}

// Delete treats a missing file as already deleted.
func (l *Local) Delete(_ context.Context, key string) error {
	key = path.Clean(strings.TrimPrefix(key, "/"))
	if key == "." || key == ".." || strings.HasPrefix(key, "../") {
		return errors.New("local delete: invalid key")
	}
	err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("local delete %s: %w", key, err)
	}
	return nil
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageTypes[ext]; ok {
		return ext
	}
	return ""
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.dir) }
